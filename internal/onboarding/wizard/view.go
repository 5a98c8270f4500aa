package wizard

import (
	"time"

	"launchpad/internal/onboarding/models"
)

// View is the read model rendered to the presentation layer.
type View struct {
	SessionID       string            `json:"session_id"`
	Step            int               `json:"step"`
	StepKind        string            `json:"step_kind"`
	StepTitle       string            `json:"step_title"`
	TotalSteps      int               `json:"total_steps"`
	StepTitles      []string          `json:"step_titles"`
	ProgressPercent int               `json:"progress_percent"`
	CanProceed      bool              `json:"can_proceed"`
	Authenticated   bool              `json:"authenticated"`
	Businesses      []models.Business `json:"businesses"`
	Selection
	User         models.UserInformation `json:"user"`
	GeneralError string                 `json:"general_error,omitempty"`
	FieldErrors  map[string]string      `json:"field_errors,omitempty"`
	Launched     bool                   `json:"launched"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// NewView snapshots s. The returned value shares no mutable state with the
// session beyond the immutable draft contents.
func NewView(s *Session) *View {
	kind := s.CurrentKind()
	v := &View{
		SessionID:       s.ID.String(),
		Step:            s.Step,
		StepKind:        kind.String(),
		StepTitle:       kind.Title(),
		TotalSteps:      s.TotalSteps(),
		StepTitles:      s.Topology.Titles(),
		ProgressPercent: progress(s.Step, s.TotalSteps()),
		CanProceed:      s.CanProceed(),
		Authenticated:   s.Auth.Authenticated,
		Businesses:      s.Draft.Businesses(),
		Selection:       s.Selection,
		User:            s.User,
		GeneralError:    s.GeneralError,
		Launched:        s.Launched,
		UpdatedAt:       s.UpdatedAt,
	}
	if kind == KindAccount {
		if errs := AccountFieldErrors(s.User); len(errs) > 0 {
			v.FieldErrors = errs
		}
	}
	return v
}

func progress(step, total int) int {
	if total == 0 {
		return 0
	}
	return step * 100 / total
}
