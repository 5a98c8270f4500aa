package wizard

// Kind identifies what a wizard step collects, independent of its number.
type Kind int

const (
	KindAccount Kind = iota + 1
	KindTypeSelection
	KindBasicInfo
	KindProducts
	KindAppearance
	KindOperations
	KindReview
	KindLaunch
)

var kindNames = map[Kind]string{
	KindAccount:       "account",
	KindTypeSelection: "type_selection",
	KindBasicInfo:     "basic_info",
	KindProducts:      "products",
	KindAppearance:    "appearance",
	KindOperations:    "operations",
	KindReview:        "review",
	KindLaunch:        "launch",
}

var kindTitles = map[Kind]string{
	KindAccount:       "Account",
	KindTypeSelection: "Business Type",
	KindBasicInfo:     "Basic Information",
	KindProducts:      "Products & Services",
	KindAppearance:    "Appearance",
	KindOperations:    "Operations",
	KindReview:        "Review",
	KindLaunch:        "Launch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) Title() string { return kindTitles[k] }

// Topology is the ordered list of steps for one session. It is computed once
// from the authentication state at session start and never recomputed, so a
// later login or token expiry cannot shift step numbers mid-flow.
type Topology struct {
	kinds []Kind
}

// NewTopology returns the seven-step flow for authenticated actors and the
// eight-step flow, with Account first, for everyone else.
func NewTopology(authenticated bool) Topology {
	kinds := make([]Kind, 0, 8)
	if !authenticated {
		kinds = append(kinds, KindAccount)
	}
	kinds = append(kinds,
		KindTypeSelection,
		KindBasicInfo,
		KindProducts,
		KindAppearance,
		KindOperations,
		KindReview,
		KindLaunch,
	)
	return Topology{kinds: kinds}
}

func (t Topology) TotalSteps() int { return len(t.kinds) }

// Titles has one entry per step, in order.
func (t Topology) Titles() []string {
	titles := make([]string, len(t.kinds))
	for i, k := range t.kinds {
		titles[i] = k.Title()
	}
	return titles
}

// KindAt resolves a 1-based step number.
func (t Topology) KindAt(step int) (Kind, bool) {
	if step < 1 || step > len(t.kinds) {
		return 0, false
	}
	return t.kinds[step-1], true
}

// NumberOf returns the 1-based step number of k, or 0 if the flow has no
// such step.
func (t Topology) NumberOf(k Kind) int {
	for i, candidate := range t.kinds {
		if candidate == k {
			return i + 1
		}
	}
	return 0
}

func (t Topology) HasAccountStep() bool {
	return t.NumberOf(KindAccount) != 0
}
