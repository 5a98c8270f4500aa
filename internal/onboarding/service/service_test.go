package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"launchpad/internal/onboarding/metrics"
	"launchpad/internal/onboarding/models"
	"launchpad/internal/onboarding/service/mocks"
	"launchpad/internal/onboarding/store"
	"launchpad/internal/onboarding/wizard"
	rlmodels "launchpad/internal/ratelimit/models"
	id "launchpad/pkg/domain"
	dErrors "launchpad/pkg/domain-errors"
	"launchpad/pkg/platform/audit"
	"launchpad/pkg/requestcontext"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []audit.Event
}

func (p *recordingPublisher) Emit(_ context.Context, e audit.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	auth      *mocks.MockAuthenticator
	creator   *mocks.MockBusinessCreator
	lockout   *mocks.MockLockoutChecker
	store     *store.InMemorySessionStore
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	svc       *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.auth = mocks.NewMockAuthenticator(s.ctrl)
	s.creator = mocks.NewMockBusinessCreator(s.ctrl)
	s.lockout = mocks.NewMockLockoutChecker(s.ctrl)
	s.store = store.New()
	s.publisher = &recordingPublisher{}
	s.metrics = metrics.New(prometheus.NewRegistry())

	svc, err := New(s.store, s.auth, s.creator,
		WithLockout(s.lockout),
		WithAuditPublisher(s.publisher),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.svc = svc
}

func ptr[T any](v T) *T { return &v }

func ownerContext() context.Context {
	return requestcontext.WithActor(context.Background(), requestcontext.Actor{
		UserID:   "user-1",
		Email:    "owner@example.com",
		FullName: "Ada Owner",
		Phone:    "+15550100",
		Token:    "token-1",
	})
}

func (s *ServiceSuite) start(ctx context.Context) id.SessionID {
	view, err := s.svc.Start(ctx)
	s.Require().NoError(err)
	sid, err := id.ParseSessionID(view.SessionID)
	s.Require().NoError(err)
	return sid
}

// fillCurrentBusiness satisfies every gate for the selected business.
func (s *ServiceSuite) fillCurrentBusiness(ctx context.Context, sid id.SessionID, name string) {
	_, err := s.svc.UpdateBusiness(ctx, sid, models.BusinessPatch{
		Type:        ptr("retail"),
		Name:        ptr(name),
		Description: ptr("Fresh bread daily"),
		HeroTitle:   ptr("Welcome to " + name),
		TermsAgreed: ptr(true),
	})
	s.Require().NoError(err)
	_, err = s.svc.UpdateBranch(ctx, sid, models.BranchPatch{
		Name:    ptr("Main"),
		Address: ptr("1 High Street"),
		City:    ptr("Lagos"),
		Phone:   ptr("+15550101"),
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) nextUntil(ctx context.Context, sid id.SessionID, kind wizard.Kind) *wizard.View {
	view, err := s.svc.View(ctx, sid)
	s.Require().NoError(err)
	for range 10 {
		if view.StepKind == kind.String() {
			return view
		}
		view, err = s.svc.Next(ctx, sid)
		s.Require().NoError(err)
	}
	s.FailNow("step not reached", kind.String())
	return nil
}

func (s *ServiceSuite) TestStart() {
	s.Run("authenticated actor skips the account step", func() {
		view, err := s.svc.Start(ownerContext())
		s.Require().NoError(err)
		s.Equal(1, view.Step)
		s.Equal(7, view.TotalSteps)
		s.Equal(wizard.KindTypeSelection.String(), view.StepKind)
		s.True(view.Authenticated)
		s.Equal("owner@example.com", view.User.Email)
		s.Require().Len(view.Businesses, 1)
		s.True(view.Businesses[0].ID.IsPending())
	})

	s.Run("anonymous actor starts on the account step", func() {
		view, err := s.svc.Start(context.Background())
		s.Require().NoError(err)
		s.Equal(8, view.TotalSteps)
		s.Equal(wizard.KindAccount.String(), view.StepKind)
		s.False(view.Authenticated)
	})

	s.Contains(s.publisher.actions(), string(audit.EventSessionStarted))
	s.InDelta(2, promtest.ToFloat64(s.metrics.ActiveSessions), 0)
}

func (s *ServiceSuite) TestNextGate() {
	ctx := ownerContext()
	sid := s.start(ctx)

	view, err := s.svc.Next(ctx, sid)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Require().NotNil(view)
	s.Equal(1, view.Step)
	s.False(view.CanProceed)
	s.InDelta(1, promtest.ToFloat64(s.metrics.GateRejections.WithLabelValues("type_selection")), 0)

	_, err = s.svc.UpdateBusiness(ctx, sid, models.BusinessPatch{Type: ptr("restaurant")})
	s.Require().NoError(err)
	view, err = s.svc.Next(ctx, sid)
	s.Require().NoError(err)
	s.Equal(2, view.Step)
	s.Equal(wizard.KindBasicInfo.String(), view.StepKind)
}

func (s *ServiceSuite) TestPrevious() {
	ctx := ownerContext()
	sid := s.start(ctx)

	view, err := s.svc.Previous(ctx, sid)
	s.Require().NoError(err)
	s.Equal(1, view.Step)

	s.fillCurrentBusiness(ctx, sid, "Bakery")
	s.nextUntil(ctx, sid, wizard.KindProducts)

	view, err = s.svc.Previous(ctx, sid)
	s.Require().NoError(err)
	s.Equal(wizard.KindBasicInfo.String(), view.StepKind)
}

func (s *ServiceSuite) TestLoginAdvancesAccountStep() {
	ctx := context.Background()
	sid := s.start(ctx)
	_, err := s.svc.UpdateUser(ctx, sid, models.UserPatch{
		IsExistingUser: ptr(true),
		Email:          ptr(" Jane@Example.com "),
		Password:       ptr("s3cret-pass"),
	})
	s.Require().NoError(err)

	gomock.InOrder(
		s.lockout.EXPECT().Check(gomock.Any(), "Jane@Example.com").
			Return(&rlmodels.CheckResult{Allowed: true, Remaining: 5}, nil),
		s.auth.EXPECT().Login(gomock.Any(), "Jane@Example.com", "s3cret-pass").
			Return(models.AuthResult{
				Success: true,
				Token:   "tok",
				User:    &models.AuthUser{ID: "u-9", FullName: "Jane Doe", Email: "jane@example.com"},
			}, nil),
		s.lockout.EXPECT().Clear(gomock.Any(), "Jane@Example.com").Return(nil),
	)

	view, err := s.svc.Next(ctx, sid)
	s.Require().NoError(err)
	s.Equal(2, view.Step)
	s.Equal(wizard.KindTypeSelection.String(), view.StepKind)
	s.True(view.Authenticated)
	s.Equal("Jane Doe", view.User.FullName)
	s.Empty(view.User.Password)
	s.Empty(view.GeneralError)
	s.Contains(s.publisher.actions(), string(audit.EventAuthSucceeded))
	s.InDelta(1, promtest.ToFloat64(s.metrics.AuthAttempts.WithLabelValues("login", "success")), 0)

	s.Run("account step stays in the topology after sign-in", func() {
		view, err := s.svc.Previous(ctx, sid)
		s.Require().NoError(err)
		s.Equal(8, view.TotalSteps)
		s.Equal(wizard.KindAccount.String(), view.StepKind)

		view, err = s.svc.Next(ctx, sid)
		s.Require().NoError(err)
		s.Equal(2, view.Step)
	})
}

func (s *ServiceSuite) TestLoginRejected() {
	ctx := context.Background()
	sid := s.start(ctx)
	_, err := s.svc.UpdateUser(ctx, sid, models.UserPatch{
		IsExistingUser: ptr(true),
		Email:          ptr("jane@example.com"),
		Password:       ptr("wrong-pass"),
	})
	s.Require().NoError(err)

	s.lockout.EXPECT().Check(gomock.Any(), "jane@example.com").
		Return(&rlmodels.CheckResult{Allowed: true, Remaining: 5}, nil)
	s.auth.EXPECT().Login(gomock.Any(), "jane@example.com", "wrong-pass").
		Return(models.AuthResult{Success: false, Message: "Invalid credentials"}, nil)
	s.lockout.EXPECT().RecordFailure(gomock.Any(), "jane@example.com").
		Return(&rlmodels.AuthLockout{FailureCount: 1}, nil)

	view, err := s.svc.Next(ctx, sid)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthenticationFailed))
	s.Require().NotNil(view)
	s.Equal(1, view.Step)
	s.False(view.Authenticated)
	s.Equal("Invalid credentials", view.GeneralError)

	s.publisher.mu.Lock()
	last := s.publisher.events[len(s.publisher.events)-1]
	s.publisher.mu.Unlock()
	s.Equal(string(audit.EventAuthFailed), last.Action)
	s.Equal("jane@example.com", last.Subject)
	s.Equal(audit.CategorySecurity, last.Category)

	s.Run("editing a field keeps the general error until navigation succeeds", func() {
		view, err := s.svc.UpdateUser(ctx, sid, models.UserPatch{Password: ptr("right-pass")})
		s.Require().NoError(err)
		s.Equal("Invalid credentials", view.GeneralError)
	})
}

func (s *ServiceSuite) TestLoginBackendUnavailable() {
	ctx := context.Background()
	sid := s.start(ctx)
	_, err := s.svc.UpdateUser(ctx, sid, models.UserPatch{
		IsExistingUser: ptr(true),
		Email:          ptr("jane@example.com"),
		Password:       ptr("s3cret-pass"),
	})
	s.Require().NoError(err)

	s.lockout.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	s.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.AuthResult{}, errors.New("connection refused"))

	view, err := s.svc.Next(ctx, sid)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthenticationFailed))
	s.Equal(1, view.Step)
	s.Equal(msgAuthUnavailable, view.GeneralError)
	s.InDelta(1, promtest.ToFloat64(s.metrics.AuthAttempts.WithLabelValues("login", "error")), 0)
}

func (s *ServiceSuite) TestLoginLockedOut() {
	ctx := context.Background()
	sid := s.start(ctx)
	_, err := s.svc.UpdateUser(ctx, sid, models.UserPatch{
		IsExistingUser: ptr(true),
		Email:          ptr("jane@example.com"),
		Password:       ptr("s3cret-pass"),
	})
	s.Require().NoError(err)

	s.lockout.EXPECT().Check(gomock.Any(), "jane@example.com").
		Return(&rlmodels.CheckResult{Allowed: false, RetryAfter: 4*time.Minute + 30*time.Second}, nil)

	view, err := s.svc.Next(ctx, sid)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeTooManyRequests))
	s.Equal(1, view.Step)
	s.Equal("too many failed sign-in attempts, try again in 5 minute(s)", view.GeneralError)
}

func (s *ServiceSuite) TestRegister() {
	ctx := context.Background()
	sid := s.start(ctx)

	view, err := s.svc.UpdateUser(ctx, sid, models.UserPatch{
		FullName: ptr("Jane Doe"),
		Email:    ptr("jane@example.com"),
		Phone:    ptr("+15550102"),
		Password: ptr("short"),
	})
	s.Require().NoError(err)
	s.False(view.CanProceed)
	s.Contains(view.FieldErrors, "password")

	_, err = s.svc.Next(ctx, sid)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.UpdateUser(ctx, sid, models.UserPatch{Password: ptr("long-enough")})
	s.Require().NoError(err)

	s.auth.EXPECT().Register(gomock.Any(), models.RegisterRequest{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+15550102",
		Password:        "long-enough",
		ConfirmPassword: "long-enough",
		Role:            DefaultRegisterRole,
	}).Return(models.AuthResult{
		Success: true,
		Token:   "tok",
		User:    &models.AuthUser{ID: "u-10"},
	}, nil)

	view, err = s.svc.Next(ctx, sid)
	s.Require().NoError(err)
	s.Equal(2, view.Step)
	s.True(view.Authenticated)
	s.Equal("Jane Doe", view.User.FullName)
}

func (s *ServiceSuite) TestSubmitSingleBusinessLaunches() {
	ctx := ownerContext()
	sid := s.start(ctx)
	s.fillCurrentBusiness(ctx, sid, "Bakery")
	s.nextUntil(ctx, sid, wizard.KindReview)

	s.creator.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.BusinessPayload) (models.CreateBusinessResult, error) {
			s.Equal("Bakery", p.Name)
			s.Equal("Lagos", p.City)
			s.Equal("+15550101", p.Phone)
			s.Equal("owner@example.com", p.Email)
			return models.CreateBusinessResult{Success: true, ID: "srv-1"}, nil
		})

	view, err := s.svc.Next(ctx, sid)
	s.Require().NoError(err)
	s.True(view.Launched)
	s.Equal(wizard.KindLaunch.String(), view.StepKind)
	s.Equal(7, view.Step)
	serverID, ok := view.Businesses[0].ID.ServerID()
	s.True(ok)
	s.Equal("srv-1", serverID)

	s.Run("next on launch is a no-op", func() {
		view, err := s.svc.Next(ctx, sid)
		s.Require().NoError(err)
		s.Equal(7, view.Step)
		s.True(view.Launched)
	})

	s.Contains(s.publisher.actions(), string(audit.EventBusinessCreated))
	s.Contains(s.publisher.actions(), string(audit.EventSubmissionCompleted))
	s.InDelta(1, promtest.ToFloat64(s.metrics.BusinessesCreated), 0)
}

func (s *ServiceSuite) TestSubmitPartialFailureKeepsConfirmedBusinesses() {
	ctx := ownerContext()
	sid := s.start(ctx)
	s.fillCurrentBusiness(ctx, sid, "First")
	s.nextUntil(ctx, sid, wizard.KindReview)

	view, err := s.svc.AddBusiness(ctx, sid)
	s.Require().NoError(err)
	s.Require().Len(view.Businesses, 2)
	s.Equal(wizard.KindTypeSelection.String(), view.StepKind)
	s.fillCurrentBusiness(ctx, sid, "Second")
	view = s.nextUntil(ctx, sid, wizard.KindReview)
	pendingToken := view.Businesses[1].ID.LocalToken()

	gomock.InOrder(
		s.creator.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.BusinessPayload) (models.CreateBusinessResult, error) {
				s.Equal("First", p.Name)
				return models.CreateBusinessResult{Success: true, ID: "srv-1"}, nil
			}),
		s.creator.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.BusinessPayload) (models.CreateBusinessResult, error) {
				s.Equal("Second", p.Name)
				return models.CreateBusinessResult{Success: false, Message: "duplicate name"}, nil
			}),
	)

	view, err = s.svc.Next(ctx, sid)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeSubmissionFailed))
	s.Require().NotNil(view)
	s.Equal("duplicate name", view.GeneralError)
	s.False(view.Launched)
	s.Equal(wizard.KindReview.String(), view.StepKind)

	first, ok := view.Businesses[0].ID.ServerID()
	s.True(ok)
	s.Equal("srv-1", first)
	s.True(view.Businesses[1].ID.IsPending())
	s.Equal(pendingToken, view.Businesses[1].ID.LocalToken())

	s.Run("retry only sends unconfirmed businesses", func() {
		s.creator.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.BusinessPayload) (models.CreateBusinessResult, error) {
				s.Equal("Second", p.Name)
				return models.CreateBusinessResult{Success: true, ID: "srv-2"}, nil
			})

		view, err := s.svc.Next(ctx, sid)
		s.Require().NoError(err)
		s.True(view.Launched)
		s.Empty(view.GeneralError)
		second, ok := view.Businesses[1].ID.ServerID()
		s.True(ok)
		s.Equal("srv-2", second)
	})
}

func (s *ServiceSuite) TestSubmitBackendError() {
	ctx := ownerContext()
	sid := s.start(ctx)
	s.fillCurrentBusiness(ctx, sid, "Bakery")
	s.nextUntil(ctx, sid, wizard.KindReview)

	s.creator.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(models.CreateBusinessResult{}, errors.New("timeout"))

	view, err := s.svc.Next(ctx, sid)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeSubmissionFailed))
	s.Equal(msgSubmissionFailed, view.GeneralError)
	s.InDelta(1, promtest.ToFloat64(s.metrics.Submissions.WithLabelValues("failed")), 0)
}

func (s *ServiceSuite) TestMutations() {
	ctx := ownerContext()
	sid := s.start(ctx)

	view, err := s.svc.AddBranch(ctx, sid)
	s.Require().NoError(err)
	s.Require().Len(view.Businesses[0].Branches, 2)
	s.Equal(1, view.CurrentBranchIndex)
	s.True(view.IsAddingNewBranch)

	view, err = s.svc.DeleteBranch(ctx, sid, 0)
	s.Require().NoError(err)
	s.Len(view.Businesses[0].Branches, 2, "main branch is never removed")

	view, err = s.svc.DeleteBranch(ctx, sid, 1)
	s.Require().NoError(err)
	s.Len(view.Businesses[0].Branches, 1)

	view, err = s.svc.DeleteBusiness(ctx, sid, 0)
	s.Require().NoError(err)
	s.Len(view.Businesses, 1, "the only business is kept")

	_, err = s.svc.SelectBusiness(ctx, sid, 5)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	view, err = s.svc.AddProduct(ctx, sid)
	s.Require().NoError(err)
	s.Require().Len(view.Businesses[0].Branches[0].Products, 1)
}

func (s *ServiceSuite) TestUnknownSession() {
	ctx := ownerContext()
	_, err := s.svc.View(ctx, id.NewSessionID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.svc.Delete(ctx, id.NewSessionID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteAndExpireIdle() {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(ownerContext(), t0)
	stale := s.start(ctx)
	fresh := s.start(requestcontext.WithTime(ctx, t0.Add(20*time.Minute)))
	gone := s.start(ctx)

	s.Require().NoError(s.svc.Delete(ctx, gone))
	_, err := s.svc.View(ctx, gone)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	removed, err := s.svc.ExpireIdle(requestcontext.WithTime(ctx, t0.Add(31*time.Minute)), 30*time.Minute)
	s.Require().NoError(err)
	s.Equal(1, removed)

	_, err = s.svc.View(ctx, stale)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = s.svc.View(requestcontext.WithTime(ctx, t0.Add(32*time.Minute)), fresh)
	s.Require().NoError(err)

	s.InDelta(1, promtest.ToFloat64(s.metrics.SessionsExpired), 0)
	s.InDelta(1, promtest.ToFloat64(s.metrics.ActiveSessions), 0)
	s.Contains(strings.Join(s.publisher.actions(), ","), string(audit.EventSessionExpired))
}

func TestNewRequiresCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := New(nil, mocks.NewMockAuthenticator(ctrl), mocks.NewMockBusinessCreator(ctrl))
	if err == nil {
		t.Fatal("expected error for missing store")
	}
	_, err = New(store.New(), nil, mocks.NewMockBusinessCreator(ctrl))
	if err == nil {
		t.Fatal("expected error for missing authenticator")
	}
}
