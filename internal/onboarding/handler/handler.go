package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"launchpad/internal/onboarding/models"
	"launchpad/internal/onboarding/wizard"
	id "launchpad/pkg/domain"
	dErrors "launchpad/pkg/domain-errors"
	"launchpad/pkg/platform/httputil"
	authmw "launchpad/pkg/platform/middleware/auth"
	"launchpad/pkg/platform/middleware/metadata"
	request "launchpad/pkg/platform/middleware/request"
	"launchpad/pkg/platform/middleware/requesttime"
)

// Service is the onboarding step controller as seen by the HTTP layer.
type Service interface {
	Start(ctx context.Context) (*wizard.View, error)
	View(ctx context.Context, sid id.SessionID) (*wizard.View, error)
	Delete(ctx context.Context, sid id.SessionID) error
	Next(ctx context.Context, sid id.SessionID) (*wizard.View, error)
	Previous(ctx context.Context, sid id.SessionID) (*wizard.View, error)
	UpdateUser(ctx context.Context, sid id.SessionID, patch models.UserPatch) (*wizard.View, error)
	AddBusiness(ctx context.Context, sid id.SessionID) (*wizard.View, error)
	UpdateBusiness(ctx context.Context, sid id.SessionID, patch models.BusinessPatch) (*wizard.View, error)
	DeleteBusiness(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error)
	SelectBusiness(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error)
	AddBranch(ctx context.Context, sid id.SessionID) (*wizard.View, error)
	UpdateBranch(ctx context.Context, sid id.SessionID, patch models.BranchPatch) (*wizard.View, error)
	DeleteBranch(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error)
	SelectBranch(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error)
	AddProduct(ctx context.Context, sid id.SessionID) (*wizard.View, error)
	UpdateProduct(ctx context.Context, sid id.SessionID, pid id.ProductID, field models.ProductField, value string) (*wizard.View, error)
	RemoveProduct(ctx context.Context, sid id.SessionID, pid id.ProductID) (*wizard.View, error)
	UpdateWorkingHours(ctx context.Context, sid id.SessionID, day models.Weekday, field models.HoursField, value string) (*wizard.View, error)
}

// Handler exposes onboarding sessions over JSON.
type Handler struct {
	logger       *slog.Logger
	onboarding   Service
	latency      request.LatencyObserver
	jwtValidator authmw.JWTValidator
}

// New creates a new onboarding Handler. latency may be nil.
func New(
	onboarding Service,
	logger *slog.Logger,
	latency request.LatencyObserver,
	jwtValidator authmw.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		onboarding:   onboarding,
		latency:      latency,
		jwtValidator: jwtValidator,
	}
}

// FieldUpdate sets one named field of a product or a day's schedule.
type FieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type errorWithSession struct {
	httputil.ErrorResponse
	Session *wizard.View `json:"session,omitempty"`
}

// Register registers the onboarding routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/onboarding/sessions", func(r chi.Router) {
		r.Use(request.Recovery(h.logger))
		r.Use(request.RequestID)
		r.Use(request.Logger(h.logger))
		r.Use(requesttime.Middleware)
		r.Use(metadata.ClientMetadata)
		if h.latency != nil {
			r.Use(request.Latency(h.latency))
		}
		r.Use(authmw.OptionalAuth(h.jwtValidator, h.logger))

		r.Post("/", h.handleStart)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Post("/next", h.sessionAction(h.onboarding.Next))
			r.Post("/previous", h.sessionAction(h.onboarding.Previous))
			r.Patch("/user", h.handleUpdateUser)

			r.Post("/businesses", h.sessionAction(h.onboarding.AddBusiness))
			r.Patch("/businesses/current", h.handleUpdateBusiness)
			r.Delete("/businesses/{index}", h.indexAction(h.onboarding.DeleteBusiness))
			r.Post("/businesses/{index}/select", h.indexAction(h.onboarding.SelectBusiness))

			r.Post("/branches", h.sessionAction(h.onboarding.AddBranch))
			r.Patch("/branches/current", h.handleUpdateBranch)
			r.Delete("/branches/{index}", h.indexAction(h.onboarding.DeleteBranch))
			r.Post("/branches/{index}/select", h.indexAction(h.onboarding.SelectBranch))

			r.Post("/products", h.sessionAction(h.onboarding.AddProduct))
			r.Patch("/products/{productID}", h.handleUpdateProduct)
			r.Delete("/products/{productID}", h.handleRemoveProduct)

			r.Patch("/hours/{day}", h.handleUpdateHours)
		})
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	view, err := h.onboarding.Start(r.Context())
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(h.onboarding.View)(w, r)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.onboarding.Delete(r.Context(), sid); err != nil {
		h.fail(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	h.withBody(w, r, &patch, func(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
		return h.onboarding.UpdateUser(ctx, sid, patch)
	})
}

func (h *Handler) handleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var patch models.BusinessPatch
	h.withBody(w, r, &patch, func(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
		return h.onboarding.UpdateBusiness(ctx, sid, patch)
	})
}

func (h *Handler) handleUpdateBranch(w http.ResponseWriter, r *http.Request) {
	var patch models.BranchPatch
	h.withBody(w, r, &patch, func(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
		return h.onboarding.UpdateBranch(ctx, sid, patch)
	})
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	pid, err := id.ParseProductID(chi.URLParam(r, "productID"))
	if err != nil {
		h.fail(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid product id"), nil)
		return
	}
	var upd FieldUpdate
	h.withBody(w, r, &upd, func(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
		return h.onboarding.UpdateProduct(ctx, sid, pid, models.ProductField(upd.Field), upd.Value)
	})
}

func (h *Handler) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	pid, err := id.ParseProductID(chi.URLParam(r, "productID"))
	if err != nil {
		h.fail(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid product id"), nil)
		return
	}
	h.sessionAction(func(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
		return h.onboarding.RemoveProduct(ctx, sid, pid)
	})(w, r)
}

func (h *Handler) handleUpdateHours(w http.ResponseWriter, r *http.Request) {
	day, err := models.ParseWeekday(chi.URLParam(r, "day"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	var upd FieldUpdate
	h.withBody(w, r, &upd, func(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
		return h.onboarding.UpdateWorkingHours(ctx, sid, day, models.HoursField(upd.Field), upd.Value)
	})
}

type sessionFunc func(ctx context.Context, sid id.SessionID) (*wizard.View, error)

// sessionAction adapts an operation that needs only the session ID.
func (h *Handler) sessionAction(fn sessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := h.sessionID(w, r)
		if !ok {
			return
		}
		view, err := fn(r.Context(), sid)
		if err != nil {
			h.fail(w, r, err, view)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, view)
	}
}

// indexAction adapts an operation addressed by a {index} path parameter.
func (h *Handler) indexAction(fn func(ctx context.Context, sid id.SessionID, index int) (*wizard.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil || index < 0 {
			h.fail(w, r, dErrors.New(dErrors.CodeBadRequest, "index must be a non-negative integer"), nil)
			return
		}
		h.sessionAction(func(ctx context.Context, sid id.SessionID) (*wizard.View, error) {
			return fn(ctx, sid, index)
		})(w, r)
	}
}

func (h *Handler) withBody(w http.ResponseWriter, r *http.Request, dst any, fn sessionFunc) {
	if err := httputil.DecodeJSON(r, dst); err != nil {
		h.fail(w, r, err, nil)
		return
	}
	h.sessionAction(fn)(w, r)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (id.SessionID, bool) {
	sid, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.fail(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid session id"), nil)
		return id.SessionID{}, false
	}
	return sid, true
}

// fail writes the error envelope. When the operation reached the session,
// its view is attached so the client can render the general error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, view *wizard.View) {
	ctx := r.Context()
	status, body := httputil.ErrorBody(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, "onboarding request failed",
		"request_id", request.GetRequestID(ctx),
		"path", r.URL.Path,
		"status", status,
		"error", err.Error(),
	)
	httputil.WriteJSON(w, status, errorWithSession{ErrorResponse: body, Session: view})
}

// Health reports liveness. ping, when set, gates readiness on a dependency.
func Health(ping func(context.Context) error, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
