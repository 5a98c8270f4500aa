package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"launchpad/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) { return v.claims, v.err }

func TestOptionalAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var actor requestcontext.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = requestcontext.ActorFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
		wantUser   string
	}{
		{"anonymous", "", stubValidator{}, http.StatusNoContent, ""},
		{"valid token", "Bearer good", stubValidator{claims: &JWTClaims{UserID: "u-1", Email: "a@b.co"}}, http.StatusNoContent, "u-1"},
		{"invalid token", "Bearer bad", stubValidator{err: errors.New("nope")}, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", stubValidator{}, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor = requestcontext.Actor{}
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			OptionalAuth(tt.validator, logger)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, actor.UserID)
			if tt.wantUser != "" {
				assert.Equal(t, "good", actor.Token)
				assert.True(t, actor.Authenticated())
			}
		})
	}
}
