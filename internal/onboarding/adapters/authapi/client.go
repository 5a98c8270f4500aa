// Package authapi calls the external authentication backend's login and
// register endpoints.
package authapi

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"launchpad/internal/onboarding/adapters/upstream"
	"launchpad/internal/onboarding/models"
)

var tracer = otel.Tracer("launchpad/onboarding/authapi")

type Client struct {
	upstream *upstream.Client
}

func New(c *upstream.Client) *Client {
	return &Client{upstream: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token. A rejected login is a
// result with Success false, not an error; errors mean the backend could not
// answer.
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	ctx, span := tracer.Start(ctx, "authapi.Login")
	defer span.End()

	var result models.AuthResult
	status, err := c.upstream.PostJSON(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &result)
	return finish(span, status, result, err, "login")
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	ctx, span := tracer.Start(ctx, "authapi.Register")
	defer span.End()
	span.SetAttributes(attribute.String("auth.role", req.Role))

	var result models.AuthResult
	status, err := c.upstream.PostJSON(ctx, "/auth/register", req, &result)
	return finish(span, status, result, err, "register")
}

func finish(span trace.Span, status int, result models.AuthResult, err error, op string) (models.AuthResult, error) {
	span.SetAttributes(
		attribute.Int("http.response.status_code", status),
		attribute.Bool("auth.success", err == nil && result.Success),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "auth backend unavailable")
		return models.AuthResult{}, fmt.Errorf("auth %s: %w", op, err)
	}
	if result.Success && strings.TrimSpace(result.Token) == "" {
		result.Success = false
		result.Message = "authentication succeeded without a session token"
	}
	if !result.Success && result.Message == "" {
		result.Message = "authentication failed"
	}
	return result, nil
}
