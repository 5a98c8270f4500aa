// Package businessapi calls the external business-creation endpoint.
package businessapi

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"launchpad/internal/onboarding/adapters/upstream"
	"launchpad/internal/onboarding/models"
)

var tracer = otel.Tracer("launchpad/onboarding/businessapi")

type Client struct {
	upstream *upstream.Client
}

func New(c *upstream.Client) *Client {
	return &Client{upstream: c}
}

type createResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Create submits one business. A backend rejection is a result with Success
// false and the backend's message; errors mean no answer was obtained.
func (c *Client) Create(ctx context.Context, payload models.BusinessPayload) (models.CreateBusinessResult, error) {
	ctx, span := tracer.Start(ctx, "businessapi.Create")
	defer span.End()
	span.SetAttributes(attribute.String("business.category", payload.Category))

	var resp createResponse
	status, err := c.upstream.PostJSON(ctx, "/businesses", payload, &resp)
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "business backend unavailable")
		msg := resp.Message
		if msg == "" {
			msg = "business service is unavailable"
		}
		return models.CreateBusinessResult{Message: msg}, fmt.Errorf("create business: %w", err)
	}

	result := models.CreateBusinessResult{Success: resp.Success, Message: resp.Message}
	if resp.Success {
		if resp.Data == nil || strings.TrimSpace(resp.Data.ID) == "" {
			result.Success = false
			result.Message = "business created without an identifier"
		} else {
			result.ID = strings.TrimSpace(resp.Data.ID)
		}
	}
	if !result.Success && result.Message == "" {
		result.Message = "failed to create business"
	}
	span.SetAttributes(attribute.Bool("business.created", result.Success))
	return result, nil
}
