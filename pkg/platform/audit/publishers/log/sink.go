// Package log writes audit events to a structured logger. It is the default
// sink when no Kafka brokers are configured.
package log

import (
	"context"
	"log/slog"

	audit "launchpad/pkg/platform/audit"
)

type Sink struct {
	logger *slog.Logger
}

func NewSink(logger *slog.Logger) *Sink {
	return &Sink{logger: logger}
}

func (s *Sink) Write(ctx context.Context, events []audit.Event) error {
	for _, ev := range events {
		args := []any{
			"log_type", "audit_trail",
			"category", string(ev.Category),
			"timestamp", ev.Timestamp,
		}
		args = appendIfSet(args, "user_id", ev.UserID)
		args = appendIfSet(args, "session_id", ev.SessionID)
		args = appendIfSet(args, "subject", ev.Subject)
		args = appendIfSet(args, "reason", ev.Reason)
		args = appendIfSet(args, "request_id", ev.RequestID)
		args = appendIfSet(args, "client_ip", ev.ClientIP)
		args = appendIfSet(args, "device", ev.Device)
		for k, v := range ev.Details {
			args = append(args, k, v)
		}
		s.logger.InfoContext(ctx, ev.Action, args...)
	}
	return nil
}

func appendIfSet(args []any, key, value string) []any {
	if value == "" {
		return args
	}
	return append(args, key, value)
}
