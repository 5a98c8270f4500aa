package audit

import (
	"context"
	"log/slog"

	"launchpad/pkg/attrs"
	"launchpad/pkg/platform/middleware/metadata"
	"launchpad/pkg/requestcontext"
)

// LogAudit writes event to the structured log and, when publisher is set, to
// the audit trail. Well-known keys in attrList ("user_id", "session_id",
// "identifier", "reason") populate the matching Event fields; every other
// string pair lands in Details.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher Publisher, event AuditEvent, attrList ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attrList = append(attrList, "request_id", requestID)
	}

	if logger != nil {
		args := append(attrList, "event", string(event), "log_type", "audit")
		logger.InfoContext(ctx, string(event), args...)
	}

	if publisher == nil {
		return
	}

	ev := Event{
		Category:  event.Category(),
		Timestamp: requestcontext.Now(ctx),
		Action:    string(event),
		UserID:    attrs.ExtractString(attrList, "user_id"),
		SessionID: attrs.ExtractString(attrList, "session_id"),
		Subject:   attrs.ExtractString(attrList, "identifier"),
		Reason:    attrs.ExtractString(attrList, "reason"),
		RequestID: requestID,
		ClientIP:  metadata.GetClientIP(ctx),
		Device:    metadata.DeviceLabel(metadata.GetUserAgent(ctx)),
		Details:   details(attrList),
	}
	if err := publisher.Emit(ctx, ev); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event),
			"error", err,
		)
	}
}

var promoted = map[string]struct{}{
	"user_id":    {},
	"session_id": {},
	"identifier": {},
	"reason":     {},
	"request_id": {},
}

func details(attrList []any) map[string]string {
	var out map[string]string
	for i := 0; i+1 < len(attrList); i += 2 {
		k, ok := attrList[i].(string)
		if !ok {
			continue
		}
		if _, skip := promoted[k]; skip {
			continue
		}
		v, ok := attrList[i+1].(string)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[k] = v
	}
	return out
}
