package audit

import (
	"context"
	"log/slog"

	"erigateway/pkg/requestcontext"
)

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// Emit fills the timestamp, request id and session reference from ctx when
// the caller left them empty, then appends the event.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.SessionRef == "" {
		event.SessionRef = requestcontext.SessionRef(ctx)
	}
	if event.EriUserID == "" {
		event.EriUserID = requestcontext.EriUserID(ctx)
	}
	if p.logger != nil {
		p.logger.DebugContext(ctx, "audit event",
			"action", string(event.Action),
			"reference", event.Reference,
			"request_id", event.RequestID,
		)
	}
	return p.store.Append(ctx, event)
}
