// Package correlation tags outgoing API requests with an ID that shows up in
// both the X-Request-ID header and every log line written for that request.
package correlation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Key is the log attribute carrying the request ID.
const Key = "request_id"

type ctxKey struct{}

// NewID returns a fresh request ID.
func NewID() string {
	return uuid.NewString()
}

// WithID attaches id to ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID of ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Handler wraps h so records logged with a request-scoped context get a
// request_id attribute.
func Handler(h slog.Handler) slog.Handler {
	return idHandler{Handler: h}
}

type idHandler struct {
	slog.Handler
}

func (h idHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := FromContext(ctx); id != "" {
		r.AddAttrs(slog.String(Key, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h idHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return idHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h idHandler) WithGroup(name string) slog.Handler {
	return idHandler{Handler: h.Handler.WithGroup(name)}
}
