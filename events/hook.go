package events

import (
	"context"
	"log/slog"
	"slices"

	"github.com/casualjim/redraw/pkg/slogx"
)

// Hook receives messages from a subscription. Implementations are called
// from a single goroutine per subscription, in publish order.
type Hook interface {
	OnEvent(context.Context, Envelope)

	OnFailure(context.Context, Failure)
}

// LoggingHook logs events at debug level and failures at warn level.
func LoggingHook() Hook {
	return loggingHook{}
}

type loggingHook struct{}

func (loggingHook) OnEvent(ctx context.Context, env Envelope) {
	slog.DebugContext(ctx, "ui event", slogx.Event(env.Event.Name()), slog.Uint64("seq", env.Seq))
}

func (loggingHook) OnFailure(ctx context.Context, f Failure) {
	attrs := []any{
		slogx.Event(f.Event),
		slog.Int("occurrence", f.Occurrence),
		slog.Uint64("seq", f.Seq),
	}
	if f.Err != nil {
		attrs = append(attrs, slogx.Error(f.Err))
	}
	if f.Args.Exists() {
		attrs = append(attrs, slog.String("args", f.Args.Raw))
	}
	slog.WarnContext(ctx, "dropped malformed event", attrs...)
}

func NewCompositeHook(hooks ...Hook) Hook {
	return CompositeHook(hooks)
}

// CompositeHook fans every call out to each hook in order.
type CompositeHook []Hook

func (c CompositeHook) OnEvent(ctx context.Context, env Envelope) {
	for h := range slices.Values(c) {
		h.OnEvent(ctx, env)
	}
}

func (c CompositeHook) OnFailure(ctx context.Context, f Failure) {
	for h := range slices.Values(c) {
		h.OnFailure(ctx, f)
	}
}

// Deliver routes m to the matching hook method.
func Deliver(ctx context.Context, hook Hook, m Message) {
	switch m := m.(type) {
	case Envelope:
		hook.OnEvent(ctx, m)
	case Failure:
		hook.OnFailure(ctx, m)
	}
}
