package broker

import (
	"context"

	"github.com/casualjim/redraw/events"
)

type Broker interface {
	Topic(context.Context, string) Topic
}

type Topic interface {
	Publish(context.Context, events.Message) error
	Subscribe(context.Context, events.Hook) (Subscription, error)
}

type Subscription interface {
	ID() string
	Unsubscribe()
}

const defaultBufferSize = 50

// forwardToHook delivers messages until ch is closed, done is closed or ctx
// is cancelled.
func forwardToHook(ctx context.Context, ch <-chan events.Message, done <-chan struct{}, hook events.Hook) {
	for {
		select {
		case m, ok := <-ch:
			if !ok {
				return
			}
			events.Deliver(ctx, hook, m)
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
