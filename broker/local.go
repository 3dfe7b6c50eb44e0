package broker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/redraw/events"
	"github.com/casualjim/redraw/pkg/uuidx"
)

const defaultSlowSubscriberTimeout = 100 * time.Millisecond

// LocalBroker fans messages out to in-process subscribers.
type LocalBroker struct {
	topics                *haxmap.Map[string, *topic]
	slowSubscriberTimeout time.Duration
	bufferSize            int
}

func Local() *LocalBroker {
	return &LocalBroker{
		topics:                haxmap.New[string, *topic](),
		slowSubscriberTimeout: defaultSlowSubscriberTimeout,
		bufferSize:            defaultBufferSize,
	}
}

// WithSlowSubscriberTimeout configures how long Publish waits on a full
// subscriber before dropping it. Only topics created afterwards are affected.
func (b *LocalBroker) WithSlowSubscriberTimeout(timeout time.Duration) *LocalBroker {
	b.slowSubscriberTimeout = timeout
	return b
}

// WithBufferSize configures the per subscriber queue length.
func (b *LocalBroker) WithBufferSize(n int) *LocalBroker {
	if n > 0 {
		b.bufferSize = n
	}
	return b
}

func (b *LocalBroker) Topic(ctx context.Context, id string) Topic {
	t, _ := b.topics.GetOrCompute(id, func() *topic {
		return &topic{
			id:                    id,
			subscriptions:         haxmap.New[string, *subscription](),
			slowSubscriberTimeout: b.slowSubscriberTimeout,
			bufferSize:            b.bufferSize,
		}
	})
	return t
}

type topic struct {
	id                    string
	subscriptions         *haxmap.Map[string, *subscription]
	slowSubscriberTimeout time.Duration
	bufferSize            int
}

func (t *topic) Publish(ctx context.Context, m events.Message) error {
	if m == nil {
		return errors.New("message is required")
	}
	t.subscriptions.ForEach(func(id string, sub *subscription) bool {
		if sub == nil {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-sub.done:
			return true
		case <-sub.ctx.Done():
			sub.Unsubscribe()
			return true
		default:
		}

		timer := time.NewTimer(t.slowSubscriberTimeout)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return false
		case <-sub.done:
		case <-sub.ctx.Done():
			sub.Unsubscribe()
		case sub.channel <- m:
		case <-timer.C:
			slog.WarnContext(ctx, "dropping slow subscriber", slog.String("topic", t.id), slog.String("subscription", id))
			sub.Unsubscribe()
		}
		return true
	})
	return ctx.Err()
}

func (t *topic) Subscribe(ctx context.Context, hook events.Hook) (Subscription, error) {
	if hook == nil {
		return nil, errors.New("hook is required")
	}
	return t.newSubscription(ctx, hook), nil
}

func (t *topic) newSubscription(ctx context.Context, hook events.Hook) *subscription {
	id := uuidx.NewString()
	sub := &subscription{
		id:      id,
		ctx:     ctx,
		channel: make(chan events.Message, t.bufferSize),
		done:    make(chan struct{}),
		onClose: func() { t.subscriptions.Del(id) },
	}
	t.subscriptions.Set(id, sub)
	go forwardToHook(ctx, sub.channel, sub.done, hook)
	return sub
}

// The channel is never closed so a concurrent Publish cannot panic; done
// signals the forwarder instead.
type subscription struct {
	id        string
	ctx       context.Context
	channel   chan events.Message
	done      chan struct{}
	closeOnce sync.Once
	onClose   func()
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Unsubscribe() {
	s.closeOnce.Do(func() {
		if s.onClose != nil {
			s.onClose()
		}
		close(s.done)
	})
}
