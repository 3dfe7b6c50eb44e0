package broker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/redraw/events"
	"github.com/casualjim/redraw/pkg/slogx"
	"github.com/casualjim/redraw/pkg/uuidx"
	"github.com/nats-io/nats.go"
)

// NATSBroker maps topics onto NATS subjects. Messages travel as the JSON
// produced by events.ToJSON.
type NATSBroker struct {
	client *nats.Conn
	topics *haxmap.Map[string, *natsTopic]
}

func NATS(client *nats.Conn) *NATSBroker {
	return &NATSBroker{
		client: client,
		topics: haxmap.New[string, *natsTopic](),
	}
}

func (b *NATSBroker) Topic(ctx context.Context, id string) Topic {
	top, _ := b.topics.GetOrCompute(id, func() *natsTopic {
		return &natsTopic{
			subject: id,
			client:  b.client,
		}
	})
	return top
}

type natsTopic struct {
	client  *nats.Conn
	subject string
}

func (t *natsTopic) Publish(ctx context.Context, m events.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := events.ToJSON(m)
	if err != nil {
		return err
	}
	return t.client.Publish(t.subject, data)
}

func (t *natsTopic) Subscribe(ctx context.Context, hook events.Hook) (Subscription, error) {
	if hook == nil {
		return nil, errors.New("hook is required")
	}
	ch := make(chan events.Message, defaultBufferSize)
	done := make(chan struct{})
	id := uuidx.NewString()

	nsub, err := t.client.Subscribe(t.subject, func(msg *nats.Msg) {
		m, err := events.FromJSON(msg.Data)
		if err != nil {
			slog.Error("failed to unmarshal message", slogx.Error(err), slog.String("subject", msg.Subject))
			return
		}
		select {
		case ch <- m:
		case <-done:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return nil, err
	}
	if err := t.client.Flush(); err != nil {
		_ = nsub.Unsubscribe()
		return nil, err
	}

	go forwardToHook(ctx, ch, done, hook)
	return &natsSubscription{id: id, sub: nsub, done: done}, nil
}

type natsSubscription struct {
	id        string
	sub       *nats.Subscription
	done      chan struct{}
	closeOnce sync.Once
}

func (n *natsSubscription) ID() string {
	return n.id
}

func (n *natsSubscription) Unsubscribe() {
	n.closeOnce.Do(func() {
		if err := n.sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			slog.Error("failed to unsubscribe", slogx.Error(err), slog.String("subscription", n.id))
		}
		close(n.done)
	})
}
