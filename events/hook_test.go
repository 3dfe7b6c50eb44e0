package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type mockHook struct {
	events   []Envelope
	failures []Failure
}

func (m *mockHook) OnEvent(_ context.Context, env Envelope) {
	m.events = append(m.events, env)
}

func (m *mockHook) OnFailure(_ context.Context, f Failure) {
	m.failures = append(m.failures, f)
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()
	hook := &mockHook{}

	Deliver(ctx, hook, NewEnvelope(1, Flush{}))
	Deliver(ctx, hook, Failure{Seq: 2, Event: "grid_clear"})
	Deliver(ctx, hook, nil)

	require.Len(t, hook.events, 1)
	require.Len(t, hook.failures, 1)
	assert.Equal(t, Flush{}, hook.events[0].Event)
	assert.Equal(t, "grid_clear", hook.failures[0].Event)
}

func TestCompositeHook(t *testing.T) {
	ctx := context.Background()
	first, second := &mockHook{}, &mockHook{}
	hook := NewCompositeHook(first, second)

	hook.OnEvent(ctx, NewEnvelope(1, BusyStart{}))
	hook.OnFailure(ctx, Failure{Event: "chdir"})

	for _, h := range []*mockHook{first, second} {
		require.Len(t, h.events, 1)
		require.Len(t, h.failures, 1)
		assert.Equal(t, BusyStart{}, h.events[0].Event)
	}

	assert.NotPanics(t, func() {
		CompositeHook(nil).OnEvent(ctx, NewEnvelope(1, BusyStop{}))
	})
}

func TestLoggingHook(t *testing.T) {
	ctx := context.Background()
	hook := LoggingHook()

	assert.NotPanics(t, func() {
		hook.OnEvent(ctx, NewEnvelope(1, MouseOn{}))
		hook.OnFailure(ctx, Failure{Event: "chdir"})
		hook.OnFailure(ctx, Failure{Event: "chdir", Err: errors.New("boom"), Args: gjson.Parse(`[1]`)})
	})
}
