package broker

import (
	"context"
	"sync"

	"github.com/casualjim/redraw/events"
)

type recordingHook struct {
	mu       sync.Mutex
	wg       *sync.WaitGroup
	envs     []events.Envelope
	failures []events.Failure
}

func newRecordingHook(wg *sync.WaitGroup) *recordingHook {
	return &recordingHook{wg: wg}
}

func (r *recordingHook) OnEvent(_ context.Context, env events.Envelope) {
	r.mu.Lock()
	r.envs = append(r.envs, env)
	r.mu.Unlock()
	if r.wg != nil {
		r.wg.Done()
	}
}

func (r *recordingHook) OnFailure(_ context.Context, f events.Failure) {
	r.mu.Lock()
	r.failures = append(r.failures, f)
	r.mu.Unlock()
	if r.wg != nil {
		r.wg.Done()
	}
}

func (r *recordingHook) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.envs), len(r.failures)
}

func (r *recordingHook) events() []events.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Envelope(nil), r.envs...)
}

// blockingHook holds every delivery until release is closed.
type blockingHook struct {
	*recordingHook
	release chan struct{}
}

func (h *blockingHook) OnEvent(ctx context.Context, env events.Envelope) {
	<-h.release
	h.recordingHook.OnEvent(ctx, env)
}
