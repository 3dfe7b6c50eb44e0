// Package session reads a msgpack-RPC stream from an editor host, decodes
// every redraw notification and publishes the results to a sink.
//
// A frame is a notification of the form [2, method, params]. For the redraw
// method params is a list of entries, each [name, args...]. Requests,
// responses and other notifications are skipped.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/casualjim/redraw"
	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/events"
	"github.com/casualjim/redraw/pkg/slogx"
	"github.com/casualjim/redraw/pkg/uuidx"
	"github.com/casualjim/redraw/wire"
	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"
	"github.com/tidwall/gjson"
)

// msgpack-RPC message types.
const (
	typeRequest      = 0
	typeResponse     = 1
	typeNotification = 2
)

// DefaultMethod is the notification method carrying UI updates.
const DefaultMethod = "redraw"

// Sink receives decoded messages in stream order. broker topics satisfy it.
type Sink interface {
	Publish(context.Context, events.Message) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(context.Context, events.Message) error

func (f SinkFunc) Publish(ctx context.Context, m events.Message) error {
	return f(ctx, m)
}

// Stats counts what a session has seen so far.
type Stats struct {
	Frames        uint64 `json:"frames"`
	Notifications uint64 `json:"notifications"`
	Skipped       uint64 `json:"skipped"`
	Events        uint64 `json:"events"`
	Failures      uint64 `json:"failures"`
}

var (
	// WithMethod changes the notification method that is decoded.
	WithMethod = opts.ForName[Session, string]("method")
	// WithLogger sets the session logger.
	WithLogger = opts.ForName[Session, *slog.Logger]("logger")
)

type Session struct {
	dispatcher *redraw.Dispatcher
	sink       Sink
	method     string
	logger     *slog.Logger

	seq           atomic.Uint64
	frames        atomic.Uint64
	notifications atomic.Uint64
	skipped       atomic.Uint64
	decoded       atomic.Uint64
	failures      atomic.Uint64
}

// New creates a session publishing what d decodes to sink. It panics when
// an option is invalid or a collaborator is missing.
func New(d *redraw.Dispatcher, sink Sink, options ...opts.Option[Session]) *Session {
	if d == nil {
		panic("session: dispatcher is required")
	}
	if sink == nil {
		panic("session: sink is required")
	}
	s := &Session{
		dispatcher: d,
		sink:       sink,
		method:     DefaultMethod,
	}
	if err := opts.Apply(s, options); err != nil {
		panic(err)
	}
	if s.logger == nil {
		s.logger = slog.Default().With(slogx.LoggerName("session"))
	}
	return s
}

// Stats returns a snapshot of the counters.
func (s *Session) Stats() Stats {
	return Stats{
		Frames:        s.frames.Load(),
		Notifications: s.notifications.Load(),
		Skipped:       s.skipped.Load(),
		Events:        s.decoded.Load(),
		Failures:      s.failures.Load(),
	}
}

// Run reads frames from r until the stream ends or ctx is cancelled. A clean
// end of stream returns nil. Cancellation is checked between frames, so a
// blocked read only returns once r does.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	rd := wire.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := rd.Next()
		if errors.Is(err, io.EOF) {
			s.logger.DebugContext(ctx, "stream closed", slog.Uint64("frames", s.frames.Load()))
			return nil
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		if err := s.HandleFrame(ctx, frame); err != nil {
			return err
		}
	}
}

// HandleFrame processes one msgpack-RPC message. Only sink errors are
// returned; malformed frames are logged and counted as skipped.
func (s *Session) HandleFrame(ctx context.Context, frame wire.Value) error {
	s.frames.Add(1)

	params, ok := s.notification(ctx, frame)
	if !ok {
		s.skipped.Add(1)
		return nil
	}
	s.notifications.Add(1)

	entries, err := decode.Array(params)
	if err != nil {
		s.skipped.Add(1)
		s.logger.WarnContext(ctx, "redraw params are not an array", slogx.Value("params", params))
		return nil
	}

	for _, entry := range entries {
		for ev, err := range s.dispatcher.DispatchEntry(entry) {
			seq := s.seq.Add(1)
			var msg events.Message
			if err != nil {
				s.failures.Add(1)
				msg = newFailure(seq, err)
			} else {
				s.decoded.Add(1)
				msg = events.NewEnvelope(seq, ev)
			}
			if err := s.sink.Publish(ctx, msg); err != nil {
				return fmt.Errorf("publish: %w", err)
			}
		}
	}
	return nil
}

func (s *Session) notification(ctx context.Context, frame wire.Value) (wire.Value, bool) {
	arr, ok := frame.(wire.Array)
	if !ok || len(arr) == 0 {
		s.logger.WarnContext(ctx, "skipping malformed frame", slogx.Value("frame", frame))
		return nil, false
	}
	typ, err := decode.Uint64(arr[0])
	if err != nil {
		s.logger.WarnContext(ctx, "skipping frame without message type", slogx.Value("frame", frame))
		return nil, false
	}

	switch typ {
	case typeNotification:
		if len(arr) != 3 {
			s.logger.WarnContext(ctx, "skipping malformed notification", slog.Int("len", len(arr)))
			return nil, false
		}
		method, err := decode.String(arr[1])
		if err != nil {
			s.logger.WarnContext(ctx, "skipping notification without method", slogx.Error(err))
			return nil, false
		}
		if method != s.method {
			s.logger.DebugContext(ctx, "skipping notification", slog.String("method", method))
			return nil, false
		}
		return arr[2], true
	case typeRequest, typeResponse:
		s.logger.DebugContext(ctx, "skipping rpc message", slog.Uint64("type", typ))
		return nil, false
	default:
		s.logger.WarnContext(ctx, "skipping unknown message type", slog.Uint64("type", typ))
		return nil, false
	}
}

func newFailure(seq uint64, err error) events.Failure {
	f := events.Failure{
		ID:         uuidx.New(),
		Seq:        seq,
		Occurrence: -1,
		Err:        err,
		Timestamp:  strfmt.DateTime(time.Now().UTC()),
	}
	var de *redraw.DecodeError
	if errors.As(err, &de) {
		f.Event = de.Event
		f.Occurrence = de.Occurrence
		if de.Args != nil {
			if raw, jerr := wire.ToJSON(de.Args); jerr == nil {
				f.Args = gjson.ParseBytes(raw)
			}
		}
	}
	return f
}

// HookSink delivers every message to hook synchronously.
func HookSink(hook events.Hook) Sink {
	return SinkFunc(func(ctx context.Context, m events.Message) error {
		events.Deliver(ctx, hook, m)
		return nil
	})
}

// MultiSink publishes to each sink in order and stops at the first error.
func MultiSink(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, m events.Message) error {
		for _, s := range sinks {
			if err := s.Publish(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
}
