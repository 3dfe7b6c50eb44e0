package redraw

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/events"
	"github.com/casualjim/redraw/internal/registry"
	"github.com/casualjim/redraw/pkg/slogx"
	"github.com/casualjim/redraw/wire"
	"github.com/fogfish/opts"
)

// Dispatcher maps redraw event names to decoders. It is immutable after New
// and safe for concurrent use.
type Dispatcher struct {
	width         FieldWidth
	reportUnknown bool
	strictArity   bool
	logger        *slog.Logger

	decoders registry.Registry[entry]
	names    []string
}

// New builds a dispatcher. It panics when an option is invalid.
func New(options ...opts.Option[Dispatcher]) *Dispatcher {
	d := &Dispatcher{width: Width64}
	if err := opts.Apply(d, options); err != nil {
		panic(err)
	}

	d.decoders = registry.New[entry]()
	for p := table(d.width).Oldest(); p != nil; p = p.Next() {
		d.decoders.Add(p.Key, p.Value)
		d.names = append(d.names, p.Key)
	}
	return d
}

// FieldWidth reports the unsigned field range this dispatcher accepts.
func (d *Dispatcher) FieldWidth() FieldWidth {
	return d.width
}

// Known reports whether name has a decoder.
func (d *Dispatcher) Known(name string) bool {
	_, ok := d.decoders.Get(name)
	return ok
}

// Names lists the supported event names in table order.
func (d *Dispatcher) Names() []string {
	return append([]string(nil), d.names...)
}

func (d *Dispatcher) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return slog.Default().With(slogx.LoggerName("redraw"))
}

// Dispatch decodes every occurrence in batches, an array holding one
// argument array per occurrence, into events.
//
// Occurrences are yielded in order. A malformed occurrence yields a
// *DecodeError and decoding continues with the next one. A batches value
// that is not an array yields a single shape error. Unknown names yield
// nothing unless ReportUnknown is set.
//
// The sequence is lazy: nothing is decoded until it is ranged over, and
// breaking out stops decoding.
func (d *Dispatcher) Dispatch(name string, batches wire.Value) iter.Seq2[events.Event, error] {
	return func(yield func(events.Event, error) bool) {
		e, ok := d.decoders.Get(name)
		if !ok {
			d.log().Debug("skipping unknown event", slogx.Event(name))
			if d.reportUnknown {
				yield(nil, &DecodeError{
					Event:      name,
					Occurrence: -1,
					Err:        fmt.Errorf("%w %q", decode.ErrUnknownEvent, name),
				})
			}
			return
		}

		occurrences, err := decode.Array(batches)
		if err != nil {
			yield(nil, &DecodeError{Event: name, Occurrence: -1, Args: batches, Err: err})
			return
		}

		for i, args := range occurrences {
			ev, err := d.decodeOne(e, args)
			if err != nil {
				d.log().Debug("malformed occurrence", slogx.Event(name), slog.Int("occurrence", i), slogx.Error(err))
				if !yield(nil, &DecodeError{Event: name, Occurrence: i, Args: args, Err: err}) {
					return
				}
				continue
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

func (d *Dispatcher) decodeOne(e entry, args wire.Value) (events.Event, error) {
	s, err := decode.NewSeq(args)
	if err != nil {
		return nil, err
	}
	ev, err := e(s)
	if err != nil {
		return nil, err
	}
	if d.strictArity && s.Remaining() > 0 {
		return nil, &decode.Error{
			Kind:   decode.ErrShapeMismatch,
			Want:   fmt.Sprintf("%d fields", s.Pos()),
			Got:    wire.KindArray,
			Detail: fmt.Sprintf("%d trailing fields", s.Remaining()),
		}
	}
	return ev, nil
}

// DispatchEntry decodes a redraw entry of the form [name, args...], where
// every element after the name is one occurrence.
func (d *Dispatcher) DispatchEntry(entry wire.Value) iter.Seq2[events.Event, error] {
	arr, err := decode.Array(entry)
	if err == nil && len(arr) == 0 {
		err = &decode.Error{Kind: decode.ErrShapeMismatch, Want: "event name", Got: wire.KindArray, Detail: "empty entry"}
	}
	if err != nil {
		return failed(&DecodeError{Occurrence: -1, Args: entry, Err: err})
	}

	name, err := decode.String(arr[0])
	if err != nil {
		return failed(&DecodeError{Occurrence: -1, Args: entry, Err: fmt.Errorf("event name: %w", err)})
	}
	return d.Dispatch(name, arr[1:])
}

// Decode drains Dispatch, returning the decoded events together with every
// failure joined into one error.
func (d *Dispatcher) Decode(name string, batches wire.Value) ([]events.Event, error) {
	var (
		out  []events.Event
		errs []error
	)
	for ev, err := range d.Dispatch(name, batches) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, ev)
	}
	return out, errors.Join(errs...)
}

func failed(err error) iter.Seq2[events.Event, error] {
	return func(yield func(events.Event, error) bool) {
		yield(nil, err)
	}
}
