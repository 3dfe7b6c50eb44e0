package redraw

import (
	"fmt"
	"log/slog"

	"github.com/fogfish/opts"
)

var (
	// ReportUnknown makes Dispatch yield a DecodeError wrapping
	// decode.ErrUnknownEvent for names it does not know. Unknown names are
	// skipped silently otherwise.
	ReportUnknown = opts.ForName[Dispatcher, bool]("reportUnknown")

	// StrictArity rejects occurrences that carry more fields than the event
	// declares. Trailing fields are ignored otherwise, so newer hosts can add
	// fields without breaking older clients.
	StrictArity = opts.ForName[Dispatcher, bool]("strictArity")

	// WithLogger sets the logger used for diagnostics. Defaults to slog.Default.
	WithLogger = opts.ForName[Dispatcher, *slog.Logger]("logger")
)

// WithFieldWidth selects the accepted range for unsigned fields.
func WithFieldWidth(w FieldWidth) opts.Option[Dispatcher] {
	return opts.Type[Dispatcher](func(d *Dispatcher) error {
		if !w.valid() {
			return fmt.Errorf("unsupported field width %d", uint8(w))
		}
		d.width = w
		return nil
	})
}
