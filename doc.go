/*
Package redraw decodes the UI notifications a Neovim-style editor host pushes
to attached clients.

The host batches UI updates into "redraw" notifications. Each entry names an
event and carries one argument array per occurrence:

	["grid_clear", [1], [2]]

A Dispatcher turns a name plus its occurrences into typed values from the
events package:

	d := redraw.New()
	for ev, err := range d.Dispatch("grid_clear", batches) {
		if err != nil {
			// one malformed occurrence; later ones still decode
			continue
		}
		switch ev := ev.(type) {
		case events.GridClear:
			clearGrid(ev.Grid)
		}
	}

Unknown event names are skipped so new hosts keep working with old clients.
ReportUnknown turns them into errors wrapping decode.ErrUnknownEvent.

# Field width

Unsigned fields are decoded as uint64. WithFieldWidth(Width32) restricts the
accepted range for hosts that still speak the 32-bit protocol generation.

# Packages

  - wire holds the dynamic value model and a msgpack reader.
  - decode holds the field decoders and combinators.
  - events defines the event types and their JSON envelope.
  - session pumps a msgpack-RPC stream through a Dispatcher.
  - broker fans decoded events out to subscribers, locally or over NATS.
*/
package redraw
