// Package events defines the closed set of UI events a client understands,
// the value types they carry, and the envelope used to move decoded events
// between processes.
//
// Design decisions:
//   - Closed set: Event is sealed with an unexported marker method, so a
//     type switch over events.Event is exhaustive within this module
//   - Plain payloads: every event is a small struct of native fields; no
//     wire.Value survives decoding, consumers never re-validate
//   - Fixed width: integer fields are uint64; the dispatcher decides which
//     range is accepted from the wire
//   - Forward compatibility: MsgKind accepts kinds this package has no
//     constant for, Known reports whether it does
//   - Efficient JSON: envelopes use pre-allocated type markers and
//     sjson/gjson, payloads go through goccy/go-json
//
// Event hierarchy:
//   - Message: anything published on a topic
//     ├── Envelope: one decoded Event with sequence and timing metadata
//     └── Failure: one occurrence that could not be decoded
//
// Example usage:
//
//	switch e := ev.(type) {
//	case events.GridResize:
//	    grid := grids.Resize(e.Grid, e.Width, e.Height)
//	case events.GridCursorGoto:
//	    grids.Cursor(e.Grid, e.Row, e.Col)
//	case events.PopupmenuSelect:
//	    if idx, ok := e.Selected.Get(); ok {
//	        menu.Select(idx)
//	    }
//	}
package events
