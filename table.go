package redraw

import (
	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/events"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// entry decodes the fields of one occurrence from s, leaving anything it
// does not declare unread.
type entry func(s *decode.Seq) (events.Event, error)

func none(mk func() events.Event) entry {
	return func(*decode.Seq) (events.Event, error) {
		return mk(), nil
	}
}

func one[A any](a decode.Decoder[A], mk func(A) events.Event) entry {
	return func(s *decode.Seq) (events.Event, error) {
		va, err := decode.Next(s, a)
		if err != nil {
			return nil, err
		}
		return mk(va), nil
	}
}

func two[A, B any](a decode.Decoder[A], b decode.Decoder[B], mk func(A, B) events.Event) entry {
	return func(s *decode.Seq) (events.Event, error) {
		va, err := decode.Next(s, a)
		if err != nil {
			return nil, err
		}
		vb, err := decode.Next(s, b)
		if err != nil {
			return nil, err
		}
		return mk(va, vb), nil
	}
}

func three[A, B, C any](a decode.Decoder[A], b decode.Decoder[B], c decode.Decoder[C], mk func(A, B, C) events.Event) entry {
	return func(s *decode.Seq) (events.Event, error) {
		va, err := decode.Next(s, a)
		if err != nil {
			return nil, err
		}
		vb, err := decode.Next(s, b)
		if err != nil {
			return nil, err
		}
		vc, err := decode.Next(s, c)
		if err != nil {
			return nil, err
		}
		return mk(va, vb, vc), nil
	}
}

// table lists every known event with its field decoders. Field order is
// fixed by the host protocol.
func table(w FieldWidth) *orderedmap.OrderedMap[string, entry] {
	num := w.uintDecoder()
	content := events.DecodeContent(num)

	t := orderedmap.New[string, entry]()
	t.Set("chdir", one(decode.String, func(path string) events.Event {
		return events.Chdir{Path: path}
	}))
	t.Set("cmdline_pos", two(num, num, func(pos, level uint64) events.Event {
		return events.CmdlinePos{Pos: pos, Level: level}
	}))
	t.Set("grid_clear", one(num, func(grid uint64) events.Event {
		return events.GridClear{Grid: grid}
	}))
	t.Set("grid_destroy", one(num, func(grid uint64) events.Event {
		return events.GridDestroy{Grid: grid}
	}))
	t.Set("grid_resize", three(num, num, num, func(grid, width, height uint64) events.Event {
		return events.GridResize{Grid: grid, Width: width, Height: height}
	}))
	t.Set("grid_cursor_goto", three(num, num, num, func(grid, row, col uint64) events.Event {
		return events.GridCursorGoto{Grid: grid, Row: row, Col: col}
	}))
	t.Set("set_icon", one(decode.String, func(icon string) events.Event {
		return events.SetIcon{Icon: icon}
	}))
	t.Set("set_title", one(decode.String, func(title string) events.Event {
		return events.SetTitle{Title: title}
	}))
	t.Set("mode_change", two(decode.String, num, func(mode string, idx uint64) events.Event {
		return events.ModeChange{Mode: mode, ModeIdx: idx}
	}))
	t.Set("win_close", one(num, func(grid uint64) events.Event {
		return events.WinClose{Grid: grid}
	}))
	t.Set("win_hide", one(num, func(grid uint64) events.Event {
		return events.WinHide{Grid: grid}
	}))
	t.Set("win_external_pos", two(num, events.DecodeWindow, func(grid uint64, win events.Window) events.Event {
		return events.WinExternalPos{Grid: grid, Win: win}
	}))
	t.Set("cmdline_block_append", one(content, func(line events.Content) events.Event {
		return events.CmdlineBlockAppend{Line: line}
	}))
	t.Set("cmdline_block_show", one(decode.SliceOf(content), func(lines []events.Content) events.Event {
		return events.CmdlineBlockShow{Lines: lines}
	}))
	t.Set("cmdline_block_hide", none(func() events.Event {
		return events.CmdlineBlockHide{}
	}))
	t.Set("msg_history_show", two(events.DecodeMsgKind, content, func(kind events.MsgKind, c events.Content) events.Event {
		return events.MsgHistoryShow{Kind: kind, Content: c}
	}))
	t.Set("msg_showcmd", one(content, func(c events.Content) events.Event {
		return events.MsgShowcmd{Content: c}
	}))
	t.Set("msg_ruler", one(content, func(c events.Content) events.Event {
		return events.MsgRuler{Content: c}
	}))
	t.Set("msg_clear", none(func() events.Event {
		return events.MsgClear{}
	}))
	t.Set("popupmenu_select", one(decode.Optional(num), func(selected decode.Option[uint64]) events.Event {
		return events.PopupmenuSelect{Selected: selected}
	}))
	t.Set("popupmenu_hide", none(func() events.Event {
		return events.PopupmenuHide{}
	}))
	t.Set("flush", none(func() events.Event {
		return events.Flush{}
	}))
	t.Set("busy_start", none(func() events.Event {
		return events.BusyStart{}
	}))
	t.Set("busy_stop", none(func() events.Event {
		return events.BusyStop{}
	}))
	t.Set("mouse_on", none(func() events.Event {
		return events.MouseOn{}
	}))
	t.Set("mouse_off", none(func() events.Event {
		return events.MouseOff{}
	}))
	return t
}
