package events

import "github.com/casualjim/redraw/decode"

// Event is one UI state change sent by the host.
type Event interface {
	// Name is the wire name of the event.
	Name() string
	uiEvent()
}

// Chdir reports the host working directory.
type Chdir struct {
	Path string `json:"path"`
}

func (Chdir) Name() string { return "chdir" }
func (Chdir) uiEvent()     {}

// CmdlinePos moves the command-line cursor.
type CmdlinePos struct {
	Pos   uint64 `json:"pos"`
	Level uint64 `json:"level"`
}

func (CmdlinePos) Name() string { return "cmdline_pos" }
func (CmdlinePos) uiEvent()     {}

// GridClear blanks a grid.
type GridClear struct {
	Grid uint64 `json:"grid"`
}

func (GridClear) Name() string { return "grid_clear" }
func (GridClear) uiEvent()     {}

// GridDestroy releases a grid; its id may be reused later.
type GridDestroy struct {
	Grid uint64 `json:"grid"`
}

func (GridDestroy) Name() string { return "grid_destroy" }
func (GridDestroy) uiEvent()     {}

// GridResize sets the size of a grid in cells.
type GridResize struct {
	Grid   uint64 `json:"grid"`
	Width  uint64 `json:"width"`
	Height uint64 `json:"height"`
}

func (GridResize) Name() string { return "grid_resize" }
func (GridResize) uiEvent()     {}

// GridCursorGoto places the cursor in a grid.
type GridCursorGoto struct {
	Grid uint64 `json:"grid"`
	Row  uint64 `json:"row"`
	Col  uint64 `json:"col"`
}

func (GridCursorGoto) Name() string { return "grid_cursor_goto" }
func (GridCursorGoto) uiEvent()     {}

// SetIcon sets the icon title of the client window.
type SetIcon struct {
	Icon string `json:"icon"`
}

func (SetIcon) Name() string { return "set_icon" }
func (SetIcon) uiEvent()     {}

// SetTitle sets the title of the client window.
type SetTitle struct {
	Title string `json:"title"`
}

func (SetTitle) Name() string { return "set_title" }
func (SetTitle) uiEvent()     {}

// ModeChange switches the editor mode. ModeIdx indexes the mode table the
// host sent earlier.
type ModeChange struct {
	Mode    string `json:"mode"`
	ModeIdx uint64 `json:"mode_idx"`
}

func (ModeChange) Name() string { return "mode_change" }
func (ModeChange) uiEvent()     {}

// WinClose closes the window shown on a grid.
type WinClose struct {
	Grid uint64 `json:"grid"`
}

func (WinClose) Name() string { return "win_close" }
func (WinClose) uiEvent()     {}

// WinHide hides the window shown on a grid without destroying it.
type WinHide struct {
	Grid uint64 `json:"grid"`
}

func (WinHide) Name() string { return "win_hide" }
func (WinHide) uiEvent()     {}

// WinExternalPos asks the client to show a grid in a separate top-level
// window.
type WinExternalPos struct {
	Grid uint64 `json:"grid"`
	Win  Window `json:"win"`
}

func (WinExternalPos) Name() string { return "win_external_pos" }
func (WinExternalPos) uiEvent()     {}

// CmdlineBlockAppend adds a line to the command-line block.
type CmdlineBlockAppend struct {
	Line Content `json:"line"`
}

func (CmdlineBlockAppend) Name() string { return "cmdline_block_append" }
func (CmdlineBlockAppend) uiEvent()     {}

// CmdlineBlockShow shows a multi-line command-line block.
type CmdlineBlockShow struct {
	Lines []Content `json:"lines"`
}

func (CmdlineBlockShow) Name() string { return "cmdline_block_show" }
func (CmdlineBlockShow) uiEvent()     {}

// CmdlineBlockHide hides the command-line block.
type CmdlineBlockHide struct{}

func (CmdlineBlockHide) Name() string { return "cmdline_block_hide" }
func (CmdlineBlockHide) uiEvent()     {}

// MsgHistoryShow carries one entry of the message history.
type MsgHistoryShow struct {
	Kind    MsgKind `json:"kind"`
	Content Content `json:"content"`
}

func (MsgHistoryShow) Name() string { return "msg_history_show" }
func (MsgHistoryShow) uiEvent()     {}

// MsgShowcmd shows the partial command being typed.
type MsgShowcmd struct {
	Content Content `json:"content"`
}

func (MsgShowcmd) Name() string { return "msg_showcmd" }
func (MsgShowcmd) uiEvent()     {}

// MsgRuler shows the ruler text.
type MsgRuler struct {
	Content Content `json:"content"`
}

func (MsgRuler) Name() string { return "msg_ruler" }
func (MsgRuler) uiEvent()     {}

// MsgClear clears the message area.
type MsgClear struct{}

func (MsgClear) Name() string { return "msg_clear" }
func (MsgClear) uiEvent()     {}

// PopupmenuSelect carries the selected item, or None when nothing is
// selected.
type PopupmenuSelect struct {
	Selected decode.Option[uint64] `json:"selected"`
}

func (PopupmenuSelect) Name() string { return "popupmenu_select" }
func (PopupmenuSelect) uiEvent()     {}

// PopupmenuHide hides the completion popup menu.
type PopupmenuHide struct{}

func (PopupmenuHide) Name() string { return "popupmenu_hide" }
func (PopupmenuHide) uiEvent()     {}

// Flush marks the end of a consistent batch of updates; the renderer may
// draw.
type Flush struct{}

func (Flush) Name() string { return "flush" }
func (Flush) uiEvent()     {}

// BusyStart asks the client to hide the cursor while the host is busy.
type BusyStart struct{}

func (BusyStart) Name() string { return "busy_start" }
func (BusyStart) uiEvent()     {}

// BusyStop ends a BusyStart.
type BusyStop struct{}

func (BusyStop) Name() string { return "busy_stop" }
func (BusyStop) uiEvent()     {}

// MouseOn enables mouse input.
type MouseOn struct{}

func (MouseOn) Name() string { return "mouse_on" }
func (MouseOn) uiEvent()     {}

// MouseOff disables mouse input.
type MouseOff struct{}

func (MouseOff) Name() string { return "mouse_off" }
func (MouseOff) uiEvent()     {}
