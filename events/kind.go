package events

import (
	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/wire"
)

// MsgKind classifies a message shown by the host.
type MsgKind string

const (
	KindUnknown      MsgKind = ""
	KindBufWrite     MsgKind = "bufwrite"
	KindConfirm      MsgKind = "confirm"
	KindConfirmSub   MsgKind = "confirm_sub"
	KindEmsg         MsgKind = "emsg"
	KindEcho         MsgKind = "echo"
	KindEchoMsg      MsgKind = "echomsg"
	KindEchoErr      MsgKind = "echoerr"
	KindCompletion   MsgKind = "completion"
	KindListCmd      MsgKind = "list_cmd"
	KindLuaError     MsgKind = "lua_error"
	KindLuaPrint     MsgKind = "lua_print"
	KindRPCError     MsgKind = "rpc_error"
	KindReturnPrompt MsgKind = "return_prompt"
	KindQuickfix     MsgKind = "quickfix"
	KindSearchCmd    MsgKind = "search_cmd"
	KindSearchCount  MsgKind = "search_count"
	KindShellErr     MsgKind = "shell_err"
	KindShellOut     MsgKind = "shell_out"
	KindShellRet     MsgKind = "shell_ret"
	KindUndo         MsgKind = "undo"
	KindVerbose      MsgKind = "verbose"
	KindWildList     MsgKind = "wildlist"
	KindWmsg         MsgKind = "wmsg"
)

var knownKinds = map[MsgKind]struct{}{
	KindUnknown: {}, KindBufWrite: {}, KindConfirm: {}, KindConfirmSub: {},
	KindEmsg: {}, KindEcho: {}, KindEchoMsg: {}, KindEchoErr: {},
	KindCompletion: {}, KindListCmd: {}, KindLuaError: {}, KindLuaPrint: {},
	KindRPCError: {}, KindReturnPrompt: {}, KindQuickfix: {}, KindSearchCmd: {},
	KindSearchCount: {}, KindShellErr: {}, KindShellOut: {}, KindShellRet: {},
	KindUndo: {}, KindVerbose: {}, KindWildList: {}, KindWmsg: {},
}

// Known reports whether k is one of the kinds declared in this package.
// Newer hosts may send others.
func (k MsgKind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

// IsError reports whether the host flagged the message as an error.
func (k MsgKind) IsError() bool {
	switch k {
	case KindEmsg, KindEchoErr, KindLuaError, KindRPCError, KindShellErr:
		return true
	}
	return false
}

// DecodeMsgKind accepts any valid UTF-8 string.
func DecodeMsgKind(v wire.Value) (MsgKind, error) {
	s, err := decode.String(v)
	if err != nil {
		return KindUnknown, err
	}
	return MsgKind(s), nil
}
