package events

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type payloadCodec struct {
	typ       reflect.Type
	unmarshal func([]byte) (Event, error)
}

// catalog maps every wire name to its payload type, in declaration order.
var catalog = orderedmap.New[string, payloadCodec]()

func register[E Event]() {
	var zero E
	catalog.Set(zero.Name(), payloadCodec{
		typ: reflect.TypeFor[E](),
		unmarshal: func(data []byte) (Event, error) {
			var e E
			if err := json.Unmarshal(data, &e); err != nil {
				return nil, err
			}
			return e, nil
		},
	})
}

func init() {
	register[Chdir]()
	register[CmdlinePos]()
	register[GridClear]()
	register[GridDestroy]()
	register[GridResize]()
	register[GridCursorGoto]()
	register[SetIcon]()
	register[SetTitle]()
	register[ModeChange]()
	register[WinClose]()
	register[WinHide]()
	register[WinExternalPos]()
	register[CmdlineBlockAppend]()
	register[CmdlineBlockShow]()
	register[CmdlineBlockHide]()
	register[MsgHistoryShow]()
	register[MsgShowcmd]()
	register[MsgRuler]()
	register[MsgClear]()
	register[PopupmenuSelect]()
	register[PopupmenuHide]()
	register[Flush]()
	register[BusyStart]()
	register[BusyStop]()
	register[MouseOn]()
	register[MouseOff]()
}

// Names lists the wire names of every event type, in declaration order.
func Names() []string {
	names := make([]string, 0, catalog.Len())
	for p := catalog.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// Defined reports whether name is an event type of this package.
func Defined(name string) bool {
	_, ok := catalog.Get(name)
	return ok
}

// UnmarshalEvent decodes a JSON payload into the event type registered
// under name.
func UnmarshalEvent(name string, data []byte) (Event, error) {
	codec, ok := catalog.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown event %q", name)
	}
	e, err := codec.unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", name, err)
	}
	return e, nil
}
