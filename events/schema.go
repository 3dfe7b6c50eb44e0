package events

import (
	"reflect"

	"github.com/casualjim/redraw/decode"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var payloadReflector = jsonschema.Reflector{
	DoNotReference: true,
	Mapper:         mapPayloadType,
}

func mapPayloadType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeFor[Window]():
		return &jsonschema.Schema{Type: "integer", Description: "host window handle"}
	case reflect.TypeFor[decode.Option[uint64]]():
		return &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{
				{Type: "integer", Minimum: "0"},
				{Type: "null"},
			},
		}
	}
	return nil
}

// Schemas returns the JSON schema of every event payload keyed by wire
// name, in declaration order.
func Schemas() *orderedmap.OrderedMap[string, *jsonschema.Schema] {
	out := orderedmap.New[string, *jsonschema.Schema]()
	for p := catalog.Oldest(); p != nil; p = p.Next() {
		s := payloadReflector.ReflectFromType(p.Value.typ)
		s.Title = p.Key
		out.Set(p.Key, s)
	}
	return out
}
