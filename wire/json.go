package wire

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/tidwall/sjson"
)

// ToJSON renders v as JSON for diagnostics. The mapping is lossy:
// Int and Uint both become numbers, Binary becomes {"bin":<base64>}, Map
// becomes {"map":[[k,v],...]} so duplicate and non-string keys survive, and
// Ext becomes {"ext":<type>,"data":<base64>}.
func ToJSON(v Value) ([]byte, error) {
	switch v := v.(type) {
	case nil, Nil:
		return []byte(`null`), nil
	case Bool:
		return json.Marshal(bool(v))
	case Int:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case Uint:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
		}
		return json.Marshal(f)
	case String:
		return json.Marshal(string(v))
	case Binary:
		return sjson.SetBytes([]byte(`{"bin":""}`), "bin", base64.StdEncoding.EncodeToString(v))
	case Array:
		result := []byte(`[]`)
		for i, e := range v {
			eb, err := ToJSON(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			if result, err = sjson.SetRawBytes(result, "-1", eb); err != nil {
				return nil, err
			}
		}
		return result, nil
	case Map:
		result := []byte(`{"map":[]}`)
		for i, p := range v {
			kb, err := ToJSON(p.Key)
			if err != nil {
				return nil, fmt.Errorf("map entry %d key: %w", i, err)
			}
			vb, err := ToJSON(p.Val)
			if err != nil {
				return nil, fmt.Errorf("map entry %d value: %w", i, err)
			}
			pair := append(append(append(append([]byte{'['}, kb...), ','), vb...), ']')
			if result, err = sjson.SetRawBytes(result, "map.-1", pair); err != nil {
				return nil, err
			}
		}
		return result, nil
	case Ext:
		result, err := sjson.SetBytes([]byte(`{"ext":0}`), "ext", v.Type)
		if err != nil {
			return nil, err
		}
		return sjson.SetBytes(result, "data", base64.StdEncoding.EncodeToString(v.Data))
	default:
		return nil, fmt.Errorf("wire: cannot render %T", v)
	}
}
