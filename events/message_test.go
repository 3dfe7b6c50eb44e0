package events

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/casualjim/redraw/decode"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestEnvelopeJSON(t *testing.T) {
	events := []Event{
		GridResize{Grid: 1, Width: 80, Height: 24},
		WinExternalPos{Grid: 4, Win: WindowHandle(1000)},
		MsgHistoryShow{Kind: KindEmsg, Content: Content{{Attr: 3, Text: "E37"}}},
		CmdlineBlockShow{Lines: []Content{{{Attr: 0, Text: "a"}}, {{Attr: 2, Text: "b"}}}},
		PopupmenuSelect{Selected: decode.Some[uint64](2)},
		PopupmenuSelect{Selected: decode.None[uint64]()},
		Flush{},
	}
	for _, ev := range events {
		t.Run(ev.Name(), func(t *testing.T) {
			env := NewEnvelope(9, ev)
			data, err := ToJSON(env)
			require.NoError(t, err)
			assert.Equal(t, "event", gjson.GetBytes(data, "type").String())
			assert.Equal(t, ev.Name(), gjson.GetBytes(data, "name").String())

			m, err := FromJSON(data)
			require.NoError(t, err)
			back, ok := m.(Envelope)
			require.True(t, ok)
			assert.Equal(t, env.ID, back.ID)
			assert.Equal(t, uint64(9), back.Seq)
			assert.Equal(t, ev, back.Event)
			assert.WithinDuration(t, time.Time(env.Timestamp), time.Time(back.Timestamp), time.Millisecond)
		})
	}

	t.Run("no event", func(t *testing.T) {
		_, err := ToJSON(Envelope{})
		assert.Error(t, err)
	})
}

func TestFailureJSON(t *testing.T) {
	f := Failure{
		Seq:        3,
		Event:      "grid_clear",
		Occurrence: 1,
		Err:        errors.New("field 0: want uint, got string"),
		Args:       gjson.Parse(`["x"]`),
		Timestamp:  strfmt.DateTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
	}
	data, err := ToJSON(f)
	require.NoError(t, err)
	assert.Equal(t, "failure", gjson.GetBytes(data, "type").String())
	assert.JSONEq(t, `["x"]`, gjson.GetBytes(data, "args").Raw)

	m, err := FromJSON(data)
	require.NoError(t, err)
	back, ok := m.(Failure)
	require.True(t, ok)
	assert.Equal(t, f.Event, back.Event)
	assert.Equal(t, f.Occurrence, back.Occurrence)
	assert.Equal(t, f.Seq, back.Seq)
	assert.EqualError(t, back.Err, f.Err.Error())
	assert.Equal(t, `["x"]`, back.Args.Raw)
	assert.Equal(t, "event: grid_clear, occurrence: 1, error: field 0: want uint, got string", back.Error())

	t.Run("without error or args", func(t *testing.T) {
		data, err := ToJSON(Failure{Event: "flush", Occurrence: -1})
		require.NoError(t, err)
		assert.False(t, gjson.GetBytes(data, "args").Exists())

		m, err := FromJSON(data)
		require.NoError(t, err)
		back := m.(Failure)
		assert.NoError(t, back.Err)
		assert.Equal(t, -1, back.Occurrence)
	})

	t.Run("error class survives", func(t *testing.T) {
		for _, sentinel := range []error{decode.ErrShapeMismatch, decode.ErrTypeMismatch, decode.ErrUnknownEvent} {
			f := Failure{Event: "grid_clear", Err: fmt.Errorf("field 0: %w", sentinel)}
			data, err := ToJSON(f)
			require.NoError(t, err)
			assert.NotEmpty(t, gjson.GetBytes(data, "kind").String())

			m, err := FromJSON(data)
			require.NoError(t, err)
			back := m.(Failure)
			assert.ErrorIs(t, back, sentinel)
			assert.EqualError(t, back.Err, f.Err.Error())
		}

		data, err := ToJSON(Failure{Event: "grid_clear", Err: &decode.Error{Kind: decode.ErrTypeMismatch, Want: "uint64", Got: 0}})
		require.NoError(t, err)
		assert.Equal(t, "type_mismatch", gjson.GetBytes(data, "kind").String())

		data, err = ToJSON(Failure{Event: "grid_clear", Err: errors.New("sink closed")})
		require.NoError(t, err)
		assert.False(t, gjson.GetBytes(data, "kind").Exists())
		m, err := FromJSON(data)
		require.NoError(t, err)
		assert.NotErrorIs(t, m.(Failure), decode.ErrTypeMismatch)
		assert.EqualError(t, m.(Failure).Err, "sink closed")
	})

	t.Run("unwrap", func(t *testing.T) {
		f := Failure{Err: decode.ErrShapeMismatch}
		assert.ErrorIs(t, f, decode.ErrShapeMismatch)
	})
}

func TestFromJSONErrors(t *testing.T) {
	for name, data := range map[string]string{
		"invalid":       `{`,
		"unknown type":  `{"type":"other"}`,
		"missing id":    `{"type":"event","seq":1,"name":"flush","event":{}}`,
		"unknown event": `{"type":"event","id":"0190b7e2-8c4f-7c4a-9f6e-3d1c2b4a5e6f","seq":1,"name":"nope","event":{}}`,
		"bad failure":   `{"type":"failure","id":"0190b7e2-8c4f-7c4a-9f6e-3d1c2b4a5e6f"}`,
	} {
		_, err := FromJSON([]byte(data))
		assert.Error(t, err, name)
	}

	_, err := ToJSON(nil)
	assert.Error(t, err)
}
