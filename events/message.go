package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/pkg/uuidx"
	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Message is anything a topic carries.
type Message interface {
	message()
}

// Envelope wraps one decoded event for delivery to consumers.
type Envelope struct {
	ID        uuid.UUID       `json:"id"`
	Seq       uint64          `json:"seq"`
	Event     Event           `json:"event"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

func (Envelope) message() {}

// NewEnvelope stamps e with a fresh id and the current time.
func NewEnvelope(seq uint64, e Event) Envelope {
	return Envelope{
		ID:        uuidx.New(),
		Seq:       seq,
		Event:     e,
		Timestamp: strfmt.DateTime(time.Now().UTC()),
	}
}

// Failure reports an occurrence that could not be decoded. Args holds the
// offending arguments rendered as JSON, when available.
type Failure struct {
	ID         uuid.UUID       `json:"id"`
	Seq        uint64          `json:"seq"`
	Event      string          `json:"event"`
	Occurrence int             `json:"occurrence"`
	Err        error           `json:"error"`
	Args       gjson.Result    `json:"args,omitempty"`
	Timestamp  strfmt.DateTime `json:"timestamp,omitempty"`
}

func (Failure) message() {}

func (f Failure) Error() string {
	return fmt.Sprintf("event: %s, occurrence: %d, error: %v", f.Event, f.Occurrence, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// errorKinds names the decode error classes carried in the "kind" field of
// a serialized failure.
var errorKinds = []struct {
	name string
	err  error
}{
	{"shape_mismatch", decode.ErrShapeMismatch},
	{"type_mismatch", decode.ErrTypeMismatch},
	{"unknown_event", decode.ErrUnknownEvent},
}

func errorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// remoteError is a failure error read back from JSON. It keeps the original
// message and still matches the class it was serialized with.
type remoteError struct {
	msg  string
	kind error
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Unwrap() error { return e.kind }

func restoreError(msg, kind string) error {
	re := &remoteError{msg: msg}
	for _, k := range errorKinds {
		if k.name == kind {
			re.kind = k.err
		}
	}
	return re
}

// MarshalJSON implements custom JSON marshaling for Envelope
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Event == nil {
		return nil, errors.New("envelope has no event")
	}
	result := []byte(`{"type":"event"}`)

	var err error
	result, err = sjson.SetBytes(result, "id", e.ID.String())
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "seq", e.Seq)
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "name", e.Event.Name())
	if err != nil {
		return nil, err
	}

	eventBytes, err := json.Marshal(e.Event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	result, err = sjson.SetRawBytes(result, "event", eventBytes)
	if err != nil {
		return nil, err
	}

	if !e.Timestamp.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", e.Timestamp.String())
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Envelope
func (e *Envelope) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != "event" {
		return fmt.Errorf("missing or invalid type, expected 'event'")
	}

	id := gjson.GetBytes(data, "id")
	if !id.Exists() {
		return fmt.Errorf("missing required field 'id'")
	}
	if err := e.ID.UnmarshalText([]byte(id.String())); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}

	seq := gjson.GetBytes(data, "seq")
	if !seq.Exists() {
		return fmt.Errorf("missing required field 'seq'")
	}
	e.Seq = seq.Uint()

	name := gjson.GetBytes(data, "name")
	if !name.Exists() {
		return fmt.Errorf("missing required field 'name'")
	}

	payload := gjson.GetBytes(data, "event")
	if !payload.Exists() {
		return fmt.Errorf("missing required field 'event'")
	}
	ev, err := UnmarshalEvent(name.String(), []byte(payload.Raw))
	if err != nil {
		return err
	}
	e.Event = ev

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := e.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	return nil
}

// MarshalJSON implements custom JSON marshaling for Failure
func (f Failure) MarshalJSON() ([]byte, error) {
	result := []byte(`{"type":"failure"}`)

	var err error
	result, err = sjson.SetBytes(result, "id", f.ID.String())
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "seq", f.Seq)
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "event", f.Event)
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "occurrence", f.Occurrence)
	if err != nil {
		return nil, err
	}

	if f.Err != nil {
		result, err = sjson.SetBytes(result, "error", f.Err.Error())
		if err != nil {
			return nil, err
		}
		if kind := errorKind(f.Err); kind != "" {
			result, err = sjson.SetBytes(result, "kind", kind)
			if err != nil {
				return nil, err
			}
		}
	}

	if f.Args.Exists() {
		result, err = sjson.SetRawBytes(result, "args", []byte(f.Args.Raw))
		if err != nil {
			return nil, err
		}
	}

	if !f.Timestamp.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", f.Timestamp.String())
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Failure
func (f *Failure) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != "failure" {
		return fmt.Errorf("missing or invalid type, expected 'failure'")
	}

	id := gjson.GetBytes(data, "id")
	if !id.Exists() {
		return fmt.Errorf("missing required field 'id'")
	}
	if err := f.ID.UnmarshalText([]byte(id.String())); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}

	f.Seq = gjson.GetBytes(data, "seq").Uint()

	event := gjson.GetBytes(data, "event")
	if !event.Exists() {
		return fmt.Errorf("missing required field 'event'")
	}
	f.Event = event.String()
	f.Occurrence = int(gjson.GetBytes(data, "occurrence").Int())

	if errMsg := gjson.GetBytes(data, "error"); errMsg.Exists() {
		f.Err = restoreError(errMsg.String(), gjson.GetBytes(data, "kind").String())
	}

	if args := gjson.GetBytes(data, "args"); args.Exists() {
		f.Args = args
	}

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := f.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	return nil
}

// ToJSON encodes any message with its type marker.
func ToJSON(m Message) ([]byte, error) {
	switch m := m.(type) {
	case Envelope:
		return m.MarshalJSON()
	case Failure:
		return m.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown message type: %T", m)
	}
}

// FromJSON decodes a message produced by ToJSON.
func FromJSON(data []byte) (Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %s", data)
	}
	switch tpe := gjson.GetBytes(data, "type").String(); tpe {
	case "event":
		var e Envelope
		if err := e.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return e, nil
	case "failure":
		var f Failure
		if err := f.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", tpe)
	}
}
