package events

import (
	"strings"

	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/wire"
)

// Chunk is a run of text drawn with one highlight attribute.
type Chunk struct {
	Attr uint64 `json:"attr"`
	Text string `json:"text"`
}

// Content is highlighted text: chunks in display order.
type Content []Chunk

// String concatenates the text of every chunk, dropping highlights.
func (c Content) String() string {
	var b strings.Builder
	for _, ch := range c {
		b.WriteString(ch.Text)
	}
	return b.String()
}

// DecodeContent returns a decoder for [[attr, text, ...], ...] arrays using
// attr to read highlight ids. Trailing elements of a chunk are ignored.
func DecodeContent(attr decode.Decoder[uint64]) decode.Decoder[Content] {
	chunks := decode.SliceOf(func(v wire.Value) (Chunk, error) {
		s, err := decode.NewSeq(v)
		if err != nil {
			return Chunk{}, err
		}
		id, err := decode.Next(s, attr)
		if err != nil {
			return Chunk{}, err
		}
		text, err := decode.Next(s, decode.String)
		if err != nil {
			return Chunk{}, err
		}
		return Chunk{Attr: id, Text: text}, nil
	})
	return func(v wire.Value) (Content, error) {
		c, err := chunks(v)
		if err != nil {
			return nil, err
		}
		return Content(c), nil
	}
}
