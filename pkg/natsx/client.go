package natsx

import (
	"github.com/nats-io/nats.go"
)

// NewClient connects to the NATS server at url, or nats.DefaultURL when url
// is empty. Without explicit options the connection is named "redraw" and
// uses compression.
func NewClient(url string, opts ...nats.Option) (*nats.Conn, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	if len(opts) == 0 {
		opts = append(opts, nats.Name("redraw"), nats.Compression(true))
	}
	return nats.Connect(url, opts...)
}
