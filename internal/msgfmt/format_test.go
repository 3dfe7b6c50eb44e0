package msgfmt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/events"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestConsole(t *testing.T) {
	ctx := context.Background()
	var buf strings.Builder
	hook, err := New(FormatConsole, &buf)
	require.NoError(t, err)

	hook.OnEvent(ctx, events.NewEnvelope(1, events.GridResize{Grid: 1, Width: 80, Height: 24}))
	hook.OnEvent(ctx, events.NewEnvelope(2, events.MsgShowcmd{Content: events.Content{{Attr: 1, Text: "2d"}, {Text: "d"}}}))
	hook.OnFailure(ctx, events.Failure{
		Seq:        3,
		Event:      "grid_clear",
		Occurrence: 0,
		Err:        errors.New("field 0: type mismatch"),
		Args:       gjson.Parse(`["x"]`),
	})

	output := buf.String()
	assert.Contains(t, output, color.CyanString("grid_resize")+` {"grid":1,"width":80,"height":24}`)
	assert.Contains(t, output, color.CyanString("msg_showcmd")+` "2dd"`)
	assert.Contains(t, output, color.RedString("grid_clear"))
	assert.Contains(t, output, `args=["x"]`)
	assert.Len(t, strings.Split(strings.TrimSpace(output), "\n"), 3)
}

func TestJSON(t *testing.T) {
	ctx := context.Background()
	var buf strings.Builder
	hook, err := New(FormatJSON, &buf)
	require.NoError(t, err)

	hook.OnEvent(ctx, events.NewEnvelope(7, events.SetTitle{Title: "main.go"}))

	line := strings.TrimSpace(buf.String())
	m, err := events.FromJSON([]byte(line))
	require.NoError(t, err)
	env, ok := m.(events.Envelope)
	require.True(t, ok)
	assert.Equal(t, uint64(7), env.Seq)
	assert.Equal(t, events.SetTitle{Title: "main.go"}, env.Event)
}

func TestPretty(t *testing.T) {
	var buf strings.Builder
	hook, err := New(FormatPretty, &buf)
	require.NoError(t, err)

	hook.OnEvent(context.Background(), events.NewEnvelope(1, events.Chdir{Path: "/srv/project"}))
	assert.Contains(t, buf.String(), "/srv/project")
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "selected=none", Summary(events.PopupmenuSelect{Selected: decode.None[uint64]()}))
	assert.Equal(t, "selected=4", Summary(events.PopupmenuSelect{Selected: decode.Some[uint64](4)}))
	assert.Equal(t, `["a", "b"]`, Summary(events.CmdlineBlockShow{Lines: []events.Content{{{Text: "a"}}, {{Text: "b"}}}}))
	assert.Equal(t, "", Summary(events.Flush{}))
	assert.Equal(t, `{"path":"/tmp"}`, Summary(events.Chdir{Path: "/tmp"}))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatConsole, "JSON": FormatJSON, "pp": FormatPretty} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("yaml")
	assert.Error(t, err)

	_, err = New("yaml", &strings.Builder{})
	assert.Error(t, err)
}
