package cli

import (
	"bytes"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/viereck/scene"
)

func newFlags(opts *scene.StyleOpts) *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterStyle(fs, opts)
	return fs
}

func TestStyleFlagsApplyInOrder(t *testing.T) {
	var opts scene.StyleOpts
	fs := newFlags(&opts)
	require.NoError(t, fs.Parse([]string{
		"-style", "width: 50%; grow: 2; align-items: center",
		"-grow", "3",
		"-padding", "4 8",
		"-justify-content", "space_evenly",
	}))

	style := opts.ToStyle()
	assert.Equal(t, scene.Percent(0.5), style.Size.Width)
	assert.Equal(t, 3.0, *style.FlexGrow, "later flags override the style string")
	assert.Equal(t, scene.AlignItemsCenter, *style.AlignItems)
	assert.Equal(t, scene.JustifySpaceEvenly, *style.JustifyContent)
	assert.Equal(t, scene.Points(8), style.Padding.Start)
	assert.Equal(t, scene.Points(4), style.Padding.Top)
}

func TestStyleFlagErrors(t *testing.T) {
	var opts scene.StyleOpts
	assert.Error(t, newFlags(&opts).Parse([]string{"-width", "wide"}))
	assert.Error(t, newFlags(&opts).Parse([]string{"-style", "colour: red"}))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("0xff000080")
	require.NoError(t, err)
	assert.Equal(t, scene.Color{R: 255, A: 0x80}, c)

	c, err = ParseColor("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, scene.Color{G: 255, A: 255}, c)

	_, err = ParseColor("0xnope")
	assert.Error(t, err)
}

func TestChildrenAndEmit(t *testing.T) {
	var children Children
	require.NoError(t, children.Set(`{"type":"Text","font":"Mono","text":"${greeting}","font_size":12,"color":{"Rgba32":255},"style":{}}`))
	assert.Error(t, children.Set(`{"type":"Text"}`))
	require.Len(t, children, 1)

	var bg ColorFlag
	require.NoError(t, bg.Set("0x112233ff"))

	node := scene.NewContainer(scene.Style{}, children...)
	node.Background = bg.Color

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, node, map[string]any{"greeting": "hi"}))
	out := buf.Bytes()
	require.Equal(t, byte('\n'), out[len(out)-1])

	forest, err := scene.ParseForest(append([]byte("["), append(bytes.TrimSpace(out), ']')...))
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "hi", forest[0].Children[0].Text)
	assert.Equal(t, scene.RGBA32(0x112233ff), *forest[0].Background)
	assert.Equal(t, "${greeting}", children[0].Text)
}

func TestImageSizing(t *testing.T) {
	var opts scene.StyleOpts
	SetIntrinsicSize(&opts, 40, 20)
	LockAspectRatio(&opts)
	require.NotNil(t, opts.AspectRatio)
	assert.Equal(t, 2.0, *opts.AspectRatio)

	opts.Width = scene.Ptr(scene.Percent(1))
	LockAspectRatio(&opts)
	assert.Nil(t, opts.AspectRatio)
}
