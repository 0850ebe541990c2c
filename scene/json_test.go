package scene_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/viereck/scene"
)

func TestParseForestContainer(t *testing.T) {
	line := `[{"type":"Container","children":[],"style":{"size":{"width":{"Points":100.0},"height":{"Points":50.0}}},"background":{"Rgba32":4278190335}}]`
	forest, err := scene.ParseForest([]byte(line))
	require.NoError(t, err)
	require.Len(t, forest, 1)

	root := forest[0]
	assert.Equal(t, scene.KindContainer, root.Kind)
	assert.Nil(t, root.Children)
	require.NotNil(t, root.Background)
	assert.Equal(t, scene.Color{R: 0xff, G: 0, B: 0, A: 0xff}, *root.Background)
	assert.Nil(t, root.CornerRadius)
	require.NotNil(t, root.Style.Size)
	assert.Equal(t, scene.Points(100), root.Style.Size.Width)
	assert.Equal(t, scene.Points(50), root.Style.Size.Height)
	assert.Nil(t, root.Style.FlexGrow, "absent style fields stay absent")
}

func TestParseForestAllVariants(t *testing.T) {
	line := `[{"type":"Container","style":{"flexDirection":"Column","justifyContent":"SpaceEvenly","padding":{"start":{"Percent":0.1},"end":"Auto","top":"Undefined","bottom":{"Points":4}}},"corner_radius":6,"children":[` +
		`{"type":"Text","font":"Sans","text":"hi","font_size":12,"color":"#336699","style":{}},` +
		`{"type":"Image","style":{"aspectRatio":1.5},"path":"a.png"}]}]`
	forest, err := scene.ParseForest([]byte(line))
	require.NoError(t, err)
	require.Len(t, forest, 1)

	c := forest[0]
	require.Len(t, c.Children, 2)
	assert.Equal(t, scene.FlexColumn, *c.Style.FlexDirection)
	assert.Equal(t, scene.JustifySpaceEvenly, *c.Style.JustifyContent)
	assert.Equal(t, scene.Percent(0.1), c.Style.Padding.Start)
	assert.Equal(t, scene.Auto(), c.Style.Padding.End)
	assert.Equal(t, scene.Undefined(), c.Style.Padding.Top)
	assert.Equal(t, 6.0, *c.CornerRadius)
	assert.Nil(t, c.Background)

	text := c.Children[0]
	assert.Equal(t, scene.KindText, text.Kind)
	assert.Equal(t, "Sans", text.Font)
	assert.Equal(t, 12.0, text.FontSize)
	assert.Equal(t, scene.Color{R: 0x33, G: 0x66, B: 0x99, A: 0xff}, text.Color)

	img := c.Children[1]
	assert.Equal(t, scene.KindImage, img.Kind)
	assert.Equal(t, "a.png", img.Path)
	assert.Equal(t, 1.5, *img.Style.AspectRatio)
}

func TestParseForestRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"not json":         `[{"type":"Container"`,
		"not an array":     `{"type":"Image","style":{},"path":"x"}`,
		"unknown variant":  `[{"type":"Circle","style":{}}]`,
		"missing font":     `[{"type":"Text","text":"x","font_size":1,"color":{"Rgba32":0},"style":{}}]`,
		"null children":    `[{"type":"Container","children":null,"style":{}}]`,
		"missing type":     `[{"style":{},"path":"x"}]`,
		"bad enum":         `[{"type":"Image","style":{"flexDirection":"Sideways"},"path":"x"}]`,
		"bad dimension":    `[{"type":"Image","style":{"flexBasis":{"Inches":2}},"path":"x"}]`,
		"bad color":        `[{"type":"Text","font":"a","text":"x","font_size":1,"color":{"Rgb":1},"style":{}}]`,
		"nested malformed": `[{"type":"Container","style":{},"children":[{"type":"Image","style":{}}]}]`,
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			forest, err := scene.ParseForest([]byte(line))
			require.Error(t, err)
			assert.Nil(t, forest)
			var perr *scene.InputParseError
			assert.True(t, errors.As(err, &perr), "expected InputParseError, got %T", err)
		})
	}
}

func TestParseForestEmptyArray(t *testing.T) {
	forest, err := scene.ParseForest([]byte("  []  "))
	require.NoError(t, err)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
}

func TestForestRoundTrip(t *testing.T) {
	bg := scene.RGBA32(0x10203040)
	forest := []scene.Node{
		{
			Kind: scene.KindContainer,
			Style: scene.Style{
				FlexDirection: scene.Ptr(scene.FlexRowReverse),
				FlexWrap:      scene.Ptr(scene.WrapReverse),
				FlexGrow:      scene.Ptr(2.0),
				FlexBasis:     scene.Ptr(scene.Percent(0.25)),
				Margin:        scene.Ptr(scene.UniformRect(scene.Points(3))),
				MaxSize:       &scene.Size{Width: scene.Auto(), Height: scene.Undefined()},
			},
			Background:   &bg,
			CornerRadius: scene.Ptr(4.5),
			Children: []scene.Node{
				scene.NewText("Mono:bold", "hello", 14, scene.RGBA32(0x000000ff), scene.Style{AlignSelf: scene.Ptr(scene.AlignSelfBaseline)}),
				scene.NewImage("/tmp/logo.png", scene.Style{PositionType: scene.Ptr(scene.PositionAbsolute)}),
				scene.NewContainer(scene.Style{}),
			},
		},
	}

	line, err := scene.EncodeForest(forest)
	require.NoError(t, err)
	assert.NotContains(t, string(line), "\n")
	assert.NotContains(t, string(line), "flexShrink", "absent fields are omitted")

	back, err := scene.ParseForest(line)
	require.NoError(t, err)
	assert.Equal(t, forest, back)
}

func TestEncodeUnknownKindFails(t *testing.T) {
	_, err := scene.EncodeForest([]scene.Node{{Kind: scene.Kind(9)}})
	require.Error(t, err)
}

func TestColorJSON(t *testing.T) {
	c := scene.RGBA32(0xdeadbeef)
	data, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Rgba32":3735928559}`, string(data))

	var back scene.Color
	require.NoError(t, back.UnmarshalJSON([]byte(`"#abc"`)))
	assert.Equal(t, scene.Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, back)
}

func TestDetachedDoesNotShareState(t *testing.T) {
	bg := scene.RGBA32(0xff0000ff)
	n := scene.Node{
		Kind:       scene.KindContainer,
		Background: &bg,
		Style:      scene.Style{FlexGrow: scene.Ptr(1.0)},
		Children:   []scene.Node{scene.NewContainer(scene.Style{})},
	}
	d := n.Detached()
	assert.Nil(t, d.Children)
	*n.Background = scene.RGBA32(0)
	*n.Style.FlexGrow = 7
	assert.Equal(t, scene.RGBA32(0xff0000ff), *d.Background)
	assert.Equal(t, 1.0, *d.Style.FlexGrow)
}
