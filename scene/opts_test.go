package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	cases := []struct {
		in   string
		want Dimension
	}{
		{"auto", Auto()},
		{"12", Points(12)},
		{"12.5px", Points(12.5)},
		{"50%", Percent(0.5)},
		{"-4", Points(-4)},
	}
	for _, tc := range cases {
		got, err := ParseDimension(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "wide", "12pt", "%"} {
		_, err := ParseDimension(bad)
		assert.Error(t, err, bad)
	}
}

func TestStyleOptsToStyle(t *testing.T) {
	var o StyleOpts
	require.NoError(t, o.Set("width", []string{"100"}))
	require.NoError(t, o.Set("padding", []string{"4"}))
	require.NoError(t, o.Set("padding_top", []string{"10%"}))
	require.NoError(t, o.Set("align-self", []string{"flex_end"}))
	require.NoError(t, o.Set("justify-content", []string{"space-evenly"}))
	require.NoError(t, o.Set("grow", []string{"1"}))

	s := o.ToStyle()
	require.NotNil(t, s.Size)
	assert.Equal(t, Points(100), s.Size.Width)
	assert.Equal(t, Auto(), s.Size.Height, "unset axis defaults to auto")
	require.NotNil(t, s.Padding)
	assert.Equal(t, Percent(0.1), s.Padding.Top)
	assert.Equal(t, Points(4), s.Padding.Start)
	assert.Equal(t, Points(4), s.Padding.Bottom)
	assert.Nil(t, s.Margin)
	assert.Equal(t, AlignSelfFlexEnd, *s.AlignSelf)
	assert.Equal(t, JustifySpaceEvenly, *s.JustifyContent)
	assert.Equal(t, 1.0, *s.FlexGrow)
	assert.Nil(t, s.FlexShrink)
	assert.Nil(t, s.MinSize)
}

func TestStyleOptsMarginShorthand(t *testing.T) {
	var o StyleOpts
	require.NoError(t, o.Set("margin", []string{"1", "2", "3", "4"}))
	s := o.ToStyle()
	assert.Equal(t, Rect{Top: Points(1), End: Points(2), Bottom: Points(3), Start: Points(4)}, *s.Margin)

	o = StyleOpts{}
	require.NoError(t, o.Set("margin", []string{"1", "2"}))
	s = o.ToStyle()
	assert.Equal(t, Rect{Top: Points(1), End: Points(2), Bottom: Points(1), Start: Points(2)}, *s.Margin)

	assert.Error(t, o.Set("margin", []string{"1", "2", "3", "4", "5"}))
}

func TestStyleOptsRejectsUnknown(t *testing.T) {
	var o StyleOpts
	assert.Error(t, o.Set("colour", []string{"red"}))
	assert.Error(t, o.Set("flex-direction", []string{"diagonal"}))
	assert.Error(t, o.Set("width", []string{"1", "2"}))
	assert.Error(t, o.Set("grow", []string{"lots"}))
}

func TestVariantName(t *testing.T) {
	assert.Equal(t, "FlexStart", variantName("flex_start"))
	assert.Equal(t, "ColumnReverse", variantName("column-reverse"))
	assert.Equal(t, "SpaceEvenly", variantName("SpaceEvenly"))
	assert.Equal(t, "NoWrap", variantName("nowrap"))
	assert.Equal(t, "RTL", variantName("rtl"))
}
