package flex

import "math"

// Unit tags how a Value is interpreted.
type Unit uint8

const (
	UnitUndefined Unit = iota
	UnitAuto
	UnitPoint
	UnitPercent
)

// Value is a length. Percent values are fractions: 1.0 means 100%.
type Value struct {
	Unit Unit
	V    float64
}

// Undefined returns a Value that resolves to nothing.
func Undefined() Value { return Value{} }

// Auto returns an automatic Value.
func Auto() Value { return Value{Unit: UnitAuto} }

// Points returns a fixed length.
func Points(v float64) Value { return Value{Unit: UnitPoint, V: v} }

// Percent returns a length relative to the owner; 1.0 is 100%.
func Percent(f float64) Value { return Value{Unit: UnitPercent, V: f} }

// resolve returns NaN when v has no definite length against ref.
func (v Value) resolve(ref float64) float64 {
	switch v.Unit {
	case UnitPoint:
		return v.V
	case UnitPercent:
		return v.V * ref
	default:
		return math.NaN()
	}
}

// Edges holds one Value per side. Start and End follow the writing direction.
type Edges struct {
	Start, End, Top, Bottom Value
}

// EdgeAll returns Edges with the same value on all sides.
func EdgeAll(v Value) Edges {
	return Edges{Start: v, End: v, Top: v, Bottom: v}
}

type Display uint8

const (
	DisplayFlex Display = iota
	DisplayNone
)

type PositionType uint8

const (
	PositionRelative PositionType = iota
	PositionAbsolute
)

type Direction uint8

const (
	DirectionInherit Direction = iota
	DirectionLTR
	DirectionRTL
)

type FlexDirection uint8

const (
	Row FlexDirection = iota
	Column
	RowReverse
	ColumnReverse
)

type Wrap uint8

const (
	NoWrap Wrap = iota
	WrapForward
	WrapReverse
)

type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// Align is shared by align-items, align-self and align-content. AlignAuto is
// only meaningful for align-self; the space-* values only for align-content.
type Align uint8

const (
	AlignAuto Align = iota
	AlignFlexStart
	AlignFlexEnd
	AlignCenter
	AlignBaseline
	AlignStretch
	AlignSpaceBetween
	AlignSpaceAround
)

type Justify uint8

const (
	JustifyFlexStart Justify = iota
	JustifyFlexEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Style is the full set of layout inputs of a node. Sizes are border-box sizes.
type Style struct {
	Display        Display
	PositionType   PositionType
	Direction      Direction
	FlexDirection  FlexDirection
	FlexWrap       Wrap
	Overflow       Overflow
	AlignItems     Align
	AlignSelf      Align
	AlignContent   Align
	JustifyContent Justify

	Position Edges
	Margin   Edges
	Padding  Edges
	Border   Edges

	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Value

	Width, Height       Value
	MinWidth, MinHeight Value
	MaxWidth, MaxHeight Value

	// AspectRatio is width / height; NaN disables it.
	AspectRatio float64
}

// DefaultStyle returns the CSS defaults: row direction, no wrapping,
// flex-shrink 1, automatic basis and sizes, stretched items and lines.
func DefaultStyle() Style {
	return Style{
		AlignItems:   AlignStretch,
		AlignSelf:    AlignAuto,
		AlignContent: AlignStretch,
		FlexShrink:   1,
		FlexBasis:    Auto(),
		Width:        Auto(),
		Height:       Auto(),
		AspectRatio:  math.NaN(),
	}
}
