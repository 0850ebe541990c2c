package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// 该文件定义节点样式：一组稀疏的可选布局属性，缺省即交由求解器使用默认值。

// Display 控制节点是否参与布局。
type Display string

const (
	DisplayFlex Display = "Flex"
	DisplayNone Display = "None"
)

// PositionType 区分相对定位与绝对定位。
type PositionType string

const (
	PositionRelative PositionType = "Relative"
	PositionAbsolute PositionType = "Absolute"
)

// Direction 为书写方向，影响 start/end 的解析。
type Direction string

const (
	DirectionInherit Direction = "Inherit"
	DirectionLTR     Direction = "LTR"
	DirectionRTL     Direction = "RTL"
)

// FlexDirection 决定主轴方向。
type FlexDirection string

const (
	FlexRow           FlexDirection = "Row"
	FlexColumn        FlexDirection = "Column"
	FlexRowReverse    FlexDirection = "RowReverse"
	FlexColumnReverse FlexDirection = "ColumnReverse"
)

// FlexWrap 控制子元素是否换行。
type FlexWrap string

const (
	NoWrap      FlexWrap = "NoWrap"
	Wrap        FlexWrap = "Wrap"
	WrapReverse FlexWrap = "WrapReverse"
)

// Overflow 仅作记录，布局阶段按 Visible 处理。
type Overflow string

const (
	OverflowVisible Overflow = "Visible"
	OverflowHidden  Overflow = "Hidden"
	OverflowScroll  Overflow = "Scroll"
)

// AlignItems 为容器在交叉轴上的默认对齐方式。
type AlignItems string

const (
	AlignItemsFlexStart AlignItems = "FlexStart"
	AlignItemsFlexEnd   AlignItems = "FlexEnd"
	AlignItemsCenter    AlignItems = "Center"
	AlignItemsBaseline  AlignItems = "Baseline"
	AlignItemsStretch   AlignItems = "Stretch"
)

// AlignSelf 覆盖父容器的 AlignItems。
type AlignSelf string

const (
	AlignSelfAuto      AlignSelf = "Auto"
	AlignSelfFlexStart AlignSelf = "FlexStart"
	AlignSelfFlexEnd   AlignSelf = "FlexEnd"
	AlignSelfCenter    AlignSelf = "Center"
	AlignSelfBaseline  AlignSelf = "Baseline"
	AlignSelfStretch   AlignSelf = "Stretch"
)

// AlignContent 控制多行之间的分布。
type AlignContent string

const (
	AlignContentFlexStart    AlignContent = "FlexStart"
	AlignContentFlexEnd      AlignContent = "FlexEnd"
	AlignContentCenter       AlignContent = "Center"
	AlignContentStretch      AlignContent = "Stretch"
	AlignContentSpaceBetween AlignContent = "SpaceBetween"
	AlignContentSpaceAround  AlignContent = "SpaceAround"
)

// JustifyContent 控制主轴上的剩余空间分配。
type JustifyContent string

const (
	JustifyFlexStart    JustifyContent = "FlexStart"
	JustifyFlexEnd      JustifyContent = "FlexEnd"
	JustifyCenter       JustifyContent = "Center"
	JustifySpaceBetween JustifyContent = "SpaceBetween"
	JustifySpaceAround  JustifyContent = "SpaceAround"
	JustifySpaceEvenly  JustifyContent = "SpaceEvenly"
)

func (v *Display) UnmarshalText(b []byte) error {
	return parseEnum(v, b, DisplayFlex, DisplayNone)
}

func (v *PositionType) UnmarshalText(b []byte) error {
	return parseEnum(v, b, PositionRelative, PositionAbsolute)
}

func (v *Direction) UnmarshalText(b []byte) error {
	return parseEnum(v, b, DirectionInherit, DirectionLTR, DirectionRTL)
}

func (v *FlexDirection) UnmarshalText(b []byte) error {
	return parseEnum(v, b, FlexRow, FlexColumn, FlexRowReverse, FlexColumnReverse)
}

func (v *FlexWrap) UnmarshalText(b []byte) error {
	return parseEnum(v, b, NoWrap, Wrap, WrapReverse)
}

func (v *Overflow) UnmarshalText(b []byte) error {
	return parseEnum(v, b, OverflowVisible, OverflowHidden, OverflowScroll)
}

func (v *AlignItems) UnmarshalText(b []byte) error {
	return parseEnum(v, b, AlignItemsFlexStart, AlignItemsFlexEnd, AlignItemsCenter, AlignItemsBaseline, AlignItemsStretch)
}

func (v *AlignSelf) UnmarshalText(b []byte) error {
	return parseEnum(v, b, AlignSelfAuto, AlignSelfFlexStart, AlignSelfFlexEnd, AlignSelfCenter, AlignSelfBaseline, AlignSelfStretch)
}

func (v *AlignContent) UnmarshalText(b []byte) error {
	return parseEnum(v, b, AlignContentFlexStart, AlignContentFlexEnd, AlignContentCenter, AlignContentStretch, AlignContentSpaceBetween, AlignContentSpaceAround)
}

func (v *JustifyContent) UnmarshalText(b []byte) error {
	return parseEnum(v, b, JustifyFlexStart, JustifyFlexEnd, JustifyCenter, JustifySpaceBetween, JustifySpaceAround, JustifySpaceEvenly)
}

func parseEnum[T ~string](dst *T, b []byte, allowed ...T) error {
	s := string(b)
	for _, a := range allowed {
		if string(a) == s {
			*dst = a
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return fmt.Errorf("unknown variant %q, expected one of %s", s, strings.Join(names, ", "))
}

// DimensionKind 标识尺寸取值的种类。零值为 Undefined。
type DimensionKind uint8

const (
	DimUndefined DimensionKind = iota
	DimAuto
	DimPoints
	DimPercent
)

// Dimension 为长度值：Undefined、Auto、Points(n) 或 Percent(f)，其中 Percent(1.0) 表示 100%。
type Dimension struct {
	Kind  DimensionKind
	Value float64
}

// Undefined 返回未定义尺寸。
func Undefined() Dimension { return Dimension{Kind: DimUndefined} }

// Auto 返回自动尺寸。
func Auto() Dimension { return Dimension{Kind: DimAuto} }

// Points 返回以像素为单位的定长。
func Points(v float64) Dimension { return Dimension{Kind: DimPoints, Value: v} }

// Percent 返回比例长度，1.0 即 100%。
func Percent(f float64) Dimension { return Dimension{Kind: DimPercent, Value: f} }

func (d Dimension) String() string {
	switch d.Kind {
	case DimAuto:
		return "auto"
	case DimPoints:
		return fmt.Sprintf("%gpx", d.Value)
	case DimPercent:
		return fmt.Sprintf("%g%%", d.Value*100)
	default:
		return "undefined"
	}
}

// MarshalJSON 输出 "Auto" / "Undefined" / {"Points": n} / {"Percent": f}。
func (d Dimension) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DimAuto:
		return []byte(`"Auto"`), nil
	case DimPoints:
		return json.Marshal(map[string]float64{"Points": d.Value})
	case DimPercent:
		return json.Marshal(map[string]float64{"Percent": d.Value})
	default:
		return []byte(`"Undefined"`), nil
	}
}

func (d *Dimension) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		switch name {
		case "Auto":
			*d = Auto()
		case "Undefined":
			*d = Undefined()
		default:
			return fmt.Errorf("unknown dimension %q", name)
		}
		return nil
	}
	var tagged map[string]float64
	if err := json.Unmarshal(b, &tagged); err != nil {
		return fmt.Errorf("invalid dimension %s: %w", b, err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("invalid dimension %s: expected exactly one of Points, Percent", b)
	}
	for key, v := range tagged {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid dimension %s: value must be finite", b)
		}
		switch key {
		case "Points":
			*d = Points(v)
		case "Percent":
			*d = Percent(v)
		default:
			return fmt.Errorf("unknown dimension variant %q", key)
		}
	}
	return nil
}

// Rect 描述四边（start/end 随书写方向对应左右）。
type Rect struct {
	Start  Dimension `json:"start"`
	End    Dimension `json:"end"`
	Top    Dimension `json:"top"`
	Bottom Dimension `json:"bottom"`
}

// UniformRect 返回四边相同的 Rect。
func UniformRect(d Dimension) Rect { return Rect{Start: d, End: d, Top: d, Bottom: d} }

// Size 为二维尺寸。
type Size struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

// Style 为稀疏样式表，nil 字段表示使用求解器默认值。
type Style struct {
	Display        *Display        `json:"display,omitempty"`
	PositionType   *PositionType   `json:"positionType,omitempty"`
	Direction      *Direction      `json:"direction,omitempty"`
	FlexDirection  *FlexDirection  `json:"flexDirection,omitempty"`
	FlexWrap       *FlexWrap       `json:"flexWrap,omitempty"`
	Overflow       *Overflow       `json:"overflow,omitempty"`
	AlignItems     *AlignItems     `json:"alignItems,omitempty"`
	AlignSelf      *AlignSelf      `json:"alignSelf,omitempty"`
	AlignContent   *AlignContent   `json:"alignContent,omitempty"`
	JustifyContent *JustifyContent `json:"justifyContent,omitempty"`
	Position       *Rect           `json:"position,omitempty"`
	Margin         *Rect           `json:"margin,omitempty"`
	Padding        *Rect           `json:"padding,omitempty"`
	Border         *Rect           `json:"border,omitempty"`
	FlexGrow       *float64        `json:"flexGrow,omitempty"`
	FlexShrink     *float64        `json:"flexShrink,omitempty"`
	FlexBasis      *Dimension      `json:"flexBasis,omitempty"`
	Size           *Size           `json:"size,omitempty"`
	MinSize        *Size           `json:"minSize,omitempty"`
	MaxSize        *Size           `json:"maxSize,omitempty"`
	AspectRatio    *float64        `json:"aspectRatio,omitempty"`
}

// Ptr 便于在字面量中填写可选字段。
func Ptr[T any](v T) *T { return &v }

// Clone 返回不与原样式共享指针的副本。
func (s Style) Clone() Style {
	out := s
	out.Display = clonePtr(s.Display)
	out.PositionType = clonePtr(s.PositionType)
	out.Direction = clonePtr(s.Direction)
	out.FlexDirection = clonePtr(s.FlexDirection)
	out.FlexWrap = clonePtr(s.FlexWrap)
	out.Overflow = clonePtr(s.Overflow)
	out.AlignItems = clonePtr(s.AlignItems)
	out.AlignSelf = clonePtr(s.AlignSelf)
	out.AlignContent = clonePtr(s.AlignContent)
	out.JustifyContent = clonePtr(s.JustifyContent)
	out.Position = clonePtr(s.Position)
	out.Margin = clonePtr(s.Margin)
	out.Padding = clonePtr(s.Padding)
	out.Border = clonePtr(s.Border)
	out.FlexGrow = clonePtr(s.FlexGrow)
	out.FlexShrink = clonePtr(s.FlexShrink)
	out.FlexBasis = clonePtr(s.FlexBasis)
	out.Size = clonePtr(s.Size)
	out.MinSize = clonePtr(s.MinSize)
	out.MaxSize = clonePtr(s.MaxSize)
	out.AspectRatio = clonePtr(s.AspectRatio)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
