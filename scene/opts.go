package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// StyleOpts 是命令行工具使用的精简样式，经 ToStyle 转换为完整 Style。
type StyleOpts struct {
	Width, Height       *Dimension
	MinWidth, MinHeight *Dimension
	MaxWidth, MaxHeight *Dimension
	Grow, Shrink        *float64
	Basis               *Dimension

	Margin                                              *Dimension
	MarginStart, MarginEnd, MarginTop, MarginBottom     *Dimension
	Padding                                             *Dimension
	PaddingStart, PaddingEnd, PaddingTop, PaddingBottom *Dimension

	Display        *Display
	PositionType   *PositionType
	AlignItems     *AlignItems
	AlignSelf      *AlignSelf
	AlignContent   *AlignContent
	JustifyContent *JustifyContent
	FlexDirection  *FlexDirection
	FlexWrap       *FlexWrap
	AspectRatio    *float64
}

// ParseDimension 解析 "auto"、"12"、"12px" 或 "50%"。
func ParseDimension(input string) (Dimension, error) {
	s := strings.TrimSpace(input)
	if strings.EqualFold(s, "auto") {
		return Auto(), nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err == nil {
			return Percent(v / 100), nil
		}
	} else if v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64); err == nil {
		return Points(v), nil
	}
	return Dimension{}, fmt.Errorf("%s is not a dimension, expected 'auto', a number (representing pixels) or percentage (0%% - 100%%)", input)
}

// Set 按键名写入一个样式声明，键名接受 kebab-case 与 snake_case。
func (o *StyleOpts) Set(key string, values []string) error {
	key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
	if len(values) == 0 {
		return fmt.Errorf("%s: missing value", key)
	}
	switch key {
	case "margin":
		return o.setEdges(values, &o.MarginTop, &o.MarginEnd, &o.MarginBottom, &o.MarginStart, &o.Margin)
	case "padding":
		return o.setEdges(values, &o.PaddingTop, &o.PaddingEnd, &o.PaddingBottom, &o.PaddingStart, &o.Padding)
	}
	if len(values) != 1 {
		return fmt.Errorf("%s: expected a single value, got %d", key, len(values))
	}
	v := values[0]
	var err error
	switch key {
	case "width":
		o.Width, err = dimensionPtr(v)
	case "height":
		o.Height, err = dimensionPtr(v)
	case "min-width":
		o.MinWidth, err = dimensionPtr(v)
	case "min-height":
		o.MinHeight, err = dimensionPtr(v)
	case "max-width":
		o.MaxWidth, err = dimensionPtr(v)
	case "max-height":
		o.MaxHeight, err = dimensionPtr(v)
	case "basis", "flex-basis":
		o.Basis, err = dimensionPtr(v)
	case "margin-start":
		o.MarginStart, err = dimensionPtr(v)
	case "margin-end":
		o.MarginEnd, err = dimensionPtr(v)
	case "margin-top":
		o.MarginTop, err = dimensionPtr(v)
	case "margin-bottom":
		o.MarginBottom, err = dimensionPtr(v)
	case "padding-start":
		o.PaddingStart, err = dimensionPtr(v)
	case "padding-end":
		o.PaddingEnd, err = dimensionPtr(v)
	case "padding-top":
		o.PaddingTop, err = dimensionPtr(v)
	case "padding-bottom":
		o.PaddingBottom, err = dimensionPtr(v)
	case "grow", "flex-grow":
		o.Grow, err = numberPtr(v)
	case "shrink", "flex-shrink":
		o.Shrink, err = numberPtr(v)
	case "aspect-ratio":
		o.AspectRatio, err = numberPtr(v)
	case "display":
		o.Display, err = keywordPtr[Display](v)
	case "position":
		o.PositionType, err = keywordPtr[PositionType](v)
	case "align-items":
		o.AlignItems, err = keywordPtr[AlignItems](v)
	case "align-self":
		o.AlignSelf, err = keywordPtr[AlignSelf](v)
	case "align-content":
		o.AlignContent, err = keywordPtr[AlignContent](v)
	case "justify-content":
		o.JustifyContent, err = keywordPtr[JustifyContent](v)
	case "flex-direction", "direction":
		o.FlexDirection, err = keywordPtr[FlexDirection](v)
	case "flex-wrap", "wrap":
		o.FlexWrap, err = keywordPtr[FlexWrap](v)
	default:
		return fmt.Errorf("unknown style property %q", key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// setEdges 按 CSS 顺序展开 1~4 个值（上 右 下 左）；单值时同时记录为整体值。
func (o *StyleOpts) setEdges(values []string, top, end, bottom, start, all **Dimension) error {
	dims := make([]Dimension, len(values))
	for i, v := range values {
		d, err := ParseDimension(v)
		if err != nil {
			return err
		}
		dims[i] = d
	}
	switch len(dims) {
	case 1:
		*all = &dims[0]
		return nil
	case 2:
		*top, *bottom = &dims[0], &dims[0]
		*end, *start = &dims[1], &dims[1]
	case 3:
		*top, *bottom = &dims[0], &dims[2]
		*end, *start = &dims[1], &dims[1]
	case 4:
		*top, *end, *bottom, *start = &dims[0], &dims[1], &dims[2], &dims[3]
	default:
		return fmt.Errorf("expected 1 to 4 values, got %d", len(dims))
	}
	return nil
}

// ToStyle 把精简样式转换为完整样式，未设置的项保持缺省。
func (o StyleOpts) ToStyle() Style {
	var s Style
	s.Size = sizeOf(o.Width, o.Height)
	s.MinSize = sizeOf(o.MinWidth, o.MinHeight)
	s.MaxSize = sizeOf(o.MaxWidth, o.MaxHeight)
	s.Margin = rectOf(o.Margin, o.MarginStart, o.MarginEnd, o.MarginTop, o.MarginBottom)
	s.Padding = rectOf(o.Padding, o.PaddingStart, o.PaddingEnd, o.PaddingTop, o.PaddingBottom)
	s.FlexGrow = clonePtr(o.Grow)
	s.FlexShrink = clonePtr(o.Shrink)
	s.FlexBasis = clonePtr(o.Basis)
	s.Display = clonePtr(o.Display)
	s.PositionType = clonePtr(o.PositionType)
	s.AlignItems = clonePtr(o.AlignItems)
	s.AlignSelf = clonePtr(o.AlignSelf)
	s.AlignContent = clonePtr(o.AlignContent)
	s.JustifyContent = clonePtr(o.JustifyContent)
	s.FlexDirection = clonePtr(o.FlexDirection)
	s.FlexWrap = clonePtr(o.FlexWrap)
	s.AspectRatio = clonePtr(o.AspectRatio)
	return s
}

func sizeOf(w, h *Dimension) *Size {
	if w == nil && h == nil {
		return nil
	}
	return &Size{Width: orDefault(w, Auto()), Height: orDefault(h, Auto())}
}

func rectOf(all, start, end, top, bottom *Dimension) *Rect {
	if all == nil && start == nil && end == nil && top == nil && bottom == nil {
		return nil
	}
	fallback := orDefault(all, Undefined())
	return &Rect{
		Start:  orDefault(start, fallback),
		End:    orDefault(end, fallback),
		Top:    orDefault(top, fallback),
		Bottom: orDefault(bottom, fallback),
	}
}

func orDefault(d *Dimension, def Dimension) Dimension {
	if d == nil {
		return def
	}
	return *d
}

func dimensionPtr(v string) (*Dimension, error) {
	d, err := ParseDimension(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func numberPtr(v string) (*float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%s is not a number, expected a number", v)
	}
	return &f, nil
}

type keyword interface {
	~string
}

// keywordPtr 把 flex_start / flex-start / FlexStart 统一成变体名并校验。
func keywordPtr[T keyword, P interface {
	*T
	UnmarshalText([]byte) error
}](v string) (*T, error) {
	var out T
	if err := P(&out).UnmarshalText([]byte(variantName(v))); err != nil {
		return nil, err
	}
	return &out, nil
}

func variantName(v string) string {
	switch strings.ToLower(v) {
	case "ltr":
		return "LTR"
	case "rtl":
		return "RTL"
	case "nowrap", "no-wrap", "no_wrap":
		return "NoWrap"
	}
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == '_' || r == '-' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
