package scene

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color 为非预乘的 8 位 RGBA 颜色。
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

var _ color.Color = Color{}

// RGBA32 由 0xRRGGBBAA 构造颜色。
func RGBA32(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// Uint32 返回 0xRRGGBBAA 形式。
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// RGBA 实现 color.Color（预乘 alpha）。
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

func (c Color) String() string { return fmt.Sprintf("#%08x", c.Uint32()) }

// ParseHex 解析 #RGB、#RRGGBB 或 #RRGGBBAA，缺省 alpha 视为不透明。
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGBA32(uint32(v)), nil
}

// MarshalJSON 输出 {"Rgba32": 0xRRGGBBAA}。
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rgba32 uint32 `json:"Rgba32"`
	}{c.Uint32()})
}

// UnmarshalJSON 接受 {"Rgba32": n}，也接受 "#RRGGBB[AA]" 字符串。
func (c *Color) UnmarshalJSON(b []byte) error {
	var hex string
	if err := json.Unmarshal(b, &hex); err == nil {
		parsed, err := ParseHex(hex)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(b, &tagged); err != nil {
		return fmt.Errorf("invalid color %s: %w", b, err)
	}
	raw, ok := tagged["Rgba32"]
	if !ok || len(tagged) != 1 {
		return fmt.Errorf("invalid color %s: expected {\"Rgba32\": n}", b)
	}
	var v uint32
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("invalid Rgba32 %s: %w", raw, err)
	}
	*c = RGBA32(v)
	return nil
}
