// Package cli 汇集 viereck-container / viereck-text / viereck-image 共用的参数解析与输出。
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ByLCY/viereck/binding"
	"github.com/ByLCY/viereck/dsl"
	"github.com/ByLCY/viereck/scene"
)

// styleKeys 为可以单独作为参数出现的样式属性。
var styleKeys = []string{
	"width", "height", "min-width", "min-height", "max-width", "max-height",
	"grow", "shrink", "basis",
	"margin", "margin-start", "margin-end", "margin-top", "margin-bottom",
	"padding", "padding-start", "padding-end", "padding-top", "padding-bottom",
	"display", "position", "align-items", "align-self", "align-content",
	"justify-content", "flex-direction", "flex-wrap", "aspect-ratio",
}

// RegisterStyle 把样式参数注册到 fs 上，解析时按出现顺序写入 opts。
// 除逐项参数外，-style 接受完整的样式字符串（见 dsl 包）。
func RegisterStyle(fs *flag.FlagSet, opts *scene.StyleOpts) {
	for _, key := range styleKeys {
		fs.Func(key, "样式属性 "+key, func(v string) error {
			return opts.Set(key, strings.Fields(v))
		})
	}
	fs.Func("style", "样式字符串，例如 \"width: 100%; grow: 1\"", func(v string) error {
		return dsl.ParseInto(v, opts)
	})
}

// ParseColor 接受 0xRRGGBBAA 或 #RRGGBB[AA]。
func ParseColor(s string) (scene.Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return scene.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return scene.RGBA32(uint32(v)), nil
	}
	return scene.ParseHex(s)
}

// ColorFlag 为可选颜色参数。
type ColorFlag struct {
	Color *scene.Color
}

func (f *ColorFlag) String() string {
	if f == nil || f.Color == nil {
		return ""
	}
	return f.Color.String()
}

func (f *ColorFlag) Set(v string) error {
	c, err := ParseColor(v)
	if err != nil {
		return err
	}
	f.Color = &c
	return nil
}

// Children 收集可重复的 -child 参数，每个值是一个节点的 JSON。
type Children []scene.Node

func (c *Children) String() string { return fmt.Sprintf("%d children", len(*c)) }

func (c *Children) Set(v string) error {
	var n scene.Node
	if err := json.Unmarshal([]byte(v), &n); err != nil {
		return fmt.Errorf("解析子节点失败: %w", err)
	}
	*c = append(*c, n)
	return nil
}

// Emit 用 data 填充占位符后把节点写成一行 JSON。
func Emit(w io.Writer, n scene.Node, data any) error {
	bound := binding.Forest([]scene.Node{n}, data)[0]
	out, err := json.Marshal(bound)
	if err != nil {
		return fmt.Errorf("编码节点失败: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// SetIntrinsicSize 以图片像素尺寸覆盖 width/height。
func SetIntrinsicSize(opts *scene.StyleOpts, w, h int) {
	opts.Width = scene.Ptr(scene.Points(float64(w)))
	opts.Height = scene.Ptr(scene.Points(float64(h)))
}

// LockAspectRatio 在 width 与 height 均为像素值时写入宽高比，否则清除宽高比。
func LockAspectRatio(opts *scene.StyleOpts) {
	opts.AspectRatio = nil
	if opts.Width == nil || opts.Height == nil {
		return
	}
	w, h := *opts.Width, *opts.Height
	if w.Kind == scene.DimPoints && h.Kind == scene.DimPoints && h.Value != 0 {
		opts.AspectRatio = scene.Ptr(w.Value / h.Value)
	}
}
