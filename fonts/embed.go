package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体来自 golang.org/x/image 的 Go 字体族，无需随仓库分发字体文件。
var builtin = map[string][]byte{
	"regular":   goregular.TTF,
	"bold":      gobold.TTF,
	"italic":    goitalic.TTF,
	"mono":      gomono.TTF,
	"mono-bold": gomonobold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:mono" 或直接 "mono"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "embed:"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("内置字体 %s 不存在", name)
	}
	return data, nil
}

// Fallback 为字体名挑选最接近的内置字体：名字含 mono 时使用等宽字体，否则使用常规字体。
func Fallback(name string, bold bool) []byte {
	mono := strings.Contains(strings.ToLower(name), "mono")
	switch {
	case mono && bold:
		return gomonobold.TTF
	case mono:
		return gomono.TTF
	case bold:
		return gobold.TTF
	default:
		return goregular.TTF
	}
}
