// Package binding 把命令行 -data 提供的 JSON 数据填入节点模板。
package binding

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/viereck/scene"
)

var placeholder = regexp.MustCompile(`\$\{[^}]*\}`)

// Interpolate 将 text 中的 ${path.to[0].value} 替换为 data 中对应的值。
// data 为 nil、路径为空或无法解析时保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := lookup(data, path)
		if !ok {
			return match
		}
		if s, isString := val.(string); isString {
			return s
		}
		return fmt.Sprint(val)
	})
}

// Decode 解析 -data 参数；空字符串返回 nil。
func Decode(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

// Forest 返回 nodes 的深拷贝，其中文本、字体名与图片路径中的占位符已被替换。
func Forest(nodes []scene.Node, data any) []scene.Node {
	out := scene.CloneForest(nodes)
	if data == nil {
		return out
	}
	scene.Walk(out, func(n *scene.Node) bool {
		switch n.Kind {
		case scene.KindText:
			n.Text = Interpolate(n.Text, data)
			n.Font = Interpolate(n.Font, data)
		case scene.KindImage:
			n.Path = Interpolate(n.Path, data)
		}
		return true
	})
	return out
}

// lookup 依次按键名与下标深入 data，路径形如 a.b[1][2].c。
func lookup(data any, path string) (any, bool) {
	cur := data
	for _, segment := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(segment, "[")
		if name != "" {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			if cur, ok = m[name]; !ok {
				return nil, false
			}
		}
		if rest == "" {
			continue
		}
		for _, idx := range strings.Split(strings.TrimSuffix(rest, "]"), "][") {
			i, err := strconv.Atoi(idx)
			if err != nil {
				return nil, false
			}
			list, ok := cur.([]any)
			if !ok || i < 0 || i >= len(list) {
				return nil, false
			}
			cur = list[i]
		}
	}
	return cur, true
}
