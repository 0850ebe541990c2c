package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// 线格式：每个节点是带 "type" 标签的 JSON 对象，字段名与变体字段一一对应。

type containerWire struct {
	Type         string   `json:"type"`
	Children     []Node   `json:"children"`
	Style        Style    `json:"style"`
	Background   *Color   `json:"background"`
	CornerRadius *float64 `json:"corner_radius"`
}

type textWire struct {
	Type     string  `json:"type"`
	Font     string  `json:"font"`
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	Color    Color   `json:"color"`
	Style    Style   `json:"style"`
}

type imageWire struct {
	Type  string `json:"type"`
	Style Style  `json:"style"`
	Path  string `json:"path"`
}

var requiredFields = map[string][]string{
	"Container": {"children", "style"},
	"Text":      {"font", "text", "font_size", "color", "style"},
	"Image":     {"style", "path"},
}

// MarshalJSON 按变体输出带标签的对象。
func (n Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindContainer:
		children := n.Children
		if children == nil {
			children = []Node{}
		}
		return json.Marshal(containerWire{
			Type:         "Container",
			Children:     children,
			Style:        n.Style,
			Background:   n.Background,
			CornerRadius: n.CornerRadius,
		})
	case KindText:
		return json.Marshal(textWire{
			Type:     "Text",
			Font:     n.Font,
			Text:     n.Text,
			FontSize: n.FontSize,
			Color:    n.Color,
			Style:    n.Style,
		})
	case KindImage:
		return json.Marshal(imageWire{Type: "Image", Style: n.Style, Path: n.Path})
	default:
		return nil, fmt.Errorf("cannot encode node of kind %s", n.Kind)
	}
}

// UnmarshalJSON 解析带标签的节点，缺少必填字段时报错。
func (n *Node) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	rawType, ok := fields["type"]
	if !ok {
		return fmt.Errorf("missing field `type`")
	}
	var typ string
	if err := json.Unmarshal(rawType, &typ); err != nil {
		return fmt.Errorf("field `type`: %w", err)
	}
	required, ok := requiredFields[typ]
	if !ok {
		return fmt.Errorf("unknown variant %q, expected one of Container, Text, Image", typ)
	}
	for _, name := range required {
		raw, present := fields[name]
		if !present || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("%s: missing field `%s`", typ, name)
		}
	}

	switch typ {
	case "Container":
		var w containerWire
		if err := json.Unmarshal(b, &w); err != nil {
			return fmt.Errorf("Container: %w", err)
		}
		children := w.Children
		if len(children) == 0 {
			children = nil
		}
		*n = Node{
			Kind:         KindContainer,
			Style:        w.Style,
			Children:     children,
			Background:   w.Background,
			CornerRadius: w.CornerRadius,
		}
	case "Text":
		var w textWire
		if err := json.Unmarshal(b, &w); err != nil {
			return fmt.Errorf("Text: %w", err)
		}
		*n = Node{Kind: KindText, Font: w.Font, Text: w.Text, FontSize: w.FontSize, Color: w.Color, Style: w.Style}
	case "Image":
		var w imageWire
		if err := json.Unmarshal(b, &w); err != nil {
			return fmt.Errorf("Image: %w", err)
		}
		*n = Node{Kind: KindImage, Path: w.Path, Style: w.Style}
	}
	return nil
}

// InputParseError 表示一行输入无法解析为场景森林。
type InputParseError struct {
	Err error
}

func (e *InputParseError) Error() string { return "invalid scene snapshot: " + e.Err.Error() }

func (e *InputParseError) Unwrap() error { return e.Err }

// ParseForest 把一行 JSON 数组解析为根节点列表。
func ParseForest(line []byte) ([]Node, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &InputParseError{Err: fmt.Errorf("expected a JSON array of nodes")}
	}
	var forest []Node
	if err := json.Unmarshal(trimmed, &forest); err != nil {
		return nil, &InputParseError{Err: err}
	}
	if forest == nil {
		forest = []Node{}
	}
	return forest, nil
}

// EncodeForest 输出一行（不含换行符）JSON。
func EncodeForest(nodes []Node) ([]byte, error) {
	if nodes == nil {
		nodes = []Node{}
	}
	return json.Marshal(nodes)
}
