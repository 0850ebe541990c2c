package scene

import "fmt"

// Kind 标识场景节点的变体。
type Kind uint8

const (
	KindInvalid Kind = iota
	KindContainer
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "Container"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node 是场景树中的一个节点。Kind 决定哪些字段有意义：
//   - Container: Children、Style、Background、CornerRadius
//   - Text: Font、Text、FontSize、Color、Style
//   - Image: Path、Style
//
// 子节点顺序即绘制顺序。
type Node struct {
	Kind  Kind
	Style Style

	Children     []Node
	Background   *Color
	CornerRadius *float64

	Font     string
	Text     string
	FontSize float64
	Color    Color

	Path string
}

// NewContainer 构造容器节点。
func NewContainer(style Style, children ...Node) Node {
	return Node{Kind: KindContainer, Style: style, Children: children}
}

// NewText 构造文本节点。
func NewText(font, text string, size float64, col Color, style Style) Node {
	return Node{Kind: KindText, Font: font, Text: text, FontSize: size, Color: col, Style: style}
}

// NewImage 构造图片节点。
func NewImage(path string, style Style) Node {
	return Node{Kind: KindImage, Path: path, Style: style}
}

// IsLeaf 报告节点是否需要测量内容尺寸。
func (n Node) IsLeaf() bool { return n.Kind == KindText || n.Kind == KindImage }

// Detached 返回去掉子节点的值拷贝，不与原节点共享任何指针。
func (n Node) Detached() Node {
	out := n
	out.Children = nil
	out.Style = n.Style.Clone()
	out.Background = clonePtr(n.Background)
	out.CornerRadius = clonePtr(n.CornerRadius)
	return out
}

// Clone 深拷贝整棵子树。
func (n Node) Clone() Node {
	out := n.Detached()
	if len(n.Children) > 0 {
		out.Children = CloneForest(n.Children)
	}
	return out
}

// CloneForest 深拷贝一组根节点。
func CloneForest(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].Clone()
	}
	return out
}

// Walk 以先序遍历访问节点，fn 返回 false 时不再进入该节点的子树。
func Walk(nodes []Node, fn func(*Node) bool) {
	for i := range nodes {
		if fn(&nodes[i]) {
			Walk(nodes[i].Children, fn)
		}
	}
}
