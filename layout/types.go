package layout

import (
	"github.com/ByLCY/viereck/flex"
	"github.com/ByLCY/viereck/scene"
)

// 该文件定义布局树与几何结果，供求解、渲染与调试 JSON 共用。单位均为像素。

// Size 为宽高。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect 为相对父节点边框盒左上角的矩形。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Tree 是一次重绘使用的布局树，根节点为铺满视口的合成容器。
type Tree struct {
	Root     *Node
	viewport Size
	solved   bool
}

// Viewport 返回构建时的视口尺寸。
func (t *Tree) Viewport() Size { return t.viewport }

// Solved 报告 Solve 是否已成功执行。
func (t *Tree) Solved() bool { return t.solved }

// Node 镜像场景树中的一个节点。
type Node struct {
	// Object 是场景节点去掉子节点后的值拷贝；合成根节点为 nil。
	Object   *scene.Node
	Children []*Node
	// Intrinsic 记录叶子节点在构建时测得的内容尺寸。
	Intrinsic *Size

	handle *flex.Node
}

// Kind 返回对应场景节点的类型，根节点为 KindInvalid。
func (n *Node) Kind() scene.Kind {
	if n.Object == nil {
		return scene.KindInvalid
	}
	return n.Object.Kind
}

// Geometry 返回最近一次求解得到的矩形。
func (n *Node) Geometry() Rect {
	l := n.handle.Layout()
	return Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
}
