package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/viereck/flex"
	"github.com/ByLCY/viereck/scene"
)

// Build 根据场景森林构建布局树。合成根节点宽高均为 100%，森林中的每个根依次挂在其下。
// 文本与图片的内容尺寸在构建时一次性测得，测量失败会中止构建且不返回部分结果。
func Build(forest []scene.Node, viewport Size, opts BuildOptions) (*Tree, error) {
	root := &Node{handle: flex.NewNode(rootStyle())}
	b := &builder{opts: opts}
	for i := range forest {
		child, err := b.build(&forest[i])
		if err != nil {
			return nil, err
		}
		if err := root.handle.AddChild(child.handle); err != nil {
			return nil, &EngineError{Op: "add child", Err: err}
		}
		root.Children = append(root.Children, child)
	}
	return &Tree{Root: root, viewport: viewport}, nil
}

// Solve 以视口尺寸调用一次求解器，之后 Geometry 可直接读取。
func (t *Tree) Solve() (err error) {
	if t == nil || t.Root == nil {
		return &EngineError{Op: "compute", Err: fmt.Errorf("empty tree")}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &EngineError{Op: "compute", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	t.solved = false
	if err := flex.Compute(t.Root.handle, t.viewport.Width, t.viewport.Height); err != nil {
		return &EngineError{Op: "compute", Err: err}
	}
	t.solved = true
	return nil
}

type builder struct {
	opts BuildOptions
}

func (b *builder) build(n *scene.Node) (*Node, error) {
	style := convertStyle(n.Style)
	obj := n.Detached()

	switch n.Kind {
	case scene.KindContainer:
		ln := &Node{Object: &obj, handle: flex.NewNode(style)}
		for i := range n.Children {
			child, err := b.build(&n.Children[i])
			if err != nil {
				return nil, err
			}
			if err := ln.handle.AddChild(child.handle); err != nil {
				return nil, &EngineError{Op: "add child", Err: err}
			}
			ln.Children = append(ln.Children, child)
		}
		return ln, nil
	case scene.KindText, scene.KindImage:
		intrinsic, err := b.measure(n)
		if err != nil {
			return nil, err
		}
		return &Node{
			Object:    &obj,
			Intrinsic: &intrinsic,
			handle:    flex.NewLeaf(style, fixedMeasure(intrinsic)),
		}, nil
	default:
		return nil, &UnsupportedNodeKindError{Kind: n.Kind}
	}
}

// measure 取得叶子节点的内容尺寸：文本宽度来自度量后端、高度取字号；图片取原始像素尺寸。
func (b *builder) measure(n *scene.Node) (Size, error) {
	var size Size
	switch n.Kind {
	case scene.KindText:
		if b.opts.Text == nil {
			return Size{}, &MeasurementError{Kind: n.Kind, Subject: n.Font, Err: errNoTextMeasurer}
		}
		w, err := b.opts.Text.TextWidth(n.Font, n.FontSize, n.Text)
		if err != nil {
			return Size{}, &MeasurementError{Kind: n.Kind, Subject: n.Font, Err: err}
		}
		size = Size{Width: w, Height: n.FontSize}
	case scene.KindImage:
		if b.opts.Images == nil {
			return Size{}, &MeasurementError{Kind: n.Kind, Subject: n.Path, Err: errNoImageProber}
		}
		w, h, err := b.opts.Images.ImageSize(n.Path)
		if err != nil {
			return Size{}, &MeasurementError{Kind: n.Kind, Subject: n.Path, Err: err}
		}
		size = Size{Width: float64(w), Height: float64(h)}
	}
	if !isFinite(size.Width) || !isFinite(size.Height) || size.Width < 0 || size.Height < 0 {
		return Size{}, &MeasurementError{Kind: n.Kind, Subject: subject(n), Err: fmt.Errorf("invalid intrinsic size %gx%g", size.Width, size.Height)}
	}
	return size, nil
}

func subject(n *scene.Node) string {
	if n.Kind == scene.KindImage {
		return n.Path
	}
	return n.Font
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// fixedMeasure 只按求解器给出的约束裁剪已测得的尺寸。
func fixedMeasure(s Size) flex.MeasureFunc {
	return func(w float64, wm flex.MeasureMode, h float64, hm flex.MeasureMode) flex.Size {
		return flex.Size{Width: fit(s.Width, w, wm), Height: fit(s.Height, h, hm)}
	}
}

func fit(v, hint float64, mode flex.MeasureMode) float64 {
	switch mode {
	case flex.MeasureExactly:
		return hint
	case flex.MeasureAtMost:
		return math.Min(v, hint)
	default:
		return v
	}
}

func rootStyle() flex.Style {
	s := flex.DefaultStyle()
	s.Width = flex.Percent(1)
	s.Height = flex.Percent(1)
	s.AlignContent = flex.AlignStretch
	return s
}
