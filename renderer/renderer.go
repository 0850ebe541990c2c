package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ByLCY/viereck/layout"
	"github.com/ByLCY/viereck/scene"
)

// Surface 是一次重绘使用的二维绘制目标。坐标以当前变换为准，单位为像素。
// Save/Restore 成对维护平移与裁剪状态。
type Surface interface {
	Clear(c color.Color) error
	FillRect(r layout.Rect, c color.Color) error
	FillRoundedRect(r layout.Rect, radius float64, c color.Color) error
	// TextLayout 为一段文本准备好可绘制的排版结果。
	TextLayout(font string, size float64, text string, c color.Color) (TextLayout, error)
	// DrawText 以 (x, y) 为基线起点绘制文本。
	DrawText(x, y float64, t TextLayout) error
	DrawImage(r layout.Rect, img image.Image) error
	Save() error
	Restore() error
	Translate(dx, dy float64)
	Clip(r layout.Rect)
	Present() error
}

// TextLayout 是 Surface 返回的不透明文本排版句柄。
type TextLayout interface {
	Width() float64
}

// Images 按路径加载解码后的图片。
type Images interface {
	Load(path string) (image.Image, error)
}

// Options 控制一次绘制的全局参数。
type Options struct {
	// ClearColor 用于清空整个表面，默认白色。
	ClearColor color.Color
	// CanvasColor 填充根节点区域，默认 0xDD 灰。
	CanvasColor color.Color
	Images      Images
}

var (
	DefaultClearColor  color.Color = color.White
	DefaultCanvasColor color.Color = color.Gray{Y: 0xDD}
)

// ErrUnsolved 表示传入的布局树尚未求解。
var ErrUnsolved = errors.New("layout tree is not solved")

var errNoImages = errors.New("no image loader configured")

// RenderError 包装绘制阶段表面返回的错误。
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render %s: %v", e.Op, e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

// Render 按先序遍历把已求解的布局树画到 s 上：先画节点自身内容，再在平移并裁剪到
// 节点矩形后递归绘制子节点。Present 由调用方负责。
func Render(s Surface, tree *layout.Tree, opts Options) error {
	if tree == nil || tree.Root == nil || !tree.Solved() {
		return &RenderError{Op: "begin", Err: ErrUnsolved}
	}
	if opts.ClearColor == nil {
		opts.ClearColor = DefaultClearColor
	}
	if opts.CanvasColor == nil {
		opts.CanvasColor = DefaultCanvasColor
	}
	if err := s.Clear(opts.ClearColor); err != nil {
		return &RenderError{Op: "clear", Err: err}
	}
	if err := s.FillRect(tree.Root.Geometry(), opts.CanvasColor); err != nil {
		return &RenderError{Op: "fill canvas", Err: err}
	}
	p := painter{s: s, images: opts.Images}
	return p.paint(tree.Root)
}

type painter struct {
	s      Surface
	images Images
}

func (p painter) paint(n *layout.Node) (err error) {
	rect := n.Geometry()
	if obj := n.Object; obj != nil {
		if err := p.paintObject(obj, rect); err != nil {
			return err
		}
	}

	if err := p.s.Save(); err != nil {
		return &RenderError{Op: "save", Err: err}
	}
	defer func() {
		if rerr := p.s.Restore(); rerr != nil {
			err = errors.Join(err, &RenderError{Op: "restore", Err: rerr})
		}
	}()
	p.s.Translate(rect.X, rect.Y)
	p.s.Clip(layout.Rect{Width: rect.Width, Height: rect.Height})
	for _, c := range n.Children {
		if err := p.paint(c); err != nil {
			return err
		}
	}
	return nil
}

func (p painter) paintObject(obj *scene.Node, rect layout.Rect) error {
	if obj.Background != nil {
		var err error
		if obj.CornerRadius != nil && *obj.CornerRadius > 0 {
			err = p.s.FillRoundedRect(rect, *obj.CornerRadius, *obj.Background)
		} else {
			err = p.s.FillRect(rect, *obj.Background)
		}
		if err != nil {
			return &RenderError{Op: "fill background", Err: err}
		}
	}

	switch obj.Kind {
	case scene.KindText:
		tl, err := p.s.TextLayout(obj.Font, obj.FontSize, obj.Text, obj.Color)
		if err != nil {
			return &RenderError{Op: "text layout", Err: err}
		}
		// 基线落在矩形底边。
		if err := p.s.DrawText(rect.X, rect.Y+rect.Height, tl); err != nil {
			return &RenderError{Op: "draw text", Err: err}
		}
	case scene.KindImage:
		if p.images == nil {
			return &RenderError{Op: "load image", Err: errNoImages}
		}
		img, err := p.images.Load(obj.Path)
		if err != nil {
			return &RenderError{Op: "load image", Err: fmt.Errorf("%s: %w", obj.Path, err)}
		}
		if err := p.s.DrawImage(rect, img); err != nil {
			return &RenderError{Op: "draw image", Err: err}
		}
	}
	return nil
}
