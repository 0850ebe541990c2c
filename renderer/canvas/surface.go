package canvasrenderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/viereck/layout"
	"github.com/ByLCY/viereck/renderer"
)

// 画布以 1 像素对应 1mm 建立，并按 DPMM(1) 光栅化，布局坐标可直接使用。
var resolution = canvas.DPMM(1)

// Presenter 接收光栅化后的帧，通常是窗口。
type Presenter interface {
	Present(img image.Image) error
}

// Surface 在 tdewolff/canvas 上实现 renderer.Surface。canvas 的上下文不支持任意裁剪，
// 因此平移与裁剪由 Surface 自己维护：矩形直接与裁剪区求交，圆角矩形用路径求交，
// 部分可见的文本与图片先光栅化再裁切。
type Surface struct {
	width, height float64

	c     *canvas.Canvas
	ctx   *canvas.Context
	fonts *FontBook
	out   Presenter

	// PDFPath 非空时，Present 额外把当前帧导出为 PDF。
	PDFPath string

	cur   state
	stack []state
}

type state struct {
	dx, dy float64
	clip   layout.Rect
}

var _ renderer.Surface = (*Surface)(nil)

var errUnbalancedRestore = errors.New("restore without matching save")

// NewSurface 创建 width×height 像素的绘制表面。
func NewSurface(width, height float64, fonts *FontBook, out Presenter) *Surface {
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	ctx.SetStrokeColor(canvas.Transparent)
	return &Surface{
		width:  width,
		height: height,
		c:      c,
		ctx:    ctx,
		fonts:  fonts,
		out:    out,
		cur:    state{clip: layout.Rect{Width: width, Height: height}},
	}
}

func (s *Surface) Clear(c color.Color) error {
	s.ctx.SetFillColor(c)
	s.ctx.DrawPath(0, 0, canvas.Rectangle(s.width, s.height))
	return nil
}

func (s *Surface) FillRect(r layout.Rect, c color.Color) error {
	vis := intersect(s.abs(r), s.cur.clip)
	if empty(vis) {
		return nil
	}
	s.ctx.SetFillColor(c)
	s.ctx.DrawPath(vis.X, vis.Y, canvas.Rectangle(vis.Width, vis.Height))
	return nil
}

func (s *Surface) FillRoundedRect(r layout.Rect, radius float64, c color.Color) error {
	a := s.abs(r)
	vis := intersect(a, s.cur.clip)
	if empty(vis) {
		return nil
	}
	s.ctx.SetFillColor(c)
	shape := canvas.RoundedRectangle(a.Width, a.Height, radius)
	if contains(s.cur.clip, a) {
		s.ctx.DrawPath(a.X, a.Y, shape)
		return nil
	}
	clip := canvas.Rectangle(vis.Width, vis.Height).Translate(vis.X, vis.Y)
	s.ctx.DrawPath(0, 0, shape.Translate(a.X, a.Y).And(clip))
	return nil
}

type textLayout struct {
	line    *canvas.Text
	width   float64
	ascent  float64
	descent float64
}

func (t *textLayout) Width() float64 { return t.width }

// TextLayout 的字号以像素给出，创建字体面时换算为 pt。
func (s *Surface) TextLayout(font string, size float64, text string, c color.Color) (renderer.TextLayout, error) {
	if s.fonts == nil {
		return nil, fmt.Errorf("未配置字体")
	}
	face, err := s.fonts.Face(font, layout.PxToPt(size), c)
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	return &textLayout{
		line:    canvas.NewTextLine(face, text, canvas.Left),
		width:   face.TextWidth(text),
		ascent:  math.Abs(metrics.Ascent),
		descent: math.Abs(metrics.Descent),
	}, nil
}

func (s *Surface) DrawText(x, y float64, t renderer.TextLayout) error {
	tl, ok := t.(*textLayout)
	if !ok {
		return fmt.Errorf("unexpected text layout %T", t)
	}
	ax, ay := x+s.cur.dx, y+s.cur.dy
	box := layout.Rect{X: ax, Y: ay - tl.ascent, Width: tl.width, Height: tl.ascent + tl.descent}
	vis := intersect(box, s.cur.clip)
	switch {
	case empty(vis):
		return nil
	case contains(s.cur.clip, box):
		s.ctx.DrawText(ax, ay, tl.line)
		return nil
	}

	sub := canvas.New(box.Width, box.Height)
	sctx := canvas.NewContext(sub)
	sctx.SetCoordSystem(canvas.CartesianIV)
	sctx.DrawText(0, tl.ascent, tl.line)
	img := rasterizer.Draw(sub, resolution, canvas.DefaultColorSpace)
	s.drawCropped(box, vis, img)
	return nil
}

func (s *Surface) DrawImage(r layout.Rect, img image.Image) error {
	a := s.abs(r)
	vis := intersect(a, s.cur.clip)
	if empty(vis) || img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	dpmm := float64(b.Dx()) / a.Width
	if contains(s.cur.clip, a) && math.Abs(float64(b.Dy())/a.Height-dpmm) < 1e-9 {
		s.ctx.DrawImage(a.X, a.Y, img, canvas.DPMM(dpmm))
		return nil
	}

	w, h := int(math.Round(a.Width)), int(math.Round(a.Height))
	if w <= 0 || h <= 0 {
		return nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
	s.drawCropped(a, vis, scaled)
	return nil
}

// drawCropped 把以 box 左上角为原点的位图裁切到 vis 后绘制。
func (s *Surface) drawCropped(box, vis layout.Rect, img image.Image) {
	r := image.Rect(
		int(math.Floor(vis.X-box.X)), int(math.Floor(vis.Y-box.Y)),
		int(math.Ceil(vis.X+vis.Width-box.X)), int(math.Ceil(vis.Y+vis.Height-box.Y)),
	).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	part := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Copy(part, image.Point{}, img, r, xdraw.Src, nil)
	s.ctx.DrawImage(box.X+float64(r.Min.X), box.Y+float64(r.Min.Y), part, resolution)
}

func (s *Surface) Save() error {
	s.stack = append(s.stack, s.cur)
	return nil
}

func (s *Surface) Restore() error {
	if len(s.stack) == 0 {
		return errUnbalancedRestore
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

func (s *Surface) Translate(dx, dy float64) {
	s.cur.dx += dx
	s.cur.dy += dy
}

func (s *Surface) Clip(r layout.Rect) {
	s.cur.clip = intersect(s.cur.clip, s.abs(r))
}

// Rasterize 把当前画布光栅化为位图。
func (s *Surface) Rasterize() *image.RGBA {
	return rasterizer.Draw(s.c, resolution, canvas.DefaultColorSpace)
}

// Present 光栅化当前帧并交给 Presenter。
func (s *Surface) Present() error {
	if s.PDFPath != "" {
		if err := s.WritePDF(s.PDFPath); err != nil {
			return err
		}
	}
	if s.out == nil {
		return fmt.Errorf("未配置输出目标")
	}
	return s.out.Present(s.Rasterize())
}

func (s *Surface) abs(r layout.Rect) layout.Rect {
	return layout.Rect{X: r.X + s.cur.dx, Y: r.Y + s.cur.dy, Width: r.Width, Height: r.Height}
}

func intersect(a, b layout.Rect) layout.Rect {
	x0, y0 := math.Max(a.X, b.X), math.Max(a.Y, b.Y)
	x1, y1 := math.Min(a.X+a.Width, b.X+b.Width), math.Min(a.Y+a.Height, b.Y+b.Height)
	return layout.Rect{X: x0, Y: y0, Width: math.Max(0, x1-x0), Height: math.Max(0, y1-y0)}
}

func contains(outer, inner layout.Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.X+inner.Width <= outer.X+outer.Width &&
		inner.Y+inner.Height <= outer.Y+outer.Height
}

func empty(r layout.Rect) bool { return r.Width <= 0 || r.Height <= 0 }
