package canvasrenderer

import (
	"github.com/ByLCY/viereck/layout"
	"github.com/ByLCY/viereck/renderer"
)

// Renderer 汇总 canvas 后端共享的资源：字体簿、图片缓存与输出目标。
// 每次重绘通过 NewSurface 获取一块新的画布。
type Renderer struct {
	Fonts  *FontBook
	Images *ImageStore

	out     Presenter
	pdfPath string
}

// Options configures the canvas renderer.
type Options struct {
	// BaseDir 为字体与图片相对路径的根目录。
	BaseDir string
	// Fonts 把字体名映射到字体文件。
	Fonts          map[string]string
	ImageCacheSize int
	// PDFPath 非空时每次 Present 都会额外导出 PDF。
	PDFPath string
}

// NewRenderer creates a canvas-based renderer presenting frames to out.
func NewRenderer(out Presenter, opts Options) *Renderer {
	return &Renderer{
		Fonts:   NewFontBook(opts.BaseDir, opts.Fonts),
		Images:  NewImageStore(opts.BaseDir, opts.ImageCacheSize),
		out:     out,
		pdfPath: opts.PDFPath,
	}
}

// NewSurface 返回一块与视口等大的新画布。
func (r *Renderer) NewSurface(viewport layout.Size) renderer.Surface {
	s := NewSurface(viewport.Width, viewport.Height, r.Fonts, r.out)
	s.PDFPath = r.pdfPath
	return s
}

// BuildOptions 返回使用本渲染器字体与图片做测量的布局选项。
func (r *Renderer) BuildOptions() layout.BuildOptions {
	return layout.BuildOptions{Text: r.Fonts, Images: r.Images}
}
