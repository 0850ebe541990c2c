package app

import (
	"log/slog"

	"github.com/ByLCY/viereck/layout"
	"github.com/ByLCY/viereck/renderer"
	"github.com/ByLCY/viereck/scene"
)

// SurfaceFactory 为每次重绘提供一块新的绘制表面。
type SurfaceFactory interface {
	NewSurface(viewport layout.Size) renderer.Surface
}

// Painter 串联构建、求解、绘制与显示。每次调用都从头构建布局树，不保留任何状态。
type Painter struct {
	Viewport layout.Size
	Build    layout.BuildOptions
	Render   renderer.Options
	Surfaces SurfaceFactory
	// DebugPath 非空时，每次求解后把布局几何写成 JSON。
	DebugPath string
	Logger    *slog.Logger
}

var _ Repainter = (*Painter)(nil)

// Repaint 实现 Repainter。
func (p *Painter) Repaint(forest []scene.Node) error {
	tree, err := layout.Build(forest, p.Viewport, p.Build)
	if err != nil {
		return err
	}
	if err := tree.Solve(); err != nil {
		return err
	}
	if p.DebugPath != "" {
		if err := layout.WriteDebugJSON(tree, p.DebugPath); err != nil && p.Logger != nil {
			p.Logger.Warn("write layout debug json", slog.String("path", p.DebugPath), slog.String("error", err.Error()))
		}
	}
	s := p.Surfaces.NewSurface(p.Viewport)
	if err := renderer.Render(s, tree, p.Render); err != nil {
		return err
	}
	if err := s.Present(); err != nil {
		return &renderer.RenderError{Op: "present", Err: err}
	}
	return nil
}
