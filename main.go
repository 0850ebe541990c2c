package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ByLCY/viereck/app"
	"github.com/ByLCY/viereck/config"
	"github.com/ByLCY/viereck/layout"
	"github.com/ByLCY/viereck/renderer"
	canvasrenderer "github.com/ByLCY/viereck/renderer/canvas"
	"github.com/ByLCY/viereck/window"
	"github.com/ByLCY/viereck/window/headless"
	"github.com/ByLCY/viereck/window/x11"
)

func main() {
	configPath := flag.String("config", "", "YAML 配置文件路径")
	x := flag.Int("x", 0, "窗口左上角 X 坐标")
	y := flag.Int("y", 0, "窗口左上角 Y 坐标")
	width := flag.Int("width", 0, "窗口宽度（像素）")
	height := flag.Int("height", 0, "窗口高度（像素）")
	backend := flag.String("backend", config.BackendX11, "显示后端：x11 或 headless")
	frames := flag.String("frames", "frames", "headless 后端写出 PNG 帧的目录")
	assets := flag.String("assets", "", "字体与图片相对路径的根目录")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	pdf := flag.String("pdf", "", "每帧额外导出的 PDF 路径")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("加载配置失败: %v", err)
		}
		cfg = loaded
	}
	// 仅覆盖命令行上显式给出的参数。
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			cfg.Window.X = *x
		case "y":
			cfg.Window.Y = *y
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "backend":
			cfg.Backend = *backend
		case "frames":
			cfg.Frames = *frames
		case "assets":
			cfg.Assets = *assets
		case "debug":
			cfg.Debug = *debug
		case "pdf":
			cfg.PDF = *pdf
		}
	})
	if cfg.Frames == "" {
		cfg.Frames = *frames
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("viereck 退出: %v", err)
	}
}

// run 打开窗口并把窗口事件与标准输入接入事件循环。
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	clearColor, canvasColor, err := cfg.ParsedColors()
	if err != nil {
		return err
	}

	win, err := openWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Close()

	r := canvasrenderer.NewRenderer(win, canvasrenderer.Options{
		BaseDir:        cfg.Assets,
		Fonts:          cfg.Fonts,
		ImageCacheSize: cfg.ImageCacheSize,
		PDFPath:        cfg.PDF,
	})
	w, h := win.Size()
	painter := &app.Painter{
		Viewport: layout.Size{Width: float64(w), Height: float64(h)},
		Build:    r.BuildOptions(),
		Render: renderer.Options{
			ClearColor:  clearColor,
			CanvasColor: canvasColor,
			Images:      r.Images,
		},
		Surfaces:  r,
		DebugPath: cfg.Debug,
		Logger:    logger,
	}

	logger.Info("viereck started", "backend", cfg.Backend, "width", w, "height", h)
	return app.NewLoop(painter, app.Options{Logger: logger}).Run(ctx, win, os.Stdin)
}

func openWindow(cfg config.Config) (window.Window, error) {
	switch cfg.Backend {
	case config.BackendHeadless:
		return headless.New(cfg.Window.Width, cfg.Window.Height, cfg.Frames)
	case config.BackendX11:
		return x11.Open(cfg.Window.X, cfg.Window.Y, cfg.Window.Width, cfg.Window.Height)
	default:
		return nil, fmt.Errorf("未知后端 %q", cfg.Backend)
	}
}
