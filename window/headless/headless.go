// Package headless 提供不依赖显示服务的窗口：启动时产生一次重绘事件，
// 每一帧写成 PNG 文件。
package headless

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/ByLCY/viereck/window"
)

// Window 是无头窗口。Dir 为空时不写文件，只保留最后一帧。
type Window struct {
	width, height int
	dir           string

	mu     sync.Mutex
	frames int
	last   image.Image
}

var _ window.Window = (*Window)(nil)

// New 创建 width×height 的无头窗口，帧写入 dir。
func New(width, height int, dir string) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("窗口尺寸无效: %dx%d", width, height)
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	return &Window{width: width, height: height, dir: dir}, nil
}

func (w *Window) Size() (int, int) { return w.width, w.height }

// Events 模拟窗口映射后的首次 Expose，随后关闭通道。
func (w *Window) Events(ctx context.Context) <-chan window.Event {
	out := make(chan window.Event, 1)
	out <- window.Event{Kind: window.Draw, Detail: "initial expose"}
	close(out)
	return out
}

// Present 记录并按序号写出一帧。
func (w *Window) Present(img image.Image) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frames++
	w.last = img
	if w.dir == "" {
		return nil
	}
	path := filepath.Join(w.dir, fmt.Sprintf("frame-%04d.png", w.frames))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建帧文件失败: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("编码帧 %s 失败: %w", path, err)
	}
	return f.Close()
}

// Frames 返回已显示的帧数与最后一帧。
func (w *Window) Frames() (int, image.Image) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames, w.last
}

func (w *Window) Close() error { return nil }
