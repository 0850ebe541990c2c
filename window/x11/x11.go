// Package x11 实现基于 X11 的停靠窗口：创建时设置 _NET_WM_WINDOW_TYPE_DOCK，
// Expose 与 ConfigureNotify 事件映射为重绘。
package x11

import (
	"context"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/ByLCY/viereck/window"
)

// Window 是一个 X11 停靠窗口，尺寸在创建时固定。
type Window struct {
	xu     *xgbutil.XUtil
	win    *xwindow.Window
	width  int
	height int
}

var _ window.Window = (*Window)(nil)

// Open 连接 $DISPLAY 并在 (x, y) 处创建 width×height 的窗口。
func Open(x, y, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("窗口尺寸无效: %dx%d", width, height)
	}
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("连接 X 服务器失败: %w", err)
	}
	win, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("分配窗口 ID 失败: %w", err)
	}
	err = win.CreateChecked(xu.RootWin(), x, y, width, height,
		xproto.CwBackPixel|xproto.CwEventMask,
		0xffffff,
		xproto.EventMaskExposure|xproto.EventMaskStructureNotify)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("创建窗口失败: %w", err)
	}
	if err := ewmh.WmWindowTypeSet(xu, win.Id, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		win.Destroy()
		xu.Conn().Close()
		return nil, fmt.Errorf("设置窗口类型失败: %w", err)
	}
	_ = ewmh.WmNameSet(xu, win.Id, "viereck")
	win.Map()
	return &Window{xu: xu, win: win, width: width, height: height}, nil
}

// Size 返回创建时的尺寸。
func (w *Window) Size() (int, int) { return w.width, w.height }

// Events 在独立的 goroutine 中阻塞读取 X 事件。连接关闭后通道关闭。
func (w *Window) Events(ctx context.Context) <-chan window.Event {
	out := make(chan window.Event)
	go func() {
		defer close(out)
		for {
			ev, xerr := w.xu.Conn().WaitForEvent()
			if ev == nil && xerr == nil {
				return
			}
			var e window.Event
			switch {
			case xerr != nil:
				e = window.Event{Kind: window.Unknown, Err: fmt.Errorf("X 错误: %s", xerr.Error())}
			default:
				e = translate(ev)
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func translate(ev interface{ String() string }) window.Event {
	switch ev.(type) {
	case xproto.ExposeEvent, xproto.ConfigureNotifyEvent:
		return window.Event{Kind: window.Draw, Detail: ev.String()}
	default:
		return window.Event{Kind: window.Unknown, Detail: ev.String()}
	}
}

// Present 把位图转换为 X 图像并绘制到窗口上。
func (w *Window) Present(img image.Image) error {
	ximg := xgraphics.NewConvert(w.xu, img)
	defer ximg.Destroy()
	if err := ximg.XSurfaceSet(w.win.Id); err != nil {
		return fmt.Errorf("设置绘制表面失败: %w", err)
	}
	ximg.XDraw()
	ximg.XPaint(w.win.Id)
	w.xu.Sync()
	return nil
}

// Close 销毁窗口并断开连接，阻塞中的 Events 随之结束。
func (w *Window) Close() error {
	w.win.Destroy()
	w.xu.Conn().Close()
	return nil
}
