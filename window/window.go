// Package window 定义事件循环与窗口后端之间的接口。
package window

import (
	"context"
	"image"
)

// Kind 区分窗口事件。
type Kind uint8

const (
	// Draw 表示窗口内容需要重绘（暴露、尺寸变化等）。
	Draw Kind = iota
	// Unknown 是其他任何事件，循环只记录后忽略。
	Unknown
)

func (k Kind) String() string {
	if k == Draw {
		return "Draw"
	}
	return "Unknown"
}

// Event 是窗口产生的一条事件。Err 非空时表示后端读取事件失败，Kind 无意义。
type Event struct {
	Kind Kind
	Err  error
	// Detail 为后端给出的原始事件描述，仅用于日志。
	Detail string
}

// Source 产生窗口事件。返回的通道在后端关闭或 ctx 取消后关闭。
type Source interface {
	Events(ctx context.Context) <-chan Event
}

// Presenter 把一帧位图显示出来。
type Presenter interface {
	Present(img image.Image) error
}

// Window 组合了事件源、帧输出与固定的视口尺寸。
type Window interface {
	Source
	Presenter
	Size() (width, height int)
	Close() error
}
