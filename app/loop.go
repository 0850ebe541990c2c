// Package app 合并窗口事件与标准输入的场景快照，决定何时重绘以及当前树是哪一棵。
package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/viereck/scene"
	"github.com/ByLCY/viereck/window"
)

// MaxLineSize 是单行快照允许的最大字节数。
const MaxLineSize = 16 << 20

// Repainter 用一棵森林完成一次完整重绘。
type Repainter interface {
	Repaint(forest []scene.Node) error
}

// Trigger 标明一次处理由什么引起。
type Trigger uint8

const (
	TriggerDraw Trigger = iota
	TriggerInput
)

func (t Trigger) String() string {
	if t == TriggerDraw {
		return "draw"
	}
	return "input"
}

// Outcome 描述一次事件的处理结果。Repainted 为 false 时表示没有发生重绘（例如解析失败）。
type Outcome struct {
	Trigger   Trigger
	Repainted bool
	Err       error
}

// Options 配置事件循环。
type Options struct {
	Logger *slog.Logger
	// OnRepaint 在每次处理完 Draw 事件或输入行后调用。
	OnRepaint func(Outcome)
}

// Loop 持有当前树，并且是唯一修改它的地方。
type Loop struct {
	painter Repainter
	log     *slog.Logger
	notify  func(Outcome)

	mu      sync.Mutex
	current []scene.Node
}

// NewLoop 创建事件循环，当前树初始为空。
func NewLoop(p Repainter, opts Options) *Loop {
	l := &Loop{painter: p, log: opts.Logger, notify: opts.OnRepaint}
	if l.log == nil {
		l.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// Current 返回当前树的深拷贝。
func (l *Loop) Current() []scene.Node {
	l.mu.Lock()
	defer l.mu.Unlock()
	return scene.CloneForest(l.current)
}

// Run 消费窗口事件与 input 中按行分隔的快照，直到两个来源都结束或 ctx 取消。
// 两个来源由各自的 goroutine 读取，处理始终在调用方 goroutine 中逐个进行。
func (l *Loop) Run(ctx context.Context, src window.Source, input io.Reader) error {
	g, gctx := errgroup.WithContext(ctx)

	var lines chan []byte
	if input != nil {
		lines = make(chan []byte)
		g.Go(func() error {
			defer close(lines)
			return scanLines(gctx, input, lines)
		})
	}
	var events <-chan window.Event
	if src != nil {
		events = src.Events(gctx)
	}

	if err := l.consume(gctx, events, lines); err != nil && ctx.Err() != nil {
		// 读取 goroutine 可能仍阻塞在 Read 上，不等待它。
		return ctx.Err()
	}
	return g.Wait()
}

func (l *Loop) consume(ctx context.Context, events <-chan window.Event, lines <-chan []byte) error {
	for events != nil || lines != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				l.log.Debug("window event source closed")
				continue
			}
			l.handleEvent(ev)
		case line, ok := <-lines:
			if !ok {
				lines = nil
				l.log.Debug("input closed")
				continue
			}
			l.handleLine(line)
		}
	}
	return nil
}

func (l *Loop) handleEvent(ev window.Event) {
	if ev.Err != nil {
		l.log.Error("window event error", causeAttrs(ev.Err)...)
		return
	}
	switch ev.Kind {
	case window.Draw:
		l.repaint(TriggerDraw, l.Current(), false)
	default:
		l.log.Debug("unknown window event", slog.String("detail", ev.Detail))
	}
}

func (l *Loop) handleLine(line []byte) {
	forest, err := scene.ParseForest(line)
	if err != nil {
		l.log.Error("could not parse input", causeAttrs(err)...)
		l.report(Outcome{Trigger: TriggerInput, Err: err})
		return
	}
	l.repaint(TriggerInput, forest, true)
}

// repaint 调用 Repainter；commit 为 true 时，只有重绘成功才把 forest 设为当前树。
func (l *Loop) repaint(trigger Trigger, forest []scene.Node, commit bool) {
	err := l.painter.Repaint(forest)
	if err != nil {
		l.log.Error("repaint failed", append([]any{slog.String("trigger", trigger.String())}, causeAttrs(err)...)...)
	} else if commit {
		l.mu.Lock()
		l.current = forest
		l.mu.Unlock()
	}
	l.report(Outcome{Trigger: trigger, Repainted: err == nil, Err: err})
}

func (l *Loop) report(o Outcome) {
	if l.notify != nil {
		l.notify(o)
	}
}

// scanLines 把非空行逐一送入 out。
func scanLines(ctx context.Context, r io.Reader, out chan<- []byte) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		buf := make([]byte, len(line))
		copy(buf, line)
		select {
		case out <- buf:
		case <-ctx.Done():
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("读取输入失败: %w", err)
	}
	return nil
}

// causeAttrs 把错误及其原因链展开为日志属性。
func causeAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}
	var because []string
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		because = append(because, cause.Error())
	}
	if len(because) > 0 {
		attrs = append(attrs, slog.Any("because", because))
	}
	return attrs
}
