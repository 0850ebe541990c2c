package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/viereck/scene"
	"github.com/ByLCY/viereck/window"
)

// stubPainter 记录每次重绘收到的森林，fail 返回非空时该次重绘失败。
type stubPainter struct {
	mu      sync.Mutex
	forests [][]scene.Node
	fail    func(forest []scene.Node) error
}

func (p *stubPainter) Repaint(forest []scene.Node) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forests = append(p.forests, scene.CloneForest(forest))
	if p.fail != nil {
		return p.fail(forest)
	}
	return nil
}

func (p *stubPainter) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.forests)
}

// chanSource 把预先给定的事件依次送出后关闭。
type chanSource struct {
	events []window.Event
	hold   bool
}

func (s chanSource) Events(ctx context.Context) <-chan window.Event {
	out := make(chan window.Event)
	go func() {
		defer close(out)
		for _, ev := range s.events {
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
		if s.hold {
			<-ctx.Done()
		}
	}()
	return out
}

func encode(t *testing.T, forest []scene.Node) string {
	t.Helper()
	b, err := scene.EncodeForest(forest)
	require.NoError(t, err)
	return string(b)
}

func run(t *testing.T, p Repainter, src window.Source, input string) ([]Outcome, *Loop) {
	t.Helper()
	var outcomes []Outcome
	loop := NewLoop(p, Options{OnRepaint: func(o Outcome) { outcomes = append(outcomes, o) }})
	var r io.Reader
	if input != "" {
		r = strings.NewReader(input)
	}
	require.NoError(t, loop.Run(context.Background(), src, r))
	return outcomes, loop
}

func TestMalformedLineKeepsCurrentTree(t *testing.T) {
	forest := []scene.Node{scene.NewContainer(scene.Style{}, scene.NewText("Mono", "ok", 12, scene.Color{A: 255}, scene.Style{}))}
	input := `{"type":"Bogus"}` + "\n" + encode(t, forest) + "\n"

	p := &stubPainter{}
	outcomes, loop := run(t, p, nil, input)

	require.Len(t, outcomes, 2)
	var perr *scene.InputParseError
	assert.True(t, errors.As(outcomes[0].Err, &perr), "got %v", outcomes[0].Err)
	assert.False(t, outcomes[0].Repainted)
	assert.True(t, outcomes[1].Repainted)
	assert.NoError(t, outcomes[1].Err)

	assert.Equal(t, 1, p.calls(), "a parse failure never repaints")
	assert.Equal(t, forest, loop.Current())
}

func TestFailedRepaintDoesNotCommit(t *testing.T) {
	first := []scene.Node{scene.NewContainer(scene.Style{})}
	second := []scene.Node{scene.NewImage("broken.png", scene.Style{})}
	errBroken := errors.New("broken")

	p := &stubPainter{fail: func(f []scene.Node) error {
		if len(f) == 1 && f[0].Kind == scene.KindImage {
			return errBroken
		}
		return nil
	}}
	src := chanSource{}
	outcomes, loop := run(t, p, src, encode(t, first)+"\n"+encode(t, second)+"\n")

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Repainted)
	assert.ErrorIs(t, outcomes[1].Err, errBroken)
	assert.Equal(t, first, loop.Current())
}

func TestDrawRepaintsCurrentTree(t *testing.T) {
	p := &stubPainter{}
	src := chanSource{events: []window.Event{
		{Kind: window.Draw},
		{Kind: window.Unknown, Detail: "KeyPress"},
		{Err: errors.New("x error")},
	}}
	outcomes, loop := run(t, p, src, "")

	require.Len(t, outcomes, 1, "only Draw triggers a repaint")
	assert.Equal(t, TriggerDraw, outcomes[0].Trigger)
	require.Equal(t, 1, p.calls())
	assert.Empty(t, p.forests[0])
	assert.Empty(t, loop.Current())
}

func TestBlankLinesAreSkipped(t *testing.T) {
	p := &stubPainter{}
	forest := []scene.Node{scene.NewContainer(scene.Style{})}
	outcomes, _ := run(t, p, nil, "\n   \n"+encode(t, forest)+"\n\n")
	require.Len(t, outcomes, 1)
	assert.Equal(t, TriggerInput, outcomes[0].Trigger)
}

func TestDrawAfterInputUsesCommittedTree(t *testing.T) {
	forest := []scene.Node{scene.NewContainer(scene.Style{FlexGrow: scene.Ptr(1.0)})}
	p := &stubPainter{}
	loop := NewLoop(p, Options{})

	// 先只处理输入，再单独投递 Draw，保证顺序确定。
	require.NoError(t, loop.Run(context.Background(), nil, strings.NewReader(encode(t, forest)+"\n")))
	require.NoError(t, loop.Run(context.Background(), chanSource{events: []window.Event{{Kind: window.Draw}}}, nil))

	require.Equal(t, 2, p.calls())
	assert.Equal(t, forest, p.forests[1])
}

func TestCurrentIsACopy(t *testing.T) {
	forest := []scene.Node{scene.NewText("Mono", "a", 10, scene.Color{}, scene.Style{})}
	_, loop := run(t, &stubPainter{}, nil, encode(t, forest)+"\n")

	got := loop.Current()
	got[0].Text = "mutated"
	assert.Equal(t, "a", loop.Current()[0].Text)
}

func TestRunStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	loop := NewLoop(&stubPainter{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, chanSource{hold: true}, pr) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestCauseAttrsWalksChain(t *testing.T) {
	inner := errors.New("root cause")
	err := &scene.InputParseError{Err: inner}
	attrs := causeAttrs(err)
	require.Len(t, attrs, 2)
}
