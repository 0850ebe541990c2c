package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/viereck/scene"
)

var (
	errNoTextMeasurer = errors.New("no text measurer configured")
	errNoImageProber  = errors.New("no image prober configured")
)

// UnsupportedNodeKindError 表示遇到了无法映射到求解器的节点类型。
type UnsupportedNodeKindError struct {
	Kind scene.Kind
}

func (e *UnsupportedNodeKindError) Error() string {
	return fmt.Sprintf("unsupported node kind %s", e.Kind)
}

// EngineError 包装求解器返回的错误（建树或计算阶段）。
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string { return fmt.Sprintf("layout engine %s: %v", e.Op, e.Err) }

func (e *EngineError) Unwrap() error { return e.Err }

// MeasurementError 表示叶子节点的内容尺寸无法确定，例如字体缺失或图片无法解码。
type MeasurementError struct {
	Kind    scene.Kind
	Subject string
	Err     error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("measure %s %q: %v", e.Kind, e.Subject, e.Err)
}

func (e *MeasurementError) Unwrap() error { return e.Err }
