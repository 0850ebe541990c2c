package layout

// 布局几何统一使用像素。绘制后端以 1 像素对应 1 个画布单位（mm）、按 DPMM(1) 光栅化，
// 因此字号在创建字体面时需要从像素换算为 pt。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号换算为字体面使用的 pt。
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx 是 PxToPt 的逆运算。
func PtToPx(pt float64) float64 { return pt * PtToMm }
