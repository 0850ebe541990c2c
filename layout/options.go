package layout

// BuildOptions 配置布局阶段所需的依赖：文本度量与图片尺寸探测。
// 某一项为 nil 时，仅当森林中出现对应类型的叶子节点才会报错。
type BuildOptions struct {
	Text   TextMeasurer
	Images ImageProber
}

// TextMeasurer 返回文本在给定字体与字号（像素）下的单行宽度。
type TextMeasurer interface {
	TextWidth(font string, size float64, text string) (float64, error)
}

// ImageProber 返回图片的原始像素尺寸，无法读取或解码时返回错误。
type ImageProber interface {
	ImageSize(path string) (width, height int, err error)
}
