package canvasrenderer

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/viereck/fonts"
	"github.com/ByLCY/viereck/layout"
)

// FontBook 按名字解析字体族并缓存。名字可带 ":style" 后缀，例如 "Mono:bold"。
// 解析顺序：配置的字体文件、系统字体、内置 Go 字体。
type FontBook struct {
	baseDir string
	files   map[string]string

	mu       sync.Mutex
	families map[string]*fontFamilyEntry
	system   bool
}

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

var _ layout.TextMeasurer = (*FontBook)(nil)

// NewFontBook 创建字体簿。files 把字体名映射到字体文件，相对路径基于 baseDir。
func NewFontBook(baseDir string, files map[string]string) *FontBook {
	b := &FontBook{
		baseDir:  baseDir,
		files:    map[string]string{},
		families: map[string]*fontFamilyEntry{},
		system:   true,
	}
	for name, path := range files {
		if name == "" || path == "" {
			continue
		}
		b.files[strings.ToLower(name)] = path
	}
	return b
}

// DisableSystemFonts 跳过系统字体查找，测试中用于保证结果稳定。
func (b *FontBook) DisableSystemFonts() { b.system = false }

// Face 返回给定字号（pt）与颜色的字体面。
func (b *FontBook) Face(name string, sizePt float64, col color.Color) (*canvas.FontFace, error) {
	family, style, err := b.ensureFontFamily(name)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, col, style, canvas.FontNormal), nil
}

// TextWidth 实现 layout.TextMeasurer。字号为像素，返回值同样为像素。
func (b *FontBook) TextWidth(font string, size float64, text string) (float64, error) {
	face, err := b.Face(font, layout.PxToPt(size), canvas.Black)
	if err != nil {
		return 0, err
	}
	return face.TextWidth(text), nil
}

func (b *FontBook) ensureFontFamily(name string) (*canvas.FontFamily, canvas.FontStyle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if entry, ok := b.families[name]; ok {
		return entry.family, entry.style, nil
	}

	familyName, styleName, _ := strings.Cut(name, ":")
	style := parseFontStyle(styleName)
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)
	if err := b.loadFontIntoFamily(family, familyName, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	b.families[name] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func (b *FontBook) loadFontIntoFamily(family *canvas.FontFamily, name string, style canvas.FontStyle) error {
	if path, ok := b.files[strings.ToLower(name)]; ok {
		if !filepath.IsAbs(path) && b.baseDir != "" {
			path = filepath.Join(b.baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("读取字体文件 %s 失败: %w", path, err)
		}
		return family.LoadFont(data, 0, style)
	}
	if strings.HasPrefix(name, "embed:") {
		data, err := fonts.Load(name)
		if err != nil {
			return err
		}
		return family.LoadFont(data, 0, style)
	}
	if b.system {
		if err := family.LoadSystemFont(name, style); err == nil {
			return nil
		}
	}
	return family.LoadFont(fonts.Fallback(name, style&^canvas.FontItalic >= canvas.FontSemiBold), 0, style)
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}
