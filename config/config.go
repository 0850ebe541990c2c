// Package config 读取可选的 YAML 配置文件，命令行参数在此之上覆盖。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/viereck/scene"
)

// Backend 名称。
const (
	BackendX11      = "x11"
	BackendHeadless = "headless"
)

// Config 描述窗口、资源与绘制颜色。
type Config struct {
	Window WindowConfig `yaml:"window"`
	// Backend 为 x11 或 headless。
	Backend string `yaml:"backend"`
	// Frames 为 headless 后端写出 PNG 帧的目录。
	Frames string `yaml:"frames"`
	// Assets 为字体与图片相对路径的根目录。
	Assets string `yaml:"assets"`
	// Fonts 把字体名映射到字体文件。
	Fonts  map[string]string `yaml:"fonts"`
	Colors ColorConfig       `yaml:"colors"`
	// Debug 非空时写出每次求解后的布局 JSON。
	Debug string `yaml:"debug"`
	// PDF 非空时每帧额外导出 PDF。
	PDF            string `yaml:"pdf"`
	ImageCacheSize int    `yaml:"image_cache_size"`
}

// WindowConfig 为窗口位置与尺寸（像素）。
type WindowConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ColorConfig 使用 #RRGGBB 或 #RRGGBBAA 形式的颜色。
type ColorConfig struct {
	Clear  string `yaml:"clear"`
	Canvas string `yaml:"canvas"`
}

// Default 返回未读取任何文件时的配置。
func Default() Config {
	return Config{
		Backend: BackendX11,
		Colors:  ColorConfig{Clear: "#ffffff", Canvas: "#dddddd"},
	}
}

// Load 读取 path 并叠加到默认配置上。相对的 assets/frames 路径基于配置文件所在目录。
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	dir := filepath.Dir(path)
	cfg.Assets = relativeTo(dir, cfg.Assets)
	cfg.Frames = relativeTo(dir, cfg.Frames)
	return cfg, nil
}

func relativeTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate 检查视口尺寸、后端名称与颜色。
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("窗口尺寸必须为正数，当前 %dx%d", c.Window.Width, c.Window.Height))
	}
	switch c.Backend {
	case BackendX11, BackendHeadless:
	default:
		errs = append(errs, fmt.Errorf("未知后端 %q", c.Backend))
	}
	if _, _, err := c.ParsedColors(); err != nil {
		errs = append(errs, err)
	}
	if c.ImageCacheSize < 0 {
		errs = append(errs, fmt.Errorf("image_cache_size 不能为负数"))
	}
	return errors.Join(errs...)
}

// ParsedColors 返回清屏色与画布色。
func (c Config) ParsedColors() (clearColor, canvasColor scene.Color, err error) {
	if clearColor, err = scene.ParseHex(c.Colors.Clear); err != nil {
		return clearColor, canvasColor, fmt.Errorf("colors.clear: %w", err)
	}
	if canvasColor, err = scene.ParseHex(c.Colors.Canvas); err != nil {
		return clearColor, canvasColor, fmt.Errorf("colors.canvas: %w", err)
	}
	return clearColor, canvasColor, nil
}
