package canvasrenderer

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/viereck/layout"
	"github.com/ByLCY/viereck/renderer"
)

// DefaultImageCacheSize 为解码图片缓存的默认容量。
const DefaultImageCacheSize = 64

// ImageStore 从磁盘解码图片，并以 LRU 缓存最近使用的结果。测量与绘制共享同一份缓存，
// 因此一次重绘里每张图片只解码一次。
type ImageStore struct {
	baseDir string
	cache   *lru.Cache[string, image.Image]
}

var (
	_ layout.ImageProber = (*ImageStore)(nil)
	_ renderer.Images    = (*ImageStore)(nil)
)

// NewImageStore 创建以 baseDir 解析相对路径的图片仓库，size <= 0 时使用默认容量。
func NewImageStore(baseDir string, size int) *ImageStore {
	if size <= 0 {
		size = DefaultImageCacheSize
	}
	cache, _ := lru.New[string, image.Image](size)
	return &ImageStore{baseDir: baseDir, cache: cache}
}

// Load 实现 renderer.Images。
func (s *ImageStore) Load(path string) (image.Image, error) {
	full := s.resolve(path)
	if img, ok := s.cache.Get(full); ok {
		return img, nil
	}
	file, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", path, err)
	}
	s.cache.Add(full, img)
	return img, nil
}

// ImageSize 实现 layout.ImageProber，返回图片的原始像素尺寸。
func (s *ImageStore) ImageSize(path string) (int, int, error) {
	img, err := s.Load(path)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Purge 清空缓存，下一次访问会重新读取文件。
func (s *ImageStore) Purge() { s.cache.Purge() }

func (s *ImageStore) resolve(path string) string {
	if filepath.IsAbs(path) || s.baseDir == "" {
		return path
	}
	return filepath.Join(s.baseDir, path)
}
