package canvasrenderer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tdewolff/canvas/renderers/pdf"
)

// ExportPDF 把当前帧以矢量形式写入 w（单页，页面尺寸与表面一致，单位 mm）。
func (s *Surface) ExportPDF(w io.Writer) error {
	writer := pdf.New(w, s.width, s.height, nil)
	writer.SetInfo("viereck frame", "", "", "", "viereck")
	s.c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

// WritePDF 把当前帧导出到 path。
func (s *Surface) WritePDF(path string) error {
	var buf bytes.Buffer
	if err := s.ExportPDF(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
