// viereck-text 在标准输出打印一个文本节点的 JSON。
package main

import (
	"flag"
	"log"
	"os"

	"github.com/ByLCY/viereck/binding"
	"github.com/ByLCY/viereck/cmd/internal/cli"
	"github.com/ByLCY/viereck/scene"
)

func main() {
	// 文本默认按基线对齐，且不随剩余空间伸缩。
	opts := scene.StyleOpts{
		AlignSelf: scene.Ptr(scene.AlignSelfBaseline),
		Grow:      scene.Ptr(0.0),
		Shrink:    scene.Ptr(0.0),
	}
	cli.RegisterStyle(flag.CommandLine, &opts)
	font := flag.String("font", "regular", "字体名")
	size := flag.Float64("size", 12, "字号（像素）")
	text := flag.String("text", "", "文本内容")
	color := cli.ColorFlag{Color: scene.Ptr(scene.RGBA32(0x000000ff))}
	flag.Var(&color, "color", "文字颜色，0xRRGGBBAA 或 #RRGGBB[AA]")
	dataJSON := flag.String("data", "", "用于替换 ${...} 占位符的 JSON 数据")
	flag.Parse()

	if *size <= 0 {
		log.Fatalf("字号必须为正数: %v", *size)
	}
	data, err := binding.Decode(*dataJSON)
	if err != nil {
		log.Fatal(err)
	}

	node := scene.NewText(*font, *text, *size, *color.Color, opts.ToStyle())
	if err := cli.Emit(os.Stdout, node, data); err != nil {
		log.Fatalf("输出文本失败: %v", err)
	}
}
