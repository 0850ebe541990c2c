// viereck-container 在标准输出打印一个容器节点的 JSON。
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
	var opts scene.StyleOpts
	var children cli.Children
	var background cli.ColorFlag
	cli.RegisterStyle(flag.CommandLine, &opts)
	flag.Var(&children, "child", "子节点 JSON，可重复")
	flag.Var(&background, "background", "背景色，0xRRGGBBAA 或 #RRGGBB[AA]")
	radius := flag.Float64("radius", 0, "圆角半径（像素）")
	dataJSON := flag.String("data", "", "用于替换 ${...} 占位符的 JSON 数据")
	flag.Parse()

	data, err := binding.Decode(*dataJSON)
	if err != nil {
		log.Fatal(err)
	}

	node := scene.NewContainer(opts.ToStyle(), children...)
	node.Background = background.Color
	if *radius > 0 {
		node.CornerRadius = radius
	}
	if err := cli.Emit(os.Stdout, node, data); err != nil {
		log.Fatalf("输出容器失败: %v", err)
	}
}
