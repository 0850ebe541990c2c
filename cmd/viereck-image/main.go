// viereck-image 在标准输出打印一个图片节点的 JSON。
package main

import (
	"flag"
	"log"
	"os"

	"github.com/ByLCY/viereck/binding"
	"github.com/ByLCY/viereck/cmd/internal/cli"
	canvasrenderer "github.com/ByLCY/viereck/renderer/canvas"
	"github.com/ByLCY/viereck/scene"
)

func main() {
	var opts scene.StyleOpts
	cli.RegisterStyle(flag.CommandLine, &opts)
	path := flag.String("path", "", "图片路径")
	noSizeRead := flag.Bool("no-size-read", false, "不读取图片尺寸；默认以图片像素尺寸作为 width/height")
	allowDeform := flag.Bool("allow-deform", false, "允许拉伸；默认在 width/height 均为像素值时锁定宽高比")
	dataJSON := flag.String("data", "", "用于替换 ${...} 占位符的 JSON 数据")
	flag.Parse()

	if *path == "" {
		log.Fatal("必须指定 -path")
	}
	data, err := binding.Decode(*dataJSON)
	if err != nil {
		log.Fatal(err)
	}

	if !*noSizeRead {
		resolved := binding.Interpolate(*path, data)
		w, h, err := canvasrenderer.NewImageStore("", 1).ImageSize(resolved)
		if err != nil {
			log.Fatalf("读取图片尺寸失败: %v", err)
		}
		cli.SetIntrinsicSize(&opts, w, h)
	}
	if !*allowDeform {
		cli.LockAspectRatio(&opts)
	}

	node := scene.NewImage(*path, opts.ToStyle())
	if err := cli.Emit(os.Stdout, node, data); err != nil {
		log.Fatalf("输出图片失败: %v", err)
	}
}
