// Package dsl 解析命令行工具使用的精简样式字符串，例如
//
//	width: 100%; grow: 1; padding: 4 8; align-items: center
//
// 声明之间的分号可以省略，键名接受 kebab-case 与 snake_case。
package dsl

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/viereck/scene"
)

var (
	styleLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Key", Pattern: `[A-Za-z_][A-Za-z0-9_-]*[ \t]*:`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d*|\.\d+|\d+)(?:%|px)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `;`},
	})

	sheetParser = participle.MustBuild[Sheet](
		participle.Lexer(styleLexer),
		participle.Elide("Whitespace"),
	)
)

// Sheet is the root AST node of a style string.
type Sheet struct {
	Pos   lexer.Position `parser:""`
	Decls []*Decl        `parser:"';'* ( @@ ';'* )*"`
}

// Decl 是一条 "键: 值..." 声明。
type Decl struct {
	Pos    lexer.Position `parser:""`
	Key    Key            `parser:"@Key"`
	Values []string       `parser:"@( Number | Ident )+"`
}

// Key 在捕获时去掉结尾的冒号与空白。
type Key string

// Capture implements participle.Capture.
func (k *Key) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("key capture requires value")
	}
	*k = Key(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(values[0]), ":")))
	return nil
}

// ParseString parses a style string.
func ParseString(input string) (*Sheet, error) {
	return sheetParser.ParseString("", input)
}

// Apply 把所有声明依次写入 opts，后出现的声明覆盖先前的。
func (s *Sheet) Apply(opts *scene.StyleOpts) error {
	for _, d := range s.Decls {
		if err := opts.Set(string(d.Key), d.Values); err != nil {
			return fmt.Errorf("%d:%d: %w", d.Pos.Line, d.Pos.Column, err)
		}
	}
	return nil
}

// ParseInto 解析 input 并叠加到 opts 上。空字符串不做任何修改。
func ParseInto(input string, opts *scene.StyleOpts) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	sheet, err := ParseString(input)
	if err != nil {
		return fmt.Errorf("解析样式失败: %w", err)
	}
	return sheet.Apply(opts)
}

// Style 解析 input 并返回完整样式。
func Style(input string) (scene.Style, error) {
	var opts scene.StyleOpts
	if err := ParseInto(input, &opts); err != nil {
		return scene.Style{}, err
	}
	return opts.ToStyle(), nil
}
