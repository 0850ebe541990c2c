package layout

import (
	"encoding/json"
	"os"
)

type debugNode struct {
	Kind      string      `json:"kind"`
	Rect      Rect        `json:"rect"`
	Intrinsic *Size       `json:"intrinsic,omitempty"`
	Text      string      `json:"text,omitempty"`
	Path      string      `json:"path,omitempty"`
	Children  []debugNode `json:"children,omitempty"`
}

// WriteDebugJSON 将求解后的布局树输出为 JSON，便于调试或可视化。
func WriteDebugJSON(tree *Tree, path string) error {
	if tree == nil || tree.Root == nil {
		return nil
	}
	data, err := json.MarshalIndent(debugTree(tree.Root), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func debugTree(n *Node) debugNode {
	d := debugNode{Kind: "Root", Rect: n.Geometry(), Intrinsic: n.Intrinsic}
	if n.Object != nil {
		d.Kind = n.Object.Kind.String()
		d.Text = n.Object.Text
		d.Path = n.Object.Path
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, debugTree(c))
	}
	return d
}
