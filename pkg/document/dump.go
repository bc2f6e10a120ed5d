package document

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the tree for debugging, one node per line.
func Dump(d *Document) string {
	tree := treeprint.NewWithRoot("document")
	for _, n := range d.Children {
		dumpNode(tree, n)
	}
	return tree.String()
}

// DumpNode renders a single subtree.
func DumpNode(n Node) string {
	tree := treeprint.NewWithRoot(label(n))
	if el, ok := n.(*Element); ok {
		for _, c := range el.Children {
			dumpNode(tree, c)
		}
	}
	return tree.String()
}

func dumpNode(tree treeprint.Tree, n Node) {
	switch n := n.(type) {
	case *Text:
		tree.AddNode(label(n))
	case *Element:
		branch := tree.AddBranch(label(n))
		for _, c := range n.Children {
			dumpNode(branch, c)
		}
	}
}

func label(n Node) string {
	switch n := n.(type) {
	case *Text:
		var b strings.Builder
		fmt.Fprintf(&b, "%q", n.Text)
		if n.Marks.Len() > 0 {
			b.WriteString(" " + formatProps(&n.Marks))
		}
		return b.String()
	case *Element:
		var b strings.Builder
		b.WriteString(string(n.Type))
		if n.ID != "" {
			b.WriteString("#" + n.ID)
		}
		if n.ClassName != "" {
			b.WriteString("." + n.ClassName)
		}
		if n.Style.Len() > 0 {
			b.WriteString(" style=" + formatProps(&n.Style))
		}
		if n.VoidData.Len() > 0 {
			b.WriteString(" data=" + formatProps(&n.VoidData))
		}
		return b.String()
	}
	return "?"
}

func formatProps(p *Props) string {
	parts := make([]string, 0, p.Len())
	p.Range(func(k string, v any) bool {
		if b, ok := v.(bool); ok && b {
			parts = append(parts, k)
		} else {
			parts = append(parts, k+"="+FormatValue(v))
		}
		return true
	})
	return "{" + strings.Join(parts, " ") + "}"
}
