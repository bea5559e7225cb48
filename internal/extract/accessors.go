package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Text returns the trimmed text content of node, or nil when the node is
// absent or carries no text. Safe on nil nodes.
func Text(node *xmlquery.Node) *string {
	if node == nil {
		return nil
	}
	text := strings.TrimSpace(node.InnerText())
	if text == "" {
		return nil
	}
	return &text
}

// Attr returns the named attribute of node, or nil when the node is
// absent or the attribute is not present. An attribute explicitly set to
// the empty string still comes back nil: blank codes carry no signal.
func Attr(node *xmlquery.Node, name string) *string {
	if node == nil {
		return nil
	}
	for _, a := range node.Attr {
		if a.Name.Local == name && a.Value != "" {
			v := a.Value
			return &v
		}
	}
	return nil
}

// childTexts collects the trimmed text of every direct child of parent
// with the given element name, skipping blanks.
func childTexts(parent *xmlquery.Node, name string) []string {
	if parent == nil {
		return nil
	}
	var out []string
	for _, child := range parent.SelectElements(name) {
		if t := Text(child); t != nil {
			out = append(out, *t)
		}
	}
	return out
}
