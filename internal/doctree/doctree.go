package doctree

import "strings"

// DocTree is the root of a parsed report.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Text flattens the tree into report text in document order. Every heading
// and text block is written as its own paragraph: it starts on a new line and
// is followed by a blank line, so section headers such as
// "第三节 管理层讨论与分析" are always preceded by a newline.
func (t *DocTree) Text() string {
	var sb strings.Builder
	block := func(s string) {
		sb.WriteString("\n")
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	var walk func(nodes []*DocNode)
	walk = func(nodes []*DocNode) {
		for _, n := range nodes {
			if n.Title != "" {
				block(n.Title)
			}
			if n.Text != "" {
				block(n.Text)
			}
			walk(n.Children)
		}
	}
	walk(t.Children)
	return sb.String()
}
