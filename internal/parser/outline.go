package parser

import (
	"strings"

	"github.com/dgallion1/mdagest/internal/doctree"
)

// outline builds a DocTree from a flat stream of headings and text blocks,
// nesting each heading under the nearest preceding heading of lower level.
type outline struct {
	root  *doctree.DocNode
	stack []outlineEntry
	text  strings.Builder
}

type outlineEntry struct {
	node  *doctree.DocNode
	level int
}

func newOutline() *outline {
	root := &doctree.DocNode{}
	return &outline{
		root:  root,
		stack: []outlineEntry{{node: root, level: 0}},
	}
}

// heading opens a new section. level must be >= 1.
func (o *outline) heading(title string, level int) {
	o.flush()
	node := &doctree.DocNode{Title: title}
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, node)
	o.stack = append(o.stack, outlineEntry{node: node, level: level})
}

// add appends a text block to the current section.
func (o *outline) add(text string) {
	if text == "" {
		return
	}
	if o.text.Len() > 0 {
		o.text.WriteString("\n\n")
	}
	o.text.WriteString(text)
}

func (o *outline) flush() {
	t := strings.TrimSpace(o.text.String())
	o.text.Reset()
	if t == "" {
		return
	}
	top := o.stack[len(o.stack)-1].node
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
}

// finish attaches the collected sections to tree. Text that appeared before
// the first heading becomes a leading untitled node.
func (o *outline) finish(tree *doctree.DocTree) {
	o.flush()
	if o.root.Text != "" {
		tree.Children = append(tree.Children, &doctree.DocNode{Text: o.root.Text})
	}
	tree.Children = append(tree.Children, o.root.Children...)
}
