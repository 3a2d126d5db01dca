package markdown

import (
	"strings"

	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Outline builds the heading hierarchy of a document. Anchors match the
// ids Render assigns to the same headings.
func (r *Renderer) Outline(src string) *doctree.Outline {
	source := []byte(src)
	doc := r.md.Parser().Parse(text.NewReader(source))

	type stackEntry struct {
		heading *doctree.Heading
		level   int
	}

	// Root is level 0; every heading nests under it.
	root := &doctree.Heading{}
	stack := []stackEntry{{heading: root, level: 0}}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}

		heading := &doctree.Heading{
			Level: h.Level,
			Title: strings.TrimSpace(string(h.Text(source))),
		}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				heading.Anchor = string(b)
			}
		}

		// Pop until the top of the stack is a shallower heading.
		for len(stack) > 1 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].heading
		parent.Children = append(parent.Children, heading)
		stack = append(stack, stackEntry{heading: heading, level: h.Level})
	}

	return &doctree.Outline{Headings: root.Children}
}
