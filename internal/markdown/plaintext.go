package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText returns the visible text of a rendered document with runs of
// whitespace collapsed to single spaces.
func (r *Renderer) PlainText(src string) (string, error) {
	rendered, err := r.Render(src)
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(textContent(doc)), " "), nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// isBlock reports elements whose text must not run into a neighbor's.
func isBlock(tag string) bool {
	switch tag {
	case "p", "li", "td", "th", "tr", "pre", "blockquote", "br",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
