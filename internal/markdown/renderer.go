package markdown

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// DefaultCodeStyle is the chroma style used for fenced code blocks.
const DefaultCodeStyle = "github"

// Renderer turns document markdown into sanitized HTML.
//
// Safe for concurrent use.
type Renderer struct {
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCodeStyle selects the chroma style for code blocks. Unknown names
// fall back to chroma's default style.
func WithCodeStyle(name string) Option {
	return func(r *Renderer) {
		r.style = styles.Get(name)
	}
}

// NewRenderer creates a GFM renderer with highlighted code blocks.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		style:     styles.Get(DefaultCodeStyle),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{
				style:     r.style,
				formatter: r.formatter,
			}, 100)),
		),
	)
	r.policy = newPolicy()
	return r
}

// newPolicy allows user-generated formatting plus chroma's class names.
// Fully-qualified links open in a new tab without a referrer.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)).OnElements("pre", "code", "span")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnFullyQualifiedLinks(true)
	return p
}

// Render converts markdown to sanitized HTML.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// WriteCodeCSS writes the stylesheet for highlighted code blocks.
func (r *Renderer) WriteCodeCSS(w io.Writer) error {
	return r.formatter.WriteCSS(w, r.style)
}
