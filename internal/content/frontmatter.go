package content

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// docMeta holds the front matter fields the loader understands.
type docMeta struct {
	Title string `yaml:"title"`
}

// parseFrontMatter separates an optional YAML front matter block from the
// markdown body. Content without a well-formed block is all body.
func parseFrontMatter(content string) (docMeta, string) {
	var meta docMeta
	if !strings.HasPrefix(content, "---") {
		return meta, content
	}
	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return docMeta{}, content
	}
	return meta, string(body)
}

// documentTitle picks the display title: front matter, then the first
// heading, then the humanized slug.
func documentTitle(content, slug string) string {
	meta, body := parseFrontMatter(content)
	if t := strings.TrimSpace(meta.Title); t != "" {
		return t
	}
	if t, ok := ExtractTitle(body); ok {
		return t
	}
	return HumanizeSlug(slug)
}
