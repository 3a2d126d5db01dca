package search

import (
	"strings"

	"github.com/dgallion1/docsite/internal/doctree"
)

// DefaultSnippetLength is the preview size shown under a result.
const DefaultSnippetLength = 160

// Entry is one searchable document, flattened out of its section.
type Entry struct {
	ID           string `json:"id"`
	SectionTitle string `json:"sectionTitle"`
	SectionSlug  string `json:"sectionSlug"`
	DocTitle     string `json:"docTitle"`
	DocSlug      string `json:"docSlug"`
	Content      string `json:"content"`
}

// Flatten turns ordered sections into entries, section by section.
func Flatten(sections []doctree.Section) []Entry {
	var entries []Entry
	for _, s := range sections {
		for _, d := range s.Docs {
			entries = append(entries, Entry{
				ID:           s.Slug + "-" + d.Slug,
				SectionTitle: s.Title,
				SectionSlug:  s.Slug,
				DocTitle:     d.Title,
				DocSlug:      d.Slug,
				Content:      d.Content,
			})
		}
	}
	return entries
}

// Snippet collapses whitespace in the content and truncates it to n runes.
func (e Entry) Snippet(n int) string {
	collapsed := strings.Join(strings.Fields(e.Content), " ")
	if n <= 0 {
		return collapsed
	}
	runes := []rune(collapsed)
	if len(runes) <= n {
		return collapsed
	}
	return string(runes[:n])
}
