package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSlug(t *testing.T) {
	tests := []struct {
		name      string
		wantSlug  string
		wantOrder int
	}{
		{"01-intro.md", "intro", 1},
		{"2_getting-started.md", "getting-started", 2},
		{"10-api-keys.MD", "api-keys", 10},
		{"007_x.md", "x", 7},
		{"intro.md", "intro", MaxOrder},
		{"README.md", "README", MaxOrder},
		{"3.md", "3", MaxOrder},
		{"3-.md", "3-", MaxOrder},
		{"v2-notes.md", "v2-notes", MaxOrder},
		{"99999999999999999999999-huge.md", "99999999999999999999999-huge", MaxOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, order := ParseSlug(tt.name)
			assert.Equal(t, tt.wantSlug, slug)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestParseSlug_SeparatorIndependent(t *testing.T) {
	for _, rest := range []string{"a", "quick-start", "faq_2"} {
		dashSlug, dashOrder := ParseSlug("42-" + rest + ".md")
		underSlug, underOrder := ParseSlug("42_" + rest + ".md")
		assert.Equal(t, rest, dashSlug)
		assert.Equal(t, dashSlug, underSlug)
		assert.Equal(t, 42, dashOrder)
		assert.Equal(t, dashOrder, underOrder)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"h2 first line", "## Getting Started\nbody", "Getting Started", true},
		{"h1 after text", "intro line\n# Title  \nmore", "Title", true},
		{"h6", "###### Deep", "Deep", true},
		{"seven hashes", "####### Too deep\n", "", false},
		{"no space", "#hashtag\n", "", false},
		{"tab separator", "#\tTabbed", "Tabbed", true},
		{"crlf", "# Windows\r\nbody", "Windows", true},
		{"empty heading skipped", "#   \n## Real", "Real", true},
		{"indented not heading", "  # Indented", "", false},
		{"none", "just text\nmore text", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTitle(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHumanizeSlug(t *testing.T) {
	tests := map[string]string{
		"api-keys":          "Api Keys",
		"overview":          "Overview",
		"getting_started":   "Getting Started",
		"a--b__c":           "A B C",
		"-leading":          "Leading",
		"dcap-verification": "Dcap Verification",
		"v2.0-notes":        "V2.0 Notes",
		"already Upper":     "Already Upper",
	}
	for in, want := range tests {
		assert.Equal(t, want, HumanizeSlug(in), in)
	}
}

func TestDocumentTitle_FrontMatter(t *testing.T) {
	raw := "---\ntitle: From Front Matter\n---\n# Heading Title\n"
	assert.Equal(t, "From Front Matter", documentTitle(raw, "slug"))

	noTitle := "---\nauthor: someone\n---\n# Heading Title\n"
	assert.Equal(t, "Heading Title", documentTitle(noTitle, "slug"))

	assert.Equal(t, "Api Keys", documentTitle("no headings here", "api-keys"))
}
