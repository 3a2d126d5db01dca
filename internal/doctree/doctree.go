package doctree

// Section is one top-level content directory.
type Section struct {
	Title string     `json:"title"` // Humanized slug
	Slug  string     `json:"slug"`  // Directory name
	Order int        `json:"order"` // Position in the canonical section list
	Docs  []Document `json:"docs"`
}

// Document is a single markdown file within a section.
type Document struct {
	Title    string `json:"title"`    // First heading, front matter title or humanized slug
	Slug     string `json:"slug"`     // Unique within the owning section
	Content  string `json:"content"`  // Raw markdown, unchanged
	FileName string `json:"fileName"` // Source file name inside the section directory
	Order    int    `json:"order"`    // Numeric file prefix
}

// Doc returns the document with the given slug.
func (s Section) Doc(slug string) (Document, bool) {
	for _, d := range s.Docs {
		if d.Slug == slug {
			return d, true
		}
	}
	return Document{}, false
}

// Landing returns the section's README document, if it has one.
func (s Section) Landing() (Document, bool) {
	return s.Doc(s.Slug)
}

// Outline is the heading hierarchy of a rendered document.
type Outline struct {
	Headings []*Heading `json:"headings"` // Top-level headings
}

// Heading is a recursive node in the outline.
type Heading struct {
	Level    int        `json:"level"`  // 1-6
	Title    string     `json:"title"`  // Heading text
	Anchor   string     `json:"anchor"` // Generated HTML id
	Children []*Heading `json:"children,omitempty"`
}

// Walk visits every heading depth-first.
func (o *Outline) Walk(fn func(h *Heading, depth int)) {
	var walk func(hs []*Heading, depth int)
	walk = func(hs []*Heading, depth int) {
		for _, h := range hs {
			fn(h, depth)
			walk(h.Children, depth+1)
		}
	}
	walk(o.Headings, 0)
}
