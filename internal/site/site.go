package site

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgallion1/docsite/internal/content"
	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/dgallion1/docsite/internal/markdown"
	"github.com/dgallion1/docsite/internal/search"
)

// Snapshot is one immutable load of the content tree.
type Snapshot struct {
	Sections    []doctree.Section
	Index       *search.Index
	Fingerprint string
	LoadedAt    time.Time

	plain map[string]string // entry ID -> rendered plain text
}

// Snippet returns a preview of the entry's rendered text, truncated to n
// runes. It falls back to the raw markdown when no rendering is cached.
func (s *Snapshot) Snippet(e search.Entry, n int) string {
	text, ok := s.plain[e.ID]
	if !ok {
		return e.Snippet(n)
	}
	return search.Entry{Content: text}.Snippet(n)
}

// Site owns the current snapshot and swaps it on reload.
type Site struct {
	loader    *content.Loader
	renderer  *markdown.Renderer
	searchCfg search.Config
	log       *slog.Logger

	loadMu sync.Mutex // serializes Load

	mu   sync.RWMutex
	snap *Snapshot
}

// New creates a site. Call Load before serving.
func New(loader *content.Loader, renderer *markdown.Renderer, searchCfg search.Config, log *slog.Logger) *Site {
	return &Site{
		loader:    loader,
		renderer:  renderer,
		searchCfg: searchCfg,
		log:       log,
	}
}

// Load reads the content tree and publishes a new snapshot when the
// document set changed. A failed load leaves the current snapshot in place.
func (s *Site) Load(ctx context.Context) (bool, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := time.Now()
	sections, err := s.loader.LoadSectionGroups(ctx)
	if err != nil {
		return false, fmt.Errorf("load content from %s: %w", s.loader.Root(), err)
	}

	fp := Fingerprint(sections)
	if cur := s.Snapshot(); cur != nil && cur.Fingerprint == fp {
		s.log.Debug("content unchanged", "fingerprint", fp)
		return false, nil
	}

	entries := search.Flatten(sections)
	plain := make(map[string]string, len(entries))
	for _, e := range entries {
		text, err := s.renderer.PlainText(e.Content)
		if err != nil {
			s.log.Warn("plain text extraction failed", "id", e.ID, "error", err)
			continue
		}
		plain[e.ID] = text
	}

	snap := &Snapshot{
		Sections:    sections,
		Index:       search.New(entries, s.searchCfg),
		Fingerprint: fp,
		LoadedAt:    time.Now(),
		plain:       plain,
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.log.Info("content loaded",
		"sections", len(sections),
		"documents", len(entries),
		"fingerprint", fp,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return true, nil
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Site) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Sections returns the ordered sections of the current snapshot.
func (s *Site) Sections() []doctree.Section {
	snap := s.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Sections
}

// Section returns a section by slug.
func (s *Site) Section(slug string) (doctree.Section, bool) {
	for _, sec := range s.Sections() {
		if sec.Slug == slug {
			return sec, true
		}
	}
	return doctree.Section{}, false
}

// Document returns a document by section and document slug.
func (s *Site) Document(sectionSlug, docSlug string) (doctree.Document, bool) {
	sec, ok := s.Section(sectionSlug)
	if !ok {
		return doctree.Document{}, false
	}
	return sec.Doc(docSlug)
}

// Search queries the current index.
func (s *Site) Search(query string) []search.Result {
	snap := s.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Index.SearchScored(query)
}

// Page is a document prepared for display.
type Page struct {
	Section  doctree.Section
	Document doctree.Document
	HTML     string
	Outline  *doctree.Outline
	ETag     string
}

// Page renders a document of the current snapshot.
func (s *Site) Page(sectionSlug, docSlug string) (Page, bool, error) {
	snap := s.Snapshot()
	if snap == nil {
		return Page{}, false, nil
	}
	var sec doctree.Section
	found := false
	for _, candidate := range snap.Sections {
		if candidate.Slug == sectionSlug {
			sec, found = candidate, true
			break
		}
	}
	if !found {
		return Page{}, false, nil
	}
	doc, ok := sec.Doc(docSlug)
	if !ok {
		return Page{}, false, nil
	}

	html, err := s.renderer.Render(doc.Content)
	if err != nil {
		return Page{}, true, fmt.Errorf("render %s/%s: %w", sectionSlug, docSlug, err)
	}
	return Page{
		Section:  sec,
		Document: doc,
		HTML:     html,
		Outline:  s.renderer.Outline(doc.Content),
		ETag:     strconv.Quote(snap.Fingerprint + "-" + sectionSlug + "-" + docSlug),
	}, true, nil
}

// ReadMarkdown reads a file straight from the content tree, bypassing the
// snapshot. An empty sectionSlug reads from the root.
func (s *Site) ReadMarkdown(ctx context.Context, sectionSlug, fileName string) (string, error) {
	return s.loader.ReadSectionMarkdown(ctx, fileName, sectionSlug)
}

// Renderer returns the markdown renderer.
func (s *Site) Renderer() *markdown.Renderer {
	return s.renderer
}

// Fingerprint hashes everything a load produces, so two loads of the same
// tree share a fingerprint.
func Fingerprint(sections []doctree.Section) string {
	h := xxhash.New()
	for _, sec := range sections {
		writeField(h, sec.Slug)
		writeField(h, sec.Title)
		for _, d := range sec.Docs {
			writeField(h, d.Slug)
			writeField(h, d.Title)
			writeField(h, d.FileName)
			writeField(h, strconv.Itoa(d.Order))
			writeField(h, d.Content)
		}
		writeField(h, "")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func writeField(h *xxhash.Digest, s string) {
	_, _ = h.WriteString(strconv.Itoa(len(s)))
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(s)
}
