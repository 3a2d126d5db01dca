package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/dgallion1/docsite/internal/content"
	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/go-chi/chi/v5"
)

type docSummary struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	FileName string `json:"fileName"`
	Order    int    `json:"order"`
}

type sectionSummary struct {
	Title string       `json:"title"`
	Slug  string       `json:"slug"`
	Order int          `json:"order"`
	Docs  []docSummary `json:"docs"`
}

func summarize(sec doctree.Section) sectionSummary {
	out := sectionSummary{
		Title: sec.Title,
		Slug:  sec.Slug,
		Order: sec.Order,
		Docs:  make([]docSummary, 0, len(sec.Docs)),
	}
	for _, d := range sec.Docs {
		out.Docs = append(out.Docs, docSummary{
			Title:    d.Title,
			Slug:     d.Slug,
			FileName: d.FileName,
			Order:    d.Order,
		})
	}
	return out
}

// handleListSections lists every section with its document summaries.
func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections := s.site.Sections()
	out := make([]sectionSummary, 0, len(sections))
	for _, sec := range sections {
		out = append(out, summarize(sec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": out})
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	sec, ok := s.site.Section(chi.URLParam(r, "section"))
	if !ok {
		jsonError(w, "section not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summarize(sec))
}

// handleGetDocument returns a document with its rendered HTML and outline.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	sectionSlug := chi.URLParam(r, "section")
	docSlug := chi.URLParam(r, "doc")

	page, ok, err := s.site.Page(sectionSlug, docSlug)
	if err != nil {
		s.log.Error("render document", "section", sectionSlug, "doc", docSlug, "error", err)
		jsonError(w, "failed to render document", http.StatusInternalServerError)
		return
	}
	if !ok {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("ETag", page.ETag)
	if r.Header.Get("If-None-Match") == page.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	headings := page.Outline.Headings
	if headings == nil {
		headings = []*doctree.Heading{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"section": map[string]string{
			"title": page.Section.Title,
			"slug":  page.Section.Slug,
		},
		"document": page.Document,
		"html":     page.HTML,
		"outline":  headings,
	})
}

// handleGetFile serves a markdown file from disk as-is, so edits show up
// before the next reload.
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	md, err := s.site.ReadMarkdown(r.Context(), chi.URLParam(r, "section"), chi.URLParam(r, "file"))
	switch {
	case errors.Is(err, content.ErrInvalidPath):
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, content.ErrNotFound):
		jsonError(w, "file not found", http.StatusNotFound)
		return
	case err != nil:
		s.log.Error("read markdown", "error", err)
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, md)
}
