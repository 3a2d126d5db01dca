package api

import (
	"net/http"

	"github.com/dgallion1/docsite/internal/search"
)

type searchHit struct {
	ID           string  `json:"id"`
	SectionTitle string  `json:"sectionTitle"`
	SectionSlug  string  `json:"sectionSlug"`
	DocTitle     string  `json:"docTitle"`
	DocSlug      string  `json:"docSlug"`
	Snippet      string  `json:"snippet"`
	Score        float64 `json:"score"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	snap := s.site.Snapshot()
	if snap == nil {
		jsonError(w, "content not loaded", http.StatusServiceUnavailable)
		return
	}

	results := snap.Index.SearchScored(query)
	hits := make([]searchHit, 0, len(results))
	for _, res := range results {
		hits = append(hits, searchHit{
			ID:           res.ID,
			SectionTitle: res.SectionTitle,
			SectionSlug:  res.SectionSlug,
			DocTitle:     res.DocTitle,
			DocSlug:      res.DocSlug,
			Snippet:      snap.Snippet(res.Entry, search.DefaultSnippetLength),
			Score:        res.Score,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": hits,
	})
}
