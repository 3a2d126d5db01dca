package api

import (
	"net/http"
)

// handleReload re-reads the content tree and swaps the snapshot if it changed.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	changed, err := s.site.Load(r.Context())
	if err != nil {
		s.log.Error("reload failed", "error", err)
		jsonError(w, "reload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	snap := s.site.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"changed":     changed,
		"fingerprint": snap.Fingerprint,
		"documents":   snap.Index.Len(),
	})
}
