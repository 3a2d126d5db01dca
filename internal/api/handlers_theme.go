package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/docsite/internal/theme"
)

const (
	prefersColorScheme = "Sec-CH-Prefers-Color-Scheme"
	themeCookieMaxAge  = 365 * 24 * time.Hour
)

type themeState struct {
	Preference theme.Mode `json:"preference"`
	Resolved   theme.Mode `json:"resolved"`
}

func currentTheme(r *http.Request) theme.Mode {
	c, err := r.Cookie(theme.CookieName)
	if err != nil {
		return theme.Default
	}
	m, err := theme.Parse(c.Value)
	if err != nil {
		return theme.Default
	}
	return m
}

func prefersDark(r *http.Request) bool {
	v := strings.Trim(r.Header.Get(prefersColorScheme), `" `)
	return strings.EqualFold(v, "dark")
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Accept-CH", prefersColorScheme)
	w.Header().Add("Vary", prefersColorScheme)
	m := currentTheme(r)
	writeJSON(w, http.StatusOK, themeState{
		Preference: m,
		Resolved:   theme.Resolve(m, prefersDark(r)),
	})
}

// handlePutTheme stores the preference in a cookie.
func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preference string `json:"preference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	m, err := theme.Parse(req.Preference)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     theme.CookieName,
		Value:    string(m),
		Path:     "/",
		MaxAge:   int(themeCookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Accept-CH", prefersColorScheme)
	writeJSON(w, http.StatusOK, themeState{
		Preference: m,
		Resolved:   theme.Resolve(m, prefersDark(r)),
	})
}
