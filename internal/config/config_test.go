package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/docsite/internal/content"
	"github.com/dgallion1/docsite/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{
		"PORT", "CONTENT_ROOT", "SECTION_ORDER", "WATCH_DEBOUNCE", "LOG_LEVEL", "CORS_ORIGINS", "ADMIN_API_KEY",
		"SEARCH_DEFAULT_LIMIT", "SEARCH_MAX_RESULTS", "SEARCH_THRESHOLD", "SEARCH_MIN_TOKEN", "SEARCH_TITLE_WEIGHT", "SEARCH_MAX_QUERY",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "content/sections", cfg.ContentRoot)
	assert.Equal(t, content.DefaultSectionOrder, cfg.SectionOrder)
	assert.Equal(t, search.DefaultConfig(), cfg.Search())
	assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.AdminAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("SECTION_ORDER", "guides, ,api")
	t.Setenv("SEARCH_MAX_RESULTS", "-3")
	t.Setenv("SEARCH_THRESHOLD", "0.2")
	t.Setenv("SEARCH_MAX_QUERY", "64")
	t.Setenv("SKIP_UNREADABLE", "true")
	t.Setenv("WATCH_DEBOUNCE", "1s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"guides", "api"}, cfg.SectionOrder)
	assert.Equal(t, 10, cfg.SearchMaxResults)
	assert.InDelta(t, 0.2, cfg.SearchThreshold, 1e-9)
	assert.Equal(t, 64, cfg.Search().MaxQueryLength)
	assert.True(t, cfg.SkipUnreadable)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{ContentRoot: dir, SearchThreshold: 0.35, SearchTitleWeight: 0.7}
	require.NoError(t, cfg.Validate())

	missing := cfg
	missing.ContentRoot = dir + "/nope"
	assert.Error(t, missing.Validate())

	empty := cfg
	empty.ContentRoot = ""
	assert.Error(t, empty.Validate())

	badWeight := cfg
	badWeight.SearchTitleWeight = 1.5
	assert.Error(t, badWeight.Validate())
}
