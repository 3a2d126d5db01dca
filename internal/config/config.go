package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/docsite/internal/content"
	"github.com/dgallion1/docsite/internal/markdown"
	"github.com/dgallion1/docsite/internal/search"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Content tree
	ContentRoot    string
	SectionOrder   []string
	SkipUnreadable bool

	// Reloading
	WatchContent  bool
	WatchDebounce time.Duration

	// Search
	SearchDefaultLimit int
	SearchMaxResults   int
	SearchThreshold    float64
	SearchMinToken     int
	SearchTitleWeight  float64
	SearchMaxQuery     int

	// Rendering
	CodeStyle string

	// Auth for the reload endpoint; empty disables it.
	AdminAPIKey string

	CORSOrigins []string
	LogLevel    slog.Level
}

// Load reads configuration from the environment, after applying any .env
// file in the working directory. Variables already set win over .env.
func Load() Config {
	_ = godotenv.Load()

	def := search.DefaultConfig()
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ContentRoot:    envOr("CONTENT_ROOT", "content/sections"),
		SectionOrder:   envList("SECTION_ORDER", content.DefaultSectionOrder),
		SkipUnreadable: envBool("SKIP_UNREADABLE", false),

		WatchContent:  envBool("WATCH_CONTENT", false),
		WatchDebounce: envDuration("WATCH_DEBOUNCE", 250*time.Millisecond),

		SearchDefaultLimit: envInt("SEARCH_DEFAULT_LIMIT", def.DefaultLimit),
		SearchMaxResults:   envInt("SEARCH_MAX_RESULTS", def.MaxResults),
		SearchThreshold:    envFloat("SEARCH_THRESHOLD", def.Threshold),
		SearchMinToken:     envInt("SEARCH_MIN_TOKEN", def.MinTokenLength),
		SearchTitleWeight:  envFloat("SEARCH_TITLE_WEIGHT", def.TitleWeight),
		SearchMaxQuery:     envInt("SEARCH_MAX_QUERY", def.MaxQueryLength),

		CodeStyle: envOr("CODE_STYLE", markdown.DefaultCodeStyle),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		CORSOrigins: envList("CORS_ORIGINS", []string{"*"}),
		LogLevel:    envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.SearchDefaultLimit <= 0 {
		cfg.SearchDefaultLimit = def.DefaultLimit
	}
	if cfg.SearchMaxResults <= 0 {
		cfg.SearchMaxResults = def.MaxResults
	}
	if cfg.SearchMinToken <= 0 {
		cfg.SearchMinToken = def.MinTokenLength
	}
	if cfg.SearchMaxQuery <= 0 {
		cfg.SearchMaxQuery = def.MaxQueryLength
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 250 * time.Millisecond
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentRoot == "" {
		return fmt.Errorf("CONTENT_ROOT is required")
	}
	info, err := os.Stat(c.ContentRoot)
	if err != nil {
		return fmt.Errorf("CONTENT_ROOT: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("CONTENT_ROOT %s is not a directory", c.ContentRoot)
	}
	if c.SearchThreshold <= 0 || c.SearchThreshold > 1 {
		return fmt.Errorf("SEARCH_THRESHOLD must be in (0, 1], got %v", c.SearchThreshold)
	}
	if c.SearchTitleWeight <= 0 || c.SearchTitleWeight > 1 {
		return fmt.Errorf("SEARCH_TITLE_WEIGHT must be in (0, 1], got %v", c.SearchTitleWeight)
	}
	return nil
}

// Search returns the search settings.
func (c Config) Search() search.Config {
	return search.Config{
		DefaultLimit:   c.SearchDefaultLimit,
		MaxResults:     c.SearchMaxResults,
		Threshold:      c.SearchThreshold,
		MinTokenLength: c.SearchMinToken,
		TitleWeight:    c.SearchTitleWeight,
		MaxQueryLength: c.SearchMaxQuery,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping empty items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			return level
		}
	}
	return fallback
}
