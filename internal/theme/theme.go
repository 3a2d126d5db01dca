package theme

import (
	"fmt"
	"strings"
)

// Mode is a color scheme preference.
type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

// Default applies when no preference was stored.
const Default = System

// CookieName is where the client's preference is persisted.
const CookieName = "theme-preference"

// Parse validates a stored or submitted preference.
func Parse(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Light, Dark, System:
		return m, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Resolve returns the concrete scheme to render: the preference itself,
// or the system's scheme when the preference is System.
func Resolve(m Mode, prefersDark bool) Mode {
	switch m {
	case Light, Dark:
		return m
	}
	if prefersDark {
		return Dark
	}
	return Light
}
