package site

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/docsite/internal/content"
)

// maxReloadAttempts bounds how often the watcher retries one failed reload.
const maxReloadAttempts = 3

// isRetryable reports whether a failed load may succeed once in-flight
// writes settle. Duplicate slugs need an edit, not a retry.
func isRetryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, content.ErrDuplicateSlug):
		return false
	}
	return true
}

// reloadBackoff returns the wait before retry n (0-indexed), with jitter.
func reloadBackoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
	if base > 2*time.Second {
		base = 2 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
