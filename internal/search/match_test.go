package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproxMatch(t *testing.T) {
	tests := []struct {
		pattern   string
		text      string
		wantScore float64
		wantOK    bool
	}{
		{"dcap", "dcap verification", 1, true},
		{"dcap", "intro to tees", 0, false},
		{"verifcation", "dcap verification", 1 - 1.0/11, true},
		{"atestation", "remote attestation", 1 - 1.0/10, true},
		{"quotes", "attestation guide", 0, false},
		// Two-rune tokens allow no errors.
		{"gs", "getting started", 0, false},
		{"ab", "xaby", 1, true},
		{"abc", "", 0, false},
		// Three runes allow one error.
		{"tee", "the", 1 - 1.0/3, true},
	}
	for _, tt := range tests {
		score, ok := approxMatch(tt.pattern, []rune(tt.text), 0.35)
		assert.Equal(t, tt.wantOK, ok, "%q in %q", tt.pattern, tt.text)
		assert.InDelta(t, tt.wantScore, score, 1e-9, "%q in %q", tt.pattern, tt.text)
	}
}

func TestMinSubstringDistance(t *testing.T) {
	assert.Equal(t, 0, minSubstringDistance([]rune("abc"), []rune("xxabcxx"), 3))
	assert.Equal(t, 1, minSubstringDistance([]rune("abc"), []rune("xxabxx"), 3))
	assert.Equal(t, 1, minSubstringDistance([]rune("abc"), []rune("xxaxbcxx"), 3))
	assert.Equal(t, 2, minSubstringDistance([]rune("abc"), []rune("zzz"), 1))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"dcap", "verification"}, tokenize("DCAP  Verification", 2))
	assert.Equal(t, []string{"api", "keys"}, tokenize("api-keys", 2))
	assert.Equal(t, []string{"dcap"}, tokenize("a dcap b", 2))
	assert.Empty(t, tokenize("a b c", 2))
	assert.Empty(t, tokenize("  ", 2))
	assert.Equal(t, []string{"é2"}, tokenize("é2 x", 2))

	many := tokenize(strings.Repeat("word ", 20), 2)
	assert.Len(t, many, maxQueryTokens)

	long := tokenize(strings.Repeat("é", 200), 2)
	require.Len(t, long, 1)
	assert.Equal(t, maxTokenRunes, utf8.RuneCountInString(long[0]))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "héllo", truncateRunes("héllo", 5))
	assert.Equal(t, "héllo", truncateRunes("héllo", 50))
	assert.Equal(t, "héllo", truncateRunes("héllo", 0))
	assert.Empty(t, truncateRunes("", 3))
}
