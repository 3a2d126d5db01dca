package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// Config controls matching and ranking.
type Config struct {
	DefaultLimit   int     // Entries returned for an empty query.
	MaxResults     int     // Cap on ranked results.
	Threshold      float64 // Allowed edit errors per query rune, 0..1.
	MinTokenLength int     // Query tokens shorter than this are ignored.
	TitleWeight    float64 // Share of relevance from the title; the rest is content.
	MaxQueryLength int     // Runes of the query considered; the rest is ignored.
}

// DefaultConfig returns the settings the site ships with.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:   6,
		MaxResults:     10,
		Threshold:      0.35,
		MinTokenLength: 2,
		TitleWeight:    0.7,
		MaxQueryLength: 128,
	}
}

// acronymScore is the title score given when the query spells the
// initials of the title's words.
const acronymScore = 0.8

// Matching costs len(token) x len(content) per entry, so queries are
// bounded in token count and token length as well as total length.
const (
	maxQueryTokens = 8
	maxTokenRunes  = 64
)

type docKey struct {
	section string
	doc     string
}

type indexedDoc struct {
	title   []rune
	content []rune
}

// Index is an immutable fuzzy index over search entries. Build a new one
// whenever the document set changes.
type Index struct {
	cfg     Config
	entries []Entry
	docs    []indexedDoc
	byKey   map[docKey]int
}

// New indexes entries. Zero or out-of-range config values fall back to
// the defaults.
func New(entries []Entry, cfg Config) *Index {
	def := DefaultConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = def.Threshold
	}
	if cfg.MinTokenLength <= 0 {
		cfg.MinTokenLength = def.MinTokenLength
	}
	if cfg.TitleWeight <= 0 || cfg.TitleWeight > 1 {
		cfg.TitleWeight = def.TitleWeight
	}
	if cfg.MaxQueryLength <= 0 {
		cfg.MaxQueryLength = def.MaxQueryLength
	}

	idx := &Index{
		cfg:     cfg,
		entries: slices.Clone(entries),
		docs:    make([]indexedDoc, len(entries)),
		byKey:   make(map[docKey]int, len(entries)),
	}
	for i, e := range idx.entries {
		idx.docs[i] = indexedDoc{
			title:   []rune(strings.ToLower(e.DocTitle)),
			content: []rune(strings.ToLower(e.Content)),
		}
		key := docKey{section: e.SectionSlug, doc: e.DocSlug}
		if _, ok := idx.byKey[key]; !ok {
			idx.byKey[key] = i
		}
	}
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Lookup resolves a section/document pair back to its entry.
func (idx *Index) Lookup(sectionSlug, docSlug string) (Entry, bool) {
	i, ok := idx.byKey[docKey{section: sectionSlug, doc: docSlug}]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// Result is a ranked match.
type Result struct {
	Entry
	Score float64 `json:"score"`
}

// Search returns entries ranked by relevance, best first. A query with no
// usable tokens returns the first DefaultLimit entries unranked.
func (idx *Index) Search(query string) []Entry {
	results := idx.SearchScored(query)
	out := make([]Entry, len(results))
	for i, r := range results {
		out[i] = r.Entry
	}
	return out
}

// SearchScored is Search with relevance scores. Unranked default results
// have a zero score.
func (idx *Index) SearchScored(query string) []Result {
	tokens := tokenize(truncateRunes(query, idx.cfg.MaxQueryLength), idx.cfg.MinTokenLength)
	if len(tokens) == 0 {
		n := min(idx.cfg.DefaultLimit, len(idx.entries))
		out := make([]Result, n)
		for i := range n {
			out[i] = Result{Entry: idx.entries[i]}
		}
		return out
	}

	acronyms := idx.acronymMatches(strings.Join(tokens, ""))

	var hits []Result
	for i, d := range idx.docs {
		var titleSum, contentSum float64
		matched := true
		for _, tok := range tokens {
			ts, tOK := approxMatch(tok, d.title, idx.cfg.Threshold)
			cs, cOK := approxMatch(tok, d.content, idx.cfg.Threshold)
			if !tOK && !cOK {
				matched = false
				break
			}
			titleSum += ts
			contentSum += cs
		}

		titleScore := titleSum / float64(len(tokens))
		contentScore := contentSum / float64(len(tokens))
		if !matched {
			titleScore, contentScore = 0, 0
		}
		if acronyms[i] {
			titleScore = max(titleScore, acronymScore)
			matched = true
		}
		if !matched {
			continue
		}

		score := idx.cfg.TitleWeight*titleScore + (1-idx.cfg.TitleWeight)*contentScore
		hits = append(hits, Result{Entry: idx.entries[i], Score: score})
	}

	slices.SortStableFunc(hits, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(hits) > idx.cfg.MaxResults {
		hits = hits[:idx.cfg.MaxResults]
	}
	return hits
}

// titleSource adapts the index titles to fuzzy.Source.
type titleSource []Entry

func (s titleSource) String(i int) string { return s[i].DocTitle }
func (s titleSource) Len() int            { return len(s) }

// acronymMatches reports the entries whose title words start with the
// query's characters in order, e.g. "gs" for "Getting Started".
func (idx *Index) acronymMatches(pattern string) map[int]bool {
	if utf8.RuneCountInString(pattern) < idx.cfg.MinTokenLength {
		return nil
	}
	out := make(map[int]bool)
	for _, m := range fuzzy.FindFrom(pattern, titleSource(idx.entries)) {
		if allWordStarts(m.Str, m.MatchedIndexes) {
			out[m.Index] = true
		}
	}
	return out
}

func allWordStarts(s string, byteIdx []int) bool {
	for _, i := range byteIdx {
		if i == 0 {
			continue
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:i])
		if isTokenRune(prev) {
			return false
		}
	}
	return true
}

// tokenize splits a query into lower-case letter/digit runs, dropping
// those shorter than minLen runes. It keeps at most maxQueryTokens tokens
// of at most maxTokenRunes runes each.
func tokenize(query string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !isTokenRune(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minLen {
			continue
		}
		tokens = append(tokens, truncateRunes(f, maxTokenRunes))
		if len(tokens) == maxQueryTokens {
			break
		}
	}
	return tokens
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
