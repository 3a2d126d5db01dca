package content

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxOrder is the order given to unprefixed files and unlisted sections.
// It sorts after every explicit order and survives a round trip through
// JSON numbers.
const MaxOrder = 1<<53 - 1

var (
	orderPrefix   = regexp.MustCompile(`^(\d+)[-_](.+)$`)
	headingMarker = regexp.MustCompile(`^#{1,6}\s+`)
	slugSeparator = regexp.MustCompile(`[-_]+`)
)

// ParseSlug splits a file name like "02-getting-started.md" into its slug
// ("getting-started") and order (2). Names without a numeric prefix keep
// their base name as slug and get MaxOrder.
func ParseSlug(fileName string) (slug string, order int) {
	base := trimMarkdownExt(fileName)
	if m := orderPrefix.FindStringSubmatch(base); m != nil {
		// A prefix that does not fit below MaxOrder is no prefix at all.
		if n, err := strconv.Atoi(m[1]); err == nil && n < MaxOrder {
			return m[2], n
		}
	}
	return base, MaxOrder
}

// ExtractTitle returns the text of the first markdown heading line.
func ExtractTitle(markdown string) (string, bool) {
	for line := range strings.SplitSeq(markdown, "\n") {
		loc := headingMarker.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if title := strings.TrimSpace(line[loc[1]:]); title != "" {
			return title, true
		}
	}
	return "", false
}

// HumanizeSlug turns "api-keys" into "Api Keys".
func HumanizeSlug(slug string) string {
	b := []byte(slugSeparator.ReplaceAllString(slug, " "))
	for i, c := range b {
		if c >= 'a' && c <= 'z' && (i == 0 || !isWordByte(b[i-1])) {
			b[i] = c - ('a' - 'A')
		}
	}
	return strings.TrimSpace(string(b))
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

func isMarkdownFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

func trimMarkdownExt(name string) string {
	if isMarkdownFile(name) {
		return name[:len(name)-len(".md")]
	}
	return name
}

func isReadme(slug string) bool {
	return strings.EqualFold(slug, "readme")
}
