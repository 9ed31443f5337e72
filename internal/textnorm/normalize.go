package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips accents and collapses whitespace.
// The result is a comparison key, not display text.
func Normalize(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	return Clean(s)
}

// Clean trims s and collapses inner whitespace runs to a single space.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Title renders a market name such as "united kingdom" as "United Kingdom".
func Title(s string) string {
	return cases.Title(language.English).String(Clean(s))
}

// UniqueTags cleans tags, drops empty ones and removes duplicates that
// only differ by case or accents. The first spelling wins.
func UniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, tag := range tags {
		tag = Clean(tag)
		if tag == "" {
			continue
		}
		key := Normalize(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}

	return out
}
