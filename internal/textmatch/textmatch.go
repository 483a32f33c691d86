// Package textmatch finds a query inside product names ignoring case and
// accents, so "tecnologia" highlights "Tecnología".
package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s without diacritics and case-folded
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	// Casers keep state, so each call gets its own
	return cases.Fold().String(out)
}

// Span is a byte range [Start, End) of the original text
type Span struct {
	Start int
	End   int
}

// Contains reports whether text contains query after folding both
func Contains(text, query string) bool {
	q := Fold(strings.TrimSpace(query))
	return q == "" || strings.Contains(Fold(text), q)
}

// Find returns the non-overlapping spans of text matching query
func Find(text, query string) []Span {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	// Fold rune by rune so folded offsets map back to the original text
	var folded strings.Builder
	origin := make([]int, 0, len(text)+1)
	for i, r := range text {
		f := Fold(string(r))
		folded.WriteString(f)
		for j := 0; j < len(f); j++ {
			origin = append(origin, i)
		}
	}
	origin = append(origin, len(text))
	hay := folded.String()

	var spans []Span
	for from := 0; from <= len(hay)-len(q); {
		idx := strings.Index(hay[from:], q)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(q)
		spans = append(spans, Span{Start: origin[start], End: originEnd(text, origin, end)})
		from = end
	}
	return spans
}

// originEnd maps a folded end offset to the end of the original rune it
// falls in
func originEnd(text string, origin []int, end int) int {
	if end >= len(origin)-1 {
		return len(text)
	}
	last := origin[end-1]
	_, size := utf8.DecodeRuneInString(text[last:])
	return last + size
}

// Highlight wraps every match of query in text with style
func Highlight(text, query string, style func(string) string) string {
	spans := Find(text, query)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(text[prev:s.Start])
		b.WriteString(style(text[s.Start:s.End]))
		prev = s.End
	}
	b.WriteString(text[prev:])
	return b.String()
}
