// Package latin provides the text canonicalization every index lookup
// depends on: hyphen removal, diacritic stripping and lowercasing, plus
// headword extraction from raw dictionary lines. The same Normalize
// function must be used for headword keys, query strings and fulltext
// tokenization, otherwise the indices drift apart from the lookup keys.
package latin

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so a macron or
// breve on a vowel never changes the lookup key: "tĕgo" and "tego"
// normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize returns the canonical lookup key for s: hyphens removed,
// combining diacritics stripped, lowercased. Pure and total over any
// input; runes without a decomposition pass through aside from case
// folding.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// transform.String only errors on a broken Transformer chain;
		// keep the undecomposed text rather than dropping anything.
		out = s
	}
	return strings.ToLower(out)
}

// Headword extracts the leading headword token from a corpus line: after
// trimming leading whitespace, the longest leading run containing no
// whitespace and none of ',', ';', ':', '('. ok is false when no such
// non-empty run exists, i.e. the line starts no dictionary entry.
func Headword(line string) (string, bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	end := len(trimmed)
	for i, r := range trimmed {
		if unicode.IsSpace(r) || r == ',' || r == ';' || r == ':' || r == '(' {
			end = i
			break
		}
	}
	if end == 0 {
		return "", false
	}
	return trimmed[:end], true
}

// Tokens splits an already normalized string into maximal runs of ASCII
// lowercase letters. Normalized text is lowercase throughout, so these
// runs are exactly the alphabetic words the occurrence index counts.
func Tokens(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
