package web

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/pwgallagher/lewis-short-lookup/pkg/latin"
)

var (
	// etymologyRe italicizes bracketed etymologies in entry bodies.
	etymologyRe = regexp.MustCompile(`\[([^\]]+)\]`)

	// authorRe marks the standard abbreviations for classical authors so
	// the page can style citations distinctly.
	authorRe = regexp.MustCompile(
		`\b(Cic|Verg|Hor|Ov|Liv|Tac|Plaut|Ter|Caes|Sall|Quint|Plin|` +
			`Juv|Luc|Mart|Suet|Varro|Lucr|Cat|Sen|Gell|Prop|Tib|Stat)\.`)
)

// RenderEntry returns the HTML markup for one dictionary line: the
// headword wrapped in a styled span, bracketed etymologies italicized and
// author abbreviations wrapped in <cite>. Lines without a headword come
// back escaped but unstyled.
func RenderEntry(line string) string {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	raw, ok := latin.Headword(line)
	if !ok {
		return "<span>" + html.EscapeString(line) + "</span>"
	}
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	rest := html.EscapeString(trimmed[len(raw):])
	rest = etymologyRe.ReplaceAllString(rest, "<em>[$1]</em>")
	rest = authorRe.ReplaceAllString(rest, "<cite>$0</cite>")

	var b strings.Builder
	b.WriteString(`<span class="hw">`)
	b.WriteString(html.EscapeString(raw))
	b.WriteString(`</span>`)
	b.WriteString(rest)
	return b.String()
}
