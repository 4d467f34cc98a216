// Package search implements the cascading three-strategy lookup: prefix
// match on the sorted headword index, fulltext ranking over the word
// occurrence index, and an approximate-match fallback over the distinct
// headword keys when the first two both come up empty.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pwgallagher/lewis-short-lookup/pkg/corpus"
	"github.com/pwgallagher/lewis-short-lookup/pkg/index"
	"github.com/pwgallagher/lewis-short-lookup/pkg/latin"
)

// Limits bounds each search stage. The zero value is not useful; start
// from DefaultLimits.
type Limits struct {
	// MaxPrefix caps headword prefix matches per query.
	MaxPrefix int
	// MaxFulltext caps occurrence-ranked fulltext matches per query.
	MaxFulltext int
	// MaxFuzzy caps both the similar keys considered and the expanded
	// fuzzy result rows.
	MaxFuzzy int
	// FuzzyCutoff is the minimum similarity ratio for a fuzzy candidate.
	FuzzyCutoff float64
	// MinQueryLen is the minimum trimmed query length in runes; shorter
	// queries yield an all-empty result rather than an error.
	MinQueryLen int
}

// DefaultLimits returns the stock stage bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxPrefix:   25,
		MaxFulltext: 6,
		MaxFuzzy:    8,
		FuzzyCutoff: 0.62,
		MinQueryLen: 2,
	}
}

// Match is one ranked result row.
type Match struct {
	// Key is the normalized headword of the matched entry.
	Key string `json:"norm"`
	// Raw is the headword as printed in the corpus.
	Raw string `json:"raw"`
	// Line is the zero-based corpus line of the entry.
	Line int `json:"line"`
	// Count is the occurrence count for fulltext matches, zero otherwise.
	Count int `json:"count,omitempty"`
}

// Result groups the three strategy outcomes for one query. All slices are
// non-nil so an empty result serializes as [] rather than null.
type Result struct {
	Prefix   []Match `json:"prefix"`
	Fulltext []Match `json:"fulltext"`
	Fuzzy    []Match `json:"fuzzy"`
}

// Best returns the entry to surface by default: the first prefix match,
// else the first fulltext match, else the first fuzzy match.
func (r Result) Best() (Match, bool) {
	for _, ms := range [][]Match{r.Prefix, r.Fulltext, r.Fuzzy} {
		if len(ms) > 0 {
			return ms[0], true
		}
	}
	return Match{}, false
}

// Engine runs queries over the immutable corpus and indices. Every Search
// call is a pure read; one engine is shared by all request handlers with
// no synchronization.
type Engine struct {
	corpus    *corpus.Corpus
	headwords *index.HeadwordIndex
	words     *index.WordIndex
	limits    Limits
}

// New builds an engine over already constructed indices.
func New(c *corpus.Corpus, hw *index.HeadwordIndex, wi *index.WordIndex, limits Limits) (*Engine, error) {
	if c == nil {
		return nil, ErrCorpusRequired
	}
	if hw == nil {
		return nil, ErrHeadwordIndexRequired
	}
	if wi == nil {
		return nil, ErrWordIndexRequired
	}
	return &Engine{corpus: c, headwords: hw, words: wi, limits: limits}, nil
}

// Search runs the full cascade for one query string. Queries shorter than
// the minimum length return an all-empty result. Fuzzy matching runs only
// when prefix and fulltext are both empty.
func (e *Engine) Search(query string) Result {
	out := Result{Prefix: []Match{}, Fulltext: []Match{}, Fuzzy: []Match{}}

	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < e.limits.MinQueryLen {
		return out
	}
	key := latin.Normalize(trimmed)

	for _, en := range e.headwords.PrefixSearch(key, e.limits.MaxPrefix) {
		out.Prefix = append(out.Prefix, Match{Key: en.Key, Raw: en.Raw, Line: en.Line})
	}

	exclude := make(map[int]struct{}, len(out.Prefix))
	for _, m := range out.Prefix {
		exclude[m.Line] = struct{}{}
	}
	out.Fulltext = e.fulltextSearch(key, exclude)

	if len(out.Prefix) == 0 && len(out.Fulltext) == 0 {
		out.Fuzzy = e.fuzzySearch(key)
	}
	return out
}

// fulltextSearch walks the stored posting list for key, skipping lines
// already surfaced by the prefix stage and re-deriving each remaining
// line's entry via headword extraction.
func (e *Engine) fulltextSearch(key string, exclude map[int]struct{}) []Match {
	out := []Match{}
	for _, p := range e.words.Lookup(key) {
		if _, dup := exclude[p.Line]; dup {
			continue
		}
		line, err := e.corpus.Line(p.Line)
		if err != nil {
			// Index and corpus are built together; a dangling posting
			// would mean a corrupted cache that slipped validation.
			continue
		}
		raw, ok := latin.Headword(line)
		if !ok {
			continue
		}
		out = append(out, Match{Key: latin.Normalize(raw), Raw: raw, Line: p.Line, Count: p.Count})
		if len(out) >= e.limits.MaxFulltext {
			break
		}
	}
	return out
}

// fuzzySearch scores every distinct headword key against the query,
// keeps the best keys by similarity, then fans each retained key out to
// all homograph entries sharing that exact spelling. The expanded list
// is truncated to the fuzzy limit.
func (e *Engine) fuzzySearch(key string) []Match {
	type scored struct {
		key   string
		ratio float64
	}
	var candidates []scored
	for _, cand := range e.headwords.DistinctKeys() {
		if r := Similarity(key, cand); r >= e.limits.FuzzyCutoff {
			candidates = append(candidates, scored{key: cand, ratio: r})
		}
	}
	// Candidates arrive in ascending key order; the stable sort keeps
	// that order for equal ratios, so identical queries always produce
	// identical result orderings.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ratio > candidates[j].ratio
	})
	if len(candidates) > e.limits.MaxFuzzy {
		candidates = candidates[:e.limits.MaxFuzzy]
	}

	out := []Match{}
	for _, s := range candidates {
		for _, en := range e.headwords.EntriesForKey(s.key) {
			out = append(out, Match{Key: en.Key, Raw: en.Raw, Line: en.Line})
		}
	}
	if len(out) > e.limits.MaxFuzzy {
		out = out[:e.limits.MaxFuzzy]
	}
	return out
}

// EntryAt retrieves a corpus line directly, for rendering a previously
// surfaced match. Out-of-range indices report corpus.ErrInvalidLine.
func (e *Engine) EntryAt(line int) (string, error) {
	return e.corpus.Line(line)
}

// Limits returns the stage bounds the engine was built with.
func (e *Engine) Limits() Limits {
	return e.limits
}
