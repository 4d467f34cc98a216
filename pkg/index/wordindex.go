package index

import (
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/pwgallagher/lewis-short-lookup/pkg/corpus"
	"github.com/pwgallagher/lewis-short-lookup/pkg/latin"
)

// Posting records how often a word occurs on one corpus line.
type Posting struct {
	Count int `msgpack:"c"`
	Line  int `msgpack:"l"`
}

// WordIndex maps each normalized alphabetic word to the entry lines it
// occurs on. Posting lists are sorted descending by count, ties broken by
// ascending line index, so fulltext results rank by occurrence count with
// a deterministic order.
type WordIndex struct {
	postings map[string][]Posting
}

// BuildWordIndex tokenizes the normalized text of every entry line and
// counts word frequency per line. Lines without a headword contribute
// nothing. The scan is sharded across workers; the final per-word sort
// makes the result independent of shard boundaries.
func BuildWordIndex(c *corpus.Corpus, workers int) *WordIndex {
	lines := c.Lines()
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(lines) {
		workers = max(len(lines), 1)
	}

	parts := make([]map[string][]Posting, workers)
	chunk := (len(lines) + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			lo := w * chunk
			hi := min(lo+chunk, len(lines))
			part := make(map[string][]Posting)
			for i := lo; i < hi; i++ {
				if _, ok := latin.Headword(lines[i]); !ok {
					continue
				}
				counts := make(map[string]int)
				for _, word := range latin.Tokens(latin.Normalize(lines[i])) {
					counts[word]++
				}
				for word, n := range counts {
					part[word] = append(part[word], Posting{Count: n, Line: i})
				}
			}
			parts[w] = part
			return nil
		})
	}
	// Shard workers never fail; Wait only synchronizes them.
	_ = g.Wait()

	merged := make(map[string][]Posting)
	for _, part := range parts {
		for word, ps := range part {
			merged[word] = append(merged[word], ps...)
		}
	}
	for _, ps := range merged {
		sortPostings(ps)
	}

	log.Debugf("Word index built: %d distinct words (%d workers)", len(merged), workers)
	return &WordIndex{postings: merged}
}

func sortPostings(ps []Posting) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Count != ps[j].Count {
			return ps[i].Count > ps[j].Count
		}
		return ps[i].Line < ps[j].Line
	})
}

// Lookup returns the posting list for word in stored (ranked) order, or
// nil when the word occurs nowhere. The returned slice is read-only.
func (ix *WordIndex) Lookup(word string) []Posting {
	return ix.postings[word]
}

// Words returns the number of distinct indexed words.
func (ix *WordIndex) Words() int {
	return len(ix.postings)
}
