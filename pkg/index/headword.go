// Package index builds the two read-only lookup structures the search
// engine runs on: the sorted headword index for prefix queries and the
// inverted word occurrence index for fulltext ranking. Both are built
// once at startup (the occurrence index optionally restored from a
// msgpack cache) and are safe for concurrent readers without locking.
package index

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/pwgallagher/lewis-short-lookup/pkg/corpus"
	"github.com/pwgallagher/lewis-short-lookup/pkg/latin"
)

// Entry is one dictionary entry: a corpus line with an extractable
// headword.
type Entry struct {
	// Key is the normalized headword used for every lookup.
	Key string
	// Raw is the headword as printed, macrons and breves intact.
	Raw string
	// Line is the zero-based corpus line the entry starts on.
	Line int
}

// span is a half-open [lo, hi) range of entries sharing one key.
type span struct {
	lo, hi int
}

// HeadwordIndex is the sorted entry table. Entries are ordered ascending
// by normalized key, ties kept in original corpus order, so a lower-bound
// binary search followed by a forward scan answers prefix queries in
// O(log n + k).
type HeadwordIndex struct {
	entries []Entry
	keys    []string // parallel to entries
	// spans maps each distinct key to its entry range. The trie serves
	// exact-key expansion for the fuzzy fallback, where one normalized
	// spelling can fan out to several homograph entries.
	spans    *patricia.Trie
	distinct []string // distinct keys, ascending
}

// BuildHeadwordIndex scans every corpus line for a headword and returns
// the sorted index over the entries found.
func BuildHeadwordIndex(c *corpus.Corpus) *HeadwordIndex {
	var entries []Entry
	for i, line := range c.Lines() {
		raw, ok := latin.Headword(line)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: latin.Normalize(raw), Raw: raw, Line: i})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	ix := &HeadwordIndex{
		entries: entries,
		keys:    make([]string, len(entries)),
		spans:   patricia.NewTrie(),
	}
	for i, e := range entries {
		ix.keys[i] = e.Key
	}
	for lo := 0; lo < len(entries); {
		hi := lo + 1
		for hi < len(entries) && entries[hi].Key == entries[lo].Key {
			hi++
		}
		ix.spans.Insert(patricia.Prefix(entries[lo].Key), span{lo: lo, hi: hi})
		ix.distinct = append(ix.distinct, entries[lo].Key)
		lo = hi
	}

	log.Debugf("Headword index built: %d entries, %d distinct keys", len(entries), len(ix.distinct))
	return ix
}

// Len returns the number of entries in the index.
func (ix *HeadwordIndex) Len() int {
	return len(ix.entries)
}

// Entries exposes the sorted entry table, read-only.
func (ix *HeadwordIndex) Entries() []Entry {
	return ix.entries
}

// Keys exposes the sorted normalized key sequence, read-only.
func (ix *HeadwordIndex) Keys() []string {
	return ix.keys
}

// DistinctKeys returns every distinct normalized key in ascending order.
// This is the candidate set the fuzzy fallback scores against.
func (ix *HeadwordIndex) DistinctKeys() []string {
	return ix.distinct
}

// PrefixSearch returns up to limit entries whose normalized key starts
// with key, in index order: ascending key, original corpus order for
// exact ties. A limit <= 0 means unbounded.
func (ix *HeadwordIndex) PrefixSearch(key string, limit int) []Entry {
	lo := sort.SearchStrings(ix.keys, key)
	var out []Entry
	for i := lo; i < len(ix.keys); i++ {
		if !strings.HasPrefix(ix.keys[i], key) {
			break
		}
		out = append(out, ix.entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// EntriesForKey returns every entry whose normalized key equals key, in
// original corpus order. Homographs that collapse to the same normalized
// spelling all come back.
func (ix *HeadwordIndex) EntriesForKey(key string) []Entry {
	item := ix.spans.Get(patricia.Prefix(key))
	if item == nil {
		return nil
	}
	s := item.(span)
	return ix.entries[s.lo:s.hi]
}
