package index

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwgallagher/lewis-short-lookup/pkg/corpus"
)

// testLines is a miniature dictionary exercising diacritics, non-entry
// lines and homograph headwords.
var testLines = []string{
	"amor, amoris. love.",
	"ămīcus, i, m. a friend; amicus verus. [amo] Cic.",
	"tĕgo, texi, tectum: to cover, hide. perf. texit; inde texit. Verg.",
	"consul, ulis, m. a consul. Liv.",
	"",
	"   ",
	"ēdo, ĕdĕre: to give out, publish.",
	"ĕdo, esse, edi: to eat.",
	"cupido, inis, f. desire, amor vehemens; amor caecus.",
}

func testCorpus() *corpus.Corpus {
	return corpus.FromLines(testLines)
}

func TestBuildHeadwordIndex(t *testing.T) {
	ix := BuildHeadwordIndex(testCorpus())

	// Blank and whitespace-only lines start no entry.
	assert.Equal(t, 7, ix.Len())
	assert.Len(t, ix.DistinctKeys(), 6)
}

func TestSortInvariant(t *testing.T) {
	ix := BuildHeadwordIndex(testCorpus())
	keys := ix.Keys()
	assert.True(t, sort.StringsAreSorted(keys), "normalized key sequence must be non-decreasing")

	distinct := ix.DistinctKeys()
	assert.True(t, sort.StringsAreSorted(distinct))
}

func TestPrefixSearch(t *testing.T) {
	ix := BuildHeadwordIndex(testCorpus())

	tests := []struct {
		name      string
		key       string
		limit     int
		wantRaws  []string
		wantLines []int
	}{
		{"exact headword", "amor", 25, []string{"amor"}, []int{0}},
		{"shared prefix", "am", 25, []string{"ămīcus", "amor"}, []int{1, 0}},
		{"limit truncates", "am", 1, []string{"ămīcus"}, []int{1}},
		{"diacritic-marked entry", "tego", 25, []string{"tĕgo"}, []int{2}},
		{"homographs in corpus order", "edo", 25, []string{"ēdo", "ĕdo"}, []int{6, 7}},
		{"no match", "zz", 25, nil, nil},
		{"longer than any key", "amoris", 25, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.PrefixSearch(tt.key, tt.limit)
			require.Len(t, got, len(tt.wantRaws))
			for i, e := range got {
				assert.Equal(t, tt.wantRaws[i], e.Raw)
				assert.Equal(t, tt.wantLines[i], e.Line)
			}
		})
	}
}

func TestPrefixSearchComplete(t *testing.T) {
	// Unbounded prefix search must return exactly the entries whose key
	// starts with the query, no more and no fewer.
	ix := BuildHeadwordIndex(testCorpus())

	for _, key := range []string{"a", "am", "amor", "e", "edo", "t", "c", "q", ""} {
		got := ix.PrefixSearch(key, 0)
		want := 0
		for _, e := range ix.Entries() {
			if strings.HasPrefix(e.Key, key) {
				want++
			}
		}
		assert.Equal(t, want, len(got), "prefix %q", key)
		for _, e := range got {
			assert.True(t, strings.HasPrefix(e.Key, key))
		}
	}
}

func TestEntriesForKey(t *testing.T) {
	ix := BuildHeadwordIndex(testCorpus())

	homographs := ix.EntriesForKey("edo")
	require.Len(t, homographs, 2)
	assert.Equal(t, "ēdo", homographs[0].Raw)
	assert.Equal(t, "ĕdo", homographs[1].Raw)
	assert.Equal(t, 6, homographs[0].Line)
	assert.Equal(t, 7, homographs[1].Line)

	single := ix.EntriesForKey("amor")
	require.Len(t, single, 1)
	assert.Equal(t, 0, single[0].Line)

	assert.Empty(t, ix.EntriesForKey("nope"))
	// Keys are exact; a prefix of a real key matches nothing.
	assert.Empty(t, ix.EntriesForKey("amo"))
}

func TestUniqueLineIndices(t *testing.T) {
	ix := BuildHeadwordIndex(testCorpus())
	seen := make(map[int]bool)
	for _, e := range ix.Entries() {
		assert.False(t, seen[e.Line], "duplicate line index %d", e.Line)
		seen[e.Line] = true
	}
}
