package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "wordindex.msgpack")
}

func TestCacheRoundTrip(t *testing.T) {
	c := testCorpus()
	built := BuildWordIndex(c, 1)
	path := cachePath(t)

	require.NoError(t, SaveWordIndex(path, built, c.Fingerprint()))

	loaded, err := LoadWordIndex(path, c.Fingerprint())
	require.NoError(t, err)

	// A restored index must be structurally identical to a fresh build.
	assert.Equal(t, built.postings, loaded.postings)
}

func TestLoadWordIndexMissing(t *testing.T) {
	_, err := LoadWordIndex(cachePath(t), "fp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadWordIndexStale(t *testing.T) {
	c := testCorpus()
	path := cachePath(t)
	require.NoError(t, SaveWordIndex(path, BuildWordIndex(c, 1), c.Fingerprint()))

	_, err := LoadWordIndex(path, "a different corpus")
	assert.ErrorIs(t, err, ErrCacheStale)
}

func TestLoadWordIndexCorrupt(t *testing.T) {
	path := cachePath(t)
	require.NoError(t, os.WriteFile(path, []byte("not a msgpack envelope"), 0644))

	_, err := LoadWordIndex(path, "fp")
	assert.ErrorIs(t, err, ErrCacheCorrupt)
}

func TestOpenWordIndex(t *testing.T) {
	c := testCorpus()
	path := cachePath(t)

	// Cold start: builds from the corpus and writes the cache.
	first, err := OpenWordIndex(path, c, 1)
	require.NoError(t, err)
	require.FileExists(t, path)

	// Warm start: restores the same structure from disk.
	second, err := OpenWordIndex(path, c, 1)
	require.NoError(t, err)
	assert.Equal(t, first.postings, second.postings)
}

func TestOpenWordIndexCorruptCacheRebuilds(t *testing.T) {
	c := testCorpus()
	path := cachePath(t)
	require.NoError(t, os.WriteFile(path, []byte{0xc1, 0xff, 0x00}, 0644))

	ix, err := OpenWordIndex(path, c, 1)
	require.NoError(t, err)
	assert.Equal(t, BuildWordIndex(c, 1).postings, ix.postings)

	// The rebuilt index replaced the corrupt cache on disk.
	loaded, err := LoadWordIndex(path, c.Fingerprint())
	require.NoError(t, err)
	assert.Equal(t, ix.postings, loaded.postings)
}

func TestOpenWordIndexNoCachePath(t *testing.T) {
	c := testCorpus()
	ix, err := OpenWordIndex("", c, 1)
	require.NoError(t, err)
	assert.Equal(t, BuildWordIndex(c, 1).postings, ix.postings)
}
