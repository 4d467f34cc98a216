package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pwgallagher/lewis-short-lookup/pkg/corpus"
)

// cacheVersion is bumped whenever the on-disk envelope layout changes.
const cacheVersion = 1

// cacheEnvelope is the persisted form of a WordIndex. The fingerprint
// ties the cache to the exact corpus it was built from.
type cacheEnvelope struct {
	Version     int                  `msgpack:"v"`
	Fingerprint string               `msgpack:"fp"`
	Words       map[string][]Posting `msgpack:"w"`
}

// LoadWordIndex restores a word index from the cache file at path. It
// returns ErrCacheStale when the cache belongs to a different corpus or
// format version, and ErrCacheCorrupt when the bytes do not decode into
// the expected shape. File-not-exist errors pass through unwrapped so
// callers can distinguish a cold start.
func LoadWordIndex(path, fingerprint string) (*WordIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var env cacheEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	if env.Words == nil {
		return nil, fmt.Errorf("%w: missing word table", ErrCacheCorrupt)
	}
	if env.Version != cacheVersion {
		return nil, fmt.Errorf("%w: format version %d", ErrCacheStale, env.Version)
	}
	if env.Fingerprint != fingerprint {
		return nil, fmt.Errorf("%w: corpus fingerprint mismatch", ErrCacheStale)
	}
	return &WordIndex{postings: env.Words}, nil
}

// SaveWordIndex persists a word index to path via a temp file and rename,
// so a crash mid-write never leaves a truncated cache behind.
func SaveWordIndex(path string, ix *WordIndex, fingerprint string) error {
	data, err := msgpack.Marshal(cacheEnvelope{
		Version:     cacheVersion,
		Fingerprint: fingerprint,
		Words:       ix.postings,
	})
	if err != nil {
		return fmt.Errorf("encoding word index cache: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing word index cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("committing word index cache: %w", err)
	}
	return nil
}

// OpenWordIndex returns the word index for c, restoring it from the cache
// at path when present and valid, otherwise building from the corpus and
// persisting the result. A loaded index is structurally identical to a
// freshly built one. An empty path disables caching entirely. A cache
// that cannot be written is a startup failure; a cache that cannot be
// read is only a rebuild.
func OpenWordIndex(path string, c *corpus.Corpus, workers int) (*WordIndex, error) {
	if path == "" {
		return BuildWordIndex(c, workers), nil
	}

	ix, err := LoadWordIndex(path, c.Fingerprint())
	switch {
	case err == nil:
		log.Debugf("Word index restored from cache %s: %d words", path, ix.Words())
		return ix, nil
	case os.IsNotExist(err):
		log.Debugf("No word index cache at %s, building from corpus", path)
	case errors.Is(err, ErrCacheStale):
		log.Warnf("Word index cache stale, rebuilding: %v", err)
	case errors.Is(err, ErrCacheCorrupt):
		log.Warnf("Word index cache corrupt, rebuilding: %v", err)
	default:
		log.Warnf("Word index cache unreadable, rebuilding: %v", err)
	}

	ix = BuildWordIndex(c, workers)
	if err := SaveWordIndex(path, ix, c.Fingerprint()); err != nil {
		return nil, err
	}
	log.Debugf("Word index cache written to %s", path)
	return ix, nil
}
