package index

import "errors"

var (
	// ErrCacheCorrupt indicates the persisted word index failed to
	// deserialize into the expected shape. Recovered by rebuilding from
	// the corpus; never surfaced at query time.
	ErrCacheCorrupt = errors.New("word index cache corrupt")

	// ErrCacheStale indicates the cache was written for a different
	// corpus or an older cache format version.
	ErrCacheStale = errors.New("word index cache stale")
)
