package search

import "errors"

var (
	// ErrCorpusRequired is returned when an engine is built without a corpus.
	ErrCorpusRequired = errors.New("corpus required")

	// ErrHeadwordIndexRequired is returned when an engine is built without
	// a headword index.
	ErrHeadwordIndexRequired = errors.New("headword index required")

	// ErrWordIndexRequired is returned when an engine is built without a
	// word occurrence index.
	ErrWordIndexRequired = errors.New("word occurrence index required")
)
