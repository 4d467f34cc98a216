// Package corpus loads the dictionary text and exposes it as an ordered,
// immutable sequence of lines. A corpus is read once at startup and never
// mutated; every index and search structure refers back to it by
// zero-based line index.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrInvalidLine is returned for a direct line lookup with an index that
// is negative or past the end of the corpus.
var ErrInvalidLine = errors.New("invalid line number")

// Corpus is an immutable sequence of dictionary source lines.
type Corpus struct {
	lines       []string
	fingerprint string
}

// Load reads a UTF-8 dictionary file and splits it into lines. Line
// endings are normalized to "\n" first and not retained in the lines.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline produces one empty phantom line; drop it so
	// line indices match the source file.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	c := newCorpus(lines, text)
	log.Debugf("Loaded corpus %s: %d lines", path, len(c.lines))
	return c, nil
}

// FromLines builds a corpus from an in-memory line sequence, kept
// exactly as given: a trailing empty line is a line. The caller must
// not modify lines afterwards.
func FromLines(lines []string) *Corpus {
	return newCorpus(lines, strings.Join(lines, "\n"))
}

// newCorpus fingerprints the newline-normalized text, so the cache key
// depends on line content rather than the line ending convention of a
// particular save of the file.
func newCorpus(lines []string, text string) *Corpus {
	sum := sha256.Sum256([]byte(text))
	return &Corpus{
		lines:       lines,
		fingerprint: hex.EncodeToString(sum[:]),
	}
}

// Len returns the number of lines in the corpus.
func (c *Corpus) Len() int {
	return len(c.lines)
}

// Line returns the line at index i. The index must come from a previous
// search result or be otherwise known valid; anything out of range is
// reported as ErrInvalidLine, never a panic.
func (c *Corpus) Line(i int) (string, error) {
	if i < 0 || i >= len(c.lines) {
		return "", fmt.Errorf("%w: %d (corpus has %d lines)", ErrInvalidLine, i, len(c.lines))
	}
	return c.lines[i], nil
}

// Lines exposes the full line sequence for index construction. The
// returned slice is shared and must be treated as read-only.
func (c *Corpus) Lines() []string {
	return c.lines
}

// Fingerprint identifies the corpus content. The word index cache is
// keyed on it so a changed dictionary file invalidates stale caches.
func (c *Corpus) Fingerprint() string {
	return c.fingerprint
}
