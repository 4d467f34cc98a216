// Package cli handles interactive stdin lookup, useful for testing the
// search cascade without the HTTP layer.
package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pwgallagher/lewis-short-lookup/pkg/search"
)

// InputHandler reads queries from stdin and prints the ranked sections of
// each result.
type InputHandler struct {
	engine *search.Engine
}

// NewInputHandler wires the handler onto a search engine.
func NewInputHandler(engine *search.Engine) *InputHandler {
	return &InputHandler{engine: engine}
}

// Start begins the interface loop. It prompts, reads a line from stdin
// and prints the results until stdin closes.
func (h *InputHandler) Start() error {
	log.Print("Lewis & Short lookup CLI")
	log.Print("type a query and press Enter (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		query, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		h.handleQuery(query)
	}
}

// handleQuery runs a single query and prints each non-empty section.
func (h *InputHandler) handleQuery(query string) {
	start := time.Now()
	result := h.engine.Search(query)
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), query)

	if len(result.Prefix) == 0 && len(result.Fulltext) == 0 && len(result.Fuzzy) == 0 {
		log.Warnf("No matches found for '%s'", query)
		return
	}

	printSection("Headwords", result.Prefix, false)
	printSection("Found in", result.Fulltext, true)
	printSection("Similar", result.Fuzzy, false)

	if best, ok := result.Best(); ok {
		if line, err := h.engine.EntryAt(best.Line); err == nil {
			log.Printf("-- %s", strings.TrimSpace(line))
		}
	}
}

func printSection(label string, matches []search.Match, withCount bool) {
	if len(matches) == 0 {
		return
	}
	log.Printf("%s:", label)
	for i, m := range matches {
		if withCount {
			log.Printf("%2d. %-30s (line %6d, %dx)", i+1, m.Raw, m.Line, m.Count)
			continue
		}
		log.Printf("%2d. %-30s (line %6d)", i+1, m.Raw, m.Line)
	}
}
