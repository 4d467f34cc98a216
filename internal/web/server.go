/*
Package web serves the lookup UI and JSON API over HTTP.

Two endpoints back the single embedded page:

	GET /api/search?q=<query>   ranked prefix/fulltext/fuzzy results plus
	                            the rendered entry chosen to auto-load
	GET /api/entry?line=<n>     rendered entry for a previously surfaced
	                            line index

Both endpoints are pure reads over the immutable search engine, so the
handlers need no synchronization.
*/
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pwgallagher/lewis-short-lookup/internal/logger"
	"github.com/pwgallagher/lewis-short-lookup/pkg/corpus"
	"github.com/pwgallagher/lewis-short-lookup/pkg/search"
)

//go:embed page.html
var pageFS embed.FS

// searchResponse is the /api/search payload. Entry carries the rendered
// HTML for the chosen line when any strategy matched.
type searchResponse struct {
	Prefix    []search.Match `json:"prefix"`
	Fulltext  []search.Match `json:"fulltext"`
	Fuzzy     []search.Match `json:"fuzzy"`
	Entry     *string        `json:"entry"`
	EntryLine *int           `json:"entry_line"`
}

// entryResponse is the /api/entry payload.
type entryResponse struct {
	Entry string `json:"entry"`
}

// Server routes HTTP requests onto a shared search engine.
type Server struct {
	engine *search.Engine
	mux    *http.ServeMux
	logger *log.Logger
}

// NewServer builds the handler set over engine.
func NewServer(engine *search.Engine) *Server {
	s := &Server{
		engine: engine,
		mux:    http.NewServeMux(),
		logger: logger.New("web"),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/entry", s.handleEntry)
	return s
}

// Handler exposes the route set, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks serving requests until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := pageFS.ReadFile("page.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query().Get("q")

	result := s.engine.Search(query)
	resp := searchResponse{
		Prefix:   result.Prefix,
		Fulltext: result.Fulltext,
		Fuzzy:    result.Fuzzy,
	}
	if best, ok := result.Best(); ok {
		line, err := s.engine.EntryAt(best.Line)
		if err == nil {
			rendered := RenderEntry(line)
			resp.Entry = &rendered
			entryLine := best.Line
			resp.EntryLine = &entryLine
		}
	}

	s.logger.Debugf("search %q: %d prefix, %d fulltext, %d fuzzy in %v",
		query, len(resp.Prefix), len(resp.Fulltext), len(resp.Fuzzy), time.Since(start))
	s.writeJSON(w, resp)
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	lineParam := r.URL.Query().Get("line")
	lineIdx, err := strconv.Atoi(lineParam)
	if err != nil {
		s.writeJSON(w, entryResponse{Entry: "<em>Invalid line number.</em>"})
		return
	}

	line, err := s.engine.EntryAt(lineIdx)
	if err != nil {
		if !errors.Is(err, corpus.ErrInvalidLine) {
			s.logger.Errorf("entry lookup for line %d: %v", lineIdx, err)
		}
		s.writeJSON(w, entryResponse{Entry: "<em>Invalid line number.</em>"})
		return
	}
	s.writeJSON(w, entryResponse{Entry: RenderEntry(line)})
}

func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Errorf("encoding response: %v", err)
	}
}
