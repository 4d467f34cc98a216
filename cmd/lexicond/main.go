/*
Package main runs the Lewis & Short lookup service.

lexicond loads the dictionary text, builds the headword and word
occurrence indices (restoring the latter from a msgpack cache when one
matches the corpus), and serves the search cascade over HTTP or an
interactive CLI.

Usage:

	lexicond -dict lewis-short.txt

Flags:

	-dict string
	    Dictionary text file, one or more entries per line
	-cache string
	    Word index cache file ("" disables caching)
	-config string
	    TOML config file (created with defaults when missing)
	-addr string
	    HTTP listen address (default from config)
	-c  Run the interactive CLI instead of the HTTP server
	-d  Enable debug logging
	-version
	    Show current version

Search priority per query: prefix/headword matches first, fulltext
matches ranked by occurrence count second, fuzzy headword matches as a
fallback when both are empty.
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/pwgallagher/lewis-short-lookup/internal/cli"
	"github.com/pwgallagher/lewis-short-lookup/internal/web"
	"github.com/pwgallagher/lewis-short-lookup/pkg/config"
	"github.com/pwgallagher/lewis-short-lookup/pkg/corpus"
	"github.com/pwgallagher/lewis-short-lookup/pkg/index"
	"github.com/pwgallagher/lewis-short-lookup/pkg/search"
)

const (
	Version = "1.2.0"
	AppName = "lexicond"
)

func main() {
	dictFile := flag.String("dict", "", "Dictionary text file (overrides config)")
	cacheFile := flag.String("cache", "", "Word index cache file (overrides config)")
	configPath := flag.String("config", "lexicond.toml", "TOML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	cliMode := flag.Bool("c", false, "Run interactive CLI instead of the HTTP server")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	showVersion := flag.Bool("version", false, "Show current version")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	cfg := config.Init(*configPath)
	if *dictFile != "" {
		cfg.Corpus.DictFile = *dictFile
	}
	if *cacheFile != "" {
		cfg.Corpus.CacheFile = *cacheFile
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log.Debugf("Loading corpus from %s", cfg.Corpus.DictFile)
	c, err := corpus.Load(cfg.Corpus.DictFile)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	// Both indices are immutable after this point; queries never lock.
	var (
		headwords *index.HeadwordIndex
		words     *index.WordIndex
		g         errgroup.Group
	)
	g.Go(func() error {
		headwords = index.BuildHeadwordIndex(c)
		return nil
	})
	g.Go(func() error {
		var err error
		words, err = index.OpenWordIndex(cfg.Corpus.CacheFile, c, cfg.Corpus.BuildWorkers)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("Failed to build indices: %v", err)
	}

	engine, err := search.New(c, headwords, words, cfg.Limits())
	if err != nil {
		log.Fatalf("Failed to build search engine: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(engine)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(c, headwords, words, cfg.Server.Addr)

	srv := web.NewServer(engine)
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// printVersion shows a styled version banner, mainly for install scripts.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("[ lexicond ] Lewis & Short Latin dictionary lookup")
	logger.Print("", "version", Version)
	logger.Print("use -h to see available options")
}

// showStartupInfo displays basic info about the loaded indices.
func showStartupInfo(c *corpus.Corpus, hw *index.HeadwordIndex, wi *index.WordIndex, addr string) {
	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("corpus: %d lines, %d entries, %d indexed words", c.Len(), hw.Len(), wi.Words())
	log.Infof("listening at http://%s", addr)
	log.Info("Press Ctrl+C to exit")
}
