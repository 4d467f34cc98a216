/*
Package config manages the TOML runtime configuration for the lookup
service: stage limits for the search cascade, corpus and cache paths,
and the HTTP listen address.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/pwgallagher/lewis-short-lookup/pkg/search"
)

// Config holds the entire config structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Corpus CorpusConfig `toml:"corpus"`
	Search SearchConfig `toml:"search"`
}

// ServerConfig has HTTP server related options.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CorpusConfig holds dictionary file and cache options.
type CorpusConfig struct {
	// DictFile is the dictionary text, one or more entries per line.
	DictFile string `toml:"dict_file"`
	// CacheFile persists the word occurrence index between runs. Empty
	// disables caching.
	CacheFile string `toml:"cache_file"`
	// BuildWorkers shards the word index build; 0 means one per CPU.
	BuildWorkers int `toml:"build_workers"`
}

// SearchConfig bounds each stage of the search cascade.
type SearchConfig struct {
	MaxPrefix   int     `toml:"max_prefix"`
	MaxFulltext int     `toml:"max_fulltext"`
	MaxFuzzy    int     `toml:"max_fuzzy"`
	FuzzyCutoff float64 `toml:"fuzzy_cutoff"`
	MinQueryLen int     `toml:"min_query_len"`
}

// Default returns a Config with default values.
func Default() *Config {
	limits := search.DefaultLimits()
	return &Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:5050",
		},
		Corpus: CorpusConfig{
			DictFile:     "lewis-short.txt",
			CacheFile:    "lewis-short-wordindex.msgpack",
			BuildWorkers: 0,
		},
		Search: SearchConfig{
			MaxPrefix:   limits.MaxPrefix,
			MaxFulltext: limits.MaxFulltext,
			MaxFuzzy:    limits.MaxFuzzy,
			FuzzyCutoff: limits.FuzzyCutoff,
			MinQueryLen: limits.MinQueryLen,
		},
	}
}

// Limits converts the search section into engine stage bounds, falling
// back to defaults for unset or nonsensical values.
func (c *Config) Limits() search.Limits {
	limits := search.DefaultLimits()
	if c.Search.MaxPrefix > 0 {
		limits.MaxPrefix = c.Search.MaxPrefix
	}
	if c.Search.MaxFulltext > 0 {
		limits.MaxFulltext = c.Search.MaxFulltext
	}
	if c.Search.MaxFuzzy > 0 {
		limits.MaxFuzzy = c.Search.MaxFuzzy
	}
	if c.Search.FuzzyCutoff > 0 && c.Search.FuzzyCutoff <= 1 {
		limits.FuzzyCutoff = c.Search.FuzzyCutoff
	}
	if c.Search.MinQueryLen > 0 {
		limits.MinQueryLen = c.Search.MinQueryLen
	}
	return limits
}

// Load reads a TOML config file over the defaults, so missing keys keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// Init loads config from path, creating a default file first when none
// exists. Failures fall back to builtin defaults rather than aborting.
func Init(path string) *Config {
	if path == "" {
		return Default()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := Save(cfg, path); err != nil {
			log.Warnf("Failed to create default config at %s: %v. Using builtin defaults...", path, err)
			return cfg
		}
		log.Debugf("Created default config file at: %s", path)
		return cfg
	}
	cfg, err := Load(path)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using builtin defaults...", path, err)
		return Default()
	}
	log.Debugf("Loaded config from: %s", path)
	return cfg
}

// Save writes the config into a TOML file.
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(cfg)
}
