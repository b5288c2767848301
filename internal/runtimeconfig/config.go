package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrCorpusContentDirRequired = errors.New("corpus config: content directory is required")
var ErrCatalogDSNRequired = errors.New("corpus config: catalog DSN is required when catalog is enabled")
var ErrSearchIndexPathRequired = errors.New("corpus config: search index path is required for persistent indexes")
var ErrLoggingProviderRequired = errors.New("corpus config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("corpus config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("corpus config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("corpus config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the corpus module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Corpus    CorpusConfig
	Integrity IntegrityConfig
	Catalog   CatalogConfig
	Search    SearchConfig
	Cache     CacheConfig
	Features  Features
	Commands  CommandsConfig
	Logging   LoggingConfig
}

// CorpusConfig captures filesystem and parser behaviour for document loading.
type CorpusConfig struct {
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     ParserConfig
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// IntegrityConfig tunes the content-integrity rule set.
type IntegrityConfig struct {
	ExtraLanguages    []string
	FailOnWarnings    bool
	FrontMatterSchema map[string]any
}

// CatalogConfig captures persistence settings for the article index.
type CatalogConfig struct {
	Driver string
	DSN    string
}

// SearchConfig captures full-text index settings.
type SearchConfig struct {
	// IndexPath persists the bleve index on disk. Empty keeps the index in
	// memory, rebuilt per process.
	IndexPath  string
	Persistent bool
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles module functionality.
type Features struct {
	Integrity bool
	Catalog   bool
	Search    bool
	Logger    bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a local corpus checkout.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Corpus: CorpusConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Integrity: IntegrityConfig{},
		Catalog: CatalogConfig{
			Driver: "sqlite3",
			DSN:    "file:corpus.db?_fk=1",
		},
		Search: SearchConfig{},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Integrity: true,
			Catalog:   true,
			Search:    true,
			Logger:    true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Corpus.ContentDir) == "" {
		return ErrCorpusContentDirRequired
	}
	if cfg.Features.Catalog {
		if strings.TrimSpace(cfg.Catalog.DSN) == "" {
			return ErrCatalogDSNRequired
		}
	}
	if cfg.Search.Persistent && strings.TrimSpace(cfg.Search.IndexPath) == "" {
		return ErrSearchIndexPathRequired
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
