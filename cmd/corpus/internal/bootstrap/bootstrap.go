package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	corpus "github.com/goliatone/go-corpus"
	"github.com/goliatone/go-corpus/internal/di"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// Options captures configuration for corpus CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	ExtraLanguages []string
	SchemaPath     string
	DSN            string
	IndexPath      string
	WithIntegrity  bool
	WithCatalog    bool
	WithSearch     bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the corpus module and the services a CLI entrypoint needs.
type Module struct {
	Module    *corpus.Module
	Markdown  interfaces.MarkdownService
	Integrity interfaces.IntegrityService
	Catalog   interfaces.CatalogService
	Search    interfaces.SearchService
	Logger    interfaces.Logger
}

// Close releases resources held by the underlying module.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

// BuildModule constructs a corpus module configured for CLI operations. Only
// the requested features are enabled so a check run never opens the catalog
// database and a sync run never builds a search index.
func BuildModule(opts Options) (*Module, error) {
	cfg := corpus.DefaultConfig()

	cfg.Corpus.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Corpus.ContentDir == "" {
		cfg.Corpus.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Corpus.Pattern = trimmed
	}
	cfg.Corpus.Recursive = opts.Recursive

	cfg.Features.Integrity = opts.WithIntegrity
	cfg.Features.Catalog = opts.WithCatalog
	cfg.Features.Search = opts.WithSearch

	if len(opts.ExtraLanguages) > 0 {
		cfg.Integrity.ExtraLanguages = append([]string(nil), opts.ExtraLanguages...)
	}
	if strings.TrimSpace(opts.SchemaPath) != "" {
		schema, err := LoadSchema(opts.SchemaPath)
		if err != nil {
			return nil, err
		}
		cfg.Integrity.FrontMatterSchema = schema
	}

	if opts.WithCatalog {
		if trimmed := strings.TrimSpace(opts.DSN); trimmed != "" {
			cfg.Catalog.DSN = trimmed
		}
	}

	if trimmed := strings.TrimSpace(opts.IndexPath); trimmed != "" {
		cfg.Search.IndexPath = trimmed
		cfg.Search.Persistent = true
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := corpus.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise corpus module: %w", err)
	}

	provider := module.Container().LoggerProvider()

	return &Module{
		Module:    module,
		Markdown:  module.Markdown(),
		Integrity: module.Integrity(),
		Catalog:   module.Catalog(),
		Search:    module.Search(),
		Logger:    logging.ModuleLogger(provider, "corpus.cli"),
	}, nil
}

// LoadSchema reads a JSON schema document from disk into the map form the
// integrity checker expects.
func LoadSchema(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	schema := map[string]any{}
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	return schema, nil
}

// SplitList parses a comma separated value list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
