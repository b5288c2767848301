package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if !cfg.Enabled {
		t.Fatal("default config should be enabled")
	}
	if cfg.Corpus.ContentDir != "content" || cfg.Corpus.Pattern != "*.md" {
		t.Fatalf("unexpected corpus defaults %+v", cfg.Corpus)
	}
	if !cfg.Corpus.Recursive {
		t.Fatal("default corpus loading should be recursive")
	}
	if !cfg.Features.Logger {
		t.Fatal("default config should keep logging enabled")
	}
}

func TestValidateContentDirRequired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Corpus.ContentDir = "   "
	if err := cfg.Validate(); !errors.Is(err, ErrCorpusContentDirRequired) {
		t.Fatalf("expected ErrCorpusContentDirRequired, got %v", err)
	}
}

func TestValidateCatalogDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, ErrCatalogDSNRequired) {
		t.Fatalf("expected ErrCatalogDSNRequired, got %v", err)
	}

	cfg.Features.Catalog = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled catalog should not require a DSN, got %v", err)
	}
}

func TestValidateSearchIndexPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Persistent = true
	if err := cfg.Validate(); !errors.Is(err, ErrSearchIndexPathRequired) {
		t.Fatalf("expected ErrSearchIndexPathRequired, got %v", err)
	}

	cfg.Search.IndexPath = "corpus.bleve"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("persistent search with path should validate, got %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Logger = true

	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("console provider with debug level should validate, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("gologger with pretty format should validate, got %v", err)
	}
}
