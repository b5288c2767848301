package corpus_test

import (
	"errors"
	"testing"

	corpus "github.com/goliatone/go-corpus"
)

func TestConfigValidateContentDirRequired(t *testing.T) {
	cfg := corpus.DefaultConfig()
	cfg.Corpus.ContentDir = ""

	if err := cfg.Validate(); !errors.Is(err, corpus.ErrCorpusContentDirRequired) {
		t.Fatalf("expected ErrCorpusContentDirRequired, got %v", err)
	}
}

func TestConfigValidateCatalogDSNRequired(t *testing.T) {
	cfg := corpus.DefaultConfig()
	cfg.Catalog.DSN = ""

	if err := cfg.Validate(); !errors.Is(err, corpus.ErrCatalogDSNRequired) {
		t.Fatalf("expected ErrCatalogDSNRequired, got %v", err)
	}
}

func TestConfigValidatePersistentSearchNeedsIndexPath(t *testing.T) {
	cfg := corpus.DefaultConfig()
	cfg.Search.Persistent = true
	cfg.Search.IndexPath = ""

	if err := cfg.Validate(); !errors.Is(err, corpus.ErrSearchIndexPathRequired) {
		t.Fatalf("expected ErrSearchIndexPathRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := corpus.DefaultConfig()
	cfg.Logging.Provider = "invalid"

	if err := cfg.Validate(); !errors.Is(err, corpus.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidateAllowsDisabledCatalogWithoutDSN(t *testing.T) {
	cfg := corpus.DefaultConfig()
	cfg.Features.Catalog = false
	cfg.Catalog.DSN = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}
