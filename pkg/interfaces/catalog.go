package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// CatalogService maintains the persistent article index for a corpus.
// Records are only ever created or updated from files on disk; nothing in the
// runtime generates documents.
type CatalogService interface {
	Sync(ctx context.Context, docs []*Document, opts CatalogSyncOptions) (*CatalogSyncResult, error)
	List(ctx context.Context) ([]*ArticleRecord, error)
	GetBySlug(ctx context.Context, slug string) (*ArticleRecord, error)
	WithTag(ctx context.Context, tag string) ([]*ArticleRecord, error)
	Tags(ctx context.Context) (map[string]int, error)
	Stats(ctx context.Context) (*CatalogStats, error)
}

// CatalogStats summarises the persisted corpus.
type CatalogStats struct {
	Articles  int `json:"articles"`
	Drafts    int `json:"drafts"`
	Tags      int `json:"tags"`
	WordCount int `json:"word_count"`
}

// ArticleRecord is the catalog projection of a document.
type ArticleRecord struct {
	ID          uuid.UUID `json:"id"`
	Path        string    `json:"path"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Author      string    `json:"author,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt string    `json:"published_at,omitempty"`
	EditedAt    string    `json:"edited_at,omitempty"`
	Draft       bool      `json:"draft"`
	Checksum    string    `json:"checksum"`
	WordCount   int       `json:"word_count"`
}

// CatalogSyncOptions controls upsert and orphan behaviour for a sync run.
type CatalogSyncOptions struct {
	DryRun         bool
	DeleteOrphaned bool
}

// CatalogSyncResult summarises a sync run across many files.
type CatalogSyncResult struct {
	Created int
	Updated int
	Skipped int
	Deleted int
	Errors  []error
}
