package interfaces

import "context"

// SearchService provides full-text search over indexed documents.
type SearchService interface {
	Index(ctx context.Context, docs []*Document) error
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
	Close() error
}

// SearchHit is a single ranked match.
type SearchHit struct {
	Path  string  `json:"path"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}
