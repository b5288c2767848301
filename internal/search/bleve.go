// Package search provides full-text search over corpus documents backed by a
// bleve index, either in memory or persisted on disk.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// indexEntry is the shape stored in the bleve index per document.
type indexEntry struct {
	Path    string   `json:"path"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Author  string   `json:"author"`
	Body    string   `json:"body"`
}

// Service implements interfaces.SearchService on a bleve index.
type Service struct {
	index  bleve.Index
	logger interfaces.Logger
}

var _ interfaces.SearchService = (*Service)(nil)

// NewMemoryService builds a search service over an in-memory index. This is
// what the CLI uses: the index is rebuilt from disk on each invocation.
func NewMemoryService(logger interfaces.Logger) (*Service, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("search: create memory index: %w", err)
	}
	return newService(index, logger), nil
}

// NewPersistentService builds a search service over an on-disk index,
// creating it when missing.
func NewPersistentService(path string, logger interfaces.Logger) (*Service, error) {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, bleve.NewIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("search: open index %s: %w", path, err)
	}
	return newService(index, logger), nil
}

func newService(index bleve.Index, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{index: index, logger: logger}
}

// Index adds or replaces documents in the index, keyed by file path.
func (s *Service) Index(ctx context.Context, docs []*interfaces.Document) error {
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if doc == nil {
			continue
		}
		entry := indexEntry{
			Path:    doc.FilePath,
			Title:   doc.FrontMatter.Title,
			Summary: doc.FrontMatter.Summary,
			Tags:    doc.FrontMatter.Tags,
			Author:  doc.FrontMatter.Author,
			Body:    string(doc.Body),
		}
		if err := s.index.Index(doc.FilePath, entry); err != nil {
			return fmt.Errorf("search: index %s: %w", doc.FilePath, err)
		}
	}
	s.logger.Debug("indexed documents", "count", len(docs))
	return nil
}

// Search runs a query string search and returns up to limit ranked hits.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]interfaces.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	request := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), limit, 0, false)
	request.Fields = []string{"title"}

	result, err := s.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search: query %q: %w", query, err)
	}

	hits := make([]interfaces.SearchHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		title, _ := hit.Fields["title"].(string)
		hits = append(hits, interfaces.SearchHit{
			Path:  hit.ID,
			Title: title,
			Score: hit.Score,
		})
	}
	return hits, nil
}

// Close releases the underlying index.
func (s *Service) Close() error {
	return s.index.Close()
}
