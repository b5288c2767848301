package catalog

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

var (
	ErrRepositoryRequired = errors.New("catalog: article repository is required")
	ErrSlugUnresolvable   = errors.New("catalog: document has neither slug nor title")
)

// ServiceConfig encapsulates dependencies for the catalog service.
type ServiceConfig struct {
	Repository ArticleRepository
	Logger     interfaces.Logger
}

// Service maintains the article index derived from corpus files.
type Service struct {
	repo   ArticleRepository
	logger interfaces.Logger
}

var _ interfaces.CatalogService = (*Service)(nil)

// NewService builds a catalog service from the supplied configuration.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Repository == nil {
		return nil, ErrRepositoryRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		repo:   cfg.Repository,
		logger: logger,
	}, nil
}

// Sync upserts one record per document keyed by slug. Unchanged files are
// detected by checksum and skipped. With DeleteOrphaned set, records whose
// source files no longer appear in docs are removed.
func (s *Service) Sync(ctx context.Context, docs []*interfaces.Document, opts interfaces.CatalogSyncOptions) (*interfaces.CatalogSyncResult, error) {
	acc := newSyncAccumulator()
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		key, err := documentSlug(doc)
		if err != nil {
			acc.addError(err)
			continue
		}
		if _, dup := seen[key]; dup {
			acc.addError(fmt.Errorf("catalog: duplicate slug %q from %s", key, doc.FilePath))
			continue
		}
		seen[key] = struct{}{}

		if err := s.applyDocument(ctx, key, doc, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	if opts.DeleteOrphaned {
		if err := s.deleteOrphaned(ctx, seen, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	result := acc.result()
	s.logger.Info("catalog sync complete",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"deleted", result.Deleted,
		"errors", len(result.Errors),
	)
	return result, firstError(result.Errors)
}

func (s *Service) applyDocument(ctx context.Context, key string, doc *interfaces.Document, opts interfaces.CatalogSyncOptions, acc *syncAccumulator) error {
	checksum := hex.EncodeToString(doc.Checksum)

	existing, err := s.repo.GetBySlug(ctx, key)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("catalog: lookup %s: %w", key, err)
		}
		existing = nil
	}

	if existing == nil {
		acc.created++
		if opts.DryRun {
			return nil
		}
		article := articleFromDocument(doc, key, checksum)
		article.ID = uuid.New()
		if _, err := s.repo.Create(ctx, article); err != nil {
			acc.created--
			return fmt.Errorf("catalog: create %s: %w", key, err)
		}
		return nil
	}

	if existing.Checksum == checksum && existing.Path == doc.FilePath {
		acc.skipped++
		return nil
	}

	acc.updated++
	if opts.DryRun {
		return nil
	}

	article := articleFromDocument(doc, key, checksum)
	article.ID = existing.ID
	article.CreatedAt = existing.CreatedAt
	if _, err := s.repo.Update(ctx, article); err != nil {
		acc.updated--
		return fmt.Errorf("catalog: update %s: %w", key, err)
	}
	return nil
}

func (s *Service) deleteOrphaned(ctx context.Context, seen map[string]struct{}, opts interfaces.CatalogSyncOptions, acc *syncAccumulator) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("catalog: list articles: %w", err)
	}

	for _, record := range existing {
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		acc.deleted++
		if opts.DryRun {
			continue
		}
		if err := s.repo.Delete(ctx, record.ID); err != nil {
			acc.deleted--
			return fmt.Errorf("catalog: delete %s: %w", record.Slug, err)
		}
	}
	return nil
}

// List returns every catalog record, newest publication first.
func (s *Service) List(ctx context.Context) ([]*interfaces.ArticleRecord, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRecords(articles), nil
}

// GetBySlug returns a single record by its slug identifier.
func (s *Service) GetBySlug(ctx context.Context, slugValue string) (*interfaces.ArticleRecord, error) {
	article, err := s.repo.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	return article.Record(), nil
}

// WithTag returns records carrying the given tag. Matching is case
// insensitive since tag casing in front-matter is inconsistent in practice.
func (s *Service) WithTag(ctx context.Context, tag string) ([]*interfaces.ArticleRecord, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(tag))
	matched := make([]*Article, 0, len(articles))
	for _, article := range articles {
		for _, candidate := range article.Tags {
			if strings.ToLower(strings.TrimSpace(candidate)) == needle {
				matched = append(matched, article)
				break
			}
		}
	}
	return toRecords(matched), nil
}

// Tags returns every tag in the catalog with its article count.
func (s *Service) Tags(ctx context.Context) (map[string]int, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, article := range articles {
		for _, tag := range article.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" {
				counts[tag]++
			}
		}
	}
	return counts, nil
}

// Stats summarises the persisted catalog.
func (s *Service) Stats(ctx context.Context) (*interfaces.CatalogStats, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &interfaces.CatalogStats{Articles: len(articles)}
	tags := map[string]struct{}{}
	for _, article := range articles {
		if article.Draft {
			stats.Drafts++
		}
		stats.WordCount += article.WordCount
		for _, tag := range article.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" {
				tags[tag] = struct{}{}
			}
		}
	}
	stats.Tags = len(tags)
	return stats, nil
}

func articleFromDocument(doc *interfaces.Document, key, checksum string) *Article {
	article := &Article{
		Path:        doc.FilePath,
		Slug:        key,
		Title:       strings.TrimSpace(doc.FrontMatter.Title),
		Summary:     optionalString(doc.FrontMatter.Summary),
		Author:      optionalString(doc.FrontMatter.Author),
		Tags:        normalizeTags(doc.FrontMatter.Tags),
		PublishedAt: doc.FrontMatter.PublishedAt,
		EditedAt:    doc.FrontMatter.EditedAt,
		Draft:       doc.FrontMatter.Draft,
		Checksum:    checksum,
	}
	if article.Title == "" {
		article.Title = fallbackTitle(key)
	}
	if doc.Outline != nil {
		article.WordCount = doc.Outline.WordCount
	}
	return article
}

func documentSlug(doc *interfaces.Document) (string, error) {
	if doc == nil {
		return "", errors.New("catalog: nil document")
	}
	source := strings.TrimSpace(doc.FrontMatter.Slug)
	if source == "" {
		source = strings.TrimSpace(doc.FrontMatter.Title)
	}
	if source == "" {
		return "", fmt.Errorf("%w: %s", ErrSlugUnresolvable, doc.FilePath)
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("catalog: normalize slug for %s: %w", doc.FilePath, err)
	}
	return normalized, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func fallbackTitle(key string) string {
	if key == "" {
		return "Untitled"
	}
	words := strings.Split(strings.ReplaceAll(key, "_", "-"), "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

type syncAccumulator struct {
	created int
	updated int
	skipped int
	deleted int
	errors  []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.CatalogSyncResult {
	return &interfaces.CatalogSyncResult{
		Created: s.created,
		Updated: s.updated,
		Skipped: s.skipped,
		Deleted: s.deleted,
		Errors:  s.errors,
	}
}

func toRecords(articles []*Article) []*interfaces.ArticleRecord {
	records := make([]*interfaces.ArticleRecord, 0, len(articles))
	for _, article := range articles {
		records = append(records, article.Record())
	}
	return records
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
