package catalog

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunArticleRepository implements ArticleRepository with optional caching.
type BunArticleRepository struct {
	repo         repository.Repository[*Article]
	cacheService cache.CacheService
	cachePrefix  string
}

const articleNamespace = "article"

// NewBunArticleRepository creates an article repository without caching.
func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache creates an article repository with caching services.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunArticleRepository {
	base := NewArticleRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = articleNamespace + cache.KeySeparator
	}
	return &BunArticleRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunArticleRepository) Create(ctx context.Context, article *Article) (*Article, error) {
	record, err := r.repo.Create(ctx, article)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "article", id.String())
	}
	return record, nil
}

func (r *BunArticleRepository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "article", slug)
	}
	return record, nil
}

func (r *BunArticleRepository) List(ctx context.Context) ([]*Article, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.published_at DESC")
		}),
	)
	return records, err
}

func (r *BunArticleRepository) Update(ctx context.Context, article *Article) (*Article, error) {
	record, err := r.repo.Update(ctx, article)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Article{ID: id})
}

// InvalidateCache drops cached article entries after bulk mutations.
func (r *BunArticleRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}
