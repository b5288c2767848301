package catalog

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewArticleRepository creates a repository for Article entities keyed by slug.
func NewArticleRepository(db *bun.DB) repository.Repository[*Article] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Article]{
		NewRecord: func() *Article { return &Article{} },
		GetID: func(a *Article) uuid.UUID {
			return a.ID
		},
		SetID: func(a *Article, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(a *Article) string {
			return a.Slug
		},
	})
}
