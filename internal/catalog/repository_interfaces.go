package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ArticleRepository exposes persistence operations for catalog articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *Article) (*Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context) ([]*Article, error)
	Update(ctx context.Context, article *Article) (*Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a catalog record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
