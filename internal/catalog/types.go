package catalog

import (
	"time"

	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Article is the persisted projection of a corpus document.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Path        string    `bun:"path,notnull" json:"path"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Title       string    `bun:"title,notnull" json:"title"`
	Summary     *string   `bun:"summary" json:"summary,omitempty"`
	Author      *string   `bun:"author" json:"author,omitempty"`
	Tags        []string  `bun:"tags,type:jsonb" json:"tags,omitempty"`
	PublishedAt time.Time `bun:"published_at,nullzero" json:"published_at"`
	EditedAt    time.Time `bun:"edited_at,nullzero" json:"edited_at,omitempty"`
	Draft       bool      `bun:"draft,notnull,default:false" json:"draft"`
	Checksum    string    `bun:"checksum,notnull" json:"checksum"`
	WordCount   int       `bun:"word_count,notnull,default:0" json:"word_count"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Record converts the stored article into the shared contract type.
func (a *Article) Record() *interfaces.ArticleRecord {
	if a == nil {
		return nil
	}
	record := &interfaces.ArticleRecord{
		ID:        a.ID,
		Path:      a.Path,
		Slug:      a.Slug,
		Title:     a.Title,
		Tags:      append([]string(nil), a.Tags...),
		Draft:     a.Draft,
		Checksum:  a.Checksum,
		WordCount: a.WordCount,
	}
	if a.Summary != nil {
		record.Summary = *a.Summary
	}
	if a.Author != nil {
		record.Author = *a.Author
	}
	if !a.PublishedAt.IsZero() {
		record.PublishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
	}
	if !a.EditedAt.IsZero() {
		record.EditedAt = a.EditedAt.UTC().Format(time.RFC3339)
	}
	return record
}
