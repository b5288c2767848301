package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML and Outline are intentionally
// left empty so callers can render and scan lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	frontmatter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  frontmatter,
		Body:         body,
		LastModified: modified,
	}, nil
}

// frontMatterEnvelope accepts both spellings of each date field so corpora
// using `date`/`updatedAt` and corpora using `publishedAt`/`editedAt` parse
// identically. The canonical key wins when both are present.
type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Summary     string         `yaml:"summary"`
	Tags        []string       `yaml:"tags"`
	Author      string         `yaml:"author"`
	Date        time.Time      `yaml:"date"`
	PublishedAt time.Time      `yaml:"publishedAt"`
	UpdatedAt   time.Time      `yaml:"updatedAt"`
	EditedAt    time.Time      `yaml:"editedAt"`
	Draft       bool           `yaml:"draft"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	published := env.PublishedAt
	if published.IsZero() {
		published = env.Date
	}
	edited := env.EditedAt
	if edited.IsZero() {
		edited = env.UpdatedAt
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if !published.IsZero() {
		raw["publishedAt"] = published
	}
	if !edited.IsZero() {
		raw["editedAt"] = edited
	}
	raw["draft"] = env.Draft

	return interfaces.FrontMatter{
		Title:       env.Title,
		Slug:        env.Slug,
		Summary:     env.Summary,
		Tags:        append([]string(nil), env.Tags...),
		Author:      env.Author,
		PublishedAt: published,
		EditedAt:    edited,
		Draft:       env.Draft,
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
