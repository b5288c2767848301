package integrity

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-corpus/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// Rule names referenced by reports and CLI filters.
const (
	RuleFrontMatter    = "frontmatter"
	RuleTitle          = "title"
	RuleChronology     = "chronology"
	RuleFenceLanguage  = "fence-language"
	RuleImagePath      = "image-path"
	RuleMathDelimiters = "math-delimiters"
	RuleDuplicateTitle = "duplicate-title"
	RuleDuplicateSlug  = "duplicate-slug"
	RuleSchema         = "schema"
)

// DocumentRule inspects a single document.
type DocumentRule interface {
	Name() string
	Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue
}

// CorpusRule inspects the corpus as a whole, for checks that only make sense
// across documents.
type CorpusRule interface {
	Name() string
	CheckCorpus(ctx context.Context, docs []*interfaces.Document) []interfaces.Issue
}

// TitleRule flags documents without a front-matter title.
type TitleRule struct{}

func (TitleRule) Name() string { return RuleTitle }

func (TitleRule) Check(_ context.Context, doc *interfaces.Document) []interfaces.Issue {
	if strings.TrimSpace(doc.FrontMatter.Title) != "" {
		return nil
	}
	return []interfaces.Issue{{
		Path:     doc.FilePath,
		Rule:     RuleTitle,
		Severity: interfaces.SeverityError,
		Message:  "front-matter is missing a title",
	}}
}

// ChronologyRule enforces that a document is published before it is edited.
type ChronologyRule struct{}

func (ChronologyRule) Name() string { return RuleChronology }

func (ChronologyRule) Check(_ context.Context, doc *interfaces.Document) []interfaces.Issue {
	fm := doc.FrontMatter
	if fm.PublishedAt.IsZero() {
		return []interfaces.Issue{{
			Path:     doc.FilePath,
			Rule:     RuleChronology,
			Severity: interfaces.SeverityError,
			Message:  "front-matter is missing a publication date",
		}}
	}
	if !fm.HasEditedAt() {
		return nil
	}
	if fm.EditedAt.Before(fm.PublishedAt) {
		return []interfaces.Issue{{
			Path:     doc.FilePath,
			Rule:     RuleChronology,
			Severity: interfaces.SeverityError,
			Message: fmt.Sprintf("editedAt %s precedes publishedAt %s",
				fm.EditedAt.Format("2006-01-02"), fm.PublishedAt.Format("2006-01-02")),
		}}
	}
	return nil
}

// FenceLanguageRule checks that fenced code blocks carry a recognized language
// tag. Untagged fences are warnings; unknown tags are errors since they point
// at typos that break highlighting downstream.
type FenceLanguageRule struct {
	languages map[string]struct{}
}

// NewFenceLanguageRule builds the rule with the default language set plus any
// extras from configuration.
func NewFenceLanguageRule(extra []string) *FenceLanguageRule {
	languages := make(map[string]struct{}, len(defaultFenceLanguages)+len(extra))
	for _, lang := range defaultFenceLanguages {
		languages[lang] = struct{}{}
	}
	for _, lang := range extra {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			languages[lang] = struct{}{}
		}
	}
	return &FenceLanguageRule{languages: languages}
}

func (*FenceLanguageRule) Name() string { return RuleFenceLanguage }

func (r *FenceLanguageRule) Check(_ context.Context, doc *interfaces.Document) []interfaces.Issue {
	if doc.Outline == nil {
		return nil
	}
	var issues []interfaces.Issue
	for _, block := range doc.Outline.CodeBlocks {
		lang := strings.ToLower(strings.TrimSpace(block.Language))
		if lang == "" {
			issues = append(issues, interfaces.Issue{
				Path:     doc.FilePath,
				Rule:     RuleFenceLanguage,
				Severity: interfaces.SeverityWarning,
				Line:     block.Line,
				Message:  "fenced code block has no language tag",
			})
			continue
		}
		if _, ok := r.languages[lang]; !ok {
			issues = append(issues, interfaces.Issue{
				Path:     doc.FilePath,
				Rule:     RuleFenceLanguage,
				Severity: interfaces.SeverityError,
				Line:     block.Line,
				Message:  fmt.Sprintf("unrecognized fence language %q", block.Language),
			})
		}
	}
	return issues
}

// defaultFenceLanguages covers the tags the corpus highlighter understands.
var defaultFenceLanguages = []string{
	"bash", "c", "cpp", "csharp", "css", "diff", "dockerfile", "elixir",
	"erlang", "go", "graphql", "haskell", "html", "ini", "java", "javascript",
	"jsx", "json", "kotlin", "latex", "lisp", "lua", "makefile", "markdown",
	"nix", "ocaml", "perl", "php", "plaintext", "powershell", "prolog",
	"protobuf", "python", "r", "racket", "ruby", "rust", "scala", "scheme",
	"shell", "sh", "sql", "swift", "text", "toml", "tsx", "typescript", "vim",
	"xml", "yaml", "zig", "zsh",
}

// ImagePathRule verifies that relative image destinations resolve to files in
// the corpus filesystem. Remote and data URLs are skipped.
type ImagePathRule struct {
	fsys fs.FS
}

// NewImagePathRule builds the rule over the corpus filesystem, rooted at the
// same base path the loader reads from.
func NewImagePathRule(fsys fs.FS) *ImagePathRule {
	return &ImagePathRule{fsys: fsys}
}

func (*ImagePathRule) Name() string { return RuleImagePath }

func (r *ImagePathRule) Check(_ context.Context, doc *interfaces.Document) []interfaces.Issue {
	if doc.Outline == nil || r.fsys == nil {
		return nil
	}
	var issues []interfaces.Issue
	for _, image := range doc.Outline.Images {
		dest := strings.TrimSpace(image.Destination)
		if dest == "" {
			issues = append(issues, interfaces.Issue{
				Path:     doc.FilePath,
				Rule:     RuleImagePath,
				Severity: interfaces.SeverityError,
				Line:     image.Line,
				Message:  "image has an empty destination",
			})
			continue
		}
		if isRemoteDestination(dest) {
			continue
		}
		resolved := resolveImagePath(doc.FilePath, dest)
		if _, err := fs.Stat(r.fsys, resolved); err != nil {
			issues = append(issues, interfaces.Issue{
				Path:     doc.FilePath,
				Rule:     RuleImagePath,
				Severity: interfaces.SeverityError,
				Line:     image.Line,
				Message:  fmt.Sprintf("image %s does not exist in the corpus", dest),
			})
		}
	}
	return issues
}

func isRemoteDestination(dest string) bool {
	lower := strings.ToLower(dest)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "mailto:")
}

func resolveImagePath(docPath, dest string) string {
	dest = strings.TrimPrefix(dest, "./")
	if strings.HasPrefix(dest, "/") {
		return path.Clean(strings.TrimPrefix(dest, "/"))
	}
	return path.Clean(path.Join(path.Dir(docPath), dest))
}

// MathDelimiterRule surfaces unbalanced math delimiters found by the outline
// scanner as warnings.
type MathDelimiterRule struct{}

func (MathDelimiterRule) Name() string { return RuleMathDelimiters }

func (MathDelimiterRule) Check(_ context.Context, doc *interfaces.Document) []interfaces.Issue {
	if doc.Outline == nil {
		return nil
	}
	var issues []interfaces.Issue
	for _, mi := range doc.Outline.MathIssues {
		issues = append(issues, interfaces.Issue{
			Path:     doc.FilePath,
			Rule:     RuleMathDelimiters,
			Severity: interfaces.SeverityWarning,
			Line:     mi.Line,
			Message:  mi.Message,
		})
	}
	return issues
}

// DuplicateTitleRule flags repeated titles across the corpus as anomalies.
// Two posts can legitimately share a title, so this stays a warning.
type DuplicateTitleRule struct{}

func (DuplicateTitleRule) Name() string { return RuleDuplicateTitle }

func (DuplicateTitleRule) CheckCorpus(_ context.Context, docs []*interfaces.Document) []interfaces.Issue {
	seen := map[string]string{}
	var issues []interfaces.Issue
	for _, doc := range docs {
		title := strings.ToLower(strings.TrimSpace(doc.FrontMatter.Title))
		if title == "" {
			continue
		}
		if first, ok := seen[title]; ok {
			issues = append(issues, interfaces.Issue{
				Path:     doc.FilePath,
				Rule:     RuleDuplicateTitle,
				Severity: interfaces.SeverityWarning,
				Message:  fmt.Sprintf("title %q already used by %s", doc.FrontMatter.Title, first),
			})
			continue
		}
		seen[title] = doc.FilePath
	}
	return issues
}

// DuplicateSlugRule flags repeated slugs across the corpus. Slugs become URL
// identifiers, so collisions are errors.
type DuplicateSlugRule struct{}

func (DuplicateSlugRule) Name() string { return RuleDuplicateSlug }

func (DuplicateSlugRule) CheckCorpus(_ context.Context, docs []*interfaces.Document) []interfaces.Issue {
	seen := map[string]string{}
	var issues []interfaces.Issue
	for _, doc := range docs {
		key := EffectiveSlug(doc)
		if key == "" {
			continue
		}
		if first, ok := seen[key]; ok {
			issues = append(issues, interfaces.Issue{
				Path:     doc.FilePath,
				Rule:     RuleDuplicateSlug,
				Severity: interfaces.SeverityError,
				Message:  fmt.Sprintf("slug %q already used by %s", key, first),
			})
			continue
		}
		seen[key] = doc.FilePath
	}
	return issues
}

// EffectiveSlug resolves the slug that identifies a document: the explicit
// front-matter slug when present, otherwise one derived from the title.
func EffectiveSlug(doc *interfaces.Document) string {
	source := strings.TrimSpace(doc.FrontMatter.Slug)
	if source == "" {
		source = strings.TrimSpace(doc.FrontMatter.Title)
	}
	if source == "" {
		return ""
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		return strings.ToLower(source)
	}
	return normalized
}
