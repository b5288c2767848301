package integrity

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/internal/markdown"
	"github.com/goliatone/go-corpus/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

// Config tunes which rules a checker runs and how they behave.
type Config struct {
	// ExtraLanguages extends the recognized fence language set.
	ExtraLanguages []string
	// FrontMatterSchema optionally validates raw front-matter with a JSON
	// schema on top of the structural rules.
	FrontMatterSchema map[string]any
	// Rules appends custom document rules after the builtin set.
	Rules []DocumentRule
	// CorpusRules appends custom corpus rules after the builtin set.
	CorpusRules []CorpusRule
}

// Checker implements interfaces.IntegrityService over a markdown service.
type Checker struct {
	markdown    *markdown.Service
	rules       []DocumentRule
	corpusRules []CorpusRule
	logger      interfaces.Logger
}

var _ interfaces.IntegrityService = (*Checker)(nil)

// NewChecker wires the builtin rule set plus any configured extras. The image
// path rule reads from the markdown service's filesystem so checks agree with
// what the loader saw.
func NewChecker(md *markdown.Service, cfg Config, logger interfaces.Logger) (*Checker, error) {
	if md == nil {
		return nil, goerrors.New("integrity checker requires a markdown service", goerrors.CategoryValidation)
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	schemaRule, err := NewSchemaRule(cfg.FrontMatterSchema)
	if err != nil {
		return nil, err
	}

	rules := []DocumentRule{
		TitleRule{},
		ChronologyRule{},
		NewFenceLanguageRule(cfg.ExtraLanguages),
		NewImagePathRule(md.Loader().FS()),
		MathDelimiterRule{},
		schemaRule,
	}
	rules = append(rules, cfg.Rules...)

	corpusRules := []CorpusRule{
		DuplicateTitleRule{},
		DuplicateSlugRule{},
	}
	corpusRules = append(corpusRules, cfg.CorpusRules...)

	return &Checker{
		markdown:    md,
		rules:       rules,
		corpusRules: corpusRules,
		logger:      logger,
	}, nil
}

// CheckDirectory loads every document under dir and runs the rule set over
// the result. Files whose front-matter cannot be parsed become issues rather
// than aborting the run.
func (c *Checker) CheckDirectory(ctx context.Context, dir string, opts interfaces.CheckOptions) (*interfaces.Report, error) {
	docs, failures, err := c.markdown.LoadCorpus(ctx, dir, interfaces.LoadOptions{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryCommand, "integrity check failed to load corpus").
			WithTextCode("INTEGRITY_LOAD_FAILED")
	}

	report, err := c.CheckDocuments(ctx, docs)
	if err != nil {
		return nil, err
	}

	for _, failure := range failures {
		report.Documents++
		report.Issues = append(report.Issues, interfaces.Issue{
			Path:     failure.Path,
			Rule:     RuleFrontMatter,
			Severity: interfaces.SeverityError,
			Message:  fmt.Sprintf("front-matter failed to parse: %v", failure.Err),
		})
	}

	sortIssues(report.Issues)
	errs, warns := report.Counts()
	c.logger.Info("corpus check complete",
		"documents", report.Documents,
		"errors", errs,
		"warnings", warns,
	)
	return report, nil
}

// CheckDocuments runs the rule set over already-loaded documents.
func (c *Checker) CheckDocuments(ctx context.Context, docs []*interfaces.Document) (*interfaces.Report, error) {
	report := &interfaces.Report{Documents: len(docs)}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if doc == nil {
			continue
		}
		if _, err := c.markdown.Outline(ctx, doc); err != nil {
			return nil, err
		}
		for _, rule := range c.rules {
			issues := rule.Check(ctx, doc)
			if len(issues) > 0 {
				c.logger.Debug("rule flagged document",
					"rule", rule.Name(),
					"path", doc.FilePath,
					"issues", len(issues),
				)
			}
			report.Issues = append(report.Issues, issues...)
		}
	}

	for _, rule := range c.corpusRules {
		report.Issues = append(report.Issues, rule.CheckCorpus(ctx, docs)...)
	}

	sortIssues(report.Issues)
	return report, nil
}

func sortIssues(issues []interfaces.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Rule < issues[j].Rule
	})
}
