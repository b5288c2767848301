package interfaces

import "context"

// Severity classifies how serious an integrity issue is.
type Severity string

const (
	// SeverityError marks issues that should fail a corpus check.
	SeverityError Severity = "error"
	// SeverityWarning marks anomalies worth surfacing without failing the run.
	SeverityWarning Severity = "warning"
)

// Issue describes a single content-integrity finding for a document.
type Issue struct {
	Path     string   `json:"path"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	// Line is 1-based when the rule can attribute the issue to a source
	// line, zero otherwise.
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// Report aggregates issues produced by a corpus check.
type Report struct {
	Documents int     `json:"documents"`
	Issues    []Issue `json:"issues"`
}

// HasErrors reports whether any issue carries error severity.
func (r *Report) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of error and warning issues.
func (r *Report) Counts() (errors, warnings int) {
	if r == nil {
		return 0, 0
	}
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		default:
			warnings++
		}
	}
	return errors, warnings
}

// IntegrityService runs content-integrity rules over a document corpus.
type IntegrityService interface {
	CheckDirectory(ctx context.Context, dir string, opts CheckOptions) (*Report, error)
	CheckDocuments(ctx context.Context, docs []*Document) (*Report, error)
}

// CheckOptions tunes a corpus check run.
type CheckOptions struct {
	Pattern   string
	Recursive *bool
}
