package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

type stubIntegrityService struct {
	report    *interfaces.Report
	checkDir  string
	checkRuns int
}

func (s *stubIntegrityService) CheckDirectory(_ context.Context, dir string, _ interfaces.CheckOptions) (*interfaces.Report, error) {
	s.checkRuns++
	s.checkDir = dir
	return s.report, nil
}

func (s *stubIntegrityService) CheckDocuments(context.Context, []*interfaces.Document) (*interfaces.Report, error) {
	return s.report, nil
}

func withStubModule(t *testing.T, svc *stubIntegrityService) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Integrity: svc,
			Logger:    logging.NoOp(),
		}, nil
	}
}

func TestRunCheckPassesCleanCorpus(t *testing.T) {
	svc := &stubIntegrityService{report: &interfaces.Report{Documents: 3}}
	withStubModule(t, svc)

	out := &bytes.Buffer{}
	if err := runCheck([]string{"-directory", "articles"}, out); err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
	if svc.checkRuns != 1 {
		t.Fatalf("expected one check run, got %d", svc.checkRuns)
	}
	if svc.checkDir != "articles" {
		t.Fatalf("expected directory articles, got %s", svc.checkDir)
	}
	if !strings.Contains(out.String(), "corpus check passed: 3 documents") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunCheckFailsOnErrors(t *testing.T) {
	svc := &stubIntegrityService{report: &interfaces.Report{
		Documents: 1,
		Issues: []interfaces.Issue{
			{Path: "bad.md", Rule: "chronology", Severity: interfaces.SeverityError, Message: "editedAt precedes publishedAt"},
		},
	}}
	withStubModule(t, svc)

	out := &bytes.Buffer{}
	err := runCheck(nil, out)
	if err == nil {
		t.Fatal("expected error for corpus with integrity errors")
	}
	if !strings.Contains(err.Error(), "1 integrity errors") {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(out.String(), "bad.md") {
		t.Fatalf("expected issue listing, got %q", out.String())
	}
}

func TestRunCheckWarningsGatedByFlag(t *testing.T) {
	report := &interfaces.Report{
		Documents: 2,
		Issues: []interfaces.Issue{
			{Path: "a.md", Rule: "fence-language", Severity: interfaces.SeverityWarning, Message: "untagged fence"},
		},
	}

	svc := &stubIntegrityService{report: report}
	withStubModule(t, svc)
	if err := runCheck(nil, &bytes.Buffer{}); err != nil {
		t.Fatalf("expected warnings to pass by default, got %v", err)
	}

	svc = &stubIntegrityService{report: report}
	withStubModule(t, svc)
	if err := runCheck([]string{"-fail-on-warnings"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error with -fail-on-warnings")
	}
}

func TestRunCheckJSONOutput(t *testing.T) {
	svc := &stubIntegrityService{report: &interfaces.Report{Documents: 1}}
	withStubModule(t, svc)

	out := &bytes.Buffer{}
	if err := runCheck([]string{"-json"}, out); err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
	if !strings.Contains(out.String(), `"documents": 1`) {
		t.Fatalf("expected JSON report, got %q", out.String())
	}
}
