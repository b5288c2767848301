package markdown

import (
	"strings"
	"testing"
)

func TestScan_Outline(t *testing.T) {
	data := readFixture(t, "testdata/corpus/react-patterns.md")
	_, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	outline, err := Scan(body)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(outline.CodeBlocks) != 1 {
		t.Fatalf("expected 1 code block, got %d", len(outline.CodeBlocks))
	}
	if outline.CodeBlocks[0].Language != "jsx" {
		t.Fatalf("expected jsx fence, got %q", outline.CodeBlocks[0].Language)
	}
	if outline.CodeBlocks[0].Line == 0 {
		t.Fatalf("expected fence line to be attributed")
	}

	if len(outline.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(outline.Images))
	}
	if outline.Images[0].Destination != "assets/checkbox.png" {
		t.Fatalf("unexpected image destination %q", outline.Images[0].Destination)
	}

	if outline.FootnoteRefs != 1 || outline.FootnoteDefs != 1 {
		t.Fatalf("expected one footnote ref and def, got %d/%d", outline.FootnoteRefs, outline.FootnoteDefs)
	}
	if outline.Headings != 1 {
		t.Fatalf("expected 1 heading, got %d", outline.Headings)
	}
	if outline.WordCount == 0 {
		t.Fatalf("expected non-zero word count")
	}
}

func TestScan_UntaggedFence(t *testing.T) {
	outline, err := Scan([]byte("para\n\n```\nplain\n```\n"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(outline.CodeBlocks) != 1 {
		t.Fatalf("expected 1 code block, got %d", len(outline.CodeBlocks))
	}
	if outline.CodeBlocks[0].Language != "" {
		t.Fatalf("expected empty language, got %q", outline.CodeBlocks[0].Language)
	}
}

func TestScanMath_Balanced(t *testing.T) {
	data := readFixture(t, "testdata/corpus/y-combinator.md")
	_, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	outline, err := Scan(body)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(outline.MathIssues) != 0 {
		t.Fatalf("expected no math issues, got %#v", outline.MathIssues)
	}
}

func TestScanMath_UnbalancedInline(t *testing.T) {
	outline, err := Scan([]byte("An odd $delimiter on this line.\n"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(outline.MathIssues) != 1 {
		t.Fatalf("expected one math issue, got %#v", outline.MathIssues)
	}
	if outline.MathIssues[0].Line != 1 {
		t.Fatalf("expected issue on line 1, got %d", outline.MathIssues[0].Line)
	}
}

func TestScanMath_UnclosedBlock(t *testing.T) {
	source := strings.Join([]string{
		"Intro.",
		"",
		"$$",
		"e = mc^2",
		"",
	}, "\n")

	outline, err := Scan([]byte(source))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(outline.MathIssues) != 1 {
		t.Fatalf("expected one math issue, got %#v", outline.MathIssues)
	}
	if outline.MathIssues[0].Message != "unclosed math block" {
		t.Fatalf("unexpected message %q", outline.MathIssues[0].Message)
	}
}

func TestScanMath_IgnoresFencedCode(t *testing.T) {
	source := strings.Join([]string{
		"```sh",
		"echo $HOME",
		"```",
		"",
	}, "\n")

	outline, err := Scan([]byte(source))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(outline.MathIssues) != 0 {
		t.Fatalf("expected shell prompt to be ignored, got %#v", outline.MathIssues)
	}
}
