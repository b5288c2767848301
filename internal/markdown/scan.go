package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// Scan parses the Markdown body into an AST and extracts the structural
// outline used by integrity rules and catalog statistics: fenced code blocks
// with their language tags, image references, footnote usage, headings, and a
// word count. Math delimiters are checked lexically since goldmark has no
// math extension and $…$ spans survive as plain text.
func Scan(source []byte) (*interfaces.Outline, error) {
	engine := goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Footnote))
	root := engine.Parser().Parse(text.NewReader(source))

	lines := lineOffsets(source)
	outline := &interfaces.Outline{}
	imageSearch := map[string]int{}

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			outline.CodeBlocks = append(outline.CodeBlocks, interfaces.CodeBlock{
				Language: string(node.Language(source)),
				Line:     fenceLine(node, lines),
			})
		case *ast.Image:
			dest := string(node.Destination)
			outline.Images = append(outline.Images, interfaces.ImageRef{
				Destination: dest,
				Line:        imageLine(source, lines, dest, imageSearch),
			})
			// Alt text lives in child text nodes; skip so it does not count
			// towards prose words.
			return ast.WalkSkipChildren, nil
		case *extast.FootnoteLink:
			outline.FootnoteRefs++
		case *extast.Footnote:
			outline.FootnoteDefs++
		case *ast.Heading:
			outline.Headings++
		case *ast.Text:
			outline.WordCount += len(bytes.Fields(node.Segment.Value(source)))
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	outline.MathIssues = scanMath(source)
	return outline, nil
}

// lineOffsets returns the byte offset of the start of each line.
func lineOffsets(source []byte) []int {
	offsets := []int{0}
	for i, b := range source {
		if b == '\n' && i+1 < len(source) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// lineAt converts a byte offset into a 1-based line number.
func lineAt(offsets []int, off int) int {
	lo, hi := 0, len(offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if offsets[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

func fenceLine(node *ast.FencedCodeBlock, offsets []int) int {
	if node.Info != nil {
		return lineAt(offsets, node.Info.Segment.Start)
	}
	if node.Lines().Len() > 0 {
		// The opening fence sits on the line before the first content line.
		line := lineAt(offsets, node.Lines().At(0).Start)
		if line > 1 {
			return line - 1
		}
		return line
	}
	return 0
}

// imageLine locates the destination in the raw source to attribute the embed
// to a line. Repeated destinations advance the search window so each embed
// resolves to its own occurrence.
func imageLine(source []byte, offsets []int, dest string, search map[string]int) int {
	if dest == "" {
		return 0
	}
	from := search[dest]
	if from > len(source) {
		from = 0
	}
	idx := bytes.Index(source[from:], []byte(dest))
	if idx < 0 {
		return 0
	}
	abs := from + idx
	search[dest] = abs + len(dest)
	return lineAt(offsets, abs)
}

// scanMath reports unbalanced math delimiters. Fenced code regions are
// skipped so shell prompts and JSX snippets do not trip the scanner.
func scanMath(source []byte) []interfaces.MathIssue {
	var issues []interfaces.MathIssue

	inFence := false
	inBlock := false
	blockOpenLine := 0

	for i, raw := range strings.Split(string(source), "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		blockDelims := strings.Count(raw, "$$")
		if blockDelims%2 == 1 {
			if inBlock {
				inBlock = false
			} else {
				inBlock = true
				blockOpenLine = lineNo
			}
		}
		if inBlock || blockDelims > 0 {
			continue
		}

		if countInlineDollars(raw)%2 == 1 {
			issues = append(issues, interfaces.MathIssue{
				Line:    lineNo,
				Message: "unbalanced inline math delimiter",
			})
		}
	}

	if inBlock {
		issues = append(issues, interfaces.MathIssue{
			Line:    blockOpenLine,
			Message: "unclosed math block",
		})
	}

	return issues
}

func countInlineDollars(line string) int {
	count := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '$' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		count++
	}
	return count
}
