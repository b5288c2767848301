package integrity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-corpus/pkg/interfaces"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaRule validates raw front-matter against a JSON schema. Hosts supply a
// schema to tighten the default structural checks, for example to require a
// summary or constrain tag vocabularies.
type SchemaRule struct {
	compiled *jsonschema.Schema
}

// NewSchemaRule compiles the schema once so per-document checks stay cheap.
// A nil or empty schema yields a rule that produces no issues.
func NewSchemaRule(schema map[string]any) (*SchemaRule, error) {
	if len(schema) == 0 {
		return &SchemaRule{}, nil
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("integrity: compile front-matter schema: %w", err)
	}
	return &SchemaRule{compiled: compiled}, nil
}

func (*SchemaRule) Name() string { return RuleSchema }

func (r *SchemaRule) Check(_ context.Context, doc *interfaces.Document) []interfaces.Issue {
	if r.compiled == nil {
		return nil
	}
	payload := doc.FrontMatter.Raw
	if payload == nil {
		payload = map[string]any{}
	}
	err := r.compiled.Validate(normalizePayload(payload))
	if err == nil {
		return nil
	}

	var issues []interfaces.Issue
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		for _, cause := range leafCauses(validationErr) {
			location := strings.TrimSpace(cause.InstanceLocation)
			if location == "" {
				location = "#"
			}
			issues = append(issues, interfaces.Issue{
				Path:     doc.FilePath,
				Rule:     RuleSchema,
				Severity: interfaces.SeverityError,
				Message:  fmt.Sprintf("%s: %s", location, strings.TrimSpace(cause.Message)),
			})
		}
		return issues
	}
	return []interfaces.Issue{{
		Path:     doc.FilePath,
		Rule:     RuleSchema,
		Severity: interfaces.SeverityError,
		Message:  err.Error(),
	}}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("frontmatter.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("frontmatter.json")
}

// leafCauses flattens a validation error tree into its leaf causes, which
// carry the most specific locations and messages.
func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}

// normalizePayload rewrites YAML-decoded values into shapes the JSON schema
// validator accepts. YAML produces map[any]any for nested mappings and
// time.Time for timestamps; JSON schema validation expects string keys and
// primitive values.
func normalizePayload(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = normalizePayload(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprintf("%v", key)] = normalizePayload(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizePayload(item)
		}
		return out
	case fmt.Stringer:
		return typed.String()
	default:
		return typed
	}
}
