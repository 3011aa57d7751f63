package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// elementSchema describes a well-formed element of a model response for
// type t. Only id, explanation and difficulty may be omitted.
func elementSchema(t QuestionType) map[string]any {
	props := map[string]any{
		"id":          map[string]any{"type": "integer", "minimum": 1},
		"type":        map[string]any{"const": string(t)},
		"question":    map[string]any{"type": "string"},
		"explanation": map[string]any{"type": "string"},
		"difficulty":  map[string]any{"type": "string"},
		"answer":      answerSchema(t),
	}
	required := []any{"type", "question", "answer"}

	if t == TypeMCQ {
		props["options"] = optionsSchema()
		required = append(required, "options")
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// recordSchema describes the JSON form of a Record of type t.
func recordSchema(t QuestionType) map[string]any {
	s := elementSchema(t)
	s["required"] = []any{"id", "type", "question", "answer", "explanation", "difficulty"}
	s["additionalProperties"] = false
	if t == TypeMCQ {
		s["required"] = append(s["required"].([]any), "options")
	}
	return s
}

func answerSchema(t QuestionType) map[string]any {
	switch t {
	case TypeMCQ:
		return map[string]any{"enum": []any{"A", "B", "C", "D"}}
	case TypeTF:
		return map[string]any{"type": "boolean"}
	}
	return map[string]any{"type": "string"}
}

func optionsSchema() map[string]any {
	return map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"minItems": 4,
		"maxItems": 4,
	}
}

// validateElement checks a raw parsed element against the element
// schema for t.
func validateElement(t QuestionType, v any) error {
	return validate("element-"+string(t), func() map[string]any { return elementSchema(t) }, v)
}

func validate(name string, def func() map[string]any, v any) error {
	compiled, err := compiledSchema(name, def)
	if err != nil {
		return err
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("schema %s: %s", name, oneLine(err.Error()))
	}
	return nil
}

func compiledSchema(name string, def func() map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON values.
	defBytes, err := json.Marshal(def())
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", name, err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// CheckRecords verifies that records satisfy the output contract: each
// record matches the schema for its type and ids are unique.
func CheckRecords(records []Record) error {
	seen := make(map[int]bool, len(records))
	for i, r := range records {
		if !r.Type.Concrete() {
			return fmt.Errorf("record %d: invalid type %q", i, r.Type)
		}
		if seen[r.ID] {
			return fmt.Errorf("record %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = true

		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		v, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		t := r.Type
		if err := validate("record-"+string(t), func() map[string]any { return recordSchema(t) }, v); err != nil {
			return fmt.Errorf("record %d (id %d): %w", i, r.ID, err)
		}
	}
	return nil
}

// oneLine folds a multi-line validation report into a single line.
func oneLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "; ")
}
