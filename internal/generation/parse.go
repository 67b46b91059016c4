package generation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const cardsSchemaURL = "schema://flashcards.json"

// Scalars are accepted for both fields; models sometimes answer "42" as 42.
const cardsSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"question": {"type": ["string", "number", "boolean"]},
			"answer": {"type": ["string", "number", "boolean"]}
		}
	}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func cardsSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(cardsSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(cardsSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(cardsSchemaURL)
	})
	return compiledSchema, compileErr
}

// ExtractJSONArray returns the text between the first '[' and the last ']'.
func ExtractJSONArray(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseCards extracts flashcards from raw model output.
//
// The output may wrap the array in prose or in a JSON object. Entries
// without a non-empty question and answer are dropped and the result is cut
// to limit when limit > 0. ErrInvalidResponse is returned when nothing
// usable remains.
func ParseCards(raw string, limit int) ([]Card, error) {
	arrayText, ok := ExtractJSONArray(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array in output", ErrInvalidResponse)
	}

	var parsed any
	if err := json.Unmarshal([]byte(arrayText), &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidResponse, err)
	}

	schema, err := cardsSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: schema validation failed: %v", ErrInvalidResponse, err)
	}

	items, _ := parsed.([]any)
	cards := make([]Card, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		q := scalarString(obj["question"])
		a := scalarString(obj["answer"])
		if q == "" || a == "" {
			continue
		}
		cards = append(cards, Card{Question: q, Answer: a})
		if limit > 0 && len(cards) == limit {
			break
		}
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no usable cards", ErrInvalidResponse)
	}
	return cards, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
