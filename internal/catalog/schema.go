package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://physiz-catalog.json"

// catalogSchema checks the shape of a catalog document before the
// semantic checks in Validate run.
var catalogSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "topics"},
	"properties": map[string]any{
		"version": map[string]any{"type": "integer", "minimum": 1},
		"topics": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/topic"},
		},
		"report": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"icon":   map[string]any{"type": "string"},
					"title":  map[string]any{"type": "string"},
					"quotes": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"additionalProperties": false,
			},
		},
	},
	"additionalProperties": false,
	"$defs": map[string]any{
		"topic": map[string]any{
			"type":     "object",
			"required": []any{"id", "title", "templates"},
			"properties": map[string]any{
				"id":        map[string]any{"type": "string", "minLength": 1},
				"title":     map[string]any{"type": "string"},
				"templates": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/template"}},
			},
			"additionalProperties": false,
		},
		"template": map[string]any{
			"type":     "object",
			"required": []any{"id", "level", "type", "text"},
			"properties": map[string]any{
				"id":              map[string]any{"type": "string", "minLength": 1},
				"level":           map[string]any{"type": "integer", "minimum": 1},
				"type":            map[string]any{"type": "string", "enum": []any{"multiple_choice", "numeric"}},
				"unit":            map[string]any{"type": "string"},
				"text":            map[string]any{"type": "string", "minLength": 1},
				"variables":       map[string]any{"type": "object", "additionalProperties": map[string]any{"$ref": "#/$defs/variable"}},
				"fixedAnswer":     map[string]any{"type": []any{"string", "number"}},
				"answerFormula":   map[string]any{"type": "string", "minLength": 1},
				"wrongFormulas":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"wrongAnswers":    map[string]any{"type": "array", "items": map[string]any{"type": []any{"string", "number"}}},
				"tolerance":       map[string]any{"type": "number", "minimum": 0},
				"hint":            map[string]any{"type": "string"},
				"trapExplanation": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
		"variable": map[string]any{
			"oneOf": []any{
				map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": []any{"string", "number"}},
				},
				map[string]any{
					"type":     "object",
					"required": []any{"min", "max", "step"},
					"properties": map[string]any{
						"min":  map[string]any{"type": "number"},
						"max":  map[string]any{"type": "number"},
						"step": map[string]any{"type": "number", "exclusiveMinimum": 0},
					},
					"additionalProperties": false,
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain JSON value, not Go map literals with []any
		// of mixed types, so round-trip through encoding/json.
		b, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateSchema checks a generic decoded document against the catalog schema.
func validateSchema(raw any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert catalog to JSON: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("convert catalog to JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
