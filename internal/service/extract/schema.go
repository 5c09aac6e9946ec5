package extract

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema definitions mirror the shapes the prompts ask for. Only the fields
// a result is unusable without are required; everything else is advisory.
var schemaDefs = map[string]map[string]any{
	"enrichment": {
		"type":     "object",
		"required": []any{"translation", "part_of_speech"},
		"properties": map[string]any{
			"translation":        map[string]any{"type": "string"},
			"part_of_speech":     map[string]any{"type": "string"},
			"example_sentence":   map[string]any{"type": "string"},
			"pronunciation_hint": map[string]any{"type": "string"},
			"gender":             map[string]any{"type": "string"},
			"notes":              map[string]any{"type": "string"},
		},
	},
	"flashcards": {
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"word", "translation"},
			"properties": map[string]any{
				"word":           map[string]any{"type": "string"},
				"part_of_speech": map[string]any{"type": "string"},
				"translation":    map[string]any{"type": "string"},
			},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateSchema checks parsed JSON against the named schema.
func validateSchema(name string, parsed any) error {
	compiled, err := compiledSchema(name)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}
	return compiled.Validate(parsed)
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := schemaDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	// Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
