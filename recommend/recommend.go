// Package recommend loads the suggested-question file shown to users before
// their first turn. The file is JSON, validated against an embedded schema
// so a malformed deployment artifact fails fast at startup.
package recommend

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Recommendation is a single clickable sample prompt.
type Recommendation struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

const schemaJSON = `{
	"type": "object",
	"required": ["recommendations"],
	"properties": {
		"recommendations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "question"],
				"properties": {
					"id": {"type": "integer"},
					"question": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

var schema = jsonschema.MustCompileString("recommendations.json", schemaJSON)

// Load reads and validates a recommendations file.
func Load(path string) ([]Recommendation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recommendations file: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse recommendations file: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate recommendations file: %w", err)
	}

	var doc struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode recommendations file: %w", err)
	}
	return doc.Recommendations, nil
}
