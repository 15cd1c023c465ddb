package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// JSON schemas for the structured responses. Schemas constrain shape only;
// value checks the prompts do not promise (score ranges, enum wording) are
// deliberately left out so a usable answer is never rejected over phrasing.

const painPointsSchema = `{
	"type": "object",
	"required": ["pain_points"],
	"properties": {
		"pain_points": {
			"type": "array",
			"minItems": 3,
			"maxItems": 3,
			"items": {"type": "string"}
		}
	}
}`

const jobMatchSchema = `{
	"type": "object",
	"required": ["match_score", "strengths", "gaps", "recommendation", "strategy"],
	"properties": {
		"match_score": {"type": "number"},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"gaps": {"type": "array", "items": {"type": "string"}},
		"recommendation": {"type": "string"},
		"strategy": {"type": "string"}
	}
}`

const extractedProfileSchema = `{
	"type": "object",
	"required": ["full_name", "professional_title", "about", "skills"],
	"properties": {
		"full_name": {"type": "string"},
		"professional_title": {"type": "string"},
		"about": {"type": "string"},
		"skills": {"type": "array", "items": {"type": "string"}},
		"experience": {"type": "array"},
		"projects": {"type": "array"},
		"social_links": {"type": "array"}
	}
}`

// schemaSet holds the compiled schemas keyed by stage name.
type schemaSet struct {
	schemas map[string]*jsonschema.Schema
}

func newSchemaSet() (*schemaSet, error) {
	raw := map[string]string{
		StagePainPoints:        painPointsSchema,
		StageJobMatch:          jobMatchSchema,
		StageProfileExtraction: extractedProfileSchema,
	}

	compiled := make(map[string]*jsonschema.Schema, len(raw))
	for name, src := range raw {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(src), rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		compiled[name] = rs
	}

	return &schemaSet{schemas: compiled}, nil
}

// validate checks a JSON document against the named schema and returns a
// single error summarizing any violations.
func (s *schemaSet) validate(ctx context.Context, name, doc string) error {
	schema, ok := s.schemas[name]
	if !ok {
		return fmt.Errorf("no schema for %s", name)
	}

	verrs, err := schema.ValidateBytes(ctx, []byte(doc))
	if err != nil {
		return fmt.Errorf("schema validate error: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return fmt.Errorf("response does not match schema: %s", sb.String())
	}

	return nil
}
