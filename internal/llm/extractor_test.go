package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ExtractionSchema{
		Name:        "Test",
		Description: "Extract test fields.",
		Fields: []SchemaField{
			{Name: "tone", Type: "\"string\"", Description: "overall tone", Required: true},
			{Name: "notes", Type: "[\"string\"]"},
		},
	}

	prompt := BuildExtractionPrompt(schema, "some input text")

	assert.Contains(t, prompt, "Extract test fields.")
	assert.Contains(t, prompt, `"tone": "string" (required) // overall tone`)
	assert.Contains(t, prompt, `"notes": ["string"]`)
	assert.Contains(t, prompt, "some input text")
	assert.Contains(t, prompt, "Return ONLY the JSON object")
}

func TestStyleMetadataSchema(t *testing.T) {
	schema := StyleMetadataSchema()

	assert.Equal(t, "StyleMetadata", schema.Name)

	names := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"tone", "heading_style", "list_style", "analysis_quality"}, names)
}
