// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "StyleMetadata")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// StyleMetadataSchema returns the extraction schema applied to a finished
// style analysis. The extracted fields are persisted alongside the guide
// text so cached guides can be browsed without re-reading the full prose.
func StyleMetadataSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "StyleMetadata",
		Description: `You are an expert editorial analyst. Your task is to extract key style attributes from a blog writing style guide.
Summarize each attribute concisely from what the guide actually says.`,
		Fields: []SchemaField{
			{
				Name:        "tone",
				Type:        "\"string\"",
				Description: "Overall voice and tone (e.g., 'practical, direct', 'conversational, warm')",
				Required:    true,
			},
			{
				Name:        "heading_style",
				Type:        "\"string\"",
				Description: "How headings are written (e.g., 'question-form H2s', 'short imperative headings')",
				Required:    true,
			},
			{
				Name:        "list_style",
				Type:        "\"string\"",
				Description: "How lists are used (e.g., 'numbered step lists', 'sparse bullets')",
				Required:    true,
			},
			{
				Name:        "analysis_quality",
				Type:        "\"string\"",
				Description: "One of: 'detailed', 'partial', 'thin' - how complete the guide is",
				Required:    false,
			},
		},
	}
}
