// Package workflow parses and validates batch generation requests
// supplied as JSON documents.
package workflow

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"

	"github.com/bertram-labs/blog-agent/internal/pipeline"
)

//go:embed schema.json
var requestSchema string

// Request is a batch generation request covering one or more topics
// against a single reference blog.
type Request struct {
	RootBlogURL        string   `json:"root_blog_url"`
	HighPerforming     []string `json:"high_performing_pages,omitempty"`
	SEOKeywords        []string `json:"seo_keywords,omitempty"`
	TargetProductURLs  []string `json:"target_product_urls,omitempty"`
	Topics             []string `json:"topics"`
	WritingRequirement string   `json:"writing_requirements,omitempty"`
	PostsToAvoid       []string `json:"existing_blog_posts_to_avoid,omitempty"`
}

// ValidationError carries per-field schema violations.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("workflow request invalid:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Parse validates raw JSON against the request schema and decodes it.
func Parse(data []byte) (*Request, error) {
	schemaLoader := gojsonschema.NewStringLoader(requestSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate workflow request: %w", err)
	}
	if !result.Valid() {
		ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, ve
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode workflow request: %w", err)
	}
	return &req, nil
}

// PipelineRequests expands the workflow request into one pipeline
// request per topic. SEO keywords fold into the writing requirements so
// every stage sees them.
func (r *Request) PipelineRequests() []pipeline.Request {
	requirements := r.WritingRequirement
	if len(r.SEOKeywords) > 0 {
		if requirements != "" {
			requirements += "\n"
		}
		requirements += "Target SEO keywords: " + strings.Join(r.SEOKeywords, ", ")
	}

	avoid := make([]string, len(r.PostsToAvoid))
	copy(avoid, r.PostsToAvoid)

	reqs := make([]pipeline.Request, 0, len(r.Topics))
	for _, topic := range r.Topics {
		reqs = append(reqs, pipeline.Request{
			Topic:               topic,
			BlogURL:             r.RootBlogURL,
			Requirements:        requirements,
			HighPerformingPages: r.HighPerforming,
			TargetProductURLs:   r.TargetProductURLs,
			ExistingTitles:      avoid,
		})
	}
	return reqs
}

// Sample returns a filled-in example request document.
func Sample() string {
	return `{
  "existing_blog_posts_to_avoid": [
    "https://blog.example.com/post-1",
    "https://blog.example.com/post-2"
  ],
  "high_performing_pages": [
    "https://blog.example.com/high-performer-1",
    "https://blog.example.com/high-performer-2"
  ],
  "root_blog_url": "https://blog.example.com/",
  "seo_keywords": [
    "keyword1",
    "keyword2",
    "keyword3"
  ],
  "target_product_urls": [
    "https://www.example.com/products/product-1"
  ],
  "topics": [
    "your topic here"
  ],
  "writing_requirements": "length should be 2000 words, include FAQ section, add call to action"
}`
}
