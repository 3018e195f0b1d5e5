package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bertram-labs/blog-agent/internal/brand"
	"github.com/bertram-labs/blog-agent/internal/pipeline"
	"github.com/bertram-labs/blog-agent/internal/store"
	"github.com/bertram-labs/blog-agent/internal/topics"
	"github.com/bertram-labs/blog-agent/internal/validation"
)

// TopicEnricher annotates topic ideas with keyword demand estimates.
// Satisfied by *keywords.Enricher.
type TopicEnricher interface {
	EnrichIdeas(ctx context.Context, ideas []topics.Idea)
}

// GenerateRequest represents the request body for /api/generate
type GenerateRequest struct {
	Brand               string   `json:"brand,omitempty"`
	Topic               string   `json:"topic" validate:"required,max=500"`
	BlogURL             string   `json:"blog_url,omitempty"`
	Requirements        string   `json:"requirements,omitempty" validate:"max=2000"`
	HighPerformingPages []string `json:"high_performing_pages,omitempty"`
	TargetProductURLs   []string `json:"target_product_urls,omitempty"`
	ExistingTitles      []string `json:"existing_titles,omitempty"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// GenerateResponse represents the response for /api/generate
type GenerateResponse struct {
	Result    *pipeline.Result `json:"result"`
	ContentID string           `json:"content_id,omitempty"`
}

// TopicsRequest represents the request body for /api/topics
type TopicsRequest struct {
	Brand          string   `json:"brand,omitempty"`
	BlogURL        string   `json:"blog_url,omitempty"`
	Count          int      `json:"count,omitempty" validate:"min=0,max=20"`
	Preferences    string   `json:"preferences,omitempty" validate:"max=2000"`
	ExistingTitles []string `json:"existing_titles,omitempty"`
}

// Validate validates the TopicsRequest using the validator.
func (r *TopicsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ExtractRequest represents the request body for /api/topics/extract
type ExtractRequest struct {
	BlogURL string `json:"blog_url" validate:"required"`
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// buildPipelineRequest validates the inputs and assembles a pipeline
// request, resolving the brand and blog URL.
func (s *Server) buildPipelineRequest(r *http.Request, req *GenerateRequest) (pipeline.Request, error) {
	var brandCfg *brand.Config
	blogURL := req.BlogURL

	if req.Brand != "" {
		cfg, err := brand.Get(req.Brand)
		if err != nil {
			return pipeline.Request{}, &ErrValidation{Field: "brand", Message: err.Error()}
		}
		brandCfg = cfg
		if blogURL == "" {
			blogURL = cfg.EffectiveStyleSource()
		}
	}

	if err := validation.Topic(req.Topic); err != nil {
		return pipeline.Request{}, &ErrValidation{Field: "topic", Message: err.Error()}
	}
	if err := validation.Requirements(req.Requirements); err != nil {
		return pipeline.Request{}, &ErrValidation{Field: "requirements", Message: err.Error()}
	}
	cleanURL, err := validation.BlogURL(blogURL)
	if err != nil {
		return pipeline.Request{}, &ErrValidation{Field: "blog_url", Message: err.Error()}
	}

	preq := pipeline.Request{
		Topic:               req.Topic,
		BlogURL:             cleanURL,
		Requirements:        req.Requirements,
		HighPerformingPages: req.HighPerformingPages,
		TargetProductURLs:   req.TargetProductURLs,
		ExistingTitles:      req.ExistingTitles,
		Brand:               brandCfg,
	}

	// Reuse a fresh cached style guide when persistence is available.
	if s.store != nil && req.Brand != "" {
		if sg, err := s.store.GetFreshStyleGuide(r.Context(), req.Brand, cleanURL, 0); err == nil && sg != nil {
			preq.CachedStyleGuide = sg.GuideText
		}
	}

	return preq, nil
}

// persistRun records a completed run and refreshes the style cache.
// Persistence failures are logged, never surfaced to the client.
func (s *Server) persistRun(r *http.Request, req *GenerateRequest, preq pipeline.Request, res *pipeline.Result) string {
	if s.store == nil || res.Failed() {
		return ""
	}

	if !res.StyleGuideCached && req.Brand != "" && res.StyleGuide != "" {
		err := s.store.SaveStyleGuide(r.Context(), &store.StyleGuide{
			Brand:     req.Brand,
			Domain:    preq.BlogURL,
			GuideText: res.StyleGuide,
		})
		if err != nil {
			log.Printf("Failed to cache style guide: %v", err)
		}
	}

	rec := &store.GeneratedContent{
		Brand:        req.Brand,
		Topic:        req.Topic,
		SourceBlog:   preq.BlogURL,
		FinalContent: res.Final,
		SEOScore:     res.SEOScore,
	}
	id, err := s.store.SaveGeneratedContent(r.Context(), rec)
	if err != nil {
		log.Printf("Failed to save generated content: %v", err)
		return ""
	}

	if err := s.store.RecordSourceSuccess(r.Context(), req.Brand, preq.BlogURL); err != nil {
		log.Printf("Failed to record source success: %v", err)
	}
	return id.String()
}

// handleGenerate runs the full pipeline synchronously.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	preq, err := s.buildPipelineRequest(r, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	res := s.orchestrator.CreateBlogPost(r.Context(), preq)
	contentID := s.persistRun(r, &req, preq, res)

	status := http.StatusOK
	if res.Failed() {
		status = http.StatusUnprocessableEntity
	}
	s.jsonResponse(w, status, GenerateResponse{Result: res, ContentID: contentID})
}

// handleGenerateStream runs the pipeline and streams progress via SSE.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	preq, err := s.buildPipelineRequest(r, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	preq.OnProgress = func(msg string, pct int) {
		sse.WriteProgress(msg, pct)
	}

	res := s.orchestrator.CreateBlogPost(r.Context(), preq)
	contentID := s.persistRun(r, &req, preq, res)

	if res.Failed() {
		sse.WriteError(res.Err)
		return
	}
	sse.WriteResult(res, contentID)
}

// handleGenerateTopics runs topic ideation.
func (s *Server) handleGenerateTopics(w http.ResponseWriter, r *http.Request) {
	var req TopicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var brandCfg *brand.Config
	blogURL := req.BlogURL
	if req.Brand != "" {
		cfg, err := brand.Get(req.Brand)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		brandCfg = cfg
		if blogURL == "" {
			blogURL = cfg.EffectiveStyleSource()
		}
	}
	cleanURL, err := validation.BlogURL(blogURL)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ideas := s.orchestrator.GenerateTopicIdeas(r.Context(), pipeline.TopicRequest{
		BlogURL:        cleanURL,
		Count:          req.Count,
		Preferences:    req.Preferences,
		ExistingTitles: req.ExistingTitles,
		Brand:          brandCfg,
	})

	if s.enricher != nil && len(ideas) > 0 {
		s.enricher.EnrichIdeas(r.Context(), ideas)
	}

	if s.store != nil && req.Brand != "" && len(ideas) > 0 {
		if err := s.store.SaveTopicIdeas(r.Context(), req.Brand, cleanURL, ideas); err != nil {
			log.Printf("Failed to save topic ideas: %v", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"ideas": ideas})
}

// handleExtractTopics extracts existing post titles from a blog.
func (s *Server) handleExtractTopics(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	cleanURL, err := validation.BlogURL(req.BlogURL)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	titles := s.orchestrator.ExtractBlogTopics(r.Context(), cleanURL)
	s.jsonResponse(w, http.StatusOK, map[string]any{"titles": titles})
}

// handleListTopics lists stored unused topic ideas for a brand.
func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	brandName := r.URL.Query().Get("brand")
	if brandName == "" {
		s.errorResponse(w, http.StatusBadRequest, "brand query parameter is required")
		return
	}

	records, err := s.store.ListUnusedTopicIdeas(r.Context(), brandName, 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"topics": records})
}

// handleUseTopic marks a stored topic idea as used.
func (s *Server) handleUseTopic(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid topic ID format")
		return
	}

	if err := s.store.MarkTopicUsed(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "used"})
}

// handleHistory lists recent generated content.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	records, err := s.store.ListGeneratedContent(r.Context(), r.URL.Query().Get("brand"), 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"history": records})
}
