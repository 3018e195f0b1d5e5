// Package pipeline provides the high-level orchestration for blog post
// generation: a strictly sequential multi-stage agent pipeline plus the
// standalone topic ideation and extraction flows.
package pipeline

// Result holds the per-stage outputs of one generation run. Stage fields
// fill in as the pipeline advances; Err is set when a stage aborts the run.
// Err and Final are mutually exclusive.
type Result struct {
	StyleGuide         string `json:"style_guide,omitempty"`
	Research           string `json:"research,omitempty"`
	Draft              string `json:"draft,omitempty"`
	InitialSEOAnalysis string `json:"initial_seo_analysis,omitempty"`
	WithLinks          string `json:"with_links,omitempty"`
	SEOAnalysis        string `json:"seo_analysis,omitempty"`
	Final              string `json:"final,omitempty"`

	// Extracted from SEOAnalysis. SEOScoreOK is false when no score line
	// could be parsed.
	SEOScore   int  `json:"seo_score"`
	SEOScoreOK bool `json:"seo_score_ok"`

	// StyleGuideCached reports whether the style stage was skipped in
	// favor of a supplied guide.
	StyleGuideCached bool `json:"style_guide_cached,omitempty"`

	Err string `json:"error,omitempty"`
}

// Failed reports whether the run aborted.
func (r *Result) Failed() bool {
	return r.Err != ""
}

// Map projects the result onto the stage-name keyed mapping callers
// branch on. Only populated fields appear; a failed run carries "error"
// and never "final".
func (r *Result) Map() map[string]string {
	m := make(map[string]string)
	if r.StyleGuide != "" {
		m["style_guide"] = r.StyleGuide
	}
	if r.Research != "" {
		m["research"] = r.Research
	}
	if r.Draft != "" {
		m["draft"] = r.Draft
	}
	if r.InitialSEOAnalysis != "" {
		m["initial_seo_analysis"] = r.InitialSEOAnalysis
	}
	if r.WithLinks != "" {
		m["with_links"] = r.WithLinks
	}
	if r.SEOAnalysis != "" {
		m["seo_analysis"] = r.SEOAnalysis
	}
	if r.Err != "" {
		m["error"] = r.Err
		return m
	}
	if r.Final != "" {
		m["final"] = r.Final
	}
	return m
}
