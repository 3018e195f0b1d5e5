package pipeline

import (
	"fmt"
	"strings"

	"github.com/bertram-labs/blog-agent/internal/prompts"
	"github.com/bertram-labs/blog-agent/internal/topics"
)

// buildStylePrompt renders the style-analysis instruction, weighting
// caller-supplied high-performing pages when present.
func buildStylePrompt(blogURL string, pages []string) string {
	var priority string
	if len(pages) > 0 {
		priority = prompts.Format(prompts.MustGet("blog.json", "style-priority"), map[string]string{
			"Pages": "- " + strings.Join(pages, "\n- "),
		})
	} else {
		priority = "\n"
	}

	return prompts.Format(prompts.MustGet("blog.json", "analyze-style"), map[string]string{
		"BlogURL":         blogURL,
		"PrioritySection": priority,
	})
}

func buildResearchPrompt(topic, requirements string, productURLs []string) string {
	var promote string
	if len(productURLs) > 0 {
		promote = prompts.Format(prompts.MustGet("blog.json", "research-promote"), map[string]string{
			"URLs": strings.Join(productURLs, "\n"),
		})
	}

	return prompts.Format(prompts.MustGet("blog.json", "research"), map[string]string{
		"Topic":          topic,
		"Requirements":   requirements,
		"PromoteSection": promote,
	})
}

func buildDraftPrompt(topic, styleGuide, research, requirements, blogURL, brandContext string) string {
	if brandContext != "" && !strings.HasSuffix(brandContext, "\n") {
		brandContext += "\n"
	}
	return prompts.Format(prompts.MustGet("blog.json", "write-draft"), map[string]string{
		"Topic":        topic,
		"StyleGuide":   styleGuide,
		"Research":     research,
		"Requirements": requirements,
		"BlogURL":      blogURL,
		"BrandContext": brandContext,
	})
}

func buildSEOAdvisoryPrompt(draft, topic, blogURL string) string {
	return prompts.Format(prompts.MustGet("blog.json", "seo-advisory"), map[string]string{
		"Draft":   draft,
		"Topic":   topic,
		"BlogURL": blogURL,
	})
}

func buildLinksPrompt(draft, blogURL, seoAnalysis, topic string) string {
	return prompts.Format(prompts.MustGet("blog.json", "insert-links"), map[string]string{
		"Draft":       draft,
		"BlogURL":     blogURL,
		"SEOAnalysis": seoAnalysis,
		"Topic":       topic,
	})
}

func buildEditPrompt(blogURL, styleGuide, draft, seoAnalysis string) string {
	return prompts.Format(prompts.MustGet("blog.json", "final-edit"), map[string]string{
		"BlogURL":     blogURL,
		"StyleGuide":  styleGuide,
		"Draft":       draft,
		"SEOAnalysis": seoAnalysis,
	})
}

func buildScorePrompt(post, topic string) string {
	return prompts.Format(prompts.MustGet("blog.json", "seo-score"), map[string]string{
		"Post":  post,
		"Topic": topic,
	})
}

// buildTopicIdeasPrompt renders the ideation instruction. Existing titles
// are bounded by topics.FormatAvoidList; preferences, trending keywords,
// and a promotion target fold into an extras block.
func buildTopicIdeasPrompt(blogURL string, count int, brandContext string, existing []string, preferences string, trending []string, productTarget string) string {
	var extras strings.Builder
	if preferences != "" {
		extras.WriteString("\nPREFERENCES:\n" + preferences + "\n")
	}
	if len(trending) > 0 {
		extras.WriteString("\nBias topic selection toward these trending keywords: " + strings.Join(trending, ", ") + "\n")
	}
	if productTarget != "" {
		extras.WriteString("\nWhere natural, favor topics that can promote: " + productTarget + "\n")
	}

	var avoid string
	if list := topics.FormatAvoidList(existing); list != "" {
		avoid = prompts.Format(prompts.MustGet("topics.json", "avoid-section"), map[string]string{
			"Titles": list,
		})
	}

	return prompts.Format(prompts.MustGet("topics.json", "generate-ideas"), map[string]string{
		"Count":        fmt.Sprintf("%d", count),
		"BlogURL":      blogURL,
		"BrandContext": brandContext,
		"Extras":       extras.String(),
		"AvoidSection": avoid,
	})
}

func buildExtractTitlesPrompt(blogURL string) string {
	return prompts.Format(prompts.MustGet("topics.json", "extract-titles"), map[string]string{
		"BlogURL": blogURL,
	})
}

func buildDuplicationPrompt(topic string, existing []string) string {
	titles := "- (none)"
	if len(existing) > 0 {
		titles = "- " + strings.Join(existing, "\n- ")
	}
	return prompts.Format(prompts.MustGet("topics.json", "duplication-check"), map[string]string{
		"Topic":  topic,
		"Titles": titles,
	})
}
