// Package brand holds the built-in brand catalog and the brand context
// block injected into generation prompts.
package brand

import (
	"fmt"
	"sort"
	"strings"
)

// StyleSourceType says where a brand's writing style comes from.
type StyleSourceType string

const (
	// StyleSourceBlog means the brand has its own blog to analyze
	StyleSourceBlog StyleSourceType = "blog"
	// StyleSourceParent means style is borrowed from a sibling brand's blog
	StyleSourceParent StyleSourceType = "parent_brand"
	// StyleSourceManual means a hand-written fallback style guide is used
	StyleSourceManual StyleSourceType = "manual"
)

// Config describes one brand.
type Config struct {
	Name          string
	DisplayName   string
	PrimaryDomain string

	BlogURL    string
	RSSFeedURL string

	StyleSourceType    StyleSourceType
	StyleSourceURL     string
	FallbackStyleGuide string

	ProductCategories   []string
	InternalLinkTargets []string

	PrimaryKeywords []string
	IndustryTerms   []string

	ToneKeywords []string
	AvoidTerms   []string

	Tagline           string
	ValuePropositions []string
}

// Get returns the configuration for a brand key, or an error for an
// unknown brand.
func Get(name string) (*Config, error) {
	cfg, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown brand: %s", name)
	}
	return cfg, nil
}

// Names returns the configured brand keys, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EffectiveStyleSource returns the URL style analysis should target.
// Brands with their own blog use it; others borrow from their style source.
func (c *Config) EffectiveStyleSource() string {
	if c.BlogURL != "" {
		return c.BlogURL
	}
	return c.StyleSourceURL
}

// HasOwnBlog reports whether the brand publishes its own blog.
func (c *Config) HasOwnBlog() bool {
	return c.BlogURL != ""
}

// ContextPrompt renders the brand context block for agent prompts.
func (c *Config) ContextPrompt() string {
	return fmt.Sprintf(`
BRAND CONTEXT:
- Brand: %s
- Domain: %s
- Tagline: %s
- Key Value Propositions: %s
- Brand Tone: %s
- Primary Keywords: %s
- Industry Terms: %s
- Terms to Avoid: %s
`,
		c.DisplayName,
		c.PrimaryDomain,
		c.Tagline,
		strings.Join(c.ValuePropositions, ", "),
		strings.Join(c.ToneKeywords, ", "),
		strings.Join(c.PrimaryKeywords, ", "),
		strings.Join(c.IndustryTerms, ", "),
		strings.Join(c.AvoidTerms, ", "),
	)
}
