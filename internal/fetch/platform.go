// Package fetch - platform.go provides blog platform detection and
// platform-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known blog hosting platform.
type Platform string

const (
	// PlatformWordPress is a WordPress-hosted or self-hosted WP blog
	PlatformWordPress Platform = "wordpress"
	// PlatformMedium is the Medium publishing platform
	PlatformMedium Platform = "medium"
	// PlatformSubstack is the Substack newsletter platform
	PlatformSubstack Platform = "substack"
	// PlatformShopify is a Shopify storefront blog
	PlatformShopify Platform = "shopify"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the blog platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "medium.com") {
		return PlatformMedium
	}
	if strings.Contains(host, "substack.com") {
		return PlatformSubstack
	}
	if strings.Contains(host, "wordpress.com") ||
		strings.Contains(host, "wpengine.com") {
		return PlatformWordPress
	}
	if strings.Contains(host, "myshopify.com") {
		return PlatformShopify
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a
// specific blog platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformWordPress:
		return []string{
			".entry-content",
			".post-content",
			"article .content",
			"#content",
		}
	case PlatformMedium:
		return []string{
			"article section",
			".postArticle-content",
			"article",
		}
	case PlatformSubstack:
		return []string{
			".available-content",
			".post-content",
			"article",
		}
	case PlatformShopify:
		return []string{
			".article__content",
			".rte",
			"article",
			"main",
		}
	default:
		return BlogPostSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a
// specific blog platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Subscription and signup prompts
		"form",
		".subscribe-widget",
		".newsletter-signup",
		".email-capture",

		// Related and recirculation blocks
		".related-posts",
		".recommended",
		".read-next",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformMedium:
		return append(common,
			".js-postMetaLockup",
			".responses-wrapper",
			".highlightMenu",
		)
	case PlatformSubstack:
		return append(common,
			".subscription-widget-wrap",
			".paywall",
			".comments-section",
		)
	case PlatformShopify:
		return append(common,
			".product-recommendations",
			".cart-drawer",
		)
	default:
		return common
	}
}
