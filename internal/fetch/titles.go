package fetch

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleSelectors covers the common places blog platforms put post titles
// on an index page, in priority order.
var titleSelectors = []string{
	"article h1 a, article h2 a, article h3 a",
	"article h1, article h2, article h3",
	".post-title a, .entry-title a, .blog-title a",
	".post-title, .entry-title, .blog-title",
	"h2 a, h3 a",
}

// minTitleLength filters out nav fragments and category labels.
const minTitleLength = 10

// maxHarvestedTitles caps the list returned from one index page.
const maxHarvestedTitles = 100

// HarvestTitles fetches a blog index page and extracts post titles from
// its heading and anchor text. When the plain HTTP response looks like a
// JavaScript shell, the page is re-rendered in a headless browser.
func HarvestTitles(ctx context.Context, blogURL string, opts *Options) ([]string, error) {
	result, err := URL(ctx, blogURL, opts)
	if err != nil {
		return nil, err
	}

	titles, err := TitlesFromHTML(result.HTML)
	if err != nil {
		return nil, err
	}
	if len(titles) > 0 {
		return titles, nil
	}

	// Empty harvest from a live page usually means client-side rendering.
	platform := DetectPlatform(blogURL)
	text, _ := ExtractMainText(result.HTML, BlogIndexSelectors(), PlatformNoiseSelectors(platform)...)
	if !ShouldUseBrowser(text) {
		return nil, nil
	}

	html, err := BrowserSimple(ctx, blogURL, false)
	if err != nil {
		return nil, err
	}
	return TitlesFromHTML(html)
}

// TitlesFromHTML extracts candidate post titles from blog index HTML.
func TitlesFromHTML(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("nav, footer, header, script, style, noscript, .sidebar").Remove()

	var titles []string
	seen := make(map[string]bool)
	collect := func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Text())
		if len(title) < minTitleLength {
			return
		}
		key := strings.ToLower(title)
		if seen[key] || len(titles) >= maxHarvestedTitles {
			return
		}
		seen[key] = true
		titles = append(titles, title)
	}

	for _, selector := range titleSelectors {
		doc.Find(selector).Each(collect)
		if len(titles) > 0 {
			break
		}
	}
	return titles, nil
}
