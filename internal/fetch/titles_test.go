package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitlesFromHTML_ArticleHeadings(t *testing.T) {
	html := `
	<html>
		<body>
			<nav><a href="/blog">Blog</a></nav>
			<article><h2><a href="/p/1">How to Sharpen a Utility Knife</a></h2></article>
			<article><h2><a href="/p/2">Warehouse Ergonomics That Actually Work</a></h2></article>
			<footer>Footer links</footer>
		</body>
	</html>`

	titles, err := TitlesFromHTML(html)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"How to Sharpen a Utility Knife",
		"Warehouse Ergonomics That Actually Work",
	}, titles)
}

func TestTitlesFromHTML_PostTitleClass(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="post-title"><a href="/a">Five Box Cutter Safety Mistakes</a></div>
			<div class="post-title"><a href="/b">Five Box Cutter Safety Mistakes</a></div>
			<div class="post-title"><a href="/c">Replacing Blades Without the Risk</a></div>
		</body>
	</html>`

	titles, err := TitlesFromHTML(html)
	require.NoError(t, err)
	// Duplicates collapse.
	assert.Equal(t, []string{
		"Five Box Cutter Safety Mistakes",
		"Replacing Blades Without the Risk",
	}, titles)
}

func TestTitlesFromHTML_FiltersShortFragments(t *testing.T) {
	html := `
	<html>
		<body>
			<article><h2>News</h2></article>
			<article><h2>A Complete Guide to Ceramic Blades</h2></article>
		</body>
	</html>`

	titles, err := TitlesFromHTML(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"A Complete Guide to Ceramic Blades"}, titles)
}

func TestTitlesFromHTML_EmptyPage(t *testing.T) {
	titles, err := TitlesFromHTML("<html><body><div id='root'></div></body></html>")
	require.NoError(t, err)
	assert.Empty(t, titles)
}
