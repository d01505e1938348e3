package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalize(t *testing.T, fragment string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	body := doc.Find("body")
	NormalizeHeadings(body)
	return body
}

func Test_NormalizeHeadings_DemotesTitleAndClampsJump(t *testing.T) {
	body := normalize(t, `<h1>Backend Engineer</h1><h4>Requirements</h4><p>Go</p>`)

	assert.Equal(t, 0, body.Find("h1").Length())
	assert.Equal(t, "Backend Engineer", body.Find("h2").Text())
	assert.Equal(t, "Requirements", body.Find("h3").Text())
	assert.Equal(t, 0, body.Find("h4").Length())
}

func Test_NormalizeHeadings_AllowsStepsBackUp(t *testing.T) {
	body := normalize(t, `<h2>A</h2><h3>B</h3><h2>C</h2><h5>D</h5>`)

	assert.Equal(t, 2, body.Find("h2").Length())
	assert.Equal(t, "BD", body.Find("h3").Text())
}

func Test_NormalizeHeadings_FirstDeepHeadingStartsAtSecondLevel(t *testing.T) {
	body := normalize(t, `<h5>Benefits</h5>`)
	assert.Equal(t, "Benefits", body.Find("h2").Text())
}

func Test_NormalizeHeadings_RemovesEmptyTagsKeepsMedia(t *testing.T) {
	body := normalize(t, `<p>text</p><p>   </p><div><span></span></div><p><img src="a.png"></p><br>`)

	assert.Equal(t, 2, body.Find("p").Length())
	assert.Equal(t, 0, body.Find("span").Length())
	assert.Equal(t, 0, body.Find("div").Length())
	assert.Equal(t, 1, body.Find("img").Length())
	assert.Equal(t, 1, body.Find("br").Length())
}

func Test_NormalizeHeadings_EmptyHeadingDoesNotAffectClamp(t *testing.T) {
	body := normalize(t, `<h2>Role</h2><h3></h3><h4>Stack</h4>`)
	assert.Equal(t, "Stack", body.Find("h3").Text())
}

func Test_NormalizeHeadings_FillsMissingAlt(t *testing.T) {
	body := normalize(t, `<p><img src="https://cdn.example.com/team-photo.jpg?w=200"><img src="" alt=" "><img src="x.png" alt="Office"></p>`)

	alts := body.Find("img").Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("alt", "")
	})
	assert.Equal(t, []string{"team photo", "image", "Office"}, alts)
}

func Test_HTMLToMarkdown_PlainTextIsUntouched(t *testing.T) {
	text := "We are hiring a *Go* developer. 5+ years"
	markdown, converted, err := HTMLToMarkdown(text)
	require.NoError(t, err)
	assert.False(t, converted)
	assert.Equal(t, text, markdown)
}

func Test_HTMLToMarkdown_StripsImages(t *testing.T) {
	markdown, converted, err := HTMLToMarkdown(`<div><p>HTML snippet with image.</p><img src="https://example.com/image.png" alt="Image"></div>`)
	require.NoError(t, err)
	assert.True(t, converted)
	assert.Contains(t, markdown, "HTML snippet")
	assert.NotContains(t, markdown, "![")
	assert.NotContains(t, markdown, "image.png")
}
