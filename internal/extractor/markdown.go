package extractor

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

var (
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
	spacesRe     = regexp.MustCompile(`[ \t]+`)
)

func toMarkdown(sel *goquery.Selection) (string, error) {
	fragment, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", err
	}
	markdown, err := md.NewConverter("", true, nil).ConvertString(fragment)
	if err != nil {
		return "", err
	}
	return cleanMarkdown(markdown), nil
}

func cleanMarkdown(text string) string {
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// HTMLToMarkdown converts a source-provided description to Markdown. Text without any
// markup is returned untouched with converted=false. Images never survive.
func HTMLToMarkdown(description string) (markdown string, converted bool, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return description, false, err
	}

	body := doc.Find("body")
	if body.Find("*").Length() == 0 {
		return description, false, nil
	}

	body.Find("script, style, img, picture").Remove()
	NormalizeHeadings(body)

	markdown, err = toMarkdown(body)
	if err != nil {
		return description, false, err
	}
	return markdown, true, nil
}
