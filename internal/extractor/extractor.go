// Package extractor recovers a clean Markdown job description, and the company logo
// when one heads the text, from an arbitrary job page.
package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const (
	minContentLength  = 300
	maxLogoLeadText   = 50
	maxPageSize       = 5 << 20
	DefaultTimeout    = 10 * time.Second
	noiseTagsSelector = "script, style, nav, header, footer, iframe, noscript, meta, link"
)

var ErrNoContent = errors.New("no description container found")

// containerSelectors are evaluated in order, the longest surviving text wins.
var containerSelectors = []string{
	`[class*="description"]`,
	`[id*="description"]`,
	`[class*="job-body"]`,
	`[class*="job-content"]`,
	`article`,
	`main`,
	`[role="main"]`,
}

var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9,it;q=0.8",
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Result struct {
	Markdown string
	LogoURL  string
}

type Extractor struct {
	httpClient HTTPClient
}

func New(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{httpClient: &http.Client{Timeout: timeout}}
}

func (e *Extractor) SetHTTPClient(client HTTPClient) {
	e.httpClient = client
}

// FetchAndExtract never fails: any problem is logged and yields empty strings.
func (e *Extractor) FetchAndExtract(ctx context.Context, pageURL string) (description string, logoURL string) {
	if pageURL == "" {
		return "", ""
	}

	result, err := e.fetch(ctx, pageURL)
	if err != nil {
		log.Warnf("could not extract description from %v: %v", pageURL, err)
		return "", ""
	}
	return result.Markdown, result.LogoURL
}

func (e *Extractor) fetch(ctx context.Context, pageURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v", resp.StatusCode)
	}

	return Extract(io.LimitReader(resp.Body, maxPageSize), pageURL)
}

// Extract runs the content heuristic over an already fetched page. pageURL is only used
// to resolve a relative logo source and may be empty.
func Extract(page io.Reader, pageURL string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}

	doc.Find(noiseTagsSelector).Remove()
	for _, n := range doc.Nodes {
		removeComments(n)
	}

	container := pickContainer(doc)
	if container == nil {
		return nil, ErrNoContent
	}

	result := &Result{}
	if logo := takeLeadingLogo(container); logo != "" {
		result.LogoURL = resolveURL(pageURL, logo)
	}
	container.Find("img, picture").Remove()
	NormalizeHeadings(container)

	result.Markdown, err = toMarkdown(container)
	if err != nil {
		return nil, fmt.Errorf("error converting to markdown: %w", err)
	}
	if result.Markdown == "" {
		return nil, ErrNoContent
	}
	return result, nil
}

func pickContainer(doc *goquery.Document) *goquery.Selection {
	order := make(map[*html.Node]int)
	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		order[s.Get(0)] = i
	})

	var best *html.Node
	bestLength := 0
	for _, selector := range containerSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			node := s.Get(0)
			length := visibleTextLength(node)
			if length < minContentLength {
				return
			}
			if length > bestLength || (length == bestLength && order[node] < order[best]) {
				best, bestLength = node, length
			}
		})
	}
	if best != nil {
		return doc.FindNodes(best)
	}

	body := doc.Find("body")
	if body.Length() > 0 && visibleTextLength(body.Get(0)) >= minContentLength {
		return body.First()
	}
	return nil
}

// takeLeadingLogo removes the first image of the container when almost no text precedes
// it, job boards like to open descriptions with the company logo.
func takeLeadingLogo(container *goquery.Selection) string {
	img := container.Find("img").First()
	if img.Length() == 0 {
		return ""
	}

	// Text ahead of any wrapper up to the container counts as leading text too.
	root := container.Get(0)
	leading := 0
	for n := img.Get(0); n != nil && n != root; n = n.Parent {
		for s := n.PrevSibling; s != nil; s = s.PrevSibling {
			leading += visibleTextLength(s)
		}
	}
	if leading >= maxLogoLeadText {
		return ""
	}

	src := strings.TrimSpace(img.AttrOr("src", ""))
	if src == "" {
		src = strings.TrimSpace(img.AttrOr("data-src", ""))
	}
	img.Remove()
	return src
}

func visibleTextLength(n *html.Node) int {
	switch n.Type {
	case html.TextNode:
		return utf8.RuneCountInString(strings.TrimSpace(n.Data))
	case html.ElementNode, html.DocumentNode:
		total := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			total += visibleTextLength(c)
		}
		return total
	default:
		return 0
	}
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

func resolveURL(base, ref string) string {
	if base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
