package extractor

import (
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// tags that may legitimately carry no text
var keepWhenEmpty = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true, "picture": true, "video": true, "audio": true, "iframe": true,
	"svg": true, "canvas": true, "object": true, "html": true, "head": true, "body": true,
}

var mediaTags = map[string]bool{
	"img": true, "picture": true, "video": true, "audio": true, "iframe": true,
	"svg": true, "canvas": true, "object": true, "embed": true, "source": true,
}

// NormalizeHeadings prepares an HTML fragment for Markdown conversion: h1 becomes h2
// (the page owns the title), level jumps are clamped to one step, text-less tags are
// dropped and every image gets an alt text.
func NormalizeHeadings(root *goquery.Selection) {
	removeEmptyElements(root)

	root.Find("h1").Each(func(_ int, s *goquery.Selection) {
		setHeadingLevel(s.Get(0), 2)
	})

	previous := 1
	root.Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		level := headingLevel(node)
		if level > previous+1 {
			level = previous + 1
			setHeadingLevel(node, level)
		}
		previous = level
	})

	ensureImageAlt(root)
}

func headingLevel(n *html.Node) int {
	level, err := strconv.Atoi(strings.TrimPrefix(n.Data, "h"))
	if err != nil {
		return 6
	}
	return level
}

func setHeadingLevel(n *html.Node, level int) {
	n.Data = "h" + strconv.Itoa(level)
	n.DataAtom = atom.Lookup([]byte(n.Data))
}

func removeEmptyElements(root *goquery.Selection) {
	nodes := root.Find("*").Nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if keepWhenEmpty[n.Data] || n.Parent == nil || hasContent(n) {
			continue
		}
		n.Parent.RemoveChild(n)
	}
}

func hasContent(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return true
			}
		case html.ElementNode:
			if mediaTags[c.Data] || hasContent(c) {
				return true
			}
		}
	}
	return false
}

func ensureImageAlt(root *goquery.Selection) {
	root.Find("img").Each(func(_ int, img *goquery.Selection) {
		if alt, _ := img.Attr("alt"); strings.TrimSpace(alt) != "" {
			return
		}
		img.SetAttr("alt", altFromSource(img.AttrOr("src", "")))
	})
}

func altFromSource(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	name := strings.TrimSuffix(path.Base(src), path.Ext(src))
	name = strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	if name == "" || name == "." || name == "/" {
		return "image"
	}
	return name
}
