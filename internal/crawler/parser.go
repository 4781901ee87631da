// internal/crawler/parser.go
package crawler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParsedContent holds what an imported article needs from an HTML page.
type ParsedContent struct {
	Title   string
	Content string
	Img     string
}

// ParseHTMLContent extracts the title, lead image and readable text of a page.
//
// The title comes from og:title, then <title>, then the first <h1>. The image
// is og:image, left as written in the page. The text is taken from <article>,
// then <main>, then <body>, with scripts, styles and comments dropped and
// whitespace collapsed.
func ParseHTMLContent(content string) (*ParsedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	parsed := &ParsedContent{}

	parsed.Title = metaContent(doc, "og:title")
	if parsed.Title == "" {
		parsed.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if parsed.Title == "" {
		parsed.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	parsed.Img = metaContent(doc, "og:image")

	for _, sel := range []string{"article", "main", "body"} {
		if main := doc.Find(sel).First(); main.Length() > 0 {
			parsed.Content = textContent(main.Nodes[0])
			break
		}
	}

	return parsed, nil
}

// metaContent reads an OpenGraph property, accepting name= as well as property=.
func metaContent(doc *goquery.Document, property string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, property, property)).First()
	v, _ := sel.Attr("content")
	return strings.TrimSpace(v)
}

// textContent returns the visible text under n, whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.CommentNode:
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(b.String()), " ")
}
