package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Heading tags become heading spans, content
// blocks become body spans, and <table> elements are extracted as
// structured tables.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &document.Document{Name: filename}
	var b pageBuilder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := htmlHeadingLevel(n.Data); level > 0 {
				b.addHeading(textContent(n), level)
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "table":
				if t := extractHTMLTable(n); t != nil {
					doc.Tables = append(doc.Tables, *t)
				}
				return
			case "p", "li", "blockquote", "pre":
				b.addBody(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	if !b.empty() {
		doc.Pages = append(doc.Pages, b.page(1))
	}
	for i := range doc.Tables {
		doc.Tables[i].Page = 1
	}
	return doc, nil
}

func htmlHeadingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// extractHTMLTable reads a <table> into headers and rows. The first row
// serves as the header row whether it uses th or td cells.
func extractHTMLTable(n *html.Node) *document.Table {
	var rows [][]string
	var findRows func(*html.Node)
	findRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, textContent(c))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findRows(c)
		}
	}
	findRows(n)

	if len(rows) < 2 {
		return nil
	}
	return &document.Table{
		Headers: rows[0],
		Rows:    rows[1:],
		Source:  "html",
	}
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
