package html

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Parser turns an HTML document into paragraph-separated plain text
type Parser struct {
	// KeepIndentation keeps leading whitespace of lines inside <pre>
	KeepIndentation bool
}

// Document is the text content of a parsed HTML document
type Document struct {
	// Title is the <title>, or the first <h1> when there is none
	Title string
	// Text holds one paragraph per block element, separated by blank lines
	Text string
}

// NewParser creates a new HTML parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses HTML from a string
func (p *Parser) ParseString(content string) (*Document, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses HTML from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	e := &extractor{keepIndent: p.KeepIndentation}
	e.walk(root)

	title := e.title
	if title == "" {
		title = e.firstH1
	}

	return &Document{
		Title: title,
		Text:  tidy(e.b.String(), e.keepIndent),
	}, nil
}

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tr": true, "ul": true,
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"iframe": true, "svg": true, "object": true,
}

type extractor struct {
	b          strings.Builder
	title      string
	firstH1    string
	pre        int
	keepIndent bool
}

func (e *extractor) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if e.pre > 0 {
			e.b.WriteString(n.Data)
		} else {
			e.b.WriteString(collapseSpace(n.Data))
		}
		return

	case html.ElementNode:
		tag := n.Data
		switch {
		case tag == "title":
			if e.title == "" {
				e.title = strings.TrimSpace(textContent(n))
			}
			return
		case skippedElements[tag]:
			return
		case tag == "br":
			e.b.WriteString("\n")
			return
		}

		if tag == "h1" && e.firstH1 == "" {
			e.firstH1 = strings.Join(strings.Fields(textContent(n)), " ")
		}

		if blockElements[tag] {
			e.b.WriteString("\n\n")
			if tag == "pre" {
				e.pre++
			}
			e.walkChildren(n)
			if tag == "pre" {
				e.pre--
			}
			e.b.WriteString("\n\n")
			return
		}
	}

	e.walkChildren(n)
}

func (e *extractor) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c)
	}
}

// textContent concatenates the text below n
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// collapseSpace folds every whitespace run into one space, as a browser
// does outside <pre>
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

// tidy trims every line and folds runs of blank lines into one
func tidy(s string, keepIndent bool) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false

	for _, line := range lines {
		if keepIndent {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
		} else {
			line = strings.TrimSpace(line)
		}
		if strings.TrimSpace(line) == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
