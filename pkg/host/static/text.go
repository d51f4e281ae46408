package static

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// VisibleText returns the text a reader would see on the page: hidden and
// non-rendered elements are dropped, block elements start new lines, and
// runs of whitespace collapse. Plain-text responses are returned as-is.
func VisibleText(r io.Reader, contentType string) (string, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to decode page: %w", err)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "text/plain") {
		raw, err := io.ReadAll(decoded)
		if err != nil {
			return "", fmt.Errorf("failed to read page: %w", err)
		}
		return string(raw), nil
	}

	doc, err := html.Parse(decoded)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	w := &textWriter{}
	w.walk(doc)
	return w.String(), nil
}

// textWriter accumulates lines of collapsed text.
type textWriter struct {
	lines   []string
	current strings.Builder
	space   bool
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if isSkippedElement(tag) || isHidden(n) {
			return
		}
		if tag == "br" {
			w.newline()
			return
		}
		block := isBlockElement(tag)
		if block {
			w.newline()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		if block {
			w.newline()
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWriter) text(s string) {
	if s == "" {
		return
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	if isSpace(first) {
		w.space = true
	}

	fields := strings.FieldsFunc(s, isSpace)
	for i, field := range fields {
		if (i > 0 || w.space) && w.current.Len() > 0 {
			w.current.WriteByte(' ')
		}
		w.current.WriteString(field)
		w.space = false
	}
	if len(fields) == 0 || isSpace(last) {
		w.space = true
	}
}

func (w *textWriter) newline() {
	if w.current.Len() > 0 {
		w.lines = append(w.lines, w.current.String())
		w.current.Reset()
	}
	w.space = false
}

func (w *textWriter) String() string {
	w.newline()
	return strings.Join(w.lines, "\n")
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// isSkippedElement returns true for elements that never render text.
func isSkippedElement(tag string) bool {
	switch tag {
	case "head", "title", "script", "style", "noscript", "template",
		"svg", "iframe", "embed", "object", "canvas":
		return true
	}
	return false
}

// isHidden reports elements hidden by attribute or inline style.
func isHidden(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "hidden":
			return true
		case "aria-hidden":
			if strings.EqualFold(attr.Val, "true") {
				return true
			}
		case "style":
			style := strings.ToLower(strings.ReplaceAll(attr.Val, " ", ""))
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		case "type":
			if strings.ToLower(n.Data) == "input" && strings.EqualFold(attr.Val, "hidden") {
				return true
			}
		}
	}
	return false
}

// isBlockElement returns true for elements rendered on their own line.
func isBlockElement(tag string) bool {
	switch tag {
	case "address", "article", "aside", "blockquote", "dd", "details", "dialog",
		"div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "li", "main", "nav",
		"ol", "p", "pre", "section", "summary", "table", "tr", "td", "th", "ul",
		"body", "html", "caption", "option":
		return true
	}
	return false
}
