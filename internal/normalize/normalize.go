// Package normalize turns raw page markup into search-friendly plain text.
package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)
	// Fallback for input the HTML parser cannot handle.
	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

// Elements whose boundaries separate words in rendered text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// Content lower-cases raw, strips markup, replaces every character outside
// [a-zA-Z0-9] with one space and trims the result. Each replaced character
// yields its own space, so "a, b" becomes "a  b". Content is idempotent.
func Content(raw string) string {
	text := StripMarkup(strings.ToLower(raw))
	return strings.TrimSpace(nonAlnum.ReplaceAllString(text, " "))
}

// StripMarkup returns the text content of an HTML fragment. Block-level
// element boundaries become spaces; inline elements join their neighbours.
func StripMarkup(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return tagPattern.ReplaceAllString(fragment, " ")
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	}
	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		separate(b)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		separate(b)
	}
}

func separate(b *strings.Builder) {
	s := b.String()
	if s != "" && s[len(s)-1] != ' ' {
		b.WriteByte(' ')
	}
}
