// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"strings"

	"golang.org/x/net/html"
)

// skippedElements are DOM subtrees that never contain article text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"iframe":   true,
	"svg":      true,
}

// ExtractText parses an HTML document and returns its visible text with
// whitespace collapsed. Parsing is tolerant: malformed markup yields
// whatever text the parser could recover, never an error for partial
// content. Non-HTML input falls through the parser and comes back largely
// as-is.
func ExtractText(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		// html.Parse recovers from almost anything; treat a hard parse
		// failure as unextractable.
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseWhitespace(b.String())
}

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
