package main

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// unescapeEntities reverses HTML entity encoding. Plain text passes through
// unchanged.
func unescapeEntities(s string) string {
	return html.UnescapeString(s)
}

// visibleLen returns the number of runes a reader actually sees, i.e. the
// text length with all markup stripped.
func visibleLen(s string) int {
	nodes, err := parseFragment(s)
	if err != nil {
		return len([]rune(s))
	}
	n := 0
	for _, node := range nodes {
		n += textLen(node)
	}
	return n
}

// truncateHTML cuts s down to at most limit visible runes while keeping the
// markup well-formed. Inputs already within the limit come back unchanged.
// Over the limit, the first `limit` raw runes are re-parsed: the
// error-tolerant parser closes any tag the cut left open and drops a tag
// the cut landed inside of, so the result always parses cleanly.
func truncateHTML(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if visibleLen(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return renderFragment(string(runes))
}

func parseFragment(s string) ([]*xhtml.Node, error) {
	ctx := &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	return xhtml.ParseFragment(strings.NewReader(s), ctx)
}

func renderFragment(s string) string {
	nodes, err := parseFragment(s)
	if err != nil {
		return s
	}
	var b strings.Builder
	for _, n := range nodes {
		if err := xhtml.Render(&b, n); err != nil {
			return s
		}
	}
	return b.String()
}

func textLen(n *xhtml.Node) int {
	if n.Type == xhtml.TextNode {
		return len([]rune(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLen(c)
	}
	return total
}
