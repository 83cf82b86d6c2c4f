package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// joinedText collects the selection's text nodes, trims each, and joins them
// with single spaces. Inline markup and comments therefore become word
// boundaries, which matters for the regex cascades: "(<b>1</b>23)" reads as
// "( 1 23)", not "(123)".
func joinedText(s *goquery.Selection) string {
	var parts []string
	for _, n := range s.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
			*parts = append(*parts, trimmed)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// findTextParent searches the selection's subtree for a text node matching
// re and returns the joined text of its enclosing element, or "".
func findTextParent(s *goquery.Selection, re *regexp.Regexp) string {
	for _, n := range s.Nodes {
		if parent := matchingTextParent(n, re); parent != nil {
			var parts []string
			collectText(parent, &parts)
			return strings.Join(parts, " ")
		}
	}
	return ""
}

func matchingTextParent(n *html.Node, re *regexp.Regexp) *html.Node {
	if n.Type == html.TextNode && re.MatchString(n.Data) {
		if n.Parent != nil {
			return n.Parent
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if parent := matchingTextParent(c, re); parent != nil {
			return parent
		}
	}
	return nil
}
