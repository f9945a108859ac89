package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// droppedElements never carry page content worth extracting.
var droppedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Iframe:   true,
	atom.Link:     true,
	atom.Meta:     true,
	atom.Template: true,
	atom.Canvas:   true,
	atom.Video:    true,
	atom.Audio:    true,
}

// keptAttributes survive minimisation; everything else is layout noise.
var keptAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"alt":        true,
	"title":      true,
	"aria-label": true,
	"datetime":   true,
}

// Minimize strips scripts, styles, comments and presentation attributes
// from a rendered page and collapses whitespace. It returns the page
// title and the minimised body markup.
func Minimize(doc string) (title, body string, err error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", "", err
	}

	var bodyNode *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if title == "" && n.FirstChild != nil {
					title = collapse(n.FirstChild.Data)
				}
			case atom.Body:
				if bodyNode == nil {
					bodyNode = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if bodyNode == nil {
		return title, "", nil
	}

	prune(bodyNode)

	var b strings.Builder
	for c := bodyNode.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return title, "", err
		}
	}
	return title, strings.TrimSpace(b.String()), nil
}

// prune removes noise in place.
func prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.CommentNode:
			n.RemoveChild(c)
		case html.TextNode:
			text := collapse(c.Data)
			if text == "" {
				n.RemoveChild(c)
			} else {
				c.Data = text
			}
		case html.ElementNode:
			if droppedElements[c.DataAtom] || isHidden(c) {
				n.RemoveChild(c)
				break
			}
			c.Attr = filterAttrs(c.Attr)
			prune(c)
			if c.FirstChild == nil && len(c.Attr) == 0 && c.DataAtom != atom.Br && c.DataAtom != atom.Img {
				n.RemoveChild(c)
			}
		}
		c = next
	}
}

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "hidden" || (a.Key == "aria-hidden" && a.Val == "true") {
			return true
		}
	}
	return false
}

func filterAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		if keptAttributes[a.Key] && a.Val != "" && !strings.HasPrefix(a.Val, "data:") {
			out = append(out, a)
		}
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
