package adapter

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// matcher selects element nodes.
type matcher func(*html.Node) bool

func byClass(class string) matcher {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func byTag(a atom.Atom) matcher {
	return func(n *html.Node) bool { return n.DataAtom == a }
}

func byTagClass(a atom.Atom, class string) matcher {
	return func(n *html.Node) bool { return n.DataAtom == a && hasClass(n, class) }
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && strings.Contains(" "+attr.Val+" ", " "+class+" ") {
			return true
		}
	}
	return false
}

// find returns the first element below n, in document order, that m accepts.
func find(n *html.Node, m matcher) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && m(c) {
			return c
		}
		if found := find(c, m); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every element below n that m accepts, in document order.
func findAll(n *html.Node, m matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && m(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// text returns the text content of n with <br> as a newline and
// non-breaking spaces as plain spaces. A nil node has no text.
func text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		switch {
		case p.Type == html.TextNode:
			b.WriteString(p.Data)
		case p.Type == html.ElementNode && p.DataAtom == atom.Br:
			b.WriteByte('\n')
		case p.Type == html.ElementNode && (p.DataAtom == atom.Script || p.DataAtom == atom.Style):
			return
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.ReplaceAll(b.String(), "\u00a0", " ")
}

func trimmedText(n *html.Node) string {
	return strings.TrimSpace(text(n))
}
