// Package htmlquery provides an XPath-capable document tree over
// golang.org/x/net/html and a waio.MarkerScanner built on it.
package htmlquery

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/waio"
	"golang.org/x/net/html"
)

// Tree is a parsed HTML document.
type Tree struct {
	root *html.Node
}

// Parse parses HTML with the permissive HTML5 algorithm.
// Returns EINVALID when the input cannot be recovered.
func Parse(s string) (*Tree, error) {
	root, err := htmlquery.Parse(strings.NewReader(s))
	if err != nil {
		return nil, waio.Errorf(waio.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Tree{root: root}, nil
}

// Query returns the elements matching an XPath expression in document order.
// An invalid expression is returned as an error.
func (t *Tree) Query(expr string) ([]*html.Node, error) {
	compiled, err := compile(expr)
	if err != nil {
		return nil, err
	}
	return t.query(compiled), nil
}

// Within returns the scope made of every element matching expr together
// with all of their descendants.
func (t *Tree) Within(expr string) (Scope, error) {
	compiled, err := compile(expr)
	if err != nil {
		return nil, err
	}
	return t.within(compiled), nil
}

func (t *Tree) query(expr *xpath.Expr) []*html.Node {
	return htmlquery.QuerySelectorAll(t.root, expr)
}

func (t *Tree) within(expr *xpath.Expr) Scope {
	return newScope(t.query(expr))
}

func compile(expr string) (*xpath.Expr, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, waio.Errorf(waio.EINVALID, "invalid query %q: %v", expr, err)
	}
	return compiled, nil
}

// Scope is a set of elements used for containment tests.
type Scope map[*html.Node]struct{}

// Contains reports whether the element is inside the scope.
func (s Scope) Contains(n *html.Node) bool {
	_, ok := s[n]
	return ok
}

func newScope(containers []*html.Node) Scope {
	s := make(Scope)
	for _, c := range containers {
		s.add(c)
	}
	return s
}

func (s Scope) add(n *html.Node) {
	if _, seen := s[n]; seen {
		return
	}
	s[n] = struct{}{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			s.add(c)
		}
	}
}

// TextContent returns the concatenated text of the node and its
// descendants, trimmed.
func TextContent(n *html.Node) string {
	return strings.TrimSpace(htmlquery.InnerText(n))
}

// Attrs returns the attributes of an element in source order.
func Attrs(n *html.Node) []waio.Attr {
	attrs := make([]waio.Attr, 0, len(n.Attr))
	for _, a := range n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, waio.Attr{Name: name, Value: a.Val})
	}
	return attrs
}
