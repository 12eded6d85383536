package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse converts a markup fragment into dom nodes. Whitespace-only text
// between elements is dropped; other text is preserved verbatim.
func Parse(markup string) ([]Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}
	var out []Node
	for _, n := range parsed {
		if converted := convert(n); converted != nil {
			out = append(out, converted)
		}
	}
	return out, nil
}

func convert(n *html.Node) Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return NewText(n.Data)
	case html.ElementNode:
		el := NewElement(n.Data)
		for _, a := range n.Attr {
			el.SetAttr(a.Key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	default:
		// Comments, doctypes and the like have no place in a view root.
		return nil
	}
}
