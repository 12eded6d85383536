// Package dom provides the narrow document adapter the view core renders
// into: an in-memory element tree with the small slice of DOM behavior
// the toolkit needs. Selector matching is deliberately limited to simple
// selectors (tag, #id, .class, [attr=value] and combinations of those);
// full CSS matching is out of scope.
package dom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Node is either an *Element or a *Text.
type Node interface {
	Parent() *Element
	setParent(*Element)
}

// Text is a text node.
type Text struct {
	Data   string
	parent *Element
}

// NewText creates a text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// Parent returns the containing element, or nil.
func (t *Text) Parent() *Element { return t.parent }

func (t *Text) setParent(p *Element) { t.parent = p }

// Element is an element node.
type Element struct {
	Tag       string
	attrs     map[string]string
	parent    *Element
	children  []Node
	listeners []*listener
}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Parent returns the containing element, or nil for a detached root.
func (e *Element) Parent() *Element { return e.parent }

func (e *Element) setParent(p *Element) { e.parent = p }

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute, returning the element for chaining.
func (e *Element) SetAttr(name, value string) *Element {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	return e
}

// ID returns the id attribute, or "".
func (e *Element) ID() string {
	return e.attrs["id"]
}

// HasClass reports whether the class attribute contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.attrs["class"]) {
		if c == name {
			return true
		}
	}
	return false
}

// AppendChild adds n as the last child, detaching it from any prior parent.
func (e *Element) AppendChild(n Node) {
	detach(n)
	n.setParent(e)
	e.children = append(e.children, n)
}

// PrependChild adds n as the first child.
func (e *Element) PrependChild(n Node) {
	detach(n)
	n.setParent(e)
	e.children = append([]Node{n}, e.children...)
}

// InsertBefore adds n immediately before ref, which must be a child of e.
// Falls back to append when ref is not found.
func (e *Element) InsertBefore(n Node, ref Node) {
	detach(n)
	n.setParent(e)
	for i, c := range e.children {
		if c == ref {
			e.children = append(e.children[:i:i], append([]Node{n}, e.children[i:]...)...)
			return
		}
	}
	e.children = append(e.children, n)
}

// InsertAfter adds n immediately after ref, which must be a child of e.
// Falls back to append when ref is not found.
func (e *Element) InsertAfter(n Node, ref Node) {
	detach(n)
	n.setParent(e)
	for i, c := range e.children {
		if c == ref {
			rest := append([]Node{n}, e.children[i+1:]...)
			e.children = append(e.children[:i+1:i+1], rest...)
			return
		}
	}
	e.children = append(e.children, n)
}

// RemoveChild detaches n from e. No-op if n is not a child.
func (e *Element) RemoveChild(n Node) {
	for i, c := range e.children {
		if c == n {
			e.children = append(e.children[:i:i], e.children[i+1:]...)
			n.setParent(nil)
			return
		}
	}
}

// Detach removes the element from its parent, if any.
func (e *Element) Detach() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

func detach(n Node) {
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	return append([]Node(nil), e.children...)
}

// ChildElements returns the element children, in order.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// ReplaceChildren swaps the entire child list for nodes. Used by
// re-renders to refresh a root's content in place.
func (e *Element) ReplaceChildren(nodes ...Node) {
	for _, c := range e.children {
		c.setParent(nil)
	}
	e.children = e.children[:0]
	for _, n := range nodes {
		e.AppendChild(n)
	}
}

// SetText replaces the element's content with a single text node.
func (e *Element) SetText(s string) {
	e.ReplaceChildren(NewText(s))
}

// Text returns the concatenated text of all descendants.
func (e *Element) Text() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	for _, c := range e.children {
		switch n := c.(type) {
		case *Text:
			sb.WriteString(n.Data)
		case *Element:
			n.writeText(sb)
		}
	}
}

// IsFormControl reports whether the element takes user input through a
// value rather than text content.
func (e *Element) IsFormControl() bool {
	switch e.Tag {
	case "input", "textarea", "select", "option":
		return true
	}
	return false
}

// SetValue sets the value attribute. Meaningful for form controls.
func (e *Element) SetValue(s string) {
	e.SetAttr("value", s)
}

// Value returns the value attribute, or "".
func (e *Element) Value() string {
	return e.attrs["value"]
}

// Find returns the first descendant matching selector, or nil. The
// element itself is not considered.
func (e *Element) Find(selector string) *Element {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	return e.find(sel)
}

func (e *Element) find(sel simpleSelector) *Element {
	for _, c := range e.children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if sel.matches(el) {
			return el
		}
		if found := el.find(sel); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant matching selector, in document order.
func (e *Element) FindAll(selector string) []*Element {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	var out []*Element
	e.findAll(sel, &out)
	return out
}

func (e *Element) findAll(sel simpleSelector, out *[]*Element) {
	for _, c := range e.children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if sel.matches(el) {
			*out = append(*out, el)
		}
		el.findAll(sel, out)
	}
}

// Matches reports whether the element matches selector.
func (e *Element) Matches(selector string) bool {
	sel, err := parseSelector(selector)
	if err != nil {
		return false
	}
	return sel.matches(e)
}

// Contains reports whether other is a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// OuterHTML serializes the element and its subtree as markup. Attributes
// are emitted in sorted order so output is deterministic.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	e.writeHTML(&sb)
	return sb.String()
}

// InnerHTML serializes the element's children as markup.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for _, c := range e.children {
		writeNode(&sb, c)
	}
	return sb.String()
}

func (e *Element) writeHTML(sb *strings.Builder) {
	sb.WriteString("<")
	sb.WriteString(e.Tag)
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(e.attrs[name]))
		sb.WriteString(`"`)
	}
	if len(e.children) == 0 && isVoidTag(e.Tag) {
		sb.WriteString("/>")
		return
	}
	sb.WriteString(">")
	for _, c := range e.children {
		writeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteString(">")
}

func writeNode(sb *strings.Builder, n Node) {
	switch node := n.(type) {
	case *Text:
		sb.WriteString(html.EscapeString(node.Data))
	case *Element:
		node.writeHTML(sb)
	}
}

func isVoidTag(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "source", "track", "wbr":
		return true
	}
	return false
}
