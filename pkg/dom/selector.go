package dom

import (
	"fmt"
	"strings"
)

// simpleSelector is the supported selector subset: an optional tag name
// followed by any number of #id, .class, and [attr] / [attr=value]
// qualifiers. No combinators, no pseudo-classes.
type simpleSelector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrCond
}

type attrCond struct {
	name     string
	value    string
	hasValue bool
}

func parseSelector(s string) (simpleSelector, error) {
	var sel simpleSelector
	s = strings.TrimSpace(s)
	if s == "" {
		return sel, fmt.Errorf("empty selector")
	}
	if strings.ContainsAny(s, " >+~,") {
		return sel, fmt.Errorf("combinators are not supported: %q", s)
	}

	i := 0
	for i < len(s) {
		switch s[i] {
		case '#':
			j := qualifierEnd(s, i+1)
			if j == i+1 {
				return sel, fmt.Errorf("empty id in selector %q", s)
			}
			sel.id = s[i+1 : j]
			i = j
		case '.':
			j := qualifierEnd(s, i+1)
			if j == i+1 {
				return sel, fmt.Errorf("empty class in selector %q", s)
			}
			sel.classes = append(sel.classes, s[i+1:j])
			i = j
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return sel, fmt.Errorf("unterminated attribute in selector %q", s)
			}
			body := s[i+1 : i+j]
			cond := attrCond{}
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				cond.name = body[:eq]
				cond.value = strings.Trim(body[eq+1:], `"'`)
				cond.hasValue = true
			} else {
				cond.name = body
			}
			if cond.name == "" {
				return sel, fmt.Errorf("empty attribute name in selector %q", s)
			}
			sel.attrs = append(sel.attrs, cond)
			i += j + 1
		default:
			if sel.tag != "" || sel.id != "" || len(sel.classes) > 0 || len(sel.attrs) > 0 {
				return sel, fmt.Errorf("unexpected %q in selector %q", s[i], s)
			}
			j := qualifierEnd(s, i)
			sel.tag = strings.ToLower(s[i:j])
			i = j
		}
	}
	return sel, nil
}

func qualifierEnd(s string, start int) int {
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '#', '.', '[':
			return i
		}
	}
	return len(s)
}

func (sel simpleSelector) matches(e *Element) bool {
	if sel.tag != "" && sel.tag != "*" && !strings.EqualFold(sel.tag, e.Tag) {
		return false
	}
	if sel.id != "" && e.ID() != sel.id {
		return false
	}
	for _, class := range sel.classes {
		if !e.HasClass(class) {
			return false
		}
	}
	for _, cond := range sel.attrs {
		v, ok := e.Attr(cond.name)
		if !ok {
			return false
		}
		if cond.hasValue && v != cond.value {
			return false
		}
	}
	return true
}
