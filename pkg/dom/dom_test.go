package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildForm() (*Element, *Element) {
	root := NewElement("form")
	label := NewElement("label")
	label.SetText("Email")
	input := NewElement("input").SetAttr("name", "email").SetAttr("type", "text")
	root.AppendChild(label)
	root.AppendChild(input)
	return root, input
}

func TestTreeManipulation(t *testing.T) {
	root := NewElement("div")
	a := NewElement("span")
	b := NewElement("p")
	root.AppendChild(a)
	root.PrependChild(b)

	els := root.ChildElements()
	require.Len(t, els, 2)
	require.Equal(t, "p", els[0].Tag)
	require.Equal(t, "span", els[1].Tag)
	require.Same(t, root, a.Parent())

	root.RemoveChild(b)
	require.Nil(t, b.Parent())
	require.Len(t, root.ChildElements(), 1)
}

func TestAppendReparents(t *testing.T) {
	a := NewElement("div")
	b := NewElement("div")
	child := NewElement("span")

	a.AppendChild(child)
	b.AppendChild(child)

	require.Same(t, b, child.Parent())
	require.Empty(t, a.ChildElements())
}

func TestTextAndValue(t *testing.T) {
	root, input := buildForm()

	require.Equal(t, "Email", root.Text())
	require.True(t, input.IsFormControl())
	require.False(t, root.IsFormControl())

	input.SetValue("a@b.com")
	require.Equal(t, "a@b.com", input.Value())
}

func TestSelectorMatching(t *testing.T) {
	el := NewElement("input").
		SetAttr("name", "email").
		SetAttr("id", "mail").
		SetAttr("class", "field primary")

	cases := []struct {
		selector string
		want     bool
	}{
		{"input", true},
		{"INPUT", true},
		{"span", false},
		{"#mail", true},
		{"#other", false},
		{".field", true},
		{".field.primary", true},
		{".missing", false},
		{"[name=email]", true},
		{"[name='email']", true},
		{"[name=other]", false},
		{"[name]", true},
		{"[placeholder]", false},
		{"input[name=email]", true},
		{"input.field#mail", true},
		{"*", true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, el.Matches(tc.selector), "selector %q", tc.selector)
	}
}

func TestUnsupportedSelectorsNeverMatch(t *testing.T) {
	el := NewElement("div")
	require.False(t, el.Matches("div > span"))
	require.False(t, el.Matches(""))
	require.False(t, el.Matches("div,span"))
}

func TestFindSearchesDescendantsOnly(t *testing.T) {
	root, input := buildForm()

	require.Same(t, input, root.Find("input[name=email]"))
	require.Nil(t, root.Find("form"), "Find must not match the element itself")
	require.Nil(t, root.Find("select"))

	all := root.FindAll("*")
	require.Len(t, all, 2)
}

func TestEventBubblesToAncestors(t *testing.T) {
	root, input := buildForm()

	var order []string
	remove := root.AddEventListener("click", func(ev *Event) {
		order = append(order, "root")
		require.Same(t, input, ev.Target)
	})
	input.AddEventListener("click", func(ev *Event) {
		order = append(order, "input")
	})

	input.Dispatch("click", nil)
	require.Equal(t, []string{"input", "root"}, order)

	remove()
	remove() // second call is a no-op
	require.Equal(t, 0, root.ListenerCount("click"))

	input.Dispatch("click", nil)
	require.Equal(t, []string{"input", "root", "input"}, order)
}

func TestStopPropagation(t *testing.T) {
	root, input := buildForm()

	rootFired := false
	root.AddEventListener("click", func(*Event) { rootFired = true })
	input.AddEventListener("click", func(ev *Event) { ev.StopPropagation() })

	input.Dispatch("click", nil)
	require.False(t, rootFired)
}

func TestInsertModes(t *testing.T) {
	newSetup := func() (*Element, *Element) {
		body := NewElement("body")
		container := NewElement("main")
		body.AppendChild(container)
		return body, container
	}

	t.Run("append and prepend", func(t *testing.T) {
		_, container := newSetup()
		first := NewElement("div")
		second := NewElement("section")
		require.NoError(t, Insert(first, container, ModeAppend))
		require.NoError(t, Insert(second, container, ModePrepend))
		els := container.ChildElements()
		require.Equal(t, "section", els[0].Tag)
		require.Equal(t, "div", els[1].Tag)
	})

	t.Run("empty mode appends", func(t *testing.T) {
		_, container := newSetup()
		require.NoError(t, Insert(NewElement("div"), container, ""))
		require.Len(t, container.ChildElements(), 1)
	})

	t.Run("before and after", func(t *testing.T) {
		body, container := newSetup()
		before := NewElement("header")
		after := NewElement("footer")
		require.NoError(t, Insert(before, container, ModeBefore))
		require.NoError(t, Insert(after, container, ModeAfter))
		els := body.ChildElements()
		require.Equal(t, []string{"header", "main", "footer"},
			[]string{els[0].Tag, els[1].Tag, els[2].Tag})
	})

	t.Run("replace", func(t *testing.T) {
		body, container := newSetup()
		root := NewElement("div")
		require.NoError(t, Insert(root, container, ModeReplace))
		els := body.ChildElements()
		require.Len(t, els, 1)
		require.Equal(t, "div", els[0].Tag)
		require.Nil(t, container.Parent())
	})

	t.Run("html clears container", func(t *testing.T) {
		_, container := newSetup()
		container.AppendChild(NewElement("p"))
		root := NewElement("div")
		require.NoError(t, Insert(root, container, ModeHTML))
		els := container.ChildElements()
		require.Len(t, els, 1)
		require.Equal(t, "div", els[0].Tag)
	})

	t.Run("sibling modes need a parent", func(t *testing.T) {
		detached := NewElement("main")
		require.Error(t, Insert(NewElement("div"), detached, ModeBefore))
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, container := newSetup()
		require.Error(t, Insert(NewElement("div"), container, "teleport"))
	})
}

func TestParseFragment(t *testing.T) {
	nodes, err := Parse(`<p class="greeting">Hello <strong>world</strong></p><input name="email">`)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	p, ok := nodes[0].(*Element)
	require.True(t, ok)
	require.Equal(t, "p", p.Tag)
	require.True(t, p.HasClass("greeting"))
	require.Equal(t, "Hello world", p.Text())

	input, ok := nodes[1].(*Element)
	require.True(t, ok)
	require.Equal(t, "input", input.Tag)
	require.True(t, input.Matches("input[name=email]"))
}

func TestOuterHTMLDeterministic(t *testing.T) {
	el := NewElement("input").SetAttr("type", "text").SetAttr("name", "email")
	require.Equal(t, `<input name="email" type="text"/>`, el.OuterHTML())

	p := NewElement("p")
	p.SetText("a < b")
	require.Equal(t, "<p>a &lt; b</p>", p.OuterHTML())
}
