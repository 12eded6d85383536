package dom

import "fmt"

// InsertMode identifies how a view's root is placed relative to its
// container. The set is open: adapters may honor additional strings.
type InsertMode string

const (
	// ModeAppend places the root as the container's last child (default).
	ModeAppend InsertMode = "append"
	// ModePrepend places the root as the container's first child.
	ModePrepend InsertMode = "prepend"
	// ModeBefore places the root as the container's previous sibling.
	ModeBefore InsertMode = "before"
	// ModeAfter places the root as the container's next sibling.
	ModeAfter InsertMode = "after"
	// ModeReplace swaps the container out for the root.
	ModeReplace InsertMode = "replace"
	// ModeHTML clears the container and appends the root.
	ModeHTML InsertMode = "html"
)

// Insert attaches root relative to container per mode. An empty mode
// means ModeAppend. Sibling modes (before, after, replace) require the
// container to have a parent.
func Insert(root, container *Element, mode InsertMode) error {
	if root == nil || container == nil {
		return fmt.Errorf("dom: insert requires a root and a container")
	}
	switch mode {
	case "", ModeAppend:
		container.AppendChild(root)
	case ModePrepend:
		container.PrependChild(root)
	case ModeBefore:
		parent := container.Parent()
		if parent == nil {
			return fmt.Errorf("dom: %q insert needs a parented container", mode)
		}
		parent.InsertBefore(root, container)
	case ModeAfter:
		parent := container.Parent()
		if parent == nil {
			return fmt.Errorf("dom: %q insert needs a parented container", mode)
		}
		parent.InsertAfter(root, container)
	case ModeReplace:
		parent := container.Parent()
		if parent == nil {
			return fmt.Errorf("dom: %q insert needs a parented container", mode)
		}
		parent.InsertBefore(root, container)
		parent.RemoveChild(container)
	case ModeHTML:
		container.ReplaceChildren(root)
	default:
		return fmt.Errorf("dom: unknown insert mode %q", mode)
	}
	return nil
}
