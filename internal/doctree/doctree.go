package doctree

import (
	"strings"
)

// Node is one element of a parsed question-bank document.
type Node struct {
	Tag      string            // Element name, e.g. "question"
	Attrs    map[string]string // Attributes by local name
	Text     string            // Character data directly inside the element
	Children []*Node           // Child elements in document order
}

// Attr returns the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns all direct children with the given tag.
func (n *Node) ChildrenByTag(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Find follows a slash-separated path of direct child tags,
// e.g. "questiontext/text". It returns nil if any step is missing.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, step := range strings.Split(path, "/") {
		if step == "" {
			continue
		}
		cur = cur.Child(step)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// FindText returns the text of the node at path, or "" if it is missing.
func (n *Node) FindText(path string) string {
	if t := n.Find(path); t != nil {
		return t.Text
	}
	return ""
}

// Descendants returns every element below n (at any depth) with the given tag,
// in document order. n itself is not included.
func (n *Node) Descendants(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			if c.Tag == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}
