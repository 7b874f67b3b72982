package doctree

// DocTree is the root of a parsed question-bank document.
type DocTree struct {
	Title string // Document title (from filename)
	Root  *Node  // The <quiz> element
}

// Questions returns the question elements of the bank in document order.
func (t *DocTree) Questions() []*Node {
	if t == nil || t.Root == nil {
		return nil
	}
	return t.Root.ChildrenByTag("question")
}
