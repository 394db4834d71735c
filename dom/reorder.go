package dom

// Children returns all of n's children (of every node type) in tree order.
func Children(n Node) []Node {
	var out []Node
	for it := n.FirstChild(); it != nil; it = it.NextSibling() {
		out = append(out, it)
	}
	return out
}

// SetChildren replaces parent's child list with children, in the given
// order. Every element of children must already be (or have been) a child
// of parent; SetChildren does not validate ownership beyond re-parenting
// each node, since its only caller (package schema's Sort) builds children
// as a permutation of Children(parent).
//
// The dom package is otherwise build-once (no RemoveChild primitive); this
// is the minimal addition needed to let Sort reorder an already-built
// tree's element children in place.
func SetChildren(parent Node, children []Node) {
	pn := parent.nodePtr()
	if len(children) == 0 {
		pn.firstChild = nil
		return
	}
	nodes := make([]*node, len(children))
	for i, c := range children {
		nodes[i] = c.nodePtr()
		nodes[i].parent = pn
	}
	pn.firstChild = nodes[0]
	tail := nodes[len(nodes)-1]
	for i, c := range nodes {
		if i == 0 {
			c.prevSib = tail
		} else {
			c.prevSib = nodes[i-1]
		}
		if i < len(nodes)-1 {
			c.nextSib = nodes[i+1]
		} else {
			c.nextSib = nil
		}
	}
}
