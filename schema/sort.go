package schema

import (
	"sort"

	"github.com/andaru/opr8/dom"
)

// Sort sorts el's element-children with a stable comparator, unless
// el's own bound statement is state data, in which case
// the tree's arrival order is authoritative and Sort is a no-op. Attribute
// children are never touched. Sort is not recursive; use SortTree to sort
// an entire subtree.
func Sort(el dom.Element) {
	if IsStateData(el.Schema()) {
		return
	}
	children := elementChildren(el)
	if len(children) < 2 {
		return
	}
	sort.SliceStable(children, func(i, j int) bool {
		return Compare(children[i], children[j]) < 0
	})
	dom.SetChildren(el, mergeSortedElements(el, children))
}

// mergeSortedElements rebuilds el's full child list (every node type, in
// tree order) with the relative order of non-element siblings (text,
// comments) preserved and the element children replaced by sorted.
func mergeSortedElements(el dom.Element, sorted []dom.Element) []dom.Node {
	all := dom.Children(el)
	out := make([]dom.Node, 0, len(all))
	next := 0
	for _, n := range all {
		if n.NodeType() == dom.NodeTypeElement {
			out = append(out, sorted[next])
			next++
			continue
		}
		out = append(out, n)
	}
	return out
}

// SortTree walks el depth-first, calling Sort at every element, but does
// not descend into subtrees rooted at state data — state data keeps
// arrival order.
func SortTree(el dom.Element) {
	if IsStateData(el.Schema()) {
		return
	}
	Sort(el)
	for it := el.FirstChild(); it != nil; it = it.NextSibling() {
		if child, ok := it.(dom.Element); ok {
			SortTree(child)
		}
	}
}

// Verify walks el's element-children once, asserting Compare(prev, cur) <=
// 0 for every adjacent pair. It returns the first offending pair found, if
// any.
func Verify(el dom.Element) (ok bool, a, b dom.Element) {
	var prev dom.Element
	for it := el.FirstChild(); it != nil; it = it.NextSibling() {
		cur, isElem := it.(dom.Element)
		if !isElem {
			continue
		}
		if prev != nil && Compare(prev, cur) > 0 {
			return false, prev, cur
		}
		prev = cur
	}
	return true, nil, nil
}

func elementChildren(el dom.Element) []dom.Element {
	var out []dom.Element
	it := dom.NewChildFilteringIterator(el, func(n dom.Node) bool {
		return n.NodeType() == dom.NodeTypeElement
	})
	for n := it.NextSibling(); n != nil; n = it.NextSibling() {
		out = append(out, n.(dom.Element))
	}
	return out
}

