package schema

import (
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/value"
)

// Compare computes the total ordering over two sibling elements of a
// bound parent.
func Compare(a, b dom.Element) int {
	ea, eb := a.Schema(), b.Schema()

	// Rule 1: either side lacks a bound statement.
	if ea == nil || eb == nil {
		return 0
	}

	// Rule 2: different statements compare by YANG order index.
	if ea != eb {
		return orderIndex(ea) - orderIndex(eb)
	}

	// Rule 3: state data or ordered-by-user never reorders.
	if IsStateData(ea) || IsOrderedByUser(ea) {
		return 0
	}

	switch {
	case IsLeafList(ea):
		return compareLeafList(a, b, ea)
	case IsList(ea):
		return compareListKeys(a, b, ea)
	default:
		return 0
	}
}

// compareLeafList implements rule 4: compare typed body values; a missing
// body sorts strictly before a present one.
func compareLeafList(a, b dom.Element, e *yang.Entry) int {
	va, aOK := leafValue(a, e)
	vb, bOK := leafValue(b, e)
	switch {
	case !aOK && !bOK:
		return 0
	case !aOK:
		return -1
	case !bOK:
		return 1
	}
	return value.Compare(va, vb)
}

// compareListKeys implements rule 5: iterate the cached key-name sequence
// in declared order, comparing the string body of each keyed child; the
// first unequal pair decides.
func compareListKeys(a, b dom.Element, e *yang.Entry) int {
	for _, key := range KeyNames(e) {
		ka := childByLocalName(a, key)
		kb := childByLocalName(b, key)
		av, bv := "", ""
		if ka != nil {
			av = ka.ChildValue()
		}
		if kb != nil {
			bv = kb.ChildValue()
		}
		if c := compareStrings(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

func compareStrings(a, b string) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// leafValue returns the leaf's cached typed value if present, parsing
// and caching it otherwise so repeated reads are idempotent.
func leafValue(el dom.Element, e *yang.Entry) (value.Value, bool) {
	if cached, ok := el.CachedValue(); ok {
		return cached, true
	}
	body := el.ChildValue()
	if body == "" && !hasTextChild(el) {
		return value.Value{}, false
	}
	if e == nil || e.Type == nil {
		return value.Value{Kind: value.KindString, Str: body}, true
	}
	v, err := value.Parse(body, e.Type)
	if err != nil {
		return value.Value{Kind: value.KindString, Str: body}, true
	}
	el.SetCachedValue(v)
	return v, true
}

func hasTextChild(n dom.Node) bool {
	it := dom.NewChildFilteringIterator(n, func(c dom.Node) bool {
		return c.NodeType() == dom.NodeTypeText
	})
	return it.NextSibling() != nil
}

// childByLocalName returns the first element child of n whose local name
// is local, ignoring namespace (list keys are always in the list's own
// namespace, which may or may not be repeated on the child element).
func childByLocalName(n dom.Node, local string) dom.Node {
	it := dom.NewChildFilteringIterator(n, func(c dom.Node) bool {
		return c.NodeType() == dom.NodeTypeElement && c.Name().Local == local
	})
	return it.NextSibling()
}

func orderIndex(e *yang.Entry) int {
	if idx, ok := orderIndexOf(e); ok {
		return idx
	}
	return 0
}
