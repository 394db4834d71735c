package schema

import (
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/value"
)

// Query describes the child being searched for: its name, the YANG
// order index of its governing statement, the statement's
// keyword-equivalent entry, and, for leaf-list/list, the value(s) that
// identify the specific instance.
type Query struct {
	Name  string
	Entry *yang.Entry // the governing statement of the sought child

	// LeafListValue is compared against a leaf-list instance's body.
	LeafListValue string

	// KeyValues holds, in the same order as KeyNames(Entry), the key
	// body values identifying a specific list instance.
	KeyValues []string
}

// Search binary-searches over parent's element-children on YANG order
// index to find the equal-order run governed by q.Entry, then, unless
// the statement is ordered-by-user (whose instance order carries no
// key/value ordering to search), binary-searches that run a second
// time using the same key/leaf-list-value ordering Compare imposes on
// it. It returns the matching child, or nil on a miss; Search never
// errors.
func Search(parent dom.Element, q Query) dom.Element {
	children := elementChildren(parent)
	idx, ok := orderIndexOf(q.Entry)
	if !ok {
		idx = 0
	}

	lo, hi := 0, len(children)
	for lo < hi {
		mid := (lo + hi) / 2
		midIdx, _ := orderIndexOf(children[mid].Schema())
		if midIdx < idx {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	// lo is the first child whose order index is >= idx.
	runStart := lo
	runEnd := lo
	for runEnd < len(children) {
		ci, _ := orderIndexOf(children[runEnd].Schema())
		if ci != idx {
			break
		}
		runEnd++
	}

	if IsOrderedByUser(q.Entry) {
		for i := runStart; i < runEnd; i++ {
			if matches(children[i], q) {
				return children[i]
			}
		}
		return nil
	}

	lo2, hi2 := runStart, runEnd
	for lo2 < hi2 {
		mid := (lo2 + hi2) / 2
		if queryCompare(children[mid], q) < 0 {
			lo2 = mid + 1
		} else {
			hi2 = mid
		}
	}
	for i := lo2; i < runEnd; i++ {
		if queryCompare(children[i], q) != 0 {
			break
		}
		if matches(children[i], q) {
			return children[i]
		}
	}
	return nil
}

// queryCompare orders child against q by the same tie-break rule
// Compare applies within an equal-order run (typed leaf-list value, or
// list key comparison in declared key order), letting Search and
// InsertPosition binary-search the run instead of scanning it linearly.
func queryCompare(child dom.Element, q Query) int {
	switch {
	case IsLeafList(q.Entry):
		cv, ok := leafValue(child, q.Entry)
		if !ok {
			return -1
		}
		qv, err := value.Parse(q.LeafListValue, q.Entry.Type)
		if err != nil {
			return compareStrings(child.ChildValue(), q.LeafListValue)
		}
		return value.Compare(cv, qv)
	case IsList(q.Entry):
		for i, key := range KeyNames(q.Entry) {
			kc := childByLocalName(child, key)
			cv := ""
			if kc != nil {
				cv = kc.ChildValue()
			}
			qv := ""
			if i < len(q.KeyValues) {
				qv = q.KeyValues[i]
			}
			if c := compareStrings(cv, qv); c != 0 {
				return c
			}
		}
		return 0
	default:
		return 0
	}
}

// InsertPosition runs the same binary search, returning the index at
// which a new child
// matching q should be inserted to keep parent's children sorted. Within a
// user-ordered run, new instances are appended at the end of the run.
func InsertPosition(parent dom.Element, q Query) int {
	children := elementChildren(parent)
	idx, ok := orderIndexOf(q.Entry)
	if !ok {
		idx = 0
	}

	lo, hi := 0, len(children)
	for lo < hi {
		mid := (lo + hi) / 2
		midIdx, _ := orderIndexOf(children[mid].Schema())
		if midIdx < idx {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	runEnd := lo
	for runEnd < len(children) {
		ci, _ := orderIndexOf(children[runEnd].Schema())
		if ci != idx {
			break
		}
		runEnd++
	}
	if IsOrderedByUser(q.Entry) {
		// scan forward to the last equal-name neighbour within the run
		last := lo
		for i := lo; i < runEnd; i++ {
			if children[i].Name().Local == q.Name {
				last = i + 1
			}
		}
		return last
	}

	// Binary-search the same key/value ordering Search uses, inserting
	// after every instance that is <= q so the run stays sorted.
	lo2, hi2 := lo, runEnd
	for lo2 < hi2 {
		mid := (lo2 + hi2) / 2
		if queryCompare(children[mid], q) <= 0 {
			lo2 = mid + 1
		} else {
			hi2 = mid
		}
	}
	return lo2
}

// matches applies the keyword-specific match predicate.
func matches(child dom.Element, q Query) bool {
	if child.Name().Local != q.Name {
		return false
	}
	switch {
	case IsList(q.Entry):
		keys := KeyNames(q.Entry)
		if len(keys) != len(q.KeyValues) {
			return false
		}
		for i, key := range keys {
			kc := childByLocalName(child, key)
			if kc == nil || kc.ChildValue() != q.KeyValues[i] {
				return false
			}
		}
		return true
	case IsLeafList(q.Entry):
		return child.ChildValue() == q.LeafListValue
	default: // container, leaf: match by name only
		return true
	}
}

// QueryFor builds a Query describing the governing statement and identity
// of an already-materialized element el, for use when searching a base
// tree for el's counterpart (used by Match).
func QueryFor(el dom.Element) Query {
	e := el.Schema()
	q := Query{Name: el.Name().Local, Entry: e}
	switch {
	case IsList(e):
		for _, key := range KeyNames(e) {
			kc := childByLocalName(el, key)
			v := ""
			if kc != nil {
				v = kc.ChildValue()
			}
			q.KeyValues = append(q.KeyValues, v)
		}
	case IsLeafList(e):
		q.LeafListValue = el.ChildValue()
	}
	return q
}
