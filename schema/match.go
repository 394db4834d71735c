package schema

import (
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/andaru/opr8/dom"
)

// Match, given a modification child m, locates its counterpart in base,
// for use by merge/diff operations. It returns nil if no counterpart
// exists. The caller decides add/replace/remove.
func Match(base dom.Element, m dom.Element) dom.Element {
	if choice := lexicalChoiceOf(m.Schema()); choice != nil {
		return matchByChoice(base, choice)
	}
	if boundChildrenExist(base) {
		return Search(base, QueryFor(m))
	}
	return linearScan(base, QueryFor(m))
}

// lexicalChoiceOf returns the `choice` statement e is lexically nested
// under (directly, or via an intervening `case`), or nil if e is not
// inside a choice.
func lexicalChoiceOf(e *yang.Entry) *yang.Entry {
	if e == nil || e.Parent == nil {
		return nil
	}
	switch e.Parent.Kind {
	case yang.ChoiceEntry:
		return e.Parent
	case yang.CaseEntry:
		if e.Parent.Parent != nil && e.Parent.Parent.Kind == yang.ChoiceEntry {
			return e.Parent.Parent
		}
	}
	return nil
}

// matchByChoice finds any child of base whose resolved statement is
// lexically nested under the same choice statement, permitting the
// lexical name to differ because `choice` allows alternative cases.
func matchByChoice(base dom.Element, choice *yang.Entry) dom.Element {
	for it := base.FirstChild(); it != nil; it = it.NextSibling() {
		child, ok := it.(dom.Element)
		if !ok {
			continue
		}
		if lexicalChoiceOf(child.Schema()) == choice {
			return child
		}
	}
	return nil
}

func linearScan(base dom.Element, q Query) dom.Element {
	for it := base.FirstChild(); it != nil; it = it.NextSibling() {
		child, ok := it.(dom.Element)
		if !ok {
			continue
		}
		if matches(child, q) {
			return child
		}
	}
	return nil
}

func boundChildrenExist(base dom.Element) bool {
	for it := base.FirstChild(); it != nil; it = it.NextSibling() {
		if child, ok := it.(dom.Element); ok {
			return child.Schema() != nil
		}
	}
	return false
}
