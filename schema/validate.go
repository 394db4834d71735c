package schema

import (
	xml "github.com/andaru/flexml"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/reporter"
)

// FillDefaults inserts a synthesized leaf for every mandatory-less leaf
// statement under el's governing container that carries a `default`
// and is absent from el's current children, then recurses into every
// present element child, list instances included. Missing list and
// leaf-list instances are never synthesized. An element bound to state
// data is left untouched, and so are its children.
func FillDefaults(el dom.Element) {
	entry := el.Schema()
	if entry == nil || entry.Dir == nil || IsStateData(entry) {
		return
	}
	present := presentChildren(el)
	inserted := false
	for name, child := range entry.Dir {
		if present[name] || !isData(child) {
			continue
		}
		if child.Kind == yang.LeafEntry && child.ListAttr == nil && child.Default != "" {
			appendDefaultLeaf(el, child)
			inserted = true
		}
	}
	if inserted {
		Sort(el)
	}
	for _, c := range elementChildren(el) {
		FillDefaults(c)
	}
}

func appendDefaultLeaf(parent dom.Element, entry *yang.Entry) {
	name := xml.Name{Local: entry.Name}
	if ns := entry.Namespace(); ns != nil {
		name.Space = ns.Name
	}
	leaf := dom.CreateElement(xml.StartElement{Name: name})
	leaf.SetSchema(entry)
	_ = leaf.AppendChild(dom.CreateText(xml.CharData(entry.Default)))
	_ = parent.AppendChild(leaf)
}

// Validate walks el's schema-bound children, reporting every
// unsatisfied mandatory leaf/anyxml and every unsatisfied mandatory
// choice through rep. It does not stop at the first violation found;
// call it after FillDefaults so a default-filled leaf never reports as
// missing.
func Validate(el dom.Element, rep reporter.Reporter) {
	entry := el.Schema()
	if entry == nil || entry.Dir == nil || IsStateData(entry) {
		return
	}
	present := presentChildren(el)
	for name, child := range entry.Dir {
		switch child.Kind {
		case yang.ChoiceEntry:
			if isMandatory(child) && !choiceSatisfied(child, present) {
				rep.Report(reporter.MissingChoiceReport(child.Name))
			}
		default:
			if isData(child) && !present[name] && isMandatory(child) {
				rep.Report(reporter.MissingMandatoryReport(name))
			}
		}
	}
	for _, c := range elementChildren(el) {
		Validate(c, rep)
	}
}

func presentChildren(el dom.Element) map[string]bool {
	present := map[string]bool{}
	for _, c := range elementChildren(el) {
		present[c.Name().Local] = true
	}
	return present
}

// choiceSatisfied reports whether any data node in any case of choice
// appears in present.
func choiceSatisfied(choice *yang.Entry, present map[string]bool) bool {
	for _, cs := range choice.Dir {
		if cs.Kind != yang.CaseEntry {
			continue
		}
		for name := range cs.Dir {
			if present[name] {
				return true
			}
		}
	}
	return false
}

// isMandatory reports whether e carries a `mandatory true` substatement.
// goyang's Entry does not surface "mandatory" as a first-class field —
// it is one of the statement keywords ToEntry stashes verbatim into
// Extra, keyed by keyword name, because no Entry field models it.
func isMandatory(e *yang.Entry) bool {
	for _, v := range e.Extra["mandatory"] {
		if val, ok := v.(*yang.Value); ok {
			return val.Name == "true"
		}
	}
	return false
}
