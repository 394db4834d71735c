package schema

import (
	"testing"

	xml "github.com/andaru/flexml"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/andaru/opr8/dom"
)

func newInterfaceListEntry() *yang.Entry {
	return &yang.Entry{
		Name:     "interface",
		Kind:     yang.DirectoryEntry,
		Key:      "name",
		ListAttr: &yang.ListAttr{},
	}
}

func newLeafEntry(name string) *yang.Entry {
	return &yang.Entry{Name: name, Kind: yang.LeafEntry, Type: &yang.YangType{Kind: yang.Ystring}}
}

func newInterfaceElement(ifaceEntry, nameEntry *yang.Entry, name string) dom.Element {
	el := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "interface"}})
	el.SetSchema(ifaceEntry)

	nameEl := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "name"}})
	nameEl.SetSchema(nameEntry)
	_ = nameEl.AppendChild(dom.CreateText(xml.CharData(name)))
	_ = el.AppendChild(nameEl)

	return el
}

func TestSortListByKey(t *testing.T) {
	ifaceEntry := newInterfaceListEntry()
	nameEntry := newLeafEntry("name")

	parent := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "interfaces"}})
	order := []string{"eth2", "eth0", "eth1"}
	for _, name := range order {
		_ = parent.AppendChild(newInterfaceElement(ifaceEntry, nameEntry, name))
	}

	Sort(parent)

	var got []string
	for it := parent.FirstChild(); it != nil; it = it.NextSibling() {
		el := it.(dom.Element)
		got = append(got, el.FirstChild().ChildValue())
	}
	want := []string{"eth0", "eth1", "eth2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	ifaceEntry := newInterfaceListEntry()
	nameEntry := newLeafEntry("name")
	parent := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "interfaces"}})
	for _, name := range []string{"eth2", "eth0", "eth1"} {
		_ = parent.AppendChild(newInterfaceElement(ifaceEntry, nameEntry, name))
	}
	Sort(parent)
	first := dom.Children(parent)
	Sort(parent)
	second := dom.Children(parent)
	if len(first) != len(second) {
		t.Fatalf("children count changed across idempotent sort")
	}
	for i := range first {
		if first[i].(dom.Element).FirstChild().ChildValue() != second[i].(dom.Element).FirstChild().ChildValue() {
			t.Fatalf("sort is not idempotent at index %d", i)
		}
	}
}

func TestVerifyDetectsUnsortedPair(t *testing.T) {
	ifaceEntry := newInterfaceListEntry()
	nameEntry := newLeafEntry("name")
	parent := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "interfaces"}})
	for _, name := range []string{"eth2", "eth0"} {
		_ = parent.AppendChild(newInterfaceElement(ifaceEntry, nameEntry, name))
	}
	ok, a, b := Verify(parent)
	if ok {
		t.Fatal("expected Verify to detect unsorted pair")
	}
	if a.FirstChild().ChildValue() != "eth2" || b.FirstChild().ChildValue() != "eth0" {
		t.Fatalf("unexpected offending pair: %q, %q", a.FirstChild().ChildValue(), b.FirstChild().ChildValue())
	}
}

func TestSearchFindsKeyedInstance(t *testing.T) {
	ifaceEntry := newInterfaceListEntry()
	nameEntry := newLeafEntry("name")
	parent := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "interfaces"}})
	for _, name := range []string{"eth2", "eth0", "eth1"} {
		_ = parent.AppendChild(newInterfaceElement(ifaceEntry, nameEntry, name))
	}
	Sort(parent)

	found := Search(parent, Query{Name: "interface", Entry: ifaceEntry, KeyValues: []string{"eth1"}})
	if found == nil {
		t.Fatal("expected to find eth1")
	}
	if found.FirstChild().ChildValue() != "eth1" {
		t.Fatalf("got %q, want eth1", found.FirstChild().ChildValue())
	}

	miss := Search(parent, Query{Name: "interface", Entry: ifaceEntry, KeyValues: []string{"eth9"}})
	if miss != nil {
		t.Fatal("expected miss for unknown key to return nil")
	}
}

func TestStateDataSkipsSort(t *testing.T) {
	stateEntry := &yang.Entry{Name: "interfaces-state", Kind: yang.DirectoryEntry, Config: yang.TSFalse}
	ifaceEntry := newInterfaceListEntry()
	ifaceEntry.Config = yang.TSFalse
	nameEntry := newLeafEntry("name")
	parent := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "interfaces-state"}})
	parent.SetSchema(stateEntry)
	for _, name := range []string{"eth2", "eth0"} {
		_ = parent.AppendChild(newInterfaceElement(ifaceEntry, nameEntry, name))
	}
	Sort(parent)
	var got []string
	for it := parent.FirstChild(); it != nil; it = it.NextSibling() {
		got = append(got, it.(dom.Element).FirstChild().ChildValue())
	}
	if got[0] != "eth2" || got[1] != "eth0" {
		t.Fatalf("state data must keep arrival order, got %v", got)
	}
}

func TestMatchByChoice(t *testing.T) {
	choice := &yang.Entry{Name: "config-or-target", Kind: yang.ChoiceEntry}
	caseA := &yang.Entry{Name: "case-a", Kind: yang.CaseEntry, Parent: choice}
	caseB := &yang.Entry{Name: "case-b", Kind: yang.CaseEntry, Parent: choice}
	legA := &yang.Entry{Name: "target", Kind: yang.LeafEntry, Parent: caseA}
	legB := &yang.Entry{Name: "config", Kind: yang.LeafEntry, Parent: caseB}

	base := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "edit-config"}})
	targetEl := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "target"}})
	targetEl.SetSchema(legA)
	_ = base.AppendChild(targetEl)

	m := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "config"}})
	m.SetSchema(legB)

	found := Match(base, m)
	if found == nil {
		t.Fatal("expected choice-aware match to find the alternative case's element")
	}
	if found.Name().Local != "target" {
		t.Fatalf("got %q, want target", found.Name().Local)
	}
}
