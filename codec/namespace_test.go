package codec

import (
	"testing"

	xml "github.com/andaru/flexml"

	"github.com/andaru/opr8/dom"
)

func TestResolveNamespaceWalksAncestors(t *testing.T) {
	root := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "root"}})
	if err := SetPrefixedNamespace(root, "if", "urn:example:if"); err != nil {
		t.Fatalf("SetPrefixedNamespace: %v", err)
	}
	child := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "child"}})
	_ = root.AppendChild(child)

	uri, ok := ResolveNamespace(child, "if")
	if !ok || uri != "urn:example:if" {
		t.Fatalf("got (%q, %v), want (urn:example:if, true)", uri, ok)
	}

	if _, ok := ResolveNamespace(child, "missing"); ok {
		t.Fatal("expected no match for an unbound prefix")
	}
}

func TestSetDefaultNamespaceOverwritesExisting(t *testing.T) {
	el := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "el"}})
	if err := SetDefaultNamespace(el, "urn:first"); err != nil {
		t.Fatalf("SetDefaultNamespace: %v", err)
	}
	if err := SetDefaultNamespace(el, "urn:second"); err != nil {
		t.Fatalf("SetDefaultNamespace: %v", err)
	}
	uri, ok := ResolveNamespace(el, "")
	if !ok || uri != "urn:second" {
		t.Fatalf("got (%q, %v), want (urn:second, true)", uri, ok)
	}
}

func TestSetPrefixedNamespaceIsIdempotent(t *testing.T) {
	el := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "el"}})
	if err := SetPrefixedNamespace(el, "if", "urn:example:if"); err != nil {
		t.Fatalf("SetPrefixedNamespace: %v", err)
	}
	if err := SetPrefixedNamespace(el, "if", "urn:example:if"); err != nil {
		t.Fatalf("SetPrefixedNamespace: %v", err)
	}

	var count int
	for n := dom.Node(el.FirstAttribute()); n != nil; n = n.NextSibling() {
		count++
	}
	if count != 1 {
		t.Fatalf("got %d xmlns:if attributes, want 1", count)
	}
}
