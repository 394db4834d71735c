package codec

import (
	"strings"
	"testing"

	xml "github.com/andaru/flexml"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/schema"
)

const exampleIfYang = `
module example-if {
  namespace "urn:example:if";
  prefix "if";

  identity eth-type;
  identity fast-eth { base eth-type; }

  container interfaces {
    list interface {
      key "name";
      leaf name { type string; }
      leaf enabled { type boolean; }
      leaf type { type identityref { base eth-type; } }
      leaf-list mtu-options { type uint32; }
    }
  }
}
`

func newExampleCollection(t *testing.T) *schema.Collection {
	t.Helper()
	c := schema.NewCollection()
	if err := c.ReadString("example-if", exampleIfYang); err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if errs := c.Process(); len(errs) > 0 {
		t.Fatalf("Process: %v", errs)
	}
	return c
}

func appendLeaf(parent dom.Element, entry *yang.Entry, name, body string) dom.Element {
	el := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: name}})
	el.SetSchema(entry)
	_ = el.AppendChild(dom.CreateText(xml.CharData(body)))
	_ = parent.AppendChild(el)
	return el
}

func firstElementChild(n dom.Node) dom.Element {
	for it := n.FirstChild(); it != nil; it = it.NextSibling() {
		if el, ok := it.(dom.Element); ok {
			return el
		}
	}
	return nil
}

func childNamed(n dom.Node, local string) dom.Element {
	for it := n.FirstChild(); it != nil; it = it.NextSibling() {
		if el, ok := it.(dom.Element); ok && el.Name().Local == local {
			return el
		}
	}
	return nil
}

func TestEncodeTopLevelListAndIdentityref(t *testing.T) {
	c := newExampleCollection(t)
	mod, err := c.FindModuleByName("example-if")
	if err != nil {
		t.Fatalf("FindModuleByName: %v", err)
	}
	interfacesEntry := mod.Dir["interfaces"]
	ifaceEntry := interfacesEntry.Dir["interface"]
	nameEntry := ifaceEntry.Dir["name"]
	enabledEntry := ifaceEntry.Dir["enabled"]
	typeEntry := ifaceEntry.Dir["type"]
	mtuEntry := ifaceEntry.Dir["mtu-options"]

	root := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "root"}})
	interfacesEl := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "interfaces"}})
	interfacesEl.SetSchema(interfacesEntry)
	_ = root.AppendChild(interfacesEl)

	iface := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "interface"}})
	iface.SetSchema(ifaceEntry)
	_ = interfacesEl.AppendChild(iface)

	appendLeaf(iface, nameEntry, "name", "eth0")
	appendLeaf(iface, enabledEntry, "enabled", "true")
	appendLeaf(iface, typeEntry, "type", "example-if:fast-eth")
	appendLeaf(iface, mtuEntry, "mtu-options", "1500")
	appendLeaf(iface, mtuEntry, "mtu-options", "9000")

	got, err := EncodeTopLevel(root, Options{Modules: c})
	if err != nil {
		t.Fatalf("EncodeTopLevel: %v", err)
	}
	for _, want := range []string{
		`"example-if:interfaces"`,
		`"interface":[`,
		`"enabled":true`,
		`"mtu-options":[1500,9000]`,
		`"type":"fast-eth"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("encoded output %q missing %q", got, want)
		}
	}
}

func TestDecodeTopLevelBindsAndRewritesIdentityref(t *testing.T) {
	c := newExampleCollection(t)
	resolver := &schema.Resolver{Modules: c}
	input := `{"example-if:interfaces":{"interface":[{"name":"eth0","enabled":true,"type":"example-if:fast-eth","mtu-options":[1500,9000]}]}}`

	root, err := DecodeTopLevel([]byte(input), DecodeOptions{Modules: c, Resolver: resolver})
	if err != nil {
		t.Fatalf("DecodeTopLevel: %v", err)
	}

	interfacesEl := firstElementChild(root)
	if interfacesEl == nil || interfacesEl.Name().Local != "interfaces" {
		t.Fatalf("got top-level element %v, want interfaces", interfacesEl)
	}
	if interfacesEl.Name().Space != "urn:example:if" {
		t.Fatalf("got namespace %q, want urn:example:if", interfacesEl.Name().Space)
	}
	if interfacesEl.Schema() == nil {
		t.Fatal("expected interfaces element to be schema-bound")
	}

	ifaceEl := firstElementChild(interfacesEl)
	if ifaceEl == nil || !schema.IsList(ifaceEl.Schema()) {
		t.Fatal("expected interface child to resolve to the list statement")
	}

	typeEl := childNamed(ifaceEl, "type")
	if typeEl == nil {
		t.Fatal("expected a type leaf child")
	}
	if body, _ := bodyOf(typeEl); body != "example-if:fast-eth" {
		t.Fatalf("got identityref body %q, want example-if:fast-eth", body)
	}
	if uri, ok := ResolveNamespace(typeEl, "example-if"); !ok || uri != "urn:example:if" {
		t.Fatalf("expected xmlns:example-if to resolve to urn:example:if, got %q, %v", uri, ok)
	}
}

func TestDecodeTopLevelIdentityrefKludgeAssumesOwnModule(t *testing.T) {
	c := newExampleCollection(t)
	resolver := &schema.Resolver{Modules: c}
	input := `{"example-if:interfaces":{"interface":[{"name":"eth0","enabled":true,"type":"fast-eth","mtu-options":[1500]}]}}`

	root, err := DecodeTopLevel([]byte(input), DecodeOptions{Modules: c, Resolver: resolver, IdentityrefKludge: true})
	if err != nil {
		t.Fatalf("DecodeTopLevel: %v", err)
	}
	typeEl := childNamed(firstElementChild(firstElementChild(root)), "type")
	if typeEl == nil {
		t.Fatal("expected a type leaf child")
	}
	if body, _ := bodyOf(typeEl); body != "example-if:fast-eth" {
		t.Fatalf("got identityref body %q, want example-if:fast-eth", body)
	}
}

func TestDecodeTopLevelWithoutKludgeLeavesBarePrefixAlone(t *testing.T) {
	c := newExampleCollection(t)
	resolver := &schema.Resolver{Modules: c}
	input := `{"example-if:interfaces":{"interface":[{"name":"eth0","enabled":true,"type":"fast-eth","mtu-options":[1500]}]}}`

	root, err := DecodeTopLevel([]byte(input), DecodeOptions{Modules: c, Resolver: resolver})
	if err != nil {
		t.Fatalf("DecodeTopLevel: %v", err)
	}
	typeEl := childNamed(firstElementChild(firstElementChild(root)), "type")
	if body, _ := bodyOf(typeEl); body != "fast-eth" {
		t.Fatalf("got identityref body %q, want fast-eth unchanged", body)
	}
}

func TestCheckTopLevelQualifiedRejectsBareMember(t *testing.T) {
	c := newExampleCollection(t)
	resolver := &schema.Resolver{Modules: c}
	_, err := DecodeTopLevel([]byte(`{"interfaces":{}}`), DecodeOptions{Modules: c, Resolver: resolver})
	if err == nil {
		t.Fatal("expected an error for an unqualified top-level member")
	}
}
