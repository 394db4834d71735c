package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	xml "github.com/andaru/flexml"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/schema"
)

// treeSnapshot is a deep-equality-friendly projection of a bound
// element tree: it keys each element by its schema-derived namespace
// rather than the raw in-memory xml.Name, since an element built
// programmatically may omit the namespace its parent's default xmlns
// would otherwise give it on the wire, while a round-tripped element
// always carries the namespace the decoder resolved.
type treeSnapshot struct {
	Key      string
	Body     string
	Children []treeSnapshot
}

func snapshotOf(el dom.Element) treeSnapshot {
	s := treeSnapshot{Key: snapshotKey(el)}
	if body, ok := bodyOf(el); ok {
		s.Body = body
	}
	for it := el.FirstChild(); it != nil; it = it.NextSibling() {
		if child, ok := it.(dom.Element); ok {
			s.Children = append(s.Children, snapshotOf(child))
		}
	}
	return s
}

func snapshotKey(el dom.Element) string {
	ns := ""
	if entry := el.Schema(); entry != nil {
		if n := entry.Namespace(); n != nil {
			ns = n.Name
		}
	}
	return ns + ":" + el.Name().Local
}

// TestXMLRoundTripMatchesOriginalTree builds a bound tree directly,
// serializes it with EncodeXML, re-parses the serialized form with
// DecodeXML, and asserts the two trees are structurally identical
// modulo the in-memory-only namespace omissions noted above.
func TestXMLRoundTripMatchesOriginalTree(t *testing.T) {
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

	ns := "urn:example:if"
	interfacesEl := dom.CreateElement(xml.StartElement{Name: xml.Name{Space: ns, Local: "interfaces"}})
	interfacesEl.SetSchema(interfacesEntry)
	iface := dom.CreateElement(xml.StartElement{Name: xml.Name{Space: ns, Local: "interface"}})
	iface.SetSchema(ifaceEntry)
	if err := interfacesEl.AppendChild(iface); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	appendLeaf(iface, nameEntry, "name", "eth0")
	appendLeaf(iface, enabledEntry, "enabled", "true")
	appendLeaf(iface, typeEntry, "type", "example-if:fast-eth")
	appendLeaf(iface, mtuEntry, "mtu-options", "1500")
	appendLeaf(iface, mtuEntry, "mtu-options", "9000")
	schema.SortTree(interfacesEl)

	xmlOut, err := EncodeXML(interfacesEl)
	if err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}

	resolver := &schema.Resolver{Modules: c}
	decoded, err := DecodeXML([]byte(xmlOut), DecodeOptions{Modules: c, Resolver: resolver})
	if err != nil {
		t.Fatalf("DecodeXML(%q): %v", xmlOut, err)
	}

	want := snapshotOf(interfacesEl)
	got := snapshotOf(decoded)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("XML round-trip mismatch (-want +got):\n%s", diff)
	}
}
