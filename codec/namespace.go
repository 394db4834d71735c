package codec

import (
	xml "github.com/andaru/flexml"

	"github.com/andaru/opr8/dom"
)

const xmlnsLocal = "xmlns"

// ResolveNamespace, given el and a prefix string (empty meaning the
// default namespace), walks el's ancestors
// looking for the matching `xmlns`/`xmlns:prefix` attribute. It returns
// the namespace URI and whether one was found.
func ResolveNamespace(el dom.Element, prefix string) (string, bool) {
	name := xmlnsAttrName(prefix)
	for n := dom.Node(el); n != nil; n = n.Parent() {
		owner, ok := n.(dom.Element)
		if !ok {
			continue
		}
		if a := findAttribute(owner, name); a != nil {
			return a.Value(), true
		}
	}
	return "", false
}

// SetDefaultNamespace finds or injects the `xmlns` attribute on el so
// that it carries uri as its default
// namespace, rewriting any existing conflicting default attribute.
func SetDefaultNamespace(el dom.Element, uri string) error {
	name := xmlnsAttrName("")
	if a := findAttribute(el, name); a != nil {
		return a.SetValue(uri)
	}
	return el.AppendAttribute(xml.Attr{Name: name, Value: uri})
}

// SetPrefixedNamespace finds or injects an `xmlns:prefix` attribute on el
// binding prefix to uri, used when rewriting an identityref value to a
// prefixed form during decode.
func SetPrefixedNamespace(el dom.Element, prefix, uri string) error {
	name := xmlnsAttrName(prefix)
	if a := findAttribute(el, name); a != nil {
		return a.SetValue(uri)
	}
	return el.AppendAttribute(xml.Attr{Name: name, Value: uri})
}

func findAttribute(el dom.Element, name xml.Name) dom.Attr {
	var n dom.Node = el.FirstAttribute()
	for n != nil {
		a := n.(dom.Attr)
		if a.Name() == name {
			return a
		}
		n = n.NextSibling()
	}
	return nil
}

func xmlnsAttrName(prefix string) xml.Name {
	if prefix == "" {
		return xml.Name{Local: xmlnsLocal}
	}
	return xml.Name{Space: xmlnsLocal, Local: prefix}
}
