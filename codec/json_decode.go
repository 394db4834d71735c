package codec

import (
	"bytes"
	"strings"

	xml "github.com/andaru/flexml"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/pkg/errors"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/reporter"
	"github.com/andaru/opr8/schema"
	"github.com/andaru/opr8/value"
)

// DecodeOptions configures RFC 7951 JSON decoding.
type DecodeOptions struct {
	// Modules resolves module-name prefixes (RFC 7951 member
	// qualification) to namespace URIs.
	Modules *schema.Collection
	// Resolver binds each decoded element to its governing YANG
	// statement, consulted after module qualification.
	Resolver *schema.Resolver

	// Reporter receives a MissingMandatoryReport/MissingChoiceReport for
	// every mandatory data node or choice FillDefaults could not
	// satisfy. May be left nil, in which case defaulting still runs but
	// no missing-mandatory/missing-choice validation is reported.
	Reporter reporter.Reporter

	// IdentityrefKludge restores backward compatibility for historical
	// identityref bodies that carry no module prefix at all ("id"
	// rather than "module:id"): such a body is assumed to belong to the
	// enclosing leaf's own module instead of being left unprefixed.
	//
	// Deprecated: this only exists to decode data produced before
	// module-qualified identityref values were consistently emitted.
	// New callers should leave it false.
	IdentityrefKludge bool
}

// DecodeTopLevel parses data into a provisional tree with
// dom.Unmarshaler (whose existing "p:n" tag splitting already performs
// the member-name split RFC 7951 requires), module-qualifies every
// split prefix, binds YANG schema, rewrites identityref bodies, and
// finally sorts the whole tree. It returns the synthetic wrapper
// element whose children are the decoded top-level members.
func DecodeTopLevel(data []byte, opts DecodeOptions) (dom.Element, error) {
	root, err := parseProvisional(data)
	if err != nil {
		return nil, errors.Wrap(err, "malformed JSON input")
	}

	if err := checkTopLevelQualified(root); err != nil {
		return nil, err
	}
	if err := qualifyModules(root, opts.Modules); err != nil {
		return nil, err
	}
	if err := bindSchema(root, opts.Resolver); err != nil {
		return nil, err
	}
	if err := rewriteIdentityrefsOnDecode(root, opts); err != nil {
		return nil, err
	}
	for it := root.FirstChild(); it != nil; it = it.NextSibling() {
		if el, ok := it.(dom.Element); ok {
			schema.FillDefaults(el)
			schema.SortTree(el)
			if opts.Reporter != nil {
				schema.Validate(el, opts.Reporter)
			}
		}
	}
	return root, nil
}

// parseProvisional decodes data into a tree rooted at a synthetic,
// unbound wrapper element, reusing dom.Unmarshaler/dom.Builder/
// dom.JSONDecoder as-is: the JSON decoder already performs the
// "p:n" -> Name{Space: p, Local: n} split RFC 7951 member-name
// qualification requires; nothing about that mechanism is
// YANG-specific, so it needs no adaptation, only reuse.
func parseProvisional(data []byte) (dom.Element, error) {
	root := dom.CreateElement(xml.StartElement{Name: xml.Name{Local: "root"}})
	builder := dom.NewBuilder(root, dom.WithTrimPCData())
	un := dom.NewUnmarshaler(builder)
	if _, err := un.JSONReader().ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return root, nil
}

// checkTopLevelQualified enforces RFC 7951 §4: top-level object members
// MUST be module-qualified; an unqualified top-level member is a
// malformed-message failure.
func checkTopLevelQualified(root dom.Element) error {
	for it := root.FirstChild(); it != nil; it = it.NextSibling() {
		el, ok := it.(dom.Element)
		if !ok {
			continue
		}
		if el.Name().Space == "" {
			return errors.Errorf("top-level member %q is not module-qualified", el.Name().Local)
		}
	}
	return nil
}

// qualifyModules walks every element whose Name carries a split prefix
// (interpreted as a module name), resolves the module, replaces the
// placeholder prefix with the module's real namespace URI, and
// recurses.
func qualifyModules(n dom.Node, mods *schema.Collection) error {
	for it := n.FirstChild(); it != nil; it = it.NextSibling() {
		el, ok := it.(dom.Element)
		if !ok {
			continue
		}
		name := el.Name()
		if name.Space != "" {
			modEntry, err := mods.FindModuleByName(name.Space)
			if err != nil {
				return errors.Wrapf(err, "element <%s:%s>", name.Space, name.Local)
			}
			uri := ""
			if ns := modEntry.Namespace(); ns != nil {
				uri = ns.Name
			}
			renamer, ok := el.(dom.Renamer)
			if !ok {
				return errors.Errorf("element <%s> does not support renaming", name.Local)
			}
			renamer.SetName(xml.Name{Space: uri, Local: name.Local})
		}
		if err := qualifyModules(el, mods); err != nil {
			return err
		}
	}
	return nil
}

// bindSchema binds every element in the tree to its governing YANG
// statement via the Resolver, parent-first.
func bindSchema(root dom.Node, r *schema.Resolver) error {
	for it := root.FirstChild(); it != nil; it = it.NextSibling() {
		el, ok := it.(dom.Element)
		if !ok {
			continue
		}
		if err := bindElement(el, nil, r); err != nil {
			return err
		}
	}
	return nil
}

func bindElement(el dom.Element, parent dom.Element, r *schema.Resolver) error {
	entry, err := r.Resolve(el, parent)
	if err != nil {
		return err
	}
	el.SetSchema(entry)
	for it := el.FirstChild(); it != nil; it = it.NextSibling() {
		child, ok := it.(dom.Element)
		if !ok {
			continue
		}
		if err := bindElement(child, el, r); err != nil {
			return err
		}
	}
	return nil
}

// rewriteIdentityrefsOnDecode rewrites a prefixed identityref value
// "m:id" to "pfx:id" with a
// freshly injected xmlns:pfx attribute naming module m's namespace
// (this codec uses the module's own name as pfx, since goyang's Entry
// does not retain a module's declared YANG prefix string); an
// unprefixed value is left as-is, implicitly governed by the enclosing
// element's own default namespace.
func rewriteIdentityrefsOnDecode(n dom.Node, opts DecodeOptions) error {
	for it := n.FirstChild(); it != nil; it = it.NextSibling() {
		el, ok := it.(dom.Element)
		if !ok {
			continue
		}
		if entry := el.Schema(); entry != nil && entry.Type != nil {
			if k, err := value.ResolveKind(entry.Type); err == nil && k == value.KindIdentityref {
				if err := rewriteOneIdentityref(el, entry, opts); err != nil {
					return err
				}
			}
		}
		if err := rewriteIdentityrefsOnDecode(el, opts); err != nil {
			return err
		}
	}
	return nil
}

func rewriteOneIdentityref(el dom.Element, entry *yang.Entry, opts DecodeOptions) error {
	body, ok := bodyOf(el)
	if !ok {
		return nil
	}
	modName, id := "", body
	if idx := strings.Index(body, ":"); idx > 0 {
		modName, id = body[:idx], body[idx+1:]
	} else if opts.IdentityrefKludge {
		modName = schema.ModuleOf(entry).Name
	} else {
		return nil
	}
	modEntry, err := opts.Modules.FindModuleByName(modName)
	if err != nil {
		return errors.Wrapf(err, "identityref value %q", body)
	}
	uri := ""
	if ns := modEntry.Namespace(); ns != nil {
		uri = ns.Name
	}
	if err := SetPrefixedNamespace(el, modName, uri); err != nil {
		return err
	}
	return setBody(el, modName+":"+id)
}

func setBody(el dom.Element, s string) error {
	for it := el.FirstChild(); it != nil; it = it.NextSibling() {
		if it.NodeType() == dom.NodeTypeText {
			return it.SetValue(s)
		}
	}
	return nil
}
