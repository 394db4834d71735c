package codec

import (
	"bytes"
	"context"

	"github.com/pkg/errors"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/schema"
	"github.com/andaru/opr8/value"
)

// EncodeXML renders el, a schema-bound element tree, as XML. Unlike
// EncodeTopLevel, el is itself the serialized root — an XML message
// carries exactly one top-level element, where RFC 7951 JSON instead
// multiplexes every top-level member as a sibling key of one synthetic
// object.
func EncodeXML(el dom.Element) (string, error) {
	var buf bytes.Buffer
	if _, err := dom.NewMarshaler(el).XMLWriter().WriteTo(&buf); err != nil {
		return "", errors.Wrap(err, "encoding XML")
	}
	return buf.String(), nil
}

// DecodeXML parses data as a single-rooted XML document with
// dom.Unmarshaler/dom.Builder, binds YANG schema to the document
// element and its descendants, rewrites identityref bodies, and sorts
// the result. Unlike DecodeTopLevel's JSON path, no module-prefix
// qualification step runs first: XML elements already carry their real
// xmlns namespace, so the resolver's namespace-driven module lookup
// (rule 3) applies directly.
func DecodeXML(data []byte, opts DecodeOptions) (dom.Element, error) {
	doc := dom.NewDocument(context.Background())
	builder := dom.NewBuilder(doc,
		dom.WithTrimPCData(), dom.WithComments(), dom.WithDeclaration(), dom.WithProcInst())
	un := dom.NewUnmarshaler(builder)
	if _, err := un.XMLReader().ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrap(err, "malformed XML input")
	}
	root := doc.DocumentElement()
	if root == nil {
		return nil, errors.New("XML input carries no root element")
	}
	if err := bindElement(root, nil, opts.Resolver); err != nil {
		return nil, err
	}
	if err := rewriteIdentityrefsFromRoot(root, opts); err != nil {
		return nil, err
	}
	schema.FillDefaults(root)
	schema.SortTree(root)
	if opts.Reporter != nil {
		schema.Validate(root, opts.Reporter)
	}
	return root, nil
}

// rewriteIdentityrefsFromRoot applies the identityref rewrite rule to
// root itself before recursing into its children with
// rewriteIdentityrefsOnDecode, which only ever inspects a node's
// children: root has no enclosing sibling list to be walked from.
func rewriteIdentityrefsFromRoot(root dom.Element, opts DecodeOptions) error {
	if entry := root.Schema(); entry != nil && entry.Type != nil {
		if k, err := value.ResolveKind(entry.Type); err == nil && k == value.KindIdentityref {
			if err := rewriteOneIdentityref(root, entry, opts); err != nil {
				return err
			}
		}
	}
	return rewriteIdentityrefsOnDecode(root, opts)
}
