package dom

import (
	xml "github.com/andaru/flexml"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/andaru/opr8/value"
)

// Prefixer is a provider of an XML prefix relevant to the namespace of the
// object at hand.
type Prefixer interface {
	// Prefix returns the prefix referring to this object's namespace
	Prefix() string
}

// SchemaAnnotated is a Node that may carry a bound YANG schema
// statement and a cached typed value for its body, read back
// idempotently once cached.
type SchemaAnnotated interface {
	// Schema returns the bound *yang.Entry, or nil if unbound.
	Schema() *yang.Entry
	// SetSchema binds e as the governing statement for this node.
	SetSchema(e *yang.Entry)

	// CachedValue returns the cached typed value and whether one is
	// present.
	CachedValue() (value.Value, bool)
	// SetCachedValue caches v as this leaf's typed value.
	SetCachedValue(v value.Value)
	// ClearCachedValue invalidates any cached typed value. Mutating a
	// leaf's body does not call it; the cache is cleared only by an
	// explicit call.
	ClearCachedValue()
}

// Renamer allows an element's qualified name to be rewritten in place.
// The JSON decoder needs this to replace a provisional module-name
// placeholder living in Name.Space with the module's resolved
// namespace URI.
type Renamer interface {
	SetName(n xml.Name)
}

// Element nodes are simply known as elements.
//
// Elements have an associated namespace, namespace prefix, local name, custom
// element state, custom element definition, is value. When an element is
// created, all of these values are initialized.
//
// An element’s qualified name is its local name if its namespace prefix is
// null, and its namespace prefix, followed by ":", followed by its local name,
// otherwise.
type Element interface {
	Node
	Prefixer
	SchemaAnnotated

	AttributeProvider
}

type element struct {
	name   xml.Name
	prefix string

	schema     *yang.Entry
	typed      value.Value
	typedValid bool
}

func (e element) nodeType() NodeType { return NodeTypeElement }
func (e element) Name() xml.Name     { return e.name }
func (e element) Prefix() string     { return e.prefix }

func (e *element) SetName(n xml.Name) { e.name = n }

func (e *element) Schema() *yang.Entry     { return e.schema }
func (e *element) SetSchema(en *yang.Entry) { e.schema = en }

func (e *element) CachedValue() (value.Value, bool) { return e.typed, e.typedValid }
func (e *element) SetCachedValue(v value.Value) {
	e.typed = v
	e.typedValid = true
}
func (e *element) ClearCachedValue() {
	e.typed = value.Value{}
	e.typedValid = false
}

type elementNode struct {
	*element
	*node
}

func (e elementNode) nodePtr() *node { return e.node }
func (e elementNode) Name() xml.Name { return e.element.name }

// elementNode and *elementNode must both implement Element
var _ Element = &elementNode{}
var _ Element = elementNode{}
