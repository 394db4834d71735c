package engine

import (
	"github.com/pkg/errors"

	"github.com/andaru/opr8/codec"
	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/reporter"
	"github.com/andaru/opr8/schema"
)

// Engine is the configuration handle threading the operator-tunable
// flags (ns-strict, identityref-kludge, pretty-print indent) through
// schema resolution, Sort/Search/Match, and the JSON codec as one
// facade covering the complete operation set.
type Engine struct {
	Modules *schema.Collection

	// IdentityrefKludge enables the historical-compatibility identityref
	// decode path for bodies carrying no module prefix at all.
	//
	// Deprecated: only exists to decode data predating consistent
	// module-qualified identityref values. Leave disabled for new callers.
	IdentityrefKludge bool

	// PrettyIndent is the indent unit used when pretty-printing JSON.
	// Defaults to two spaces.
	PrettyIndent string

	// Reporter receives every diagnostic Bind/Decode produces along the
	// way; defaults to a fresh *reporter.Collector.
	Reporter reporter.Reporter

	resolver *schema.Resolver
}

// New returns a ready-to-use Engine bound to modules, a Process()-ed
// schema.Collection.
func New(modules *schema.Collection, opts ...Option) *Engine {
	e := &Engine{
		Modules:      modules,
		PrettyIndent: "  ",
		Reporter:     reporter.NewCollector(),
		resolver:     &schema.Resolver{Modules: modules},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver.Reporter = e.Reporter
	return e
}

// NSStrict reports the resolver's current non-strict-namespace setting.
func (e *Engine) NSStrict() bool { return e.resolver.NSStrict }

// Bind resolves x's governing YANG statement (relative to parent, or as
// a top-level element when parent is nil) and annotates x with it. An
// AmbiguousMatchError is reported through e.Reporter as a warning before
// being returned — a non-strict namespace collision is never silently
// resolved.
func (e *Engine) Bind(x dom.Element, parent dom.Element) error {
	entry, err := e.resolver.Resolve(x, parent)
	if err != nil {
		var amb *schema.AmbiguousMatchError
		if errors.As(err, &amb) {
			e.Reporter.Report(reporter.AmbiguousMatchReport(amb.Name.Local, amb.Candidates))
		}
		return err
	}
	x.SetSchema(entry)
	return nil
}

// BindTree recursively binds el and every element descendant, parent-first.
func (e *Engine) BindTree(el dom.Element, parent dom.Element) error {
	if err := e.Bind(el, parent); err != nil {
		return err
	}
	for it := el.FirstChild(); it != nil; it = it.NextSibling() {
		child, ok := it.(dom.Element)
		if !ok {
			continue
		}
		if err := e.BindTree(child, el); err != nil {
			return err
		}
	}
	return nil
}

// Sort stably reorders el's immediate element children into schema
// order.
func (e *Engine) Sort(el dom.Element) { schema.Sort(el) }

// SortTree recursively sorts el and its config-true descendants.
func (e *Engine) SortTree(el dom.Element) { schema.SortTree(el) }

// Verify reports whether el's children are already schema-ordered.
func (e *Engine) Verify(el dom.Element) (ok bool, a, b dom.Element) { return schema.Verify(el) }

// Search locates q's matching child under parent.
func (e *Engine) Search(parent dom.Element, q schema.Query) dom.Element {
	return schema.Search(parent, q)
}

// Match locates m's counterpart under base.
func (e *Engine) Match(base, m dom.Element) dom.Element { return schema.Match(base, m) }

// Encode renders el's schema-bound children as module-qualified RFC
// 7951 JSON.
func (e *Engine) Encode(el dom.Element, pretty bool) (string, error) {
	return codec.EncodeTopLevel(el, codec.Options{
		Pretty:  pretty,
		Indent:  e.PrettyIndent,
		Modules: e.Modules,
	})
}

// Decode parses data, module-qualifies its top-level members, binds
// schema, rewrites identityref bodies, and sorts the result.
func (e *Engine) Decode(data []byte) (dom.Element, error) {
	return codec.DecodeTopLevel(data, codec.DecodeOptions{
		Modules:           e.Modules,
		Resolver:          e.resolver,
		Reporter:          e.Reporter,
		IdentityrefKludge: e.IdentityrefKludge,
	})
}

// EncodeXML renders el, a schema-bound single-rooted element tree, as XML.
func (e *Engine) EncodeXML(el dom.Element) (string, error) {
	return codec.EncodeXML(el)
}

// DecodeXML parses data as an XML document, binds schema to its root
// element and descendants, rewrites identityref bodies, and sorts the
// result.
func (e *Engine) DecodeXML(data []byte) (dom.Element, error) {
	return codec.DecodeXML(data, codec.DecodeOptions{
		Modules:           e.Modules,
		Resolver:          e.resolver,
		Reporter:          e.Reporter,
		IdentityrefKludge: e.IdentityrefKludge,
	})
}
