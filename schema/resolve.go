package schema

import (
	xml "github.com/andaru/flexml"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/pkg/errors"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/reporter"
)

// Direction distinguishes the two re-entry points of an `rpc` statement:
// the `input` sub-statement governs request bodies, `output` governs
// replies.
type Direction int8

const (
	// DirectionInput resolves RPC children against the `input` sub-statement.
	DirectionInput Direction = iota
	// DirectionOutput resolves RPC children against the `output` sub-statement.
	DirectionOutput
)

// AmbiguousMatchError is returned by Resolver.Resolve when non-strict
// namespace mode matches an element name against more than one module's
// top-level schema node. Callers MUST report it through the reporter
// collaborator as a warning rather than treat it as fatal — this
// ambiguity is never silently resolved in favor of one candidate.
type AmbiguousMatchError struct {
	Name       xml.Name
	Candidates []string // candidate module names
}

func (e *AmbiguousMatchError) Error() string {
	return errors.Errorf("element <%s> matches top-level nodes in %d modules with ns-strict disabled: %v",
		e.Name.Local, len(e.Candidates), e.Candidates).Error()
}

// Resolver resolves the YANG statement (a *yang.Entry) governing a
// child element, given the element and its possibly-absent parent.
type Resolver struct {
	Modules *Collection

	// NSStrict configures non-strict namespace mode: when false
	// (the default, strict), a failed top-level namespace
	// lookup is an error. When true, a failed lookup falls through to
	// an argument-name match across any module; see AmbiguousMatchError.
	NSStrict bool

	// Direction selects which RPC sub-statement governs resolution
	// when a resolved entry turns out to be `rpc` (rule 4) or when the
	// parent is already bound to one (rule 1).
	Direction Direction

	// Reporter receives an UnknownElementReport for every element
	// Resolve rejects as unexpected, in addition to the returned error.
	// May be left nil.
	Reporter reporter.Reporter
}

func (r *Resolver) reportUnknown(name string) {
	if r.Reporter != nil {
		r.Reporter.Report(reporter.UnknownElementReport(name))
	}
}

// Resolve resolves x's governing YANG statement in rule order. parent
// may be nil, meaning x is a top-level element.
func (r *Resolver) Resolve(x dom.Element, parent dom.Element) (*yang.Entry, error) {
	name := x.Name()

	if parent != nil {
		if pe := parent.Schema(); pe != nil {
			if pe.RPC != nil {
				// Rule 1: parent is (still) bound to the rpc statement
				// itself; re-enter its input/output sub-statement.
				return r.findNamed(r.rpcSide(pe), name)
			}
			// Rule 2: search the parent's data-node children,
			// transparently skipping choice/case wrappers.
			found, err := findDataChild(pe, name.Local)
			if err != nil {
				r.reportUnknown(name.Local)
				return nil, err
			}
			if err := r.checkNamespace(found, name); err != nil {
				return nil, err
			}
			return r.applyRule4(found), nil
		}
		return nil, errors.Errorf("cannot resolve <%s>: parent element is unbound", name.Local)
	}

	// Rule 3: no parent, resolve the owning module from the element's
	// XML namespace and search its top-level schema nodes.
	mod, err := r.Modules.FindModuleByNamespace(name.Space)
	if err != nil {
		if r.NSStrict {
			candidates, ambErr := r.matchAnyModule(name.Local)
			if ambErr != nil {
				return nil, ambErr
			}
			if len(candidates) == 1 {
				return r.applyRule4(candidates[0]), nil
			}
			if len(candidates) > 1 {
				names := make([]string, len(candidates))
				for i, c := range candidates {
					names[i] = moduleNameOf(c)
				}
				return nil, &AmbiguousMatchError{Name: name, Candidates: names}
			}
		}
		return nil, errors.Errorf("unknown namespace %q", name.Space)
	}
	found, ok := mod.Dir[name.Local]
	if !ok {
		r.reportUnknown(name.Local)
		return nil, errors.Errorf("unexpected top-level element <%s>", name.Local)
	}
	return r.applyRule4(found), nil
}

// applyRule4 implements "when a resolved statement is itself rpc, the
// resolver descends once into its input sub-statement" (or output,
// depending on Direction).
func (r *Resolver) applyRule4(e *yang.Entry) *yang.Entry {
	if e == nil || e.RPC == nil {
		return e
	}
	if side := r.rpcSide(e); side != nil {
		return side
	}
	return e
}

func (r *Resolver) rpcSide(e *yang.Entry) *yang.Entry {
	if e.RPC == nil {
		return nil
	}
	if r.Direction == DirectionOutput {
		return e.RPC.Output
	}
	return e.RPC.Input
}

func (r *Resolver) findNamed(dir *yang.Entry, name xml.Name) (*yang.Entry, error) {
	found, err := findDataChild(dir, name.Local)
	if err != nil {
		r.reportUnknown(name.Local)
		return nil, err
	}
	if err := r.checkNamespace(found, name); err != nil {
		return nil, err
	}
	return found, nil
}

// checkNamespace validates, when the element carries an explicit XML
// namespace, that it matches the resolved statement's module namespace.
func (r *Resolver) checkNamespace(found *yang.Entry, name xml.Name) error {
	if name.Space == "" || found == nil {
		return nil
	}
	if ns := found.Namespace(); ns != nil && ns.Name != name.Space {
		return errors.Errorf(
			"unexpected child element <%s> in namespace %q (expected namespace %q)",
			name.Local, name.Space, ns.Name)
	}
	return nil
}

func (r *Resolver) matchAnyModule(local string) (matches []*yang.Entry, err error) {
	err = r.Modules.IterLatest(func(mod *yang.Module) error {
		entry := yang.ToEntry(mod)
		if found, ok := entry.Dir[local]; ok && isData(found) {
			matches = append(matches, found)
		}
		return nil
	})
	return matches, err
}

func moduleNameOf(e *yang.Entry) string { return ModuleOf(e).Name }

// ModuleOf returns the root module statement owning e, walking the parent
// chain. Used by the codec package to decide when a namespace crossing
// (and therefore a module-qualified member name) has occurred.
func ModuleOf(e *yang.Entry) *yang.Entry {
	for e.Parent != nil {
		e = e.Parent
	}
	return e
}

// findDataChild searches e's data-node children for one named local,
// transparently descending through `choice`/`case` wrappers.
func findDataChild(e *yang.Entry, local string) (*yang.Entry, error) {
	if e == nil {
		return nil, errors.New("cannot resolve child of a nil schema node")
	}
	if next, ok := e.Dir[local]; ok && isData(next) {
		return next, nil
	}
	for _, ch := range e.Dir {
		if ch.Kind != yang.ChoiceEntry {
			continue
		}
		for _, cs := range ch.Dir {
			if cs.Kind != yang.CaseEntry {
				continue
			}
			if next, ok := cs.Dir[local]; ok && isData(next) {
				return next, nil
			}
		}
	}
	return nil, errors.Errorf("unexpected child element <%s>", local)
}

// isData reports whether e is a YANG data node (container, list, leaf,
// leaf-list, anydata, anyxml), per the GLOSSARY definition.
func isData(e *yang.Entry) bool {
	switch e.Kind {
	case yang.LeafEntry, yang.DirectoryEntry, yang.AnyXMLEntry:
		return true
	}
	return false
}

// IsList reports whether e governs a `list` statement (as opposed to a
// plain `container`): both are DirectoryEntry, distinguished by ListAttr.
func IsList(e *yang.Entry) bool { return e != nil && e.Kind == yang.DirectoryEntry && e.ListAttr != nil }

// IsLeafList reports whether e governs a `leaf-list` statement: both leaf
// and leaf-list are LeafEntry, distinguished by ListAttr.
func IsLeafList(e *yang.Entry) bool { return e != nil && e.Kind == yang.LeafEntry && e.ListAttr != nil }

// IsStateData reports whether e is `config false` data.
func IsStateData(e *yang.Entry) bool { return e != nil && e.Config == yang.TSFalse }

// IsOrderedByUser reports whether e carries `ordered-by user`.
func IsOrderedByUser(e *yang.Entry) bool {
	return e != nil && e.ListAttr != nil && e.ListAttr.OrderedBy != nil && e.ListAttr.OrderedBy.Name == "user"
}

// KeyNames returns e's cached ordered key-name sequence, or nil if e is
// not a keyed list.
func KeyNames(e *yang.Entry) []string {
	if e == nil || e.Key == "" {
		return nil
	}
	return splitFields(e.Key)
}

func splitFields(s string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' && s[i] != '\t' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	return out
}
