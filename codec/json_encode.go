package codec

import (
	"strconv"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"

	"github.com/andaru/opr8/dom"
	"github.com/andaru/opr8/schema"
	"github.com/andaru/opr8/value"
)

// Options configures RFC 7951 JSON encoding.
type Options struct {
	// Pretty enables two-space-indented, newline-separated output.
	Pretty bool
	// Indent overrides the default two-space indent unit when Pretty
	// is set.
	Indent string
	// Modules resolves an identityref's XML namespace prefix to its
	// owning module name during body encoding. May be left nil, in
	// which case a bare "prefix:id" body is assumed already
	// module-named (acceptable for trees built directly from JSON).
	Modules *schema.Collection
}

func (o Options) indentUnit() string {
	if o.Indent != "" {
		return o.Indent
	}
	return "  "
}

// EncodeTopLevel renders el's element children as a module-qualified
// RFC 7951 JSON object. el itself is a
// synthetic root (e.g. a <config> or <data> wrapper) and is not itself
// emitted; every direct child is a top-level member and is always
// module-prefixed, per "the top-level always prints the module prefix."
func EncodeTopLevel(el dom.Element, opts Options) (string, error) {
	var buf strings.Builder
	buf.WriteByte('{')
	if err := encodeMembers(elementChildren(el), "", &buf, opts, 1); err != nil {
		return "", err
	}
	if opts.Pretty && hasAnyChild(el) {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

func hasAnyChild(el dom.Element) bool { return len(elementChildren(el)) > 0 }

func elementChildren(el dom.Element) []dom.Element {
	var out []dom.Element
	for it := el.FirstChild(); it != nil; it = it.NextSibling() {
		if c, ok := it.(dom.Element); ok {
			out = append(out, c)
		}
	}
	return out
}

// encodeMembers writes the comma-separated "key":value member list for
// children (without enclosing braces), grouping same-name, same-namespace
// runs into JSON arrays exactly when their governing statement is `list`
// or `leaf-list` (collapsed here into whole-run grouping since the tree
// is fully materialized rather than streamed token-by-token — the two
// produce byte-identical output).
func encodeMembers(children []dom.Element, ancestorModule string, buf *strings.Builder, opts Options, depth int) error {
	runs := groupRuns(children)
	for i, run := range runs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if opts.Pretty {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(opts.indentUnit(), depth))
		}
		first := run[0]
		key, childModule := memberKey(first, ancestorModule)
		buf.WriteByte('"')
		buf.WriteString(key)
		buf.WriteString("\":")

		entry := first.Schema()
		arrayed := schema.IsList(entry) || schema.IsLeafList(entry)
		if !arrayed {
			if err := encodeElementValue(first, childModule, buf, opts, depth); err != nil {
				return err
			}
			continue
		}
		buf.WriteByte('[')
		for j, el := range run {
			if j > 0 {
				buf.WriteByte(',')
			}
			if opts.Pretty {
				buf.WriteByte('\n')
				buf.WriteString(strings.Repeat(opts.indentUnit(), depth+1))
			}
			if err := encodeElementValue(el, childModule, buf, opts, depth+1); err != nil {
				return err
			}
		}
		if opts.Pretty && len(run) > 0 {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(opts.indentUnit(), depth))
		}
		buf.WriteByte(']')
	}
	return nil
}

// groupRuns partitions children into maximal runs of adjacent elements
// sharing a qualified name, preserving order.
func groupRuns(children []dom.Element) [][]dom.Element {
	var runs [][]dom.Element
	for _, c := range children {
		if n := len(runs); n > 0 {
			last := runs[n-1]
			if last[0].Name() == c.Name() {
				runs[n-1] = append(last, c)
				continue
			}
		}
		runs = append(runs, []dom.Element{c})
	}
	return runs
}

// memberKey computes el's JSON member name and the module name its
// children should be compared against while descending: the ancestor
// module is tracked while descending and a member is qualified with
// "<module>:" only when it crosses into a different module.
func memberKey(el dom.Element, ancestorModule string) (key, childModule string) {
	entry := el.Schema()
	local := el.Name().Local
	if entry == nil {
		return local, ancestorModule
	}
	mod := schema.ModuleOf(entry).Name
	if mod != ancestorModule {
		return mod + ":" + local, mod
	}
	return local, mod
}

func encodeElementValue(el dom.Element, ownerModule string, buf *strings.Builder, opts Options, depth int) error {
	entry := el.Schema()
	kids := elementChildren(el)
	body, hasBody := bodyOf(el)

	switch {
	case len(kids) > 0:
		buf.WriteByte('{')
		if err := encodeMembers(kids, ownerModule, buf, opts, depth+1); err != nil {
			return err
		}
		if opts.Pretty {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(opts.indentUnit(), depth))
		}
		buf.WriteByte('}')
		return nil
	case hasBody:
		rendered, err := encodeLeafBody(el, entry, ownerModule, body, opts)
		if err != nil {
			return err
		}
		buf.WriteString(rendered)
		return nil
	default:
		switch {
		case schema.IsList(entry) || entry != nil && entry.Kind == yang.DirectoryEntry:
			buf.WriteString("{}")
		case entry != nil && entry.Kind == yang.LeafEntry:
			buf.WriteString("[null]")
		default:
			buf.WriteString("null")
		}
		return nil
	}
}

func bodyOf(el dom.Element) (string, bool) {
	for it := el.FirstChild(); it != nil; it = it.NextSibling() {
		if it.NodeType() == dom.NodeTypeText {
			return it.Value(), true
		}
	}
	return "", false
}

// encodeLeafBody renders a leaf's text body per its resolved base kind's
// JSON quoting rule, rewriting identityref values to module-qualified
// form when the identity's module differs from the enclosing leaf's
// module.
func encodeLeafBody(el dom.Element, entry *yang.Entry, ownerModule, body string, opts Options) (string, error) {
	if entry == nil || entry.Type == nil {
		return strconv.Quote(unwrapCDATA(body)), nil
	}
	v, err := value.Parse(body, entry.Type)
	if err != nil {
		return strconv.Quote(unwrapCDATA(body)), nil
	}
	switch {
	case v.Kind.IsNumeric(), v.Kind == value.KindBool:
		return value.Format(v), nil
	case v.Kind == value.KindIdentityref:
		return strconv.Quote(rewriteIdentityref(el, v.Str, ownerModule, opts)), nil
	default:
		return strconv.Quote(unwrapCDATA(value.Format(v))), nil
	}
}

// rewriteIdentityref rewrites an XML-namespace-qualified identity body
// ("pfx:id") into its JSON module-qualified form: "<module>:<id>" when
// the identity's module differs from the enclosing leaf's module, else
// just "<id>". The prefix
// is resolved to a namespace URI via el's ancestor xmlns:pfx attributes,
// then to a module name via opts.Modules; with no Modules collection
// available the prefix is assumed to already be a bare module name.
func rewriteIdentityref(el dom.Element, body, ownerModule string, opts Options) string {
	idx := strings.Index(body, ":")
	if idx <= 0 {
		return body
	}
	prefix, id := body[:idx], body[idx+1:]
	module := prefix
	if opts.Modules != nil {
		if ns, ok := ResolveNamespace(el, prefix); ok {
			if mod, err := opts.Modules.FindModuleByNamespace(ns); err == nil {
				module = mod.Name
			}
		}
	}
	if module == ownerModule {
		return id
	}
	return module + ":" + id
}

func unwrapCDATA(s string) string {
	const open, close = "<![CDATA[", "]]>"
	if strings.HasPrefix(s, open) && strings.HasSuffix(s, close) {
		return s[len(open) : len(s)-len(close)]
	}
	return s
}
