package engine

import (
	"github.com/andaru/opr8/reporter"
	"github.com/andaru/opr8/schema"
)

// Option configures a new Engine, mirroring the functional-option style
// dom.BuilderOption already uses for dom.NewBuilder.
type Option func(*Engine)

// WithNSStrict toggles non-strict namespace resolution: when false (the
// engine default), a top-level element whose namespace no module
// declares is a hard failure. When true, resolution falls through to an
// argument-name match across every loaded module, reporting an
// AmbiguousMatchReport warning if more than one module matches.
func WithNSStrict(v bool) Option { return func(e *Engine) { e.resolver.NSStrict = v } }

// WithIdentityrefKludge enables the historical-compatibility identityref
// decode path for bodies carrying no module prefix at all.
//
// Deprecated: only exists to decode data predating consistent
// module-qualified identityref values. Leave disabled for new callers.
func WithIdentityrefKludge(v bool) Option { return func(e *Engine) { e.IdentityrefKludge = v } }

// WithPrettyIndent overrides the default two-space JSON indent unit.
func WithPrettyIndent(indent string) Option { return func(e *Engine) { e.PrettyIndent = indent } }

// WithReporter attaches the collaborator diagnostics are written to.
// Defaults to a fresh *reporter.Collector when omitted.
func WithReporter(r reporter.Reporter) Option { return func(e *Engine) { e.Reporter = r } }

// WithDirection selects which rpc sub-statement (input or output) governs
// resolution of children reached through an rpc element.
func WithDirection(d schema.Direction) Option { return func(e *Engine) { e.resolver.Direction = d } }
