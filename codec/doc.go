// Package codec implements a bidirectional RFC 7951 XML/JSON tree codec
// plus namespace translation helpers. Encoding walks an already
// schema-bound tree; decoding builds a provisional tree with
// dom.Unmarshaler, qualifies it against a module collection, re-runs
// schema binding, and finally sorts it.
package codec
