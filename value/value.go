package value

import (
	"strconv"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"
)

// Value is a parsed, tagged scalar leaf value.
type Value struct {
	Kind Kind

	// Int holds the value for signed integer kinds.
	Int int64
	// Uint holds the value for unsigned integer kinds.
	Uint uint64
	// Decimal holds a decimal64 value as an integer scaled by
	// 10^FractionDigits (the same fixed-point representation
	// yang.Number uses), and the fraction-digits count it was parsed
	// with.
	Decimal       int64
	FractionDigit int

	Bool bool

	// Str holds the body for string, enumeration, identityref,
	// instance-identifier, leafref, binary, bits and union-fallback
	// kinds.
	Str string
}

// Present reports whether a body was supplied at all. A leaf with an
// empty-but-present body (e.g. an `empty` type leaf, or a zero-length
// string) is still Present.
func (v Value) Present() bool { return v.Kind != KindUnknown }

// Parse parses body against the base kind resolved from yt, threading
// yt.FractionDigits through decimal64 parsing.
func Parse(body string, yt *yang.YangType) (Value, error) {
	kind, err := ResolveKind(yt)
	if err != nil {
		return Value{}, err
	}
	return parseKind(body, kind, yt)
}

func parseKind(body string, kind Kind, yt *yang.YangType) (Value, error) {
	switch kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		n, err := strconv.ParseInt(strings.TrimSpace(body), 10, 64)
		if err != nil {
			return Value{}, &ParseError{Field: "integer", Reason: err.Error()}
		}
		return Value{Kind: kind, Int: n}, nil
	case KindUint8, KindUint16, KindUint32, KindUint64:
		n, err := strconv.ParseUint(strings.TrimSpace(body), 10, 64)
		if err != nil {
			return Value{}, &ParseError{Field: "unsigned integer", Reason: err.Error()}
		}
		return Value{Kind: kind, Uint: n}, nil
	case KindDecimal64:
		fd := 0
		if yt != nil {
			fd = yt.FractionDigits
		}
		n, err := yang.ParseDecimal(strings.TrimSpace(body), uint8(fd))
		if err != nil {
			return Value{}, &ParseError{Field: "decimal64", Reason: err.Error()}
		}
		scaled := int64(n.Value)
		if n.Kind == yang.Negative {
			scaled = -scaled
		}
		return Value{Kind: kind, Decimal: scaled, FractionDigit: int(n.FractionDigits)}, nil
	case KindBool:
		switch strings.TrimSpace(body) {
		case "true":
			return Value{Kind: kind, Bool: true}, nil
		case "false":
			return Value{Kind: kind, Bool: false}, nil
		}
		return Value{}, &ParseError{Field: "boolean", Reason: "must be true or false, got " + body}
	case KindEmpty:
		return Value{Kind: kind}, nil
	case KindString, KindEnumeration, KindIdentityref, KindBinary, KindBits,
		KindInstanceIdentifier, KindLeafref:
		return Value{Kind: kind, Str: body}, nil
	case KindUnion:
		if yt == nil {
			return Value{}, &TypeResolutionError{Reason: "union type has no member types"}
		}
		var lastErr error
		for _, member := range yt.Type {
			mk, err := ResolveKind(member)
			if err != nil {
				lastErr = err
				continue
			}
			v, err := parseKind(body, mk, member)
			if err != nil {
				lastErr = err
				continue
			}
			return v, nil
		}
		if lastErr == nil {
			lastErr = &ParseError{Field: "union", Reason: "no member type accepted " + body}
		}
		return Value{}, lastErr
	default:
		return Value{}, &TypeResolutionError{Reason: "unsupported base kind " + kind.String()}
	}
}

// Format renders v back to its canonical YANG body text.
func Format(v Value) string {
	switch v.Kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.Int, 10)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.Uint, 10)
	case KindDecimal64:
		return NumberOf(v).String()
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindEmpty:
		return ""
	default:
		return v.Str
	}
}

// Compare orders two typed values for comparator tie-breaks: numeric
// kinds compare numerically (decimal64 honoring its fractional scale),
// booleans compare false<true, strings compare by code point, and empty
// values always compare equal. A missing value (Kind == KindUnknown)
// sorts strictly before a present one.
func Compare(a, b Value) int {
	switch {
	case !a.Present() && !b.Present():
		return 0
	case !a.Present():
		return -1
	case !b.Present():
		return 1
	}
	switch {
	case a.Kind == KindDecimal64 || b.Kind == KindDecimal64:
		return compareDecimal(a, b)
	case a.Kind.IsNumeric() && b.Kind.IsNumeric():
		return compareInteger(a, b)
	case a.Kind == KindBool && b.Kind == KindBool:
		switch {
		case a.Bool == b.Bool:
			return 0
		case !a.Bool:
			return -1
		default:
			return 1
		}
	case a.Kind == KindEmpty && b.Kind == KindEmpty:
		return 0
	default:
		return strings.Compare(Format(a), Format(b))
	}
}

func compareInteger(a, b Value) int {
	av, aNeg := signedValue(a)
	bv, bNeg := signedValue(b)
	switch {
	case aNeg && !bNeg:
		return -1
	case !aNeg && bNeg:
		return 1
	case !aNeg && !bNeg:
		au, bu := uintOf(a), uintOf(b)
		switch {
		case au < bu:
			return -1
		case au > bu:
			return 1
		default:
			return 0
		}
	default: // both negative
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
}

func signedValue(v Value) (val int64, negative bool) {
	if v.Kind.IsSigned() {
		return v.Int, v.Int < 0
	}
	return 0, false
}

func uintOf(v Value) uint64 {
	if v.Kind.IsSigned() {
		return uint64(v.Int)
	}
	return v.Uint
}

// compareDecimal compares a and b through yang.Number, which normalizes
// differing fraction-digits scales internally (see Number.Less).
func compareDecimal(a, b Value) int {
	na, nb := NumberOf(a), NumberOf(b)
	switch {
	case na.Equal(nb):
		return 0
	case na.Less(nb):
		return -1
	default:
		return 1
	}
}

func decimalOf(v Value) (scaled int64, fractionDigits int) {
	switch {
	case v.Kind == KindDecimal64:
		return v.Decimal, v.FractionDigit
	case v.Kind.IsSigned():
		return v.Int, 0
	default:
		return int64(v.Uint), 0
	}
}

// NumberOf converts a numeric Value (decimal64 or any integer kind) into a
// yang.Number, for callers that need goyang's own range-checking arithmetic,
// formatting, or scale-normalizing comparison.
func NumberOf(v Value) yang.Number {
	scaled, fd := decimalOf(v)
	n := yang.Number{FractionDigits: uint8(fd)}
	if scaled < 0 {
		n.Kind = yang.Negative
		n.Value = uint64(-scaled)
	} else {
		n.Value = uint64(scaled)
	}
	return n
}
