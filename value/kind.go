package value

import (
	"github.com/openconfig/goyang/pkg/yang"
)

// Kind is a base kind a YANG leaf value can take.
type Kind int8

const (
	// KindUnknown marks a value whose type could not be resolved.
	KindUnknown Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindDecimal64
	KindBool
	KindString
	KindEmpty
	KindIdentityref
	KindEnumeration
	KindBinary
	KindBits
	KindInstanceIdentifier
	KindLeafref
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindDecimal64:
		return "decimal64"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindEmpty:
		return "empty"
	case KindIdentityref:
		return "identityref"
	case KindEnumeration:
		return "enumeration"
	case KindBinary:
		return "binary"
	case KindBits:
		return "bits"
	case KindInstanceIdentifier:
		return "instance-identifier"
	case KindLeafref:
		return "leafref"
	case KindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of kind k compare numerically.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64, KindDecimal64:
		return true
	}
	return false
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64, KindDecimal64:
		return true
	}
	return false
}

// ResolveKind reduces a YangType to its base Kind, following leafref and
// typedef chains that goyang has already flattened into yt.Kind, and
// recursing into the first resolvable member of a union.
func ResolveKind(yt *yang.YangType) (Kind, error) {
	if yt == nil {
		return KindUnknown, &TypeResolutionError{Reason: "nil YangType"}
	}
	switch yt.Kind {
	case yang.Yint8:
		return KindInt8, nil
	case yang.Yint16:
		return KindInt16, nil
	case yang.Yint32:
		return KindInt32, nil
	case yang.Yint64:
		return KindInt64, nil
	case yang.Yuint8:
		return KindUint8, nil
	case yang.Yuint16:
		return KindUint16, nil
	case yang.Yuint32:
		return KindUint32, nil
	case yang.Yuint64:
		return KindUint64, nil
	case yang.Ydecimal64:
		return KindDecimal64, nil
	case yang.Ybool:
		return KindBool, nil
	case yang.Ystring:
		return KindString, nil
	case yang.Yempty:
		return KindEmpty, nil
	case yang.Yidentityref:
		return KindIdentityref, nil
	case yang.Yenum:
		return KindEnumeration, nil
	case yang.Ybinary:
		return KindBinary, nil
	case yang.Ybits:
		return KindBits, nil
	case yang.YinstanceIdentifier:
		return KindInstanceIdentifier, nil
	case yang.Yleafref:
		return KindLeafref, nil
	case yang.Yunion:
		return KindUnion, nil
	default:
		return KindUnknown, &TypeResolutionError{Reason: "unsupported type kind " + yt.Kind.String()}
	}
}
