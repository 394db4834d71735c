package reporter

// Kind names the ten error categories the engine reports. These are diagnostic
// categories, not Go type names; every Report carries one alongside its
// rendered NETCONF fields.
type Kind int8

const (
	KindUnknown Kind = iota
	SchemaMismatch
	MissingMandatory
	UnknownElement
	UnknownNamespace
	UnknownModule
	TypeParseError
	InvalidIdentityRef
	MalformedEncoding
	MissingChoice
	DuplicateKey
)

func (k Kind) String() string {
	switch k {
	case SchemaMismatch:
		return "SchemaMismatch"
	case MissingMandatory:
		return "MissingMandatory"
	case UnknownElement:
		return "UnknownElement"
	case UnknownNamespace:
		return "UnknownNamespace"
	case UnknownModule:
		return "UnknownModule"
	case TypeParseError:
		return "TypeParseError"
	case InvalidIdentityRef:
		return "InvalidIdentityRef"
	case MalformedEncoding:
		return "MalformedEncoding"
	case MissingChoice:
		return "MissingChoice"
	case DuplicateKey:
		return "DuplicateKey"
	default:
		return "Unknown"
	}
}
