package univalue

// Kind identifies the type of a JSON value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the lower-case JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k := Null; k <= Object; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return Null, false
}

// IsContainer reports whether values of this kind hold children.
func (k Kind) IsContainer() bool {
	return k == Array || k == Object
}
