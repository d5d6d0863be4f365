package types

// TypeCode identifies a Value kind
type TypeCode int

const (
	TYPE_EMPTY  TypeCode = 0
	TYPE_INT    TypeCode = 1
	TYPE_FLOAT  TypeCode = 2
	TYPE_STR    TypeCode = 3
	TYPE_HANDLE TypeCode = 4
)

// String returns the string representation of the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_EMPTY:
		return "EMPTY"
	case TYPE_INT:
		return "INT"
	case TYPE_FLOAT:
		return "FLOAT"
	case TYPE_STR:
		return "STR"
	case TYPE_HANDLE:
		return "HANDLE"
	default:
		return "UNKNOWN"
	}
}
