package types

// EmptyValue is the starting contents of every register and heap slot
type EmptyValue struct{}

// Empty is the shared empty value
var Empty = EmptyValue{}

// Type returns the type code for the empty value
func (e EmptyValue) Type() TypeCode {
	return TYPE_EMPTY
}

// String renders empty slots in register dumps
func (e EmptyValue) String() string {
	return "(empty)"
}

// Equal: empty only equals empty
func (e EmptyValue) Equal(other Value) bool {
	_, ok := other.(EmptyValue)
	return ok
}

// Truthy: empty is never truthy
func (e EmptyValue) Truthy() bool {
	return false
}
