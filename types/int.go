package types

import "fmt"

// IntValue represents an integer scalar
type IntValue struct {
	Val int64
}

// Type returns the type code for integers
func (i IntValue) Type() TypeCode {
	return TYPE_INT
}

// String returns the display representation
func (i IntValue) String() string {
	return fmt.Sprintf("%d", i.Val)
}

// Equal checks equality; integers never equal other kinds
func (i IntValue) Equal(other Value) bool {
	o, ok := other.(IntValue)
	return ok && i.Val == o.Val
}

// Truthy returns true for non-zero integers
func (i IntValue) Truthy() bool {
	return i.Val != 0
}

// NewInt creates a new IntValue
func NewInt(val int64) IntValue {
	return IntValue{Val: val}
}
