package types

// StrValue represents a text value
type StrValue struct {
	val string
}

// NewStr creates a new text value
func NewStr(s string) StrValue {
	return StrValue{val: s}
}

// String returns the raw text. Text prints unquoted: it flows straight
// through __print and __println.
func (s StrValue) String() string {
	return s.val
}

// Type returns the type code for text
func (s StrValue) Type() TypeCode {
	return TYPE_STR
}

// Truthy returns true for non-empty text
func (s StrValue) Truthy() bool {
	return len(s.val) > 0
}

// Equal compares text byte for byte
func (s StrValue) Equal(other Value) bool {
	o, ok := other.(StrValue)
	return ok && s.val == o.val
}

// Value returns the internal string
func (s StrValue) Value() string {
	return s.val
}

// Len returns the text length in bytes
func (s StrValue) Len() int {
	return len(s.val)
}
