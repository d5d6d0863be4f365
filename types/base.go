package types

// FaultCode identifies an execution-time fault. Faults are
// unrecoverable within a run: the VM transitions to Faulted, keeps the
// first fault it hit, and stops.
type FaultCode int

const (
	F_NONE FaultCode = iota
	F_STACK_UNDERFLOW
	F_INVALID_HANDLE
	F_INVALID_FREE
	F_HEAP_OUT_OF_BOUNDS
	F_DIVISION_BY_ZERO
	F_UNDEFINED_LABEL
	F_UNDEFINED_BUILTIN
	F_UNDEFINED_SYMBOL
	F_FLAGS_NOT_SET
	F_RETURN_WITHOUT_CALL
	F_TYPE_MISMATCH
	F_ASSERTION_FAILED
	F_STEP_LIMIT
)

// String returns the fault kind name used in trace headers
func (f FaultCode) String() string {
	switch f {
	case F_NONE:
		return "NoFault"
	case F_STACK_UNDERFLOW:
		return "StackUnderflow"
	case F_INVALID_HANDLE:
		return "InvalidHandle"
	case F_INVALID_FREE:
		return "InvalidFree"
	case F_HEAP_OUT_OF_BOUNDS:
		return "HeapOutOfBounds"
	case F_DIVISION_BY_ZERO:
		return "DivisionByZero"
	case F_UNDEFINED_LABEL:
		return "UndefinedLabel"
	case F_UNDEFINED_BUILTIN:
		return "UndefinedBuiltin"
	case F_UNDEFINED_SYMBOL:
		return "UndefinedSymbol"
	case F_FLAGS_NOT_SET:
		return "FlagsNotSet"
	case F_RETURN_WITHOUT_CALL:
		return "ReturnWithoutCall"
	case F_TYPE_MISMATCH:
		return "TypeMismatch"
	case F_ASSERTION_FAILED:
		return "AssertionFailed"
	case F_STEP_LIMIT:
		return "StepLimitExceeded"
	default:
		return "UnknownFault"
	}
}

// Message returns a human-readable default message for a fault code
func (f FaultCode) Message() string {
	switch f {
	case F_NONE:
		return "No fault"
	case F_STACK_UNDERFLOW:
		return "Cannot pop empty stack"
	case F_INVALID_HANDLE:
		return "Handle does not reference a live heap block"
	case F_INVALID_FREE:
		return "Register does not hold a live handle"
	case F_HEAP_OUT_OF_BOUNDS:
		return "Index outside heap block bounds"
	case F_DIVISION_BY_ZERO:
		return "Division by zero"
	case F_UNDEFINED_LABEL:
		return "Cannot find label"
	case F_UNDEFINED_BUILTIN:
		return "Cannot find builtin"
	case F_UNDEFINED_SYMBOL:
		return "Cannot find symbol"
	case F_FLAGS_NOT_SET:
		return "Conditional jump with no preceding test"
	case F_RETURN_WITHOUT_CALL:
		return "Return with no caller"
	case F_TYPE_MISMATCH:
		return "Operand has the wrong type"
	case F_ASSERTION_FAILED:
		return "Assertion failed"
	case F_STEP_LIMIT:
		return "Step limit exceeded"
	default:
		return "Unknown fault"
	}
}

// Value is the interface every VM value implements. The kind set is
// closed: Int, Float, Str, Handle, Empty.
type Value interface {
	Type() TypeCode
	String() string   // display representation
	Equal(Value) bool // equality per kind
	Truthy() bool     // non-zero / non-empty
}
