package types

// Result is the outcome of a builtin call or memory-model operation:
// either a value or a fault code with an optional detail message.
type Result struct {
	Val Value
	Err FaultCode
	Msg string // detail appended to Err.Message() when non-empty
}

// Ok creates a Result carrying a value
func Ok(v Value) Result {
	return Result{Val: v, Err: F_NONE}
}

// Err creates a Result carrying a fault
func Err(code FaultCode) Result {
	return Result{Val: Empty, Err: code}
}

// Errf creates a Result carrying a fault with a detail message
func Errf(code FaultCode, msg string) Result {
	return Result{Val: Empty, Err: code, Msg: msg}
}

// IsErr returns true if this result carries a fault
func (r Result) IsErr() bool {
	return r.Err != F_NONE
}

// Detail returns the full message for a faulted result
func (r Result) Detail() string {
	if r.Msg != "" {
		return r.Msg
	}
	return r.Err.Message()
}
