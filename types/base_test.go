package types

import "testing"

func TestFaultCodeNames(t *testing.T) {
	tests := []struct {
		code FaultCode
		name string
	}{
		{F_STACK_UNDERFLOW, "StackUnderflow"},
		{F_INVALID_HANDLE, "InvalidHandle"},
		{F_INVALID_FREE, "InvalidFree"},
		{F_HEAP_OUT_OF_BOUNDS, "HeapOutOfBounds"},
		{F_DIVISION_BY_ZERO, "DivisionByZero"},
		{F_UNDEFINED_LABEL, "UndefinedLabel"},
		{F_UNDEFINED_BUILTIN, "UndefinedBuiltin"},
		{F_UNDEFINED_SYMBOL, "UndefinedSymbol"},
		{F_FLAGS_NOT_SET, "FlagsNotSet"},
		{F_RETURN_WITHOUT_CALL, "ReturnWithoutCall"},
		{F_TYPE_MISMATCH, "TypeMismatch"},
		{F_ASSERTION_FAILED, "AssertionFailed"},
		{F_STEP_LIMIT, "StepLimitExceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code.String() != tt.name {
				t.Errorf("String() returned %q, expected %q", tt.code.String(), tt.name)
			}
			if tt.code.Message() == "" {
				t.Errorf("%s has no message", tt.name)
			}
		})
	}
}

func TestValueEquality(t *testing.T) {
	if !NewInt(4).Equal(NewInt(4)) {
		t.Error("equal ints should be Equal")
	}
	if NewInt(4).Equal(NewInt(5)) {
		t.Error("unequal ints should not be Equal")
	}
	if NewInt(4).Equal(NewFloat(4)) {
		t.Error("int should never Equal float; promotion is the vm's job")
	}
	if !NewStr("hey").Equal(NewStr("hey")) {
		t.Error("equal strings should be Equal")
	}
	if NewStr("Hey").Equal(NewStr("hey")) {
		t.Error("string equality is case-sensitive")
	}
	if !Empty.Equal(EmptyValue{}) {
		t.Error("empty should Equal empty")
	}
	if Empty.Equal(NewInt(0)) {
		t.Error("empty should not Equal zero")
	}

	h1 := HandleValue{Index: 0, Generation: 1}
	h2 := HandleValue{Index: 0, Generation: 1}
	h3 := HandleValue{Index: 0, Generation: 2}
	if !h1.Equal(h2) {
		t.Error("handles to the same block should be Equal")
	}
	if h1.Equal(h3) {
		t.Error("handles of different generations should not be Equal")
	}
}

func TestFloatDisplay(t *testing.T) {
	if got := NewFloat(3).String(); got != "3.0" {
		t.Errorf("whole floats keep a decimal: got %q", got)
	}
	if got := NewFloat(0.5).String(); got != "0.5" {
		t.Errorf("got %q", got)
	}
}

func TestTruthy(t *testing.T) {
	if NewInt(0).Truthy() || NewStr("").Truthy() || Empty.Truthy() || NewFloat(0).Truthy() {
		t.Error("zero, empty text, and empty must be falsy")
	}
	if !NewInt(1).Truthy() || !NewStr("x").Truthy() || !NewFloat(0.1).Truthy() {
		t.Error("non-zero scalars and non-empty text must be truthy")
	}
	if !(HandleValue{Index: 2, Generation: 1}).Truthy() {
		t.Error("handles are truthy")
	}
}
