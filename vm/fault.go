package vm

import (
	"corral/types"
	"fmt"
)

// ExecEntry is one executed instruction in a fault snapshot
type ExecEntry struct {
	Index int    // instruction index in the program
	Text  string // assembled form
}

// Fault is the terminal error state of a run: the first violation
// encountered, where it happened, every instruction executed up to and
// including it, and the operand stack as it stood. It is built once at
// the point of violation and never re-executes anything.
type Fault struct {
	Code     types.FaultCode
	Msg      string
	PC       int
	Executed []ExecEntry
	AppStack []types.Value
}

// Error implements the error interface
func (f *Fault) Error() string {
	return fmt.Sprintf("%s at instruction %d: %s", f.Code, f.PC, f.Msg)
}

// newFault snapshots the run state at the point of violation
func (vm *VM) newFault(code types.FaultCode, msg string) *Fault {
	executed := make([]ExecEntry, len(vm.executed))
	for i, pc := range vm.executed {
		executed[i] = ExecEntry{Index: pc, Text: vm.prog.Instructions[pc].Assemble()}
	}

	stack := make([]types.Value, len(vm.Mem.Stack.Values()))
	copy(stack, vm.Mem.Stack.Values())

	return &Fault{
		Code:     code,
		Msg:      msg,
		PC:       vm.pc,
		Executed: executed,
		AppStack: stack,
	}
}

// faultResult converts a faulted Result from the memory model or a
// builtin into a Fault at the current pc
func (vm *VM) faultResult(r types.Result) *Fault {
	return vm.newFault(r.Err, r.Detail())
}
