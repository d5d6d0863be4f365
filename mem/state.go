package mem

// State bundles the memory model of one run: register file, operand
// stack, and heap. Each run owns a private State; nothing is shared
// across runs or goroutines. The call stack is not here — it belongs
// to the interpreter loop, and builtins never see it.
type State struct {
	Registers *RegisterFile
	Stack     *Stack
	Heap      *Heap
}

// NewState creates a fresh memory state for one run
func NewState() *State {
	return &State{
		Registers: NewRegisterFile(),
		Stack:     NewStack(),
		Heap:      NewHeap(),
	}
}
