package mem

import (
	"corral/types"
	"fmt"
	"strings"
)

// RegisterID names one slot in the fixed register file
type RegisterID int

const (
	Ra RegisterID = iota
	Rb
	Rc
	Rd
	Re
	Rf
	R0
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	NumRegisters
)

var registerNames = [NumRegisters]string{
	"ra", "rb", "rc", "rd", "re", "rf",
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9",
}

// String returns the assembly name of the register
func (r RegisterID) String() string {
	if r < 0 || r >= NumRegisters {
		return "unknown"
	}
	return registerNames[r]
}

// ParseRegister resolves an assembly name like "rb" or "r7" to its
// RegisterID. The second return is false for anything else.
func ParseRegister(name string) (RegisterID, bool) {
	for i, n := range registerNames {
		if n == name {
			return RegisterID(i), true
		}
	}
	return NumRegisters, false
}

// Flags holds the result of the most recent test instruction. Set
// reports whether any test has run on this control path; conditional
// jumps fault when it is false.
type Flags struct {
	Set     bool
	Equal   bool
	Less    bool
	Greater bool
}

// RegisterFile is the fixed set of named scalar slots. Every slot
// always holds a value; reads cannot fail on identity.
type RegisterFile struct {
	slots [NumRegisters]types.Value
	Flags Flags
}

// NewRegisterFile creates a register file with every slot Empty
func NewRegisterFile() *RegisterFile {
	rf := &RegisterFile{}
	for i := range rf.slots {
		rf.slots[i] = types.Empty
	}
	return rf
}

// Get reads a register. It never fails: unwritten registers read Empty.
func (rf *RegisterFile) Get(r RegisterID) types.Value {
	return rf.slots[r]
}

// Set overwrites a register. It always succeeds.
func (rf *RegisterFile) Set(r RegisterID, v types.Value) {
	rf.slots[r] = v
}

// SetFlags records a comparison outcome for the conditional-jump family
func (rf *RegisterFile) SetFlags(equal, less, greater bool) {
	rf.Flags = Flags{Set: true, Equal: equal, Less: less, Greater: greater}
}

// ResetFlags clears the comparison state back to unset
func (rf *RegisterFile) ResetFlags() {
	rf.Flags = Flags{}
}

// Dump renders every register for the debug builtins
func (rf *RegisterFile) Dump() string {
	var b strings.Builder
	for i := RegisterID(0); i < NumRegisters; i++ {
		fmt.Fprintf(&b, "%s=%s", i, rf.slots[i])
		if i != NumRegisters-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}
