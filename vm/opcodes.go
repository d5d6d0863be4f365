package vm

// OpCode identifies one instruction
type OpCode int

const (
	OP_MOV OpCode = iota
	OP_PUSH
	OP_POP
	OP_DUP
	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_MOD
	OP_XOR
	OP_TEST
	OP_JMP
	OP_JE
	OP_JNE
	OP_JL
	OP_JG
	OP_JLE
	OP_JGE
	OP_CALL
	OP_RET
	OP_ALLOC
	OP_FREE
	OP_ASSERT
	OP_INPUT
	OP_NOP
	OP_HLT
)

var mnemonics = map[OpCode]string{
	OP_MOV:    "mov",
	OP_PUSH:   "push",
	OP_POP:    "pop",
	OP_DUP:    "dup",
	OP_ADD:    "add",
	OP_SUB:    "sub",
	OP_MUL:    "mul",
	OP_DIV:    "div",
	OP_MOD:    "mod",
	OP_XOR:    "xor",
	OP_TEST:   "test",
	OP_JMP:    "jmp",
	OP_JE:     "je",
	OP_JNE:    "jne",
	OP_JL:     "jl",
	OP_JG:     "jg",
	OP_JLE:    "jle",
	OP_JGE:    "jge",
	OP_CALL:   "call",
	OP_RET:    "ret",
	OP_ALLOC:  "alloc",
	OP_FREE:   "free",
	OP_ASSERT: "assert",
	OP_INPUT:  "input",
	OP_NOP:    "nop",
	OP_HLT:    "hlt",
}

// opcodeByName is the reverse mnemonic table used by the assembler
var opcodeByName = func() map[string]OpCode {
	m := make(map[string]OpCode, len(mnemonics))
	for op, name := range mnemonics {
		m[name] = op
	}
	return m
}()

// String returns the assembly mnemonic
func (op OpCode) String() string {
	if s, ok := mnemonics[op]; ok {
		return s
	}
	return "???"
}

// LookupOpcode resolves a mnemonic to its opcode
func LookupOpcode(name string) (OpCode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}
