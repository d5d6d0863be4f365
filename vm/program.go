package vm

import (
	"corral/mem"
	"corral/types"
	"fmt"
	"strings"
)

// OperandKind distinguishes the operand shapes an instruction can carry
type OperandKind int

const (
	OperandReg     OperandKind = iota // plain register: ra
	OperandIndexed                    // register with offset expression: ra[rb+1]
	OperandImm                        // immediate scalar or text literal
	OperandSym                        // label or data-symbol reference: _loop
)

// OffsetTerm is one term of an offset expression. Op is the operator
// joining this term to the next one, 0 on the last term.
type OffsetTerm struct {
	Reg   mem.RegisterID
	IsReg bool
	Lit   int64
	Op    byte // one of + - * / %, or 0
}

// Operand is one decoded instruction operand
type Operand struct {
	Kind    OperandKind
	Reg     mem.RegisterID // OperandReg, OperandIndexed
	Offsets []OffsetTerm   // OperandIndexed
	Imm     types.Value    // OperandImm
	Sym     string         // OperandSym
}

// RegOperand builds a plain register operand
func RegOperand(r mem.RegisterID) Operand {
	return Operand{Kind: OperandReg, Reg: r}
}

// ImmOperand builds an immediate operand
func ImmOperand(v types.Value) Operand {
	return Operand{Kind: OperandImm, Imm: v}
}

// SymOperand builds a label/data reference operand
func SymOperand(name string) Operand {
	return Operand{Kind: OperandSym, Sym: name}
}

// IndexedOperand builds a register-with-offset operand
func IndexedOperand(r mem.RegisterID, offsets ...OffsetTerm) Operand {
	return Operand{Kind: OperandIndexed, Reg: r, Offsets: offsets}
}

// String renders the operand back to assembly form
func (o Operand) String() string {
	switch o.Kind {
	case OperandReg:
		return o.Reg.String()
	case OperandIndexed:
		var b strings.Builder
		b.WriteString(o.Reg.String())
		b.WriteByte('[')
		for _, t := range o.Offsets {
			if t.IsReg {
				b.WriteString(t.Reg.String())
			} else {
				fmt.Fprintf(&b, "%d", t.Lit)
			}
			if t.Op != 0 {
				b.WriteByte(t.Op)
			}
		}
		b.WriteByte(']')
		return b.String()
	case OperandImm:
		if s, ok := o.Imm.(types.StrValue); ok {
			return fmt.Sprintf("%q", s.Value())
		}
		return o.Imm.String()
	case OperandSym:
		return o.Sym
	default:
		return "?"
	}
}

// Instruction is one decoded (opcode, operands) entry
type Instruction struct {
	Op       OpCode
	Operands []Operand
}

// Ins builds an instruction; test helper shape shared with the parser
func Ins(op OpCode, operands ...Operand) Instruction {
	return Instruction{Op: op, Operands: operands}
}

// Assemble renders the instruction back to one line of assembly, the
// form shown in fault traces
func (ins Instruction) Assemble() string {
	var b strings.Builder
	b.WriteString(ins.Op.String())
	for i, o := range ins.Operands {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(o.String())
	}
	return b.String()
}

// Program is the immutable unit of execution: the flat instruction
// sequence plus the label and data tables the front end resolved.
// The engine never mutates a Program; one Program can back many runs.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int
	Data         map[string]types.Value
}

// NewProgram creates an empty program
func NewProgram() *Program {
	return &Program{
		Labels: make(map[string]int),
		Data:   make(map[string]types.Value),
	}
}
