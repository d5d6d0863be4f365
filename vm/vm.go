package vm

import (
	"bufio"
	"corral/builtins"
	"corral/mem"
	"corral/types"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"
)

// pcHalt is the sentinel next-pc a step returns after hlt
const pcHalt = -1

// VM is one interpreter instance. It exclusively owns its memory
// state, call stack, and program counter for the duration of a run;
// nothing here is shared across runs or goroutines.
type VM struct {
	Mem      *mem.State
	Builtins *builtins.Registry

	// Host surfaces. Out receives builtin output, In feeds the input
	// instruction. StepLimit > 0 bounds the run; the check sits
	// between steps, never inside one.
	Out       io.Writer
	In        io.Reader
	Rand      *rand.Rand
	Now       func() time.Time
	StepLimit int64

	prog      *Program
	pc        int
	callStack []int
	executed  []int
	steps     int64
	input     *bufio.Scanner
}

// NewVM creates a virtual machine with a fresh memory state
func NewVM(registry *builtins.Registry) *VM {
	return &VM{
		Mem:       mem.NewState(),
		Builtins:  registry,
		Out:       os.Stdout,
		In:        os.Stdin,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:       time.Now,
		callStack: make([]int, 0, 16),
	}
}

// Run executes a program to completion. It returns nil on a normal
// halt (hlt, or the pc running past the last instruction) and the
// first Fault otherwise. The program is read-only; the same Program
// can back any number of runs.
func (vm *VM) Run(prog *Program) *Fault {
	vm.prog = prog
	vm.pc = 0
	vm.steps = 0
	vm.executed = vm.executed[:0]
	vm.callStack = vm.callStack[:0]

	for vm.pc < len(prog.Instructions) {
		if vm.StepLimit > 0 && vm.steps >= vm.StepLimit {
			return vm.newFault(types.F_STEP_LIMIT,
				fmt.Sprintf("exceeded %d steps", vm.StepLimit))
		}
		vm.steps++
		vm.executed = append(vm.executed, vm.pc)

		next, fault := vm.step(&prog.Instructions[vm.pc])
		if fault != nil {
			return fault
		}
		if next == pcHalt {
			return nil
		}
		vm.pc = next
	}
	return nil
}

// step executes one instruction and returns the next pc
func (vm *VM) step(ins *Instruction) (int, *Fault) {
	switch ins.Op {
	case OP_MOV:
		return vm.execMov(ins)
	case OP_PUSH:
		return vm.execPush(ins)
	case OP_POP:
		return vm.execPop(ins)
	case OP_DUP:
		return vm.execDup(ins)
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD, OP_XOR:
		return vm.execArith(ins)
	case OP_TEST:
		return vm.execTest(ins)
	case OP_JMP:
		if len(ins.Operands) != 1 {
			return 0, vm.newFault(types.F_TYPE_MISMATCH, "jmp requires a label")
		}
		return vm.jumpTo(ins.Operands[0])
	case OP_JE, OP_JNE, OP_JL, OP_JG, OP_JLE, OP_JGE:
		return vm.execCondJump(ins)
	case OP_CALL:
		return vm.execCall(ins)
	case OP_RET:
		return vm.execRet(ins)
	case OP_ALLOC:
		return vm.execAlloc(ins)
	case OP_FREE:
		return vm.execFree(ins)
	case OP_ASSERT:
		return vm.execAssert(ins)
	case OP_INPUT:
		return vm.execInput(ins)
	case OP_NOP:
		return vm.pc + 1, nil
	case OP_HLT:
		return pcHalt, nil
	default:
		return 0, vm.newFault(types.F_TYPE_MISMATCH, fmt.Sprintf("unknown opcode %d", ins.Op))
	}
}

// resolveValue produces the value a source operand denotes
func (vm *VM) resolveValue(o Operand) (types.Value, *Fault) {
	switch o.Kind {
	case OperandReg:
		return vm.Mem.Registers.Get(o.Reg), nil
	case OperandImm:
		return o.Imm, nil
	case OperandSym:
		v, ok := vm.prog.Data[o.Sym]
		if !ok {
			return nil, vm.newFault(types.F_UNDEFINED_SYMBOL,
				fmt.Sprintf("cannot find symbol '%s'", o.Sym))
		}
		return v, nil
	case OperandIndexed:
		return vm.indexedRead(o)
	default:
		return nil, vm.newFault(types.F_TYPE_MISMATCH, "malformed operand")
	}
}

// evalOffset evaluates an offset expression left to right
func (vm *VM) evalOffset(terms []OffsetTerm) (int, *Fault) {
	var acc int64
	var pendingOp byte
	for i, t := range terms {
		var val int64
		if t.IsReg {
			rv := vm.Mem.Registers.Get(t.Reg)
			iv, ok := rv.(types.IntValue)
			if !ok {
				return 0, vm.newFault(types.F_TYPE_MISMATCH,
					fmt.Sprintf("cannot use %s (%s) as offset", t.Reg, rv.Type()))
			}
			val = iv.Val
		} else {
			val = t.Lit
		}

		if i == 0 {
			acc = val
		} else {
			switch pendingOp {
			case '+':
				acc += val
			case '-':
				acc -= val
			case '*':
				acc *= val
			case '/':
				if val == 0 {
					return 0, vm.newFault(types.F_DIVISION_BY_ZERO, "offset division by zero")
				}
				acc /= val
			case '%':
				if val == 0 {
					return 0, vm.newFault(types.F_DIVISION_BY_ZERO, "offset division by zero")
				}
				acc %= val
			}
		}
		pendingOp = t.Op
	}
	return int(acc), nil
}

// indexedRead reads reg[i]: slot i of the block reg references, or the
// 1-char Text at byte i when reg holds Text
func (vm *VM) indexedRead(o Operand) (types.Value, *Fault) {
	idx, fault := vm.evalOffset(o.Offsets)
	if fault != nil {
		return nil, fault
	}

	switch base := vm.Mem.Registers.Get(o.Reg).(type) {
	case types.HandleValue:
		res := vm.Mem.Heap.Read(base, idx)
		if res.IsErr() {
			return nil, vm.faultResult(res)
		}
		return res.Val, nil
	case types.StrValue:
		if idx < 0 || idx >= base.Len() {
			return nil, vm.newFault(types.F_HEAP_OUT_OF_BOUNDS,
				fmt.Sprintf("index %d outside text of length %d", idx, base.Len()))
		}
		return types.NewStr(base.Value()[idx : idx+1]), nil
	default:
		return nil, vm.newFault(types.F_INVALID_HANDLE,
			fmt.Sprintf("register %s does not hold an indexable value", o.Reg))
	}
}

// writeDest stores a value through a destination operand
func (vm *VM) writeDest(o Operand, v types.Value) *Fault {
	switch o.Kind {
	case OperandReg:
		vm.Mem.Registers.Set(o.Reg, v)
		return nil
	case OperandIndexed:
		idx, fault := vm.evalOffset(o.Offsets)
		if fault != nil {
			return fault
		}
		switch base := vm.Mem.Registers.Get(o.Reg).(type) {
		case types.HandleValue:
			if res := vm.Mem.Heap.Write(base, idx, v); res.IsErr() {
				return vm.faultResult(res)
			}
			return nil
		case types.StrValue:
			spliced, fault := vm.spliceText(base.Value(), idx, v.String())
			if fault != nil {
				return fault
			}
			vm.Mem.Registers.Set(o.Reg, types.NewStr(spliced))
			return nil
		default:
			return vm.newFault(types.F_INVALID_HANDLE,
				fmt.Sprintf("register %s does not hold an indexable value", o.Reg))
		}
	default:
		return vm.newFault(types.F_TYPE_MISMATCH, "destination must be a register or indexed register")
	}
}

// spliceText overwrites text at idx in place, extending at the end
func (vm *VM) spliceText(s string, idx int, ins string) (string, *Fault) {
	if idx < 0 || idx > len(s) {
		return "", vm.newFault(types.F_HEAP_OUT_OF_BOUNDS,
			fmt.Sprintf("index %d outside text of length %d", idx, len(s)))
	}
	if idx+len(ins) >= len(s) {
		return s[:idx] + ins, nil
	}
	return s[:idx] + ins + s[idx+len(ins):], nil
}

func (vm *VM) execMov(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 2 {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "mov requires 2 operands")
	}
	v, fault := vm.resolveValue(ins.Operands[1])
	if fault != nil {
		return 0, fault
	}
	if fault := vm.writeDest(ins.Operands[0], v); fault != nil {
		return 0, fault
	}
	return vm.pc + 1, nil
}

func (vm *VM) execPush(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 1 {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "push requires 1 operand")
	}
	v, fault := vm.resolveValue(ins.Operands[0])
	if fault != nil {
		return 0, fault
	}
	vm.Mem.Stack.Push(v)
	return vm.pc + 1, nil
}

func (vm *VM) execPop(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 1 || ins.Operands[0].Kind != OperandReg {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "pop requires a register operand")
	}
	v, ok := vm.Mem.Stack.Pop()
	if !ok {
		return 0, vm.newFault(types.F_STACK_UNDERFLOW, "cannot pop empty stack")
	}
	vm.Mem.Registers.Set(ins.Operands[0].Reg, v)
	return vm.pc + 1, nil
}

func (vm *VM) execDup(ins *Instruction) (int, *Fault) {
	v, ok := vm.Mem.Stack.Pop()
	if !ok {
		return 0, vm.newFault(types.F_STACK_UNDERFLOW, "cannot dup empty stack")
	}
	vm.Mem.Stack.Push(v)
	vm.Mem.Stack.Push(v)
	return vm.pc + 1, nil
}

func (vm *VM) execArith(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 2 || ins.Operands[0].Kind != OperandReg {
		return 0, vm.newFault(types.F_TYPE_MISMATCH,
			fmt.Sprintf("%s requires a register and a value", ins.Op))
	}
	dst := ins.Operands[0].Reg
	a := vm.Mem.Registers.Get(dst)
	b, fault := vm.resolveValue(ins.Operands[1])
	if fault != nil {
		return 0, fault
	}

	res := arith(ins.Op, a, b)
	if res.IsErr() {
		return 0, vm.faultResult(res)
	}
	vm.Mem.Registers.Set(dst, res.Val)
	return vm.pc + 1, nil
}

func (vm *VM) execTest(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 2 {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "test requires 2 operands")
	}
	a, fault := vm.resolveValue(ins.Operands[0])
	if fault != nil {
		return 0, fault
	}
	b, fault := vm.resolveValue(ins.Operands[1])
	if fault != nil {
		return 0, fault
	}

	equal, less, greater, res := compare(a, b)
	if res.IsErr() {
		return 0, vm.faultResult(res)
	}
	vm.Mem.Registers.SetFlags(equal, less, greater)
	return vm.pc + 1, nil
}

// jumpTo resolves a label operand against the symbol table. Labels are
// bound late: a bad reference faults only when the jump executes.
func (vm *VM) jumpTo(o Operand) (int, *Fault) {
	if o.Kind != OperandSym {
		return 0, vm.newFault(types.F_UNDEFINED_LABEL, "jump target must be a label")
	}
	target, ok := vm.prog.Labels[o.Sym]
	if !ok {
		return 0, vm.newFault(types.F_UNDEFINED_LABEL,
			fmt.Sprintf("cannot find label '%s'", o.Sym))
	}
	return target, nil
}

func (vm *VM) execCondJump(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 1 {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "conditional jump requires a label")
	}
	fl := vm.Mem.Registers.Flags
	if !fl.Set {
		return 0, vm.newFault(types.F_FLAGS_NOT_SET,
			fmt.Sprintf("%s with no preceding test", ins.Op))
	}

	var taken bool
	switch ins.Op {
	case OP_JE:
		taken = fl.Equal
	case OP_JNE:
		taken = !fl.Equal
	case OP_JL:
		taken = fl.Less
	case OP_JG:
		taken = fl.Greater
	case OP_JLE:
		taken = fl.Equal || fl.Less
	case OP_JGE:
		taken = fl.Equal || fl.Greater
	}

	if taken {
		return vm.jumpTo(ins.Operands[0])
	}
	return vm.pc + 1, nil
}

// execCall dispatches call: names starting with "__" go to the builtin
// registry synchronously with no call-stack push; anything else is a
// label call that pushes the return pc.
func (vm *VM) execCall(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 1 || ins.Operands[0].Kind != OperandSym {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "call requires a label or builtin name")
	}
	name := ins.Operands[0].Sym

	if strings.HasPrefix(name, "__") {
		ctx := &builtins.Context{Mem: vm.Mem, Out: vm.Out, Rand: vm.Rand, Now: vm.Now}
		res, ok := vm.Builtins.Call(name, ctx)
		if !ok {
			return 0, vm.newFault(types.F_UNDEFINED_BUILTIN,
				fmt.Sprintf("cannot find builtin '%s'", name))
		}
		if res.IsErr() {
			return 0, vm.faultResult(res)
		}
		vm.Mem.Registers.Set(mem.R0, res.Val)
		return vm.pc + 1, nil
	}

	target, ok := vm.prog.Labels[name]
	if !ok {
		return 0, vm.newFault(types.F_UNDEFINED_LABEL,
			fmt.Sprintf("cannot find label '%s'", name))
	}
	vm.callStack = append(vm.callStack, vm.pc+1)
	return target, nil
}

func (vm *VM) execRet(ins *Instruction) (int, *Fault) {
	if len(vm.callStack) == 0 {
		return 0, vm.newFault(types.F_RETURN_WITHOUT_CALL, "ret with empty call stack")
	}
	ret := vm.callStack[len(vm.callStack)-1]
	vm.callStack = vm.callStack[:len(vm.callStack)-1]
	return ret, nil
}

func (vm *VM) execAlloc(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 2 || ins.Operands[0].Kind != OperandReg {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "alloc requires a register and a size")
	}
	sizeVal, fault := vm.resolveValue(ins.Operands[1])
	if fault != nil {
		return 0, fault
	}
	size, ok := sizeVal.(types.IntValue)
	if !ok || size.Val < 0 {
		return 0, vm.newFault(types.F_TYPE_MISMATCH,
			fmt.Sprintf("allocation size must be a non-negative integer, got %s", sizeVal))
	}
	handle := vm.Mem.Heap.Alloc(int(size.Val))
	vm.Mem.Registers.Set(ins.Operands[0].Reg, handle)
	return vm.pc + 1, nil
}

func (vm *VM) execFree(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 1 || ins.Operands[0].Kind != OperandReg {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "free requires a register operand")
	}
	reg := ins.Operands[0].Reg
	handle, ok := vm.Mem.Registers.Get(reg).(types.HandleValue)
	if !ok {
		return 0, vm.newFault(types.F_INVALID_FREE,
			fmt.Sprintf("register %s does not hold a handle", reg))
	}
	if res := vm.Mem.Heap.Free(handle); res.IsErr() {
		return 0, vm.faultResult(res)
	}
	return vm.pc + 1, nil
}

func (vm *VM) execAssert(ins *Instruction) (int, *Fault) {
	if len(ins.Operands) != 2 {
		return 0, vm.newFault(types.F_TYPE_MISMATCH, "assert requires 2 operands")
	}
	a, fault := vm.resolveValue(ins.Operands[0])
	if fault != nil {
		return 0, fault
	}
	b, fault := vm.resolveValue(ins.Operands[1])
	if fault != nil {
		return 0, fault
	}

	// Unorderable pairings are simply unequal here: assert reports the
	// two values either way.
	equal, _, _, res := compare(a, b)
	if res.IsErr() {
		equal = false
	}
	if !equal {
		return 0, vm.newFault(types.F_ASSERTION_FAILED,
			fmt.Sprintf("%s != %s", a, b))
	}
	// an assert consumes any live comparison state; a conditional jump
	// after it needs its own test
	vm.Mem.Registers.ResetFlags()
	return vm.pc + 1, nil
}

func (vm *VM) execInput(ins *Instruction) (int, *Fault) {
	if vm.input == nil {
		vm.input = bufio.NewScanner(vm.In)
	}
	line := ""
	if vm.input.Scan() {
		line = strings.TrimSpace(vm.input.Text())
	}
	vm.Mem.Stack.Push(types.NewStr(line))
	return vm.pc + 1, nil
}
