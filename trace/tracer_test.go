package trace

import (
	"bytes"
	"corral/builtins"
	"corral/mem"
	"corral/types"
	"corral/vm"
	"strings"
	"testing"
)

func faultingProgram() *vm.Program {
	prog := vm.NewProgram()
	prog.Instructions = []vm.Instruction{
		vm.Ins(vm.OP_MOV, vm.RegOperand(mem.Ra), vm.ImmOperand(types.NewInt(10))),
		vm.Ins(vm.OP_MOV, vm.RegOperand(mem.Rb), vm.ImmOperand(types.NewInt(20))),
		vm.Ins(vm.OP_MOV, vm.RegOperand(mem.Rc), vm.ImmOperand(types.NewInt(31))),
		vm.Ins(vm.OP_ADD, vm.RegOperand(mem.Ra), vm.RegOperand(mem.Rb)),
		vm.Ins(vm.OP_ASSERT, vm.RegOperand(mem.Ra), vm.RegOperand(mem.Rc)),
	}
	return prog
}

func TestRenderAssertionFault(t *testing.T) {
	machine := vm.NewVM(builtins.NewRegistry())
	machine.Out = &bytes.Buffer{}
	fault := machine.Run(faultingProgram())
	if fault == nil {
		t.Fatal("expected fault")
	}

	got := String(fault)
	want := strings.Join([]string{
		"Error: AssertionFailed at instruction 4: 30 != 31",
		"===== Stack Trace =====",
		"0\t| mov ra, 10",
		"1\t| mov rb, 20",
		"2\t| mov rc, 31",
		"3\t| add ra, rb",
		"4\t| assert ra, rc <-- error occurred here",
		"===== App Stack =====",
		"",
	}, "\n")
	if got != want {
		t.Errorf("report mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderAppStack(t *testing.T) {
	prog := vm.NewProgram()
	prog.Instructions = []vm.Instruction{
		vm.Ins(vm.OP_PUSH, vm.ImmOperand(types.NewInt(7))),
		vm.Ins(vm.OP_PUSH, vm.ImmOperand(types.NewStr("seven"))),
		vm.Ins(vm.OP_RET),
	}
	machine := vm.NewVM(builtins.NewRegistry())
	machine.Out = &bytes.Buffer{}
	fault := machine.Run(prog)
	if fault == nil {
		t.Fatal("expected fault")
	}

	got := String(fault)
	if !strings.Contains(got, "===== App Stack =====\n0\t: 7\n1\t: seven\n") {
		t.Errorf("app stack section missing or wrong:\n%s", got)
	}
}
