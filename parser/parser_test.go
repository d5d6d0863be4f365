package parser

import (
	"bytes"
	"corral/builtins"
	"corral/mem"
	"corral/types"
	"corral/vm"
	"testing"
)

func TestParseInstructions(t *testing.T) {
	prog, err := Parse(`
		mov ra, 10
		add ra, rb
		push 'x'
		call __println
	`)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Instructions) != 4 {
		t.Fatalf("parsed %d instructions, want 4", len(prog.Instructions))
	}
	if got := prog.Instructions[0].Assemble(); got != "mov ra, 10" {
		t.Errorf("instruction 0 assembles to %q", got)
	}
	ins := prog.Instructions[3]
	if ins.Op != vm.OP_CALL || ins.Operands[0].Sym != "__println" {
		t.Errorf("call parsed as %s", ins.Assemble())
	}
}

func TestParseLabels(t *testing.T) {
	prog, err := Parse(`
		section .code
		_main:
			mov ra, 1
		_loop:
			add ra, 1
			jmp _loop
	`)
	if err != nil {
		t.Fatal(err)
	}
	if prog.Labels["_main"] != 0 || prog.Labels["_loop"] != 1 {
		t.Errorf("labels bound wrong: %v", prog.Labels)
	}
}

func TestParseDataSection(t *testing.T) {
	prog, err := Parse(`
		section .data
			_times 10
			_pi 3.14
			_greeting "hello world"
		section .code
			mov ra, _times
	`)
	if err != nil {
		t.Fatal(err)
	}
	if !prog.Data["_times"].Equal(types.NewInt(10)) {
		t.Errorf("_times = %s", prog.Data["_times"])
	}
	if !prog.Data["_pi"].Equal(types.NewFloat(3.14)) {
		t.Errorf("_pi = %s", prog.Data["_pi"])
	}
	if !prog.Data["_greeting"].Equal(types.NewStr("hello world")) {
		t.Errorf("_greeting = %s", prog.Data["_greeting"])
	}
	if len(prog.Instructions) != 1 {
		t.Fatalf("code section parsed %d instructions", len(prog.Instructions))
	}
}

func TestParseComments(t *testing.T) {
	prog, err := Parse(`
		; leading comment
		mov ra, 1 ; trailing comment
		mov rb, "a;b" ; the quoted semicolon stays
	`)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Instructions) != 2 {
		t.Fatalf("parsed %d instructions, want 2", len(prog.Instructions))
	}
	if !prog.Instructions[1].Operands[1].Imm.Equal(types.NewStr("a;b")) {
		t.Errorf("quoted semicolon mangled: %s", prog.Instructions[1].Assemble())
	}
}

func TestParseOffsetExpressions(t *testing.T) {
	prog, err := Parse("mov ra[rb*2+1], 5")
	if err != nil {
		t.Fatal(err)
	}
	o := prog.Instructions[0].Operands[0]
	if o.Kind != vm.OperandIndexed || o.Reg != mem.Ra {
		t.Fatalf("operand parsed as %s", o)
	}
	want := []vm.OffsetTerm{
		{Reg: mem.Rb, IsReg: true, Op: '*'},
		{Lit: 2, Op: '+'},
		{Lit: 1},
	}
	if len(o.Offsets) != len(want) {
		t.Fatalf("parsed %d offset terms, want %d", len(o.Offsets), len(want))
	}
	for i, w := range want {
		if o.Offsets[i] != w {
			t.Errorf("offset term %d = %+v, want %+v", i, o.Offsets[i], w)
		}
	}
}

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want types.Value
	}{
		{"mov ra, 0x10", types.NewInt(16)},
		{"mov ra, -3", types.NewInt(-3)},
		{"mov ra, 2.5", types.NewFloat(2.5)},
		{"mov ra, 'c'", types.NewStr("c")},
		{"mov ra, c", types.NewStr("c")},
	}
	for _, c := range cases {
		prog, err := Parse(c.src)
		if err != nil {
			t.Errorf("%s: %v", c.src, err)
			continue
		}
		if got := prog.Instructions[0].Operands[1].Imm; !got.Equal(c.want) {
			t.Errorf("%s: parsed %s, want %s", c.src, got, c.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"bogus ra, 1",
		"mov ra, notaword",
		"mov ra[",
		"mov ra[rb+], 1",
		"section .bss",
		"_dup:\n_dup:",
	}
	for _, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Errorf("%q parsed without error", src)
		}
	}
}

// the assembled form round-trips through the engine
func TestParsedProgramRuns(t *testing.T) {
	prog, err := Parse(`
		section .data
			_limit 3
		section .code
		_main:
			mov ra, 0
		_loop:
			add ra, 1
			test ra, _limit
			jl _loop
			assert ra, 3
	`)
	if err != nil {
		t.Fatal(err)
	}
	machine := vm.NewVM(builtins.NewRegistry())
	machine.Out = &bytes.Buffer{}
	if fault := machine.Run(prog); fault != nil {
		t.Fatalf("unexpected fault: %v", fault)
	}
	if !machine.Mem.Registers.Get(mem.Ra).Equal(types.NewInt(3)) {
		t.Errorf("loop left ra = %s", machine.Mem.Registers.Get(mem.Ra))
	}
}
