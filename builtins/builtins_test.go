package builtins

import (
	"bytes"
	"corral/mem"
	"corral/types"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func testContext() (*Context, *bytes.Buffer) {
	var out bytes.Buffer
	ctx := &Context{
		Mem:  mem.NewState(),
		Out:  &out,
		Rand: rand.New(rand.NewSource(1)),
		Now:  func() time.Time { return time.Unix(1700000000, 0) },
	}
	return ctx, &out
}

func TestPrintln(t *testing.T) {
	ctx, out := testContext()
	ctx.Mem.Registers.Set(mem.Rd, types.NewStr("Hello, World!"))

	res, ok := NewRegistry().Call("__println", ctx)
	if !ok || res.IsErr() {
		t.Fatalf("call failed: %v", res.Err)
	}
	if out.String() != "Hello, World!\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestPrintNoNewline(t *testing.T) {
	ctx, out := testContext()
	ctx.Mem.Registers.Set(mem.Rd, types.NewInt(42))

	NewRegistry().Call("__print", ctx)
	if out.String() != "42" {
		t.Errorf("got %q", out.String())
	}
}

func TestPrintlnHeapBlock(t *testing.T) {
	ctx, out := testContext()
	h := ctx.Mem.Heap.Alloc(3)
	ctx.Mem.Heap.Write(h, 0, types.NewInt('y'))
	ctx.Mem.Heap.Write(h, 1, types.NewInt('e'))
	ctx.Mem.Heap.Write(h, 2, types.NewInt('y'))
	ctx.Mem.Registers.Set(mem.Rd, h)

	res, _ := NewRegistry().Call("__println", ctx)
	if res.IsErr() {
		t.Fatalf("println on live block failed: %v", res.Err)
	}
	if out.String() != "yey\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestPrintlnFreedBlockFaults(t *testing.T) {
	ctx, _ := testContext()
	h := ctx.Mem.Heap.Alloc(1)
	ctx.Mem.Heap.Free(h)
	ctx.Mem.Registers.Set(mem.Rd, h)

	res, _ := NewRegistry().Call("__println", ctx)
	if res.Err != types.F_INVALID_HANDLE {
		t.Errorf("expected InvalidHandle, got %s", res.Err)
	}
}

func TestConcat(t *testing.T) {
	ctx, _ := testContext()
	ctx.Mem.Registers.Set(mem.Rd, types.NewStr("Hello, "))
	ctx.Mem.Registers.Set(mem.Re, types.NewStr("World!"))

	res, _ := NewRegistry().Call("__concat", ctx)
	if res.IsErr() {
		t.Fatalf("concat failed: %v", res.Err)
	}
	if !res.Val.Equal(types.NewStr("Hello, World!")) {
		t.Errorf("got %s", res.Val)
	}
}

func TestConcatTypeMismatch(t *testing.T) {
	ctx, _ := testContext()
	ctx.Mem.Registers.Set(mem.Rd, types.NewInt(1))
	ctx.Mem.Registers.Set(mem.Re, types.NewStr("x"))

	res, _ := NewRegistry().Call("__concat", ctx)
	if res.Err != types.F_TYPE_MISMATCH {
		t.Errorf("expected TypeMismatch, got %s", res.Err)
	}
}

func TestRandomRange(t *testing.T) {
	ctx, _ := testContext()
	reg := NewRegistry()
	for i := 0; i < 100; i++ {
		res, _ := reg.Call("__random", ctx)
		f, ok := res.Val.(types.FloatValue)
		if !ok {
			t.Fatalf("random returned %T", res.Val)
		}
		if f.Val < 0 || f.Val >= 1 {
			t.Fatalf("random out of [0,1): %v", f.Val)
		}
	}
}

func TestFloor(t *testing.T) {
	ctx, _ := testContext()
	reg := NewRegistry()

	ctx.Mem.Registers.Set(mem.R0, types.NewFloat(61.9))
	res, _ := reg.Call("__floor", ctx)
	if !res.Val.Equal(types.NewFloat(61)) {
		t.Errorf("floor(61.9) = %s", res.Val)
	}

	// Non-floats pass through.
	ctx.Mem.Registers.Set(mem.R0, types.NewInt(7))
	res, _ = reg.Call("__floor", ctx)
	if !res.Val.Equal(types.NewInt(7)) {
		t.Errorf("floor(7) = %s", res.Val)
	}
}

func TestDateNowUnix(t *testing.T) {
	ctx, _ := testContext()
	res, _ := NewRegistry().Call("__date_now_unix", ctx)
	if !res.Val.Equal(types.NewInt(1700000000)) {
		t.Errorf("got %s", res.Val)
	}
}

func TestUnknownBuiltin(t *testing.T) {
	ctx, _ := testContext()
	res, ok := NewRegistry().Call("__nope", ctx)
	if ok {
		t.Fatal("unknown builtin reported ok")
	}
	if res.Err != types.F_UNDEFINED_BUILTIN {
		t.Errorf("expected UndefinedBuiltin, got %s", res.Err)
	}
}

func TestDbgPrintDoesNotMutate(t *testing.T) {
	ctx, out := testContext()
	ctx.Mem.Registers.Set(mem.Ra, types.NewInt(5))
	ctx.Mem.Stack.Push(types.NewStr("s"))

	NewRegistry().Call("__dbg_print", ctx)

	if !strings.Contains(out.String(), "ra=5") {
		t.Errorf("dump missing register: %q", out.String())
	}
	if ctx.Mem.Stack.Len() != 1 {
		t.Error("dbg_print must not consume the stack")
	}
}
