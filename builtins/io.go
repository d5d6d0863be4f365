package builtins

import (
	"corral/mem"
	"corral/types"
	"fmt"
)

// renderForPrint turns the value in a register into display text. A
// handle renders the referenced block's contents; a stale handle is an
// InvalidHandle fault, never silent garbage.
func renderForPrint(ctx *Context, v types.Value) (string, types.Result) {
	if h, ok := v.(types.HandleValue); ok {
		s, live := ctx.Mem.Heap.Render(h)
		if !live {
			return "", types.Errf(types.F_INVALID_HANDLE,
				"cannot print allocation because memory has already been freed")
		}
		return s, types.Ok(types.Empty)
	}
	return v.String(), types.Ok(types.Empty)
}

// builtinPrintln writes rd and a newline to the run's output
func builtinPrintln(ctx *Context) types.Result {
	s, res := renderForPrint(ctx, ctx.Mem.Registers.Get(mem.Rd))
	if res.IsErr() {
		return res
	}
	fmt.Fprintln(ctx.Out, s)
	return types.Ok(types.Empty)
}

// builtinPrint writes rd to the run's output, no newline
func builtinPrint(ctx *Context) types.Result {
	s, res := renderForPrint(ctx, ctx.Mem.Registers.Get(mem.Rd))
	if res.IsErr() {
		return res
	}
	fmt.Fprint(ctx.Out, s)
	return types.Ok(types.Empty)
}

// builtinConcat joins the Text in rd and re into r0
func builtinConcat(ctx *Context) types.Result {
	a, ok := ctx.Mem.Registers.Get(mem.Rd).(types.StrValue)
	if !ok {
		return types.Errf(types.F_TYPE_MISMATCH, "__concat requires Text in rd")
	}
	b, ok := ctx.Mem.Registers.Get(mem.Re).(types.StrValue)
	if !ok {
		return types.Errf(types.F_TYPE_MISMATCH, "__concat requires Text in re")
	}
	return types.Ok(types.NewStr(a.Value() + b.Value()))
}
