package builtins

import (
	"corral/types"
	"fmt"
)

// builtinDbgPrint dumps the register file and operand stack to the
// run's output without mutating anything
func builtinDbgPrint(ctx *Context) types.Result {
	fmt.Fprintf(ctx.Out, "registers: %s\n", ctx.Mem.Registers.Dump())
	fmt.Fprintf(ctx.Out, "stack (%d):", ctx.Mem.Stack.Len())
	for _, v := range ctx.Mem.Stack.Values() {
		fmt.Fprintf(ctx.Out, " %s", v)
	}
	fmt.Fprintln(ctx.Out)
	return types.Ok(types.Empty)
}

// builtinDbgHeap dumps every live heap block to the run's output
func builtinDbgHeap(ctx *Context) types.Result {
	fmt.Fprintf(ctx.Out, "heap (%d live):\n", ctx.Mem.Heap.Live())
	fmt.Fprint(ctx.Out, ctx.Mem.Heap.Dump())
	return types.Ok(types.Empty)
}
