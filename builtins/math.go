package builtins

import (
	"corral/mem"
	"corral/types"
	"math"
)

// builtinRandom writes a pseudo-random float in [0, 1) into r0
func builtinRandom(ctx *Context) types.Result {
	return types.Ok(types.NewFloat(ctx.Rand.Float64()))
}

// builtinFloor truncates the Float in r0 toward negative infinity.
// Non-float values pass through unchanged: floor of an Integer is
// that Integer.
func builtinFloor(ctx *Context) types.Result {
	v := ctx.Mem.Registers.Get(mem.R0)
	if f, ok := v.(types.FloatValue); ok {
		return types.Ok(types.NewFloat(math.Floor(f.Val)))
	}
	return types.Ok(v)
}
