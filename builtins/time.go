package builtins

import "corral/types"

// builtinDateNowUnix writes the current unix timestamp in seconds
// into r0
func builtinDateNowUnix(ctx *Context) types.Result {
	return types.Ok(types.NewInt(ctx.Now().Unix()))
}

// builtinDateNow writes the current unix timestamp in milliseconds
// into r0
func builtinDateNow(ctx *Context) types.Result {
	return types.Ok(types.NewInt(ctx.Now().UnixMilli()))
}
