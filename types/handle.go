package types

import "fmt"

// HandleValue is an indirect reference to a heap block: the arena slot
// index plus the generation the slot had when the block was allocated.
// Copying a handle (mov between registers, push/pop) copies the pair;
// all copies go stale together when the block is freed, because the
// arena bumps the slot's generation on free.
type HandleValue struct {
	Index      int
	Generation uint64
}

// Type returns the type code for handles
func (h HandleValue) Type() TypeCode {
	return TYPE_HANDLE
}

// String renders the handle itself, not the block it references.
// Printing the referenced block is the memory model's job; a stale
// handle still has to render safely in traces.
func (h HandleValue) String() string {
	return fmt.Sprintf("&%d.%d", h.Index, h.Generation)
}

// Equal is reference equality: same slot, same generation
func (h HandleValue) Equal(other Value) bool {
	o, ok := other.(HandleValue)
	return ok && h.Index == o.Index && h.Generation == o.Generation
}

// Truthy: a handle always references something at creation time
func (h HandleValue) Truthy() bool {
	return true
}
