package mem

import (
	"corral/types"
	"fmt"
	"strings"
)

// block is one heap allocation. A freed slot keeps its bumped
// generation so stale handles can never match it again, even after
// the slot is reused.
type block struct {
	generation uint64
	live       bool
	slots      []types.Value
}

// Heap is an arena of independently allocated blocks addressed through
// (index, generation) handles. There are no raw pointers: a handle is
// only valid while the slot's generation matches, so free invalidates
// every copy of the handle at once.
type Heap struct {
	blocks []block
	free   []int // indices of dead slots available for reuse
}

// NewHeap creates an empty heap
func NewHeap() *Heap {
	return &Heap{}
}

// Alloc creates a block of size Empty-initialized slots and returns
// its handle. Zero-size blocks are legal.
func (h *Heap) Alloc(size int) types.HandleValue {
	slots := make([]types.Value, size)
	for i := range slots {
		slots[i] = types.Empty
	}

	if n := len(h.free); n > 0 {
		idx := h.free[n-1]
		h.free = h.free[:n-1]
		b := &h.blocks[idx]
		b.generation++
		b.live = true
		b.slots = slots
		return types.HandleValue{Index: idx, Generation: b.generation}
	}

	h.blocks = append(h.blocks, block{generation: 1, live: true, slots: slots})
	return types.HandleValue{Index: len(h.blocks) - 1, Generation: 1}
}

// lookup resolves a handle to its live block
func (h *Heap) lookup(hd types.HandleValue) (*block, bool) {
	if hd.Index < 0 || hd.Index >= len(h.blocks) {
		return nil, false
	}
	b := &h.blocks[hd.Index]
	if !b.live || b.generation != hd.Generation {
		return nil, false
	}
	return b, true
}

// Free releases the block a handle references. A stale or never-valid
// handle is InvalidFree: double-free is a fault, not a no-op.
func (h *Heap) Free(hd types.HandleValue) types.Result {
	b, ok := h.lookup(hd)
	if !ok {
		return types.Errf(types.F_INVALID_FREE, fmt.Sprintf("cannot free %s: not a live allocation", hd))
	}
	b.live = false
	b.generation++
	b.slots = nil
	h.free = append(h.free, hd.Index)
	return types.Ok(types.Empty)
}

// Read returns slot i of the referenced block
func (h *Heap) Read(hd types.HandleValue, i int) types.Result {
	b, ok := h.lookup(hd)
	if !ok {
		return types.Errf(types.F_INVALID_HANDLE, fmt.Sprintf("%s has been freed", hd))
	}
	if i < 0 || i >= len(b.slots) {
		return types.Errf(types.F_HEAP_OUT_OF_BOUNDS,
			fmt.Sprintf("index %d outside block of size %d", i, len(b.slots)))
	}
	return types.Ok(b.slots[i])
}

// Write stores v into slot i of the referenced block
func (h *Heap) Write(hd types.HandleValue, i int, v types.Value) types.Result {
	b, ok := h.lookup(hd)
	if !ok {
		return types.Errf(types.F_INVALID_HANDLE, fmt.Sprintf("%s has been freed", hd))
	}
	if i < 0 || i >= len(b.slots) {
		return types.Errf(types.F_HEAP_OUT_OF_BOUNDS,
			fmt.Sprintf("index %d outside block of size %d", i, len(b.slots)))
	}
	b.slots[i] = v
	return types.Ok(types.Empty)
}

// Size returns the slot count of the referenced block
func (h *Heap) Size(hd types.HandleValue) (int, bool) {
	b, ok := h.lookup(hd)
	if !ok {
		return 0, false
	}
	return len(b.slots), true
}

// Live returns the number of live blocks
func (h *Heap) Live() int {
	n := 0
	for i := range h.blocks {
		if h.blocks[i].live {
			n++
		}
	}
	return n
}

// Render flattens a block into display text: Int slots become runes,
// Str slots append verbatim, Empty slots are skipped, anything else
// uses its display form.
func (h *Heap) Render(hd types.HandleValue) (string, bool) {
	b, ok := h.lookup(hd)
	if !ok {
		return "", false
	}
	var sb strings.Builder
	for _, v := range b.slots {
		switch v := v.(type) {
		case types.EmptyValue:
		case types.IntValue:
			sb.WriteRune(rune(v.Val))
		default:
			sb.WriteString(v.String())
		}
	}
	return sb.String(), true
}

// Dump renders every live block for the debug builtins
func (h *Heap) Dump() string {
	var sb strings.Builder
	for i := range h.blocks {
		b := &h.blocks[i]
		if !b.live {
			continue
		}
		fmt.Fprintf(&sb, "&%d.%d len=%d [", i, b.generation, len(b.slots))
		for j, v := range b.slots {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(v.String())
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
