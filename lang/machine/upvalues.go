package machine

import (
	"golang.org/x/exp/slices"

	"github.com/mna/lumen/lang/value"
)

// openUpvalues is the VM's list of upvalues that still point into the live
// operand stack, kept sorted by slot descending: newest (highest slot)
// first.
type openUpvalues struct {
	list []*Upvalue
}

// captureUpvalue returns the open upvalue for slot, creating and inserting
// one in sorted position if none exists yet.
func (ov *openUpvalues) captureUpvalue(slot int) *Upvalue {
	i, found := slices.BinarySearchFunc(ov.list, slot, func(u *Upvalue, slot int) int {
		// ov.list is sorted by slot descending, i.e. by -slot ascending.
		return slot - u.slot
	})
	if found {
		return ov.list[i]
	}

	uv := &Upvalue{slot: slot}
	ov.list = slices.Insert(ov.list, i, uv)
	return uv
}

// closeUpvaluesFrom closes every open upvalue pointing at a slot >= from,
// copying its value out of the stack into its own storage and removing it
// from the open list. stack is the VM's operand stack.
func (ov *openUpvalues) closeUpvaluesFrom(from int, stack []value.Value) {
	i := 0
	for i < len(ov.list) && ov.list[i].slot >= from {
		uv := ov.list[i]
		v := stack[uv.slot]
		uv.closed = &v
		i++
	}
	ov.list = ov.list[i:]
}
