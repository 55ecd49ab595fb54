package machine

// CallFrame records one active invocation: the Closure being executed, the
// instruction offset within its Function's chunk, and the VM-stack index at
// which this frame's locals begin (slot 0 is the closure itself, slots
// 1..=arity are its arguments).
type CallFrame struct {
	closure  *Closure
	ip       int
	slotBase int
}
