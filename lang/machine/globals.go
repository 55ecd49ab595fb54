package machine

import (
	"github.com/dolthub/swiss"
	"github.com/mna/lumen/lang/value"
)

// Globals is the VM-scoped mapping from global variable name to value,
// backed by a swiss-table hash map rather than a bare Go map. It lives for
// the lifetime of a single VM, not the Go process.
type Globals struct {
	m *swiss.Map[string, value.Value]
}

// NewGlobals returns an empty globals table.
func NewGlobals() *Globals {
	return &Globals{m: swiss.NewMap[string, value.Value](32)}
}

func (g *Globals) Get(name string) (value.Value, bool) {
	return g.m.Get(name)
}

func (g *Globals) Set(name string, v value.Value) {
	g.m.Put(name, v)
}

// Assign sets name to v only if it already exists, reporting whether it
// did; used by OpSetGlobal, which must runtime-error on an undefined name
// rather than silently creating it.
func (g *Globals) Assign(name string, v value.Value) bool {
	if _, ok := g.m.Get(name); !ok {
		return false
	}
	g.m.Put(name, v)
	return true
}
