package machine

import (
	"time"

	"github.com/mna/lumen/lang/value"
)

// defineNatives registers every native function available to every program,
// as globals, exactly as if `var clock = <native fn clock>;` had executed
// before the program's first statement.
func (vm *VM) defineNatives() {
	vm.globals.Set("clock", NativeFunction{
		Name: "clock",
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
}
