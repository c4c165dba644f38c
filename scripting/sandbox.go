// Package scripting runs enemy behaviors written in Lua inside a sandboxed
// GopherLua VM and registers them with the enemy AI registry.
package scripting

import (
	"context"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget for one script call when no
// override is configured.
const DefaultInstructionLimit = 20_000

// countingContext cancels itself after Done has been called limit times.
// GopherLua calls Done once per opcode, so this is an exact opcode budget.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining int64
}

func (c *countingContext) Done() <-chan struct{} {
	c.remaining--
	if c.remaining <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newCountingContext returns a context that cancels after limit calls to
// Done. A limit <= 0 uses DefaultInstructionLimit.
func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	base, cancel := context.WithCancel(context.Background())
	return &countingContext{Context: base, cancel: cancel, remaining: int64(limit)}, cancel
}

// NewSandboxedState creates an LState with only the base, table, string and
// math libraries and without the globals that reach the filesystem or the
// collector. The caller must Close it.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// withLimit runs fn with L bounded to limit opcodes.
func withLimit(L *lua.LState, limit int, fn func() error) error {
	ctx, cancel := newCountingContext(limit)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()
	return fn()
}
