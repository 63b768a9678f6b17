package lua

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/occur/internal/log"
	"github.com/dshills/occur/internal/operator"
)

// Loader hosts a sandboxed Lua state and turns Lua functions into
// operators in a registry.
//
// gopher-lua's LState is not goroutine-safe. The engine drives each
// command synchronously, so the Loader serializes all Lua execution
// behind a mutex rather than a worker goroutine.
type Loader struct {
	mu     sync.Mutex
	L      *lua.LState
	reg    *operator.Registry
	log    *log.Logger
	closed bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(l *log.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.log = l
	}
}

// NewLoader creates a loader registering Lua-defined operators into
// the given registry. The Lua environment is sandboxed: file, shell
// and module-loading primitives are removed.
func NewLoader(reg *operator.Registry, opts ...LoaderOption) *Loader {
	ld := &Loader{
		L:   lua.NewState(),
		reg: reg,
		log: log.Null,
	}
	for _, opt := range opts {
		opt(ld)
	}
	sandbox(ld.L)
	ld.installAPI()
	return ld
}

// Close releases the Lua state. Operators registered from Lua become
// inert skips after Close.
func (ld *Loader) Close() {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	if ld.closed {
		return
	}
	ld.closed = true
	ld.L.Close()
}

// LoadString executes a Lua chunk. The chunk registers operators by
// calling occur.register(name, fn).
func (ld *Loader) LoadString(src string) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	if ld.closed {
		return fmt.Errorf("lua loader is closed")
	}
	if err := ld.L.DoString(src); err != nil {
		return fmt.Errorf("load lua chunk: %w", err)
	}
	return nil
}

// LoadFile executes a Lua file. The file registers operators by
// calling occur.register(name, fn).
func (ld *Loader) LoadFile(path string) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	if ld.closed {
		return fmt.Errorf("lua loader is closed")
	}
	if err := ld.L.DoFile(path); err != nil {
		return fmt.Errorf("load lua file %s: %w", path, err)
	}
	return nil
}

// installAPI injects the occur table with the register function.
func (ld *Loader) installAPI() {
	tbl := ld.L.NewTable()
	ld.L.SetField(tbl, "register", ld.L.NewFunction(ld.luaRegister))
	ld.L.SetGlobal("occur", tbl)
}

// luaRegister implements occur.register(name, fn).
func (ld *Loader) luaRegister(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	op := operator.Op{
		Name: name,
		Fn:   ld.wrap(name, fn),
	}
	if err := ld.reg.Register(op); err != nil {
		L.RaiseError("register %q: %s", name, err.Error())
		return 0
	}
	ld.log.Debug("lua operator %q registered", name)
	return 0
}

// wrap adapts a Lua function to an operator.Fn. The Lua function
// receives (lines, index, total) with a 1-based index and returns a
// table of replacement lines, a single string, or nil/false to skip.
// Lua errors skip the occurrence rather than aborting the application.
func (ld *Loader) wrap(name string, fn *lua.LFunction) operator.Fn {
	return func(ctx *operator.Context, current []string) ([]string, bool) {
		ld.mu.Lock()
		defer ld.mu.Unlock()
		if ld.closed {
			return nil, false
		}

		linesTbl := ld.L.NewTable()
		for _, line := range current {
			linesTbl.Append(lua.LString(line))
		}

		err := ld.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, linesTbl, lua.LNumber(ctx.Index+1), lua.LNumber(ctx.Total))
		if err != nil {
			ld.log.Error("lua operator %q: %v", name, err)
			return nil, false
		}

		ret := ld.L.Get(-1)
		ld.L.Pop(1)
		return fromLua(ret)
	}
}

// fromLua converts an operator return value from Lua.
func fromLua(v lua.LValue) ([]string, bool) {
	switch val := v.(type) {
	case lua.LString:
		return []string{string(val)}, true
	case *lua.LTable:
		var out []string
		val.ForEach(func(_, item lua.LValue) {
			out = append(out, lua.LVAsString(item))
		})
		return out, true
	default:
		return nil, false
	}
}
