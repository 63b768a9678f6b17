package lua

import lua "github.com/yuin/gopher-lua"

// sandbox strips the Lua environment of primitives that reach outside
// the process: file loading, shell access, and disk-backed require.
// Operator functions only transform text; they never need any of it.
func sandbox(L *lua.LState) {
	removed := []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
	}
	for _, name := range removed {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)

	// Keep require for the built-in pure modules only: clearing the
	// search paths prevents loading anything from disk.
	pkg := L.GetGlobal("package")
	if pkgTable, ok := pkg.(*lua.LTable); ok {
		L.SetField(pkgTable, "path", lua.LString(""))
		L.SetField(pkgTable, "cpath", lua.LString(""))
	}
}
