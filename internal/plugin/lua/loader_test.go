package lua

import (
	"strings"
	"testing"

	"github.com/dshills/occur/internal/operator"
)

func TestRegisterFromLua(t *testing.T) {
	reg := operator.NewRegistry()
	ld := NewLoader(reg)
	defer ld.Close()

	src := `
occur.register("shout", function(lines, index, total)
    return string.upper(lines[1]) .. "!"
end)
`
	if err := ld.LoadString(src); err != nil {
		t.Fatalf("load: %v", err)
	}

	op, ok := reg.Get("shout")
	if !ok {
		t.Fatal("expected shout registered")
	}

	out, apply := op.Fn(&operator.Context{Total: 1}, []string{"hello"})
	if !apply || len(out) != 1 || out[0] != "HELLO!" {
		t.Errorf("expected [HELLO!], got %q apply=%v", out, apply)
	}
}

func TestLuaTableReturn(t *testing.T) {
	reg := operator.NewRegistry()
	ld := NewLoader(reg)
	defer ld.Close()

	src := `
occur.register("dup", function(lines)
    return {lines[1], lines[1]}
end)
`
	if err := ld.LoadString(src); err != nil {
		t.Fatalf("load: %v", err)
	}

	op, _ := reg.Get("dup")
	out, apply := op.Fn(&operator.Context{Total: 1}, []string{"x"})
	if !apply || strings.Join(out, "|") != "x|x" {
		t.Errorf("expected [x x], got %q apply=%v", out, apply)
	}
}

func TestLuaNilSkips(t *testing.T) {
	reg := operator.NewRegistry()
	ld := NewLoader(reg)
	defer ld.Close()

	src := `
occur.register("never", function(lines)
    return nil
end)
`
	if err := ld.LoadString(src); err != nil {
		t.Fatalf("load: %v", err)
	}

	op, _ := reg.Get("never")
	if _, apply := op.Fn(&operator.Context{Total: 1}, []string{"x"}); apply {
		t.Error("nil return should skip the occurrence")
	}
}

func TestLuaReceivesIndexAndTotal(t *testing.T) {
	reg := operator.NewRegistry()
	ld := NewLoader(reg)
	defer ld.Close()

	src := `
occur.register("position", function(lines, index, total)
    return tostring(index) .. "/" .. tostring(total)
end)
`
	if err := ld.LoadString(src); err != nil {
		t.Fatalf("load: %v", err)
	}

	op, _ := reg.Get("position")
	out, apply := op.Fn(&operator.Context{Index: 1, Total: 3}, []string{"x"})
	if !apply || out[0] != "2/3" {
		t.Errorf("expected 1-based 2/3, got %q apply=%v", out, apply)
	}
}

func TestLuaErrorSkips(t *testing.T) {
	reg := operator.NewRegistry()
	ld := NewLoader(reg)
	defer ld.Close()

	src := `
occur.register("broken", function(lines)
    error("kaboom")
end)
`
	if err := ld.LoadString(src); err != nil {
		t.Fatalf("load: %v", err)
	}

	op, _ := reg.Get("broken")
	if _, apply := op.Fn(&operator.Context{Total: 1}, []string{"x"}); apply {
		t.Error("a failing lua function should skip, not apply")
	}
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := operator.NewRegistry()
	ld := NewLoader(reg)
	defer ld.Close()

	src := `occur.register("twice", function(lines) return lines end)`
	if err := ld.LoadString(src); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := ld.LoadString(src); err == nil {
		t.Error("expected duplicate registration to error")
	}
}

func TestClosedLoaderSkips(t *testing.T) {
	reg := operator.NewRegistry()
	ld := NewLoader(reg)

	src := `occur.register("late", function(lines) return lines[1] end)`
	if err := ld.LoadString(src); err != nil {
		t.Fatalf("load: %v", err)
	}

	ld.Close()
	ld.Close() // idempotent

	op, _ := reg.Get("late")
	if _, apply := op.Fn(&operator.Context{Total: 1}, []string{"x"}); apply {
		t.Error("operators should become inert after Close")
	}

	if err := ld.LoadString(`x = 1`); err == nil {
		t.Error("expected load on closed loader to fail")
	}
}

func TestSandboxBlocksIO(t *testing.T) {
	reg := operator.NewRegistry()
	ld := NewLoader(reg)
	defer ld.Close()

	for _, src := range []string{
		`io.open("/etc/passwd")`,
		`os.execute("true")`,
		`dofile("x.lua")`,
		`loadstring("return 1")()`,
	} {
		if err := ld.LoadString(src); err == nil {
			t.Errorf("expected sandbox to reject %q", src)
		}
	}
}
