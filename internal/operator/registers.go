package operator

import "sync"

// DefaultRegister is the unnamed register used when no register is
// specified, mirroring the editor convention.
const DefaultRegister = `"`

// Registers is a named store of line-oriented register content shared
// by yank, delete, put and distribute.
type Registers struct {
	mu   sync.RWMutex
	regs map[string][]string
}

// NewRegisters creates an empty register store.
func NewRegisters() *Registers {
	return &Registers{regs: make(map[string][]string)}
}

// Set replaces the register's content.
func (r *Registers) Set(name string, lines []string) {
	if name == "" {
		name = DefaultRegister
	}
	copied := make([]string, len(lines))
	copy(copied, lines)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs[name] = copied
}

// Get returns a copy of the register's content. Unset registers return
// nil.
func (r *Registers) Get(name string) []string {
	if name == "" {
		name = DefaultRegister
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	lines, ok := r.regs[name]
	if !ok {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Clear removes the register's content.
func (r *Registers) Clear(name string) {
	if name == "" {
		name = DefaultRegister
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.regs, name)
}
