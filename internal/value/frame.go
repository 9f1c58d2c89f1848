package value

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors returned by Frame operations; the caller (internal/engine)
// attaches the exit-code classification.
var (
	// ErrRedefined is returned by Define when the variable already exists in
	// the frame.
	ErrRedefined = errors.New("variable already defined")

	// ErrUndeclared is returned by Assign and Read when the variable was
	// never Define'd in the frame.
	ErrUndeclared = errors.New("variable does not exist")

	// ErrNoValue is returned by Read when the slot is declared but
	// undefined, unless the lenient form is used.
	ErrNoValue = errors.New("variable has no value")
)

// Slot is a variable's storage cell: either undefined (declared, no value)
// or defined, carrying a Value.
type Slot struct {
	defined bool
	value   Value
}

// Frame is a mapping from variable name to Slot. Variables may only be
// added, never removed; redefinition is an error.
type Frame struct {
	vars map[string]*Slot
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{vars: make(map[string]*Slot)}
}

// Define adds a new, undefined variable to the frame. It fails with
// ErrRedefined if the name is already present.
func (f *Frame) Define(name string) error {
	if _, ok := f.vars[name]; ok {
		return ErrRedefined
	}

	f.vars[name] = &Slot{}

	return nil
}

// Assign replaces a declared variable's value. It fails with ErrUndeclared
// if the variable was never defined.
func (f *Frame) Assign(name string, v Value) error {
	slot, ok := f.vars[name]
	if !ok {
		return ErrUndeclared
	}

	slot.defined = true
	slot.value = v

	return nil
}

// Read returns a declared variable's value. If the slot is undefined, it
// fails with ErrNoValue unless lenient is true, in which case it returns the
// Empty-tagged zero Value used only by TYPE.
func (f *Frame) Read(name string, lenient bool) (Value, error) {
	slot, ok := f.vars[name]
	if !ok {
		return Value{}, ErrUndeclared
	}

	if !slot.defined {
		if lenient {
			return Value{Tag: Empty}, nil
		}

		return Value{}, ErrNoValue
	}

	return slot.value, nil
}

// DebugStrings renders the frame's variables in name order, one line per
// slot, for BREAK's diagnostic dump. Undefined slots are shown without a
// value.
func (f *Frame) DebugStrings() []string {
	names := make([]string, 0, len(f.vars))
	for name := range f.vars {
		names = append(names, name)
	}

	sort.Strings(names)

	lines := make([]string, len(names))

	for i, name := range names {
		slot := f.vars[name]
		if !slot.defined {
			lines[i] = fmt.Sprintf("%s = <undefined>", name)
			continue
		}

		lines[i] = fmt.Sprintf("%s = %#v", name, slot.value)
	}

	return lines
}
