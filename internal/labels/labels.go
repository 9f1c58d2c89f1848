// Package labels implements the two-pass label resolution of spec.md §4.4:
// a single linear pre-pass over the sorted instruction sequence that builds
// an immutable name-to-position map and rejects duplicates.
package labels

import (
	"fmt"

	"github.com/ippcode/ippc21/internal/ir"
)

// Map is the immutable mapping from label name to 0-based instruction
// position, built once before execution begins.
type Map map[string]int

// ErrDuplicateLabel is returned by Build when the same label name is
// declared more than once.
type ErrDuplicateLabel struct {
	Name string
}

func (e *ErrDuplicateLabel) Error() string {
	return fmt.Sprintf("duplicate label %q", e.Name)
}

// Build scans prog once, recording the position of every LABEL instruction.
// All other opcodes that reference labels are resolved at jump time, not
// here.
func Build(prog *ir.Program) (Map, error) {
	m := make(Map)

	for i := 0; i < prog.Len(); i++ {
		instr := prog.At(i)
		if instr.Opcode != ir.LABEL {
			continue
		}

		name := instr.Operands[0].Text

		if _, ok := m[name]; ok {
			return nil, &ErrDuplicateLabel{Name: name}
		}

		m[name] = i
	}

	return m, nil
}
