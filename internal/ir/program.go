package ir

import (
	"fmt"
	"sort"
)

// Instruction is one opcode with its ordering key and operands.
type Instruction struct {
	Opcode   Opcode
	Order    int
	Operands []Operand
}

// Program is the ordered sequence of instructions that makes up a loaded
// IPPcode21 document, sorted ascending by Order.
type Program struct {
	Instructions []Instruction
}

// ErrDuplicateOrder is returned by Sort when two instructions share an
// ordering key.
type ErrDuplicateOrder struct {
	Order int
}

func (e *ErrDuplicateOrder) Error() string {
	return fmt.Sprintf("duplicate instruction order %d", e.Order)
}

// Sort orders instructions ascending by Order and rejects duplicates. Order
// values were already checked to be positive by the loader.
func Sort(instrs []Instruction) (*Program, error) {
	sorted := make([]Instruction, len(instrs))
	copy(sorted, instrs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Order == sorted[i-1].Order {
			return nil, &ErrDuplicateOrder{Order: sorted[i].Order}
		}
	}

	return &Program{Instructions: sorted}, nil
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int { return len(p.Instructions) }

// At returns the instruction at position i (0-based, post-sort).
func (p *Program) At(i int) Instruction { return p.Instructions[i] }
