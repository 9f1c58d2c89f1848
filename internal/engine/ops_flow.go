package engine

import (
	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/value"
)

func init() {
	dispatch[ir.LABEL] = opLabel
	dispatch[ir.JUMP] = opJump
	dispatch[ir.JUMPIFEQ] = func(e *Engine, i ir.Instruction) error { return jumpIf(e, i, true) }
	dispatch[ir.JUMPIFNEQ] = func(e *Engine, i ir.Instruction) error { return jumpIf(e, i, false) }
	dispatch[ir.CALL] = opCall
	dispatch[ir.RETURN] = opReturn
	dispatch[ir.EXIT] = opExit
}

// opLabel is a no-op at run time: labels are resolved in the pre-pass
// (internal/labels) before execution begins.
func opLabel(_ *Engine, _ ir.Instruction) error { return nil }

func opJump(e *Engine, instr ir.Instruction) error {
	return e.jumpTo(instr.Operands[0].Text)
}

func jumpIf(e *Engine, instr ir.Instruction, wantEqual bool) error {
	a, err := e.resolveSymb(instr.Operands[1], false)
	if err != nil {
		return err
	}

	b, err := e.resolveSymb(instr.Operands[2], false)
	if err != nil {
		return err
	}

	eq, err := doEq(a, b)
	if err != nil {
		return err
	}

	if eq.B == wantEqual {
		return e.jumpTo(instr.Operands[0].Text)
	}

	return nil
}

func opCall(e *Engine, instr ir.Instruction) error {
	e.CallStack = append(e.CallStack, e.PC)

	if err := e.jumpTo(instr.Operands[0].Text); err != nil {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
		return err
	}

	return nil
}

func opReturn(e *Engine, _ ir.Instruction) error {
	n := len(e.CallStack)
	if n == 0 {
		return errcode.New(errcode.ValueMissing, "RETURN with empty call stack")
	}

	e.PC = e.CallStack[n-1]
	e.CallStack = e.CallStack[:n-1]

	return nil
}

func opExit(e *Engine, instr ir.Instruction) error {
	v, err := e.resolveSymb(instr.Operands[0], false)
	if err != nil {
		return err
	}

	if v.Tag != value.Int {
		return errcode.New(errcode.Types, "EXIT operand must be int")
	}

	if v.I < 0 || v.I > 49 {
		return errcode.New(errcode.ValueWrong, "EXIT code out of range [0,49]")
	}

	return &ExitRequest{Code: int(v.I)}
}
