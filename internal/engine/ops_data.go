package engine

import "github.com/ippcode/ippc21/internal/ir"

func init() {
	dispatch[ir.MOVE] = opMove
	dispatch[ir.CREATEFRAME] = opCreateFrame
	dispatch[ir.PUSHFRAME] = opPushFrame
	dispatch[ir.POPFRAME] = opPopFrame
	dispatch[ir.DEFVAR] = opDefvar
	dispatch[ir.PUSHS] = opPushs
	dispatch[ir.POPS] = opPops
}

func opMove(e *Engine, instr ir.Instruction) error {
	v, err := e.resolveSymb(instr.Operands[1], false)
	if err != nil {
		return err
	}

	return e.assign(instr.Operands[0], v)
}

func opCreateFrame(e *Engine, _ ir.Instruction) error {
	e.Regs.CreateFrame()
	return nil
}

func opPushFrame(e *Engine, _ ir.Instruction) error {
	return e.Regs.PushFrame()
}

func opPopFrame(e *Engine, _ ir.Instruction) error {
	return e.Regs.PopFrame()
}

func opDefvar(e *Engine, instr ir.Instruction) error {
	return e.define(instr.Operands[0])
}

func opPushs(e *Engine, instr ir.Instruction) error {
	v, err := e.resolveSymb(instr.Operands[0], false)
	if err != nil {
		return err
	}

	e.push(v)

	return nil
}

func opPops(e *Engine, instr ir.Instruction) error {
	v, err := e.pop1()
	if err != nil {
		return err
	}

	return e.assign(instr.Operands[0], v)
}
