package engine

import (
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/value"
)

func init() {
	dispatch[ir.CLEARS] = opClears
	dispatch[ir.ADDS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doAdd) }
	dispatch[ir.SUBS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doSub) }
	dispatch[ir.MULS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doMul) }
	dispatch[ir.IDIVS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doIdiv) }
	dispatch[ir.LTS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doLt) }
	dispatch[ir.GTS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doGt) }
	dispatch[ir.EQS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doEq) }
	dispatch[ir.ANDS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doAnd) }
	dispatch[ir.ORS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doOr) }
	dispatch[ir.NOTS] = func(e *Engine, i ir.Instruction) error { return unaryStack(e, doNot) }
	dispatch[ir.INT2CHARS] = func(e *Engine, i ir.Instruction) error { return unaryStack(e, doInt2Char) }
	dispatch[ir.STRI2INTS] = func(e *Engine, i ir.Instruction) error { return binaryStack(e, doStri2Int) }
	dispatch[ir.JUMPIFEQS] = func(e *Engine, i ir.Instruction) error { return stackJumpIf(e, i, true) }
	dispatch[ir.JUMPIFNEQS] = func(e *Engine, i ir.Instruction) error { return stackJumpIf(e, i, false) }
}

func opClears(e *Engine, _ ir.Instruction) error {
	e.DataStack = e.DataStack[:0]
	return nil
}

// binaryStack pops two operands (second-popped is the left operand),
// applies fn, and pushes the result — the stack-operand counterpart of the
// named instruction's register-operand form.
func binaryStack(e *Engine, fn func(a, b value.Value) (value.Value, error)) error {
	a, b, err := e.pop2()
	if err != nil {
		return err
	}

	result, err := fn(a, b)
	if err != nil {
		return err
	}

	e.push(result)

	return nil
}

func unaryStack(e *Engine, fn func(a value.Value) (value.Value, error)) error {
	a, err := e.pop1()
	if err != nil {
		return err
	}

	result, err := fn(a)
	if err != nil {
		return err
	}

	e.push(result)

	return nil
}

func stackJumpIf(e *Engine, instr ir.Instruction, wantEqual bool) error {
	a, b, err := e.pop2()
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
