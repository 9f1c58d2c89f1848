package engine

import (
	"strings"

	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/value"
)

func init() {
	dispatch[ir.ADD] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doAdd) }
	dispatch[ir.SUB] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doSub) }
	dispatch[ir.MUL] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doMul) }
	dispatch[ir.IDIV] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doIdiv) }
	dispatch[ir.LT] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doLt) }
	dispatch[ir.GT] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doGt) }
	dispatch[ir.EQ] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doEq) }
	dispatch[ir.AND] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doAnd) }
	dispatch[ir.OR] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doOr) }
	dispatch[ir.NOT] = func(e *Engine, i ir.Instruction) error { return unaryOp(e, i, doNot) }
}

// binaryOp resolves an instruction's two symb operands, applies fn, and
// assigns the result to the destination var. Every three-operand
// value-producing opcode (arithmetic, relational, logical, most of string
// handling) shares this shape.
func binaryOp(e *Engine, instr ir.Instruction, fn func(a, b value.Value) (value.Value, error)) error {
	a, err := e.resolveSymb(instr.Operands[1], false)
	if err != nil {
		return err
	}

	b, err := e.resolveSymb(instr.Operands[2], false)
	if err != nil {
		return err
	}

	result, err := fn(a, b)
	if err != nil {
		return err
	}

	return e.assign(instr.Operands[0], result)
}

// unaryOp is binaryOp's one-operand counterpart (NOT, STRLEN, INT2CHAR, ...).
func unaryOp(e *Engine, instr ir.Instruction, fn func(a value.Value) (value.Value, error)) error {
	a, err := e.resolveSymb(instr.Operands[1], false)
	if err != nil {
		return err
	}

	result, err := fn(a)
	if err != nil {
		return err
	}

	return e.assign(instr.Operands[0], result)
}

func bothInt(a, b value.Value) (int64, int64, error) {
	if a.Tag != value.Int || b.Tag != value.Int {
		return 0, 0, errcode.New(errcode.Types, "operands must be int")
	}

	return a.I, b.I, nil
}

func bothBool(a, b value.Value) (bool, bool, error) {
	if a.Tag != value.Bool || b.Tag != value.Bool {
		return false, false, errcode.New(errcode.Types, "operands must be bool")
	}

	return a.B, b.B, nil
}

func doAdd(a, b value.Value) (value.Value, error) {
	x, y, err := bothInt(a, b)
	if err != nil {
		return value.Value{}, err
	}

	return value.NewInt(x + y), nil
}

func doSub(a, b value.Value) (value.Value, error) {
	x, y, err := bothInt(a, b)
	if err != nil {
		return value.Value{}, err
	}

	return value.NewInt(x - y), nil
}

func doMul(a, b value.Value) (value.Value, error) {
	x, y, err := bothInt(a, b)
	if err != nil {
		return value.Value{}, err
	}

	return value.NewInt(x * y), nil
}

func doIdiv(a, b value.Value) (value.Value, error) {
	x, y, err := bothInt(a, b)
	if err != nil {
		return value.Value{}, err
	}

	if y == 0 {
		return value.Value{}, errcode.New(errcode.ValueWrong, "division by zero")
	}

	return value.NewInt(x / y), nil
}

func doLt(a, b value.Value) (value.Value, error) {
	return compareOrdered(a, b, func(cmp int) bool { return cmp < 0 })
}

func doGt(a, b value.Value) (value.Value, error) {
	return compareOrdered(a, b, func(cmp int) bool { return cmp > 0 })
}

// compareOrdered compares two operands of identical, non-Nil tag using that
// tag's natural order and reports pred(cmp), the way LT and GT both do.
func compareOrdered(a, b value.Value, pred func(int) bool) (value.Value, error) {
	if a.Tag != b.Tag || a.Tag == value.Nil {
		return value.Value{}, errcode.New(errcode.Types, "LT/GT require matching non-nil tags")
	}

	var cmp int

	switch a.Tag {
	case value.Int:
		switch {
		case a.I < b.I:
			cmp = -1
		case a.I > b.I:
			cmp = 1
		}
	case value.String:
		cmp = strings.Compare(a.S, b.S)
	case value.Bool:
		switch {
		case a.B == b.B:
			cmp = 0
		case !a.B && b.B:
			cmp = -1
		default:
			cmp = 1
		}
	default:
		return value.Value{}, errcode.New(errcode.Types, "uncomparable tag")
	}

	return value.NewBool(pred(cmp)), nil
}

func doEq(a, b value.Value) (value.Value, error) {
	if a.Tag == value.Nil || b.Tag == value.Nil {
		return value.NewBool(a.Tag == b.Tag), nil
	}

	if a.Tag != b.Tag {
		return value.Value{}, errcode.New(errcode.Types, "EQ requires matching tags")
	}

	return value.NewBool(equalValues(a, b)), nil
}

func equalValues(a, b value.Value) bool {
	switch a.Tag {
	case value.Int:
		return a.I == b.I
	case value.Bool:
		return a.B == b.B
	case value.String:
		return a.S == b.S
	default:
		return true
	}
}

func doAnd(a, b value.Value) (value.Value, error) {
	x, y, err := bothBool(a, b)
	if err != nil {
		return value.Value{}, err
	}

	return value.NewBool(x && y), nil
}

func doOr(a, b value.Value) (value.Value, error) {
	x, y, err := bothBool(a, b)
	if err != nil {
		return value.Value{}, err
	}

	return value.NewBool(x || y), nil
}

func doNot(a value.Value) (value.Value, error) {
	if a.Tag != value.Bool {
		return value.Value{}, errcode.New(errcode.Types, "NOT operand must be bool")
	}

	return value.NewBool(!a.B), nil
}
