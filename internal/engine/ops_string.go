package engine

import (
	"unicode/utf8"

	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/value"
)

func init() {
	dispatch[ir.CONCAT] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doConcat) }
	dispatch[ir.STRLEN] = func(e *Engine, i ir.Instruction) error { return unaryOp(e, i, doStrlen) }
	dispatch[ir.GETCHAR] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doGetChar) }
	dispatch[ir.STRI2INT] = func(e *Engine, i ir.Instruction) error { return binaryOp(e, i, doStri2Int) }
	dispatch[ir.INT2CHAR] = func(e *Engine, i ir.Instruction) error { return unaryOp(e, i, doInt2Char) }
	dispatch[ir.SETCHAR] = opSetChar
	dispatch[ir.TYPE] = opType
}

func doConcat(a, b value.Value) (value.Value, error) {
	if a.Tag != value.String || b.Tag != value.String {
		return value.Value{}, errcode.New(errcode.Types, "CONCAT operands must be string")
	}

	return value.NewString(a.S + b.S), nil
}

func doStrlen(a value.Value) (value.Value, error) {
	if a.Tag != value.String {
		return value.Value{}, errcode.New(errcode.Types, "STRLEN operand must be string")
	}

	return value.NewInt(int64(utf8.RuneCountInString(a.S))), nil
}

func doGetChar(a, b value.Value) (value.Value, error) {
	if a.Tag != value.String || b.Tag != value.Int {
		return value.Value{}, errcode.New(errcode.Types, "GETCHAR operands must be string, int")
	}

	runes := []rune(a.S)

	idx := int(b.I)
	if idx < 0 || idx >= len(runes) {
		return value.Value{}, errcode.New(errcode.StringErr, "GETCHAR index out of range")
	}

	return value.NewString(string(runes[idx])), nil
}

func doStri2Int(a, b value.Value) (value.Value, error) {
	if a.Tag != value.String || b.Tag != value.Int {
		return value.Value{}, errcode.New(errcode.Types, "STRI2INT operands must be string, int")
	}

	runes := []rune(a.S)

	idx := int(b.I)
	if idx < 0 || idx >= len(runes) {
		return value.Value{}, errcode.New(errcode.StringErr, "STRI2INT index out of range")
	}

	return value.NewInt(int64(runes[idx])), nil
}

func doInt2Char(a value.Value) (value.Value, error) {
	if a.Tag != value.Int {
		return value.Value{}, errcode.New(errcode.Types, "INT2CHAR operand must be int")
	}

	r := rune(a.I)
	if a.I < 0 || a.I > utf8.MaxRune || !utf8.ValidRune(r) {
		return value.Value{}, errcode.New(errcode.StringErr, "INT2CHAR value is not a valid Unicode scalar")
	}

	return value.NewString(string(r)), nil
}

// opSetChar is not a plain binaryOp: its destination operand is read as the
// source string as well as written as the result.
func opSetChar(e *Engine, instr ir.Instruction) error {
	dst := instr.Operands[0]

	current, err := e.resolveSymb(dst, false)
	if err != nil {
		return err
	}

	if current.Tag != value.String {
		return errcode.New(errcode.Types, "SETCHAR destination must be string")
	}

	idxVal, err := e.resolveSymb(instr.Operands[1], false)
	if err != nil {
		return err
	}

	srcVal, err := e.resolveSymb(instr.Operands[2], false)
	if err != nil {
		return err
	}

	if idxVal.Tag != value.Int || srcVal.Tag != value.String {
		return errcode.New(errcode.Types, "SETCHAR operands must be int, string")
	}

	if srcVal.S == "" {
		return errcode.New(errcode.StringErr, "SETCHAR source string is empty")
	}

	runes := []rune(current.S)

	idx := int(idxVal.I)
	if idx < 0 || idx >= len(runes) {
		return errcode.New(errcode.StringErr, "SETCHAR index out of range")
	}

	runes[idx] = []rune(srcVal.S)[0]

	return e.assign(dst, value.NewString(string(runes)))
}

// opType is the one reader that tolerates an undefined source slot.
func opType(e *Engine, instr ir.Instruction) error {
	v, err := e.resolveSymb(instr.Operands[1], true)
	if err != nil {
		return err
	}

	return e.assign(instr.Operands[0], value.NewString(value.TagName(v.Tag)))
}
