package engine_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippcode/ippc21/internal/engine"
	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/labels"
	"github.com/ippcode/ippc21/internal/value"
)

const (
	errcodeValueWrong = errcode.ValueWrong
	errcodeFrame      = errcode.Frame
)

func assertExitCode(t *testing.T, err error, want errcode.Code) {
	t.Helper()

	var coded *errcode.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, want, coded.Code)
}

func varOp(tag value.FrameTag, name string) ir.Operand {
	return ir.Operand{Kind: ir.KindVar, FrameTag: tag, Name: name}
}

func intOp(n int64) ir.Operand {
	return ir.Operand{Kind: ir.KindInt, Literal: value.NewInt(n)}
}

func strOp(s string) ir.Operand {
	return ir.Operand{Kind: ir.KindString, Literal: value.NewString(s)}
}

func nilOp() ir.Operand {
	return ir.Operand{Kind: ir.KindNil, Literal: value.NewNil()}
}

func labelOp(name string) ir.Operand {
	return ir.Operand{Kind: ir.KindLabel, Text: name}
}

// build assigns a dense Order to each instruction and runs them through the
// same ir.Sort/labels.Build pipeline interp.Run uses, without going
// through XML.
func build(t *testing.T, instrs ...ir.Instruction) (*ir.Program, labels.Map) {
	t.Helper()

	for i := range instrs {
		instrs[i].Order = i + 1
	}

	prog, err := ir.Sort(instrs)
	require.NoError(t, err)

	lm, err := labels.Build(prog)
	require.NoError(t, err)

	return prog, lm
}

func runProgram(t *testing.T, prog *ir.Program, lm labels.Map, stdin string) (stdout, stderr string, exit int, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	e := engine.New(engine.Config{
		Program: prog,
		Labels:  lm,
		Stdin:   strings.NewReader(stdin),
		Stdout:  &outBuf,
		Stderr:  &errBuf,
	})

	exit, err = e.Run()

	return outBuf.String(), errBuf.String(), exit, err
}

func TestHelloWorld(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.DEFVAR, Operands: []ir.Operand{varOp(value.GF, "x")}},
		ir.Instruction{Opcode: ir.MOVE, Operands: []ir.Operand{varOp(value.GF, "x"), strOp("hello")}},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{varOp(value.GF, "x")}},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{strOp(" world")}},
	)

	stdout, _, exit, err := runProgram(t, prog, lm, "")
	require.NoError(t, err)
	assert.Equal(t, 0, exit)
	assert.Equal(t, "hello world", stdout)
}

func TestArithmetic(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.DEFVAR, Operands: []ir.Operand{varOp(value.GF, "r")}},
		ir.Instruction{Opcode: ir.ADD, Operands: []ir.Operand{varOp(value.GF, "r"), intOp(7), intOp(5)}},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{varOp(value.GF, "r")}},
	)

	stdout, _, exit, err := runProgram(t, prog, lm, "")
	require.NoError(t, err)
	assert.Equal(t, 0, exit)
	assert.Equal(t, "12", stdout)
}

func TestDivisionByZero(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.DEFVAR, Operands: []ir.Operand{varOp(value.GF, "r")}},
		ir.Instruction{Opcode: ir.IDIV, Operands: []ir.Operand{varOp(value.GF, "r"), intOp(1), intOp(0)}},
	)

	_, _, _, err := runProgram(t, prog, lm, "")
	require.Error(t, err)
	assertExitCode(t, err, errcodeValueWrong)
}

func TestFrameLifecycle(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.CREATEFRAME},
		ir.Instruction{Opcode: ir.DEFVAR, Operands: []ir.Operand{varOp(value.TF, "a")}},
		ir.Instruction{Opcode: ir.MOVE, Operands: []ir.Operand{varOp(value.TF, "a"), intOp(3)}},
		ir.Instruction{Opcode: ir.PUSHFRAME},
		ir.Instruction{Opcode: ir.DEFVAR, Operands: []ir.Operand{varOp(value.LF, "a")}},
		ir.Instruction{Opcode: ir.MOVE, Operands: []ir.Operand{varOp(value.LF, "a"), intOp(4)}},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{varOp(value.LF, "a")}},
		ir.Instruction{Opcode: ir.POPFRAME},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{varOp(value.TF, "a")}},
	)

	stdout, _, exit, err := runProgram(t, prog, lm, "")
	require.NoError(t, err)
	assert.Equal(t, 0, exit)
	assert.Equal(t, "43", stdout)
}

func TestCallReturn(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.JUMP, Operands: []ir.Operand{labelOp("main")}},
		ir.Instruction{Opcode: ir.LABEL, Operands: []ir.Operand{labelOp("sub")}},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{strOp("sub")}},
		ir.Instruction{Opcode: ir.RETURN},
		ir.Instruction{Opcode: ir.LABEL, Operands: []ir.Operand{labelOp("main")}},
		ir.Instruction{Opcode: ir.CALL, Operands: []ir.Operand{labelOp("sub")}},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{strOp("end")}},
	)

	stdout, _, exit, err := runProgram(t, prog, lm, "")
	require.NoError(t, err)
	assert.Equal(t, 0, exit)
	assert.Equal(t, "subend", stdout)
}

func TestEqWithNil(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.DEFVAR, Operands: []ir.Operand{varOp(value.GF, "r")}},
		ir.Instruction{Opcode: ir.EQ, Operands: []ir.Operand{varOp(value.GF, "r"), nilOp(), intOp(1)}},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{varOp(value.GF, "r")}},
	)

	stdout, _, exit, err := runProgram(t, prog, lm, "")
	require.NoError(t, err)
	assert.Equal(t, 0, exit)
	assert.Equal(t, "false", stdout)
}

func TestExitRange(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.EXIT, Operands: []ir.Operand{intOp(7)}},
	)

	_, _, exit, err := runProgram(t, prog, lm, "")
	require.NoError(t, err)
	assert.Equal(t, 7, exit)
}

func TestExitOutOfRangeFails(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.EXIT, Operands: []ir.Operand{intOp(50)}},
	)

	_, _, _, err := runProgram(t, prog, lm, "")
	require.Error(t, err)
	assertExitCode(t, err, errcodeValueWrong)
}

func TestReadAndStackOps(t *testing.T) {
	prog, lm := build(t,
		ir.Instruction{Opcode: ir.DEFVAR, Operands: []ir.Operand{varOp(value.GF, "n")}},
		ir.Instruction{Opcode: ir.READ, Operands: []ir.Operand{varOp(value.GF, "n"), ir.Operand{Kind: ir.KindType, Text: "int"}}},
		ir.Instruction{Opcode: ir.PUSHS, Operands: []ir.Operand{varOp(value.GF, "n")}},
		ir.Instruction{Opcode: ir.PUSHS, Operands: []ir.Operand{intOp(10)}},
		ir.Instruction{Opcode: ir.ADDS},
		ir.Instruction{Opcode: ir.POPS, Operands: []ir.Operand{varOp(value.GF, "n")}},
		ir.Instruction{Opcode: ir.WRITE, Operands: []ir.Operand{varOp(value.GF, "n")}},
	)

	stdout, _, exit, err := runProgram(t, prog, lm, "32\n")
	require.NoError(t, err)
	assert.Equal(t, 0, exit)
	assert.Equal(t, "42", stdout)
}
