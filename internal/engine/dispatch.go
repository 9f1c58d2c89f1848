package engine

import (
	"errors"

	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/value"
)

// handler implements one opcode's run-time semantics against an Engine and
// the already-validated operands of the instruction being executed.
type handler func(*Engine, ir.Instruction) error

// dispatch maps every opcode to its handler. Each ops_*.go file registers
// its own slice of opcodes in an init function, so this table's population
// is spread across the files that know the semantics, not collected here.
var dispatch = map[ir.Opcode]handler{}

// classifyFrameErr promotes a *value.Frame sentinel error to the
// errcode-classified error the engine must terminate with.
func classifyFrameErr(err error) error {
	switch {
	case errors.Is(err, value.ErrRedefined):
		return errcode.Wrap(errcode.Sem, err)
	case errors.Is(err, value.ErrUndeclared):
		return errcode.Wrap(errcode.Var, err)
	case errors.Is(err, value.ErrNoValue):
		return errcode.Wrap(errcode.ValueMissing, err)
	default:
		return err
	}
}

// resolveSymb evaluates a symb operand: a variable reference is read from
// its frame (lenient only matters for TYPE, which tolerates an undefined
// slot); a literal operand's already-decoded Value is returned directly.
func (e *Engine) resolveSymb(op ir.Operand, lenient bool) (value.Value, error) {
	if !op.IsVar() {
		return op.Literal, nil
	}

	frame, err := e.Regs.FrameOf(op.FrameTag)
	if err != nil {
		return value.Value{}, err
	}

	v, err := frame.Read(op.Name, lenient)
	if err != nil {
		return value.Value{}, classifyFrameErr(err)
	}

	return v, nil
}

// frameOf resolves a var operand's frame register.
func (e *Engine) frameOf(op ir.Operand) (*value.Frame, error) {
	return e.Regs.FrameOf(op.FrameTag)
}

// define declares a var operand's name in its frame.
func (e *Engine) define(op ir.Operand) error {
	frame, err := e.frameOf(op)
	if err != nil {
		return err
	}

	if err := frame.Define(op.Name); err != nil {
		return classifyFrameErr(err)
	}

	return nil
}

// assign writes v into a var operand's slot.
func (e *Engine) assign(op ir.Operand, v value.Value) error {
	frame, err := e.frameOf(op)
	if err != nil {
		return err
	}

	if err := frame.Assign(op.Name, v); err != nil {
		return classifyFrameErr(err)
	}

	return nil
}

// push appends v to the data stack.
func (e *Engine) push(v value.Value) {
	e.DataStack = append(e.DataStack, v)
}

// pop1 removes and returns the top of the data stack.
func (e *Engine) pop1() (value.Value, error) {
	n := len(e.DataStack)
	if n == 0 {
		return value.Value{}, errcode.New(errcode.ValueMissing, "data stack underflow")
	}

	v := e.DataStack[n-1]
	e.DataStack = e.DataStack[:n-1]

	return v, nil
}

// pop2 removes the top two values and returns them as (left, right): the
// second-popped value is the left operand, per spec.md §4.5's stack-variant
// semantics.
func (e *Engine) pop2() (value.Value, value.Value, error) {
	right, err := e.pop1()
	if err != nil {
		return value.Value{}, value.Value{}, err
	}

	left, err := e.pop1()
	if err != nil {
		return value.Value{}, value.Value{}, err
	}

	return left, right, nil
}

// jumpTo resolves a label operand against the engine's label map, failing
// SEM if the label does not exist.
func (e *Engine) jumpTo(name string) error {
	pos, ok := e.Labels[name]
	if !ok {
		return errcode.New(errcode.Sem, "undefined label "+name)
	}

	e.PC = pos

	return nil
}
