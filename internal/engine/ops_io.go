package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/value"
)

func init() {
	dispatch[ir.READ] = opRead
	dispatch[ir.WRITE] = opWrite
	dispatch[ir.DPRINT] = opDprint
	dispatch[ir.BREAK] = opBreak
}

// opRead reads one line from the input stream, per spec.md §4.5: EOF yields
// Nil; a parse failure for "int" yields Nil rather than an error.
func opRead(e *Engine, instr ir.Instruction) error {
	dst := instr.Operands[0]
	wantType := instr.Operands[1].Text

	if !e.stdin.Scan() {
		return e.assign(dst, value.NewNil())
	}

	line := strings.TrimRight(e.stdin.Text(), "\r\n")

	switch wantType {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return e.assign(dst, value.NewNil())
		}

		return e.assign(dst, value.NewInt(n))

	case "bool":
		return e.assign(dst, value.NewBool(strings.EqualFold(line, "true")))

	case "string":
		return e.assign(dst, value.NewString(line))

	default:
		return errcode.New(errcode.InvalidStruct, "unknown READ type "+wantType)
	}
}

func opWrite(e *Engine, instr ir.Instruction) error {
	v, err := e.resolveSymb(instr.Operands[0], false)
	if err != nil {
		return err
	}

	fmt.Fprint(e.stdout, v.String())

	return nil
}

func opDprint(e *Engine, instr ir.Instruction) error {
	v, err := e.resolveSymb(instr.Operands[0], false)
	if err != nil {
		return err
	}

	fmt.Fprint(e.stderr, v.String())

	return nil
}

// opBreak dumps the current frame registers, stacks and program counter to
// standard error as a tree, the way a source-level debugger would.
func opBreak(e *Engine, _ ir.Instruction) error {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("pc=%d instructions=%d", e.PC, e.Program.Len()))

	gf := tree.AddBranch("GF")
	for _, line := range e.Regs.GF.DebugStrings() {
		gf.AddNode(line)
	}

	if e.Regs.TF != nil {
		tf := tree.AddBranch("TF")
		for _, line := range e.Regs.TF.DebugStrings() {
			tf.AddNode(line)
		}
	} else {
		tree.AddNode("TF: absent")
	}

	for i, frame := range e.Regs.LFStack {
		lf := tree.AddBranch(fmt.Sprintf("LF[%d]", i))
		for _, line := range frame.DebugStrings() {
			lf.AddNode(line)
		}
	}

	stack := tree.AddBranch(fmt.Sprintf("data stack (%d)", len(e.DataStack)))
	for i := len(e.DataStack) - 1; i >= 0; i-- {
		stack.AddNode(e.DataStack[i].GoString())
	}

	fmt.Fprintln(e.stderr, tree.String())

	return nil
}
