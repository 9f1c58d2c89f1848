// Package engine implements the execution engine of spec.md §4.5: the
// run-time state (frame registers, data stack, call stack, program counter)
// and the per-opcode dispatch that drives it.
package engine

import (
	"bufio"
	"errors"
	"io"

	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/labels"
	"github.com/ippcode/ippc21/internal/log"
	"github.com/ippcode/ippc21/internal/value"
)

// Engine holds the complete mutable state of a running program: its frame
// registers, its two auxiliary stacks, its program counter, and the streams
// it reads from and writes to.
type Engine struct {
	Regs *Registers

	DataStack []value.Value
	CallStack []int

	Program *ir.Program
	Labels  labels.Map
	PC      int

	stdin  *bufio.Scanner
	stdout io.Writer
	stderr io.Writer

	log *log.Logger
}

// Config bundles the external collaborators an Engine needs: the loaded
// program, its label index, and the three streams named in spec.md §6.
type Config struct {
	Program *ir.Program
	Labels  labels.Map
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *log.Logger
}

// New builds an Engine ready to Run, with an empty GF and no active TF/LF.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Engine{
		Regs:    NewRegisters(),
		Program: cfg.Program,
		Labels:  cfg.Labels,
		stdin:   bufio.NewScanner(cfg.Stdin),
		stdout:  cfg.Stdout,
		stderr:  cfg.Stderr,
		log:     logger,
	}
}

// ExitRequest is returned by the EXIT handler to unwind Run's dispatch loop
// with a specific process exit code, distinct from a fatal errcode.Error.
type ExitRequest struct {
	Code int
}

func (e *ExitRequest) Error() string { return "program requested exit" }

// Run dispatches instructions starting at PC=0 until the program counter
// runs off the end, an ExitRequest unwinds the loop, or a handler returns a
// fatal error.
func (e *Engine) Run() (int, error) {
	for e.PC < e.Program.Len() {
		instr := e.Program.At(e.PC)
		e.PC++

		handler, ok := dispatch[instr.Opcode]
		if !ok {
			return 0, errcode.New(errcode.InvalidStruct, "no handler registered for "+instr.Opcode.String())
		}

		e.log.Debug("executing instruction", log.String("opcode", instr.Opcode.String()), log.Any("pc", e.PC-1))

		if err := handler(e, instr); err != nil {
			var exit *ExitRequest
			if errors.As(err, &exit) {
				return exit.Code, nil
			}

			return 0, err
		}
	}

	return 0, nil
}
