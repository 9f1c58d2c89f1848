// Package interp wires the loader, the label pre-pass and the execution
// engine together and implements the error reporter of spec.md §4.6: it
// classifies every failure into one of the nine exit codes and writes a
// one-line message to standard error.
package interp

import (
	"errors"
	"fmt"
	"io"

	"github.com/ippcode/ippc21/internal/engine"
	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/labels"
	"github.com/ippcode/ippc21/internal/loader"
	"github.com/ippcode/ippc21/internal/log"
)

// Run loads, validates and executes an IPPcode21 program read from source,
// consuming input as the program's standard input. It returns the process
// exit code: 0 on normal completion, the program's own EXIT code, or one of
// the nine codes in errcode on a classified failure.
func Run(source, input io.Reader, stdout, stderr io.Writer, logger *log.Logger) int {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	prog, err := loader.Load(source)
	if err != nil {
		return report(err, stderr, logger)
	}

	lm, err := labels.Build(prog)
	if err != nil {
		return report(errcode.Wrap(errcode.Sem, err), stderr, logger)
	}

	eng := engine.New(engine.Config{
		Program: prog,
		Labels:  lm,
		Stdin:   input,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
	})

	logger.Info("starting execution", log.Any("instructions", prog.Len()))

	exit, err := eng.Run()
	if err != nil {
		return report(err, stderr, logger)
	}

	logger.Info("execution halted", log.Any("exit", exit))

	return exit
}

// report formats err to stderr and returns the exit code the process must
// terminate with.
func report(err error, stderr io.Writer, logger *log.Logger) int {
	var coded *errcode.Error
	if errors.As(err, &coded) {
		fmt.Fprintf(stderr, "ippc21: %s\n", coded.Error())
		logger.Error("fatal error", log.Any("code", int(coded.Code)))

		return int(coded.Code)
	}

	fmt.Fprintf(stderr, "ippc21: %s\n", err)
	logger.Error("fatal error", log.Any("err", err.Error()))

	return int(errcode.InvalidStruct)
}
