// Command ippc21 interprets an IPPcode21 XML program.
package main

import (
	"fmt"
	"os"

	"github.com/ippcode/ippc21/internal/cli"
	"github.com/ippcode/ippc21/internal/interp"
	"github.com/ippcode/ippc21/internal/log"
)

func main() {
	cfg, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ippc21:", err)
		os.Exit(2)
	}

	cfg.ApplyLogging()

	source, input, err := cfg.Streams()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ippc21:", err)
		os.Exit(2)
	}

	defer source.Close()
	defer input.Close()

	logger := log.NewFormattedLogger(os.Stderr)
	log.SetDefault(logger)

	os.Exit(interp.Run(source, input, os.Stdout, os.Stderr, logger))
}
