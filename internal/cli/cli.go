// Package cli resolves the two external streams named in spec.md §6 (the
// program source and its runtime input) from command-line flags, falling
// back to standard input per the flag's absence.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/ippcode/ippc21/internal/log"
)

// ErrBothStdin is returned by Parse when neither --source nor --input is
// given: both would default to standard input, which can only be consumed
// once.
var ErrBothStdin = errors.New("at least one of --source or --input is required; both cannot default to stdin")

// Config holds the parsed flags.
type Config struct {
	Source string
	Input  string
	Debug  bool
}

// Parse parses args, typically os.Args[1:], into a Config.
func Parse(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("ippc21", pflag.ContinueOnError)

	cfg := &Config{}

	fs.StringVar(&cfg.Source, "source", "", "path to the IPPcode21 XML program (default: stdin)")
	fs.StringVar(&cfg.Input, "input", "", "path to the runtime input file (default: stdin)")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging on stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Source == "" && cfg.Input == "" {
		return nil, ErrBothStdin
	}

	return cfg, nil
}

// Streams opens the source and input streams named by cfg, opening
// os.Stdin for whichever flag was left empty. The caller must close both.
func (cfg *Config) Streams() (source, input io.ReadCloser, err error) {
	source, err = openOrStdin(cfg.Source)
	if err != nil {
		return nil, nil, err
	}

	input, err = openOrStdin(cfg.Input)
	if err != nil {
		source.Close()
		return nil, nil, err
	}

	return source, input, nil
}

func openOrStdin(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

// ApplyLogging raises the package-level log level when --debug is set.
func (cfg *Config) ApplyLogging() {
	if cfg.Debug {
		log.LogLevel.Set(log.Debug)
	}
}
