package main

import (
	"bufio"
	"fmt"
	"os"

	"fortio.org/log"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/repl"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(2)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [flags] [line ...]",
		Short: "A calculator with variables and implicit multiplication",
		Long: `calc calculates arithmetic lines like "2x + 1" or "r = sqrt(a^2 + b^2)".

Each argument is calculated as a line, in order, in one session. With no
arguments, calc reads lines from the input file, or from standard input,
prompting for them when it is a terminal.

Settings may also come from environment variables named like CALC_DIGITS.
CALC_GIVEN separates definitions with semicolons.`,
		SilenceUsage: true,
		RunE:         run,
	}
	flags := cmd.Flags()
	flags.Int("digits", repl.DefaultDigits, "places after the point in results")
	flags.Bool("echo", false, "print parse trees")
	flags.String("in", "", "input file, - for stdin (default stdin if no args given)")
	flags.StringSlice("given", nil, "name=value variable definition (any number of times)")
	flags.BoolP("interactive", "i", false, "prompt for lines even if stdin is not a terminal")
	flags.String("log-level", "info", "log level: debug, verbose, info, warning, error")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	log.Config.LogFileAndLine = false
	if err := log.SetLogLevelStr(cfg.logLevel); err != nil {
		return err
	}

	cl := calc.New()
	for _, g := range cfg.given {
		name, value, err := preset(g)
		if err != nil {
			return err
		}
		v, err := calc.EvalString(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		log.LogVf("given %s = %g", name, v)
		cl.SetVar(name, v)
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	tty := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if !tty {
		text.DisableColors()
	}
	r := repl.New(cl, stdout, stderr)
	r.Digits = int32(cfg.digits)
	r.Echo = cfg.echo

	for _, arg := range args {
		if r.Interpret(arg) {
			return nil
		}
	}
	in, err := infile(cfg.in, len(args) == 0)
	if err != nil {
		return err
	}
	switch {
	case cfg.interactive || (in == os.Stdin && tty):
		return r.Prompt()
	case in != nil:
		if in != os.Stdin {
			defer in.Close()
		}
		return r.Batch(bufio.NewReader(in))
	}
	return nil
}

// infile opens the named input. std selects stdin when no name is given.
func infile(name string, std bool) (*os.File, error) {
	switch {
	case name != "" && name != "-":
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		return f, nil
	case name == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
