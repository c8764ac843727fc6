// Package repl runs calculator sessions over a terminal or a stream of lines.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/zephyrtronium/calc"
)

var (
	welcome = "calc: type an expression, or help for commands"
	prompt  = text.FgGreen.Sprint("calc> ")
)

// REPL reads lines, runs built-in commands, and calculates everything else
// in one session.
type REPL struct {
	// Digits is the number of places after the point in printed results.
	Digits int32
	// Echo prints each line's parse tree before its result.
	Echo bool

	calc *calc.Calculator
	out  io.Writer
	errs io.Writer
	rl   *readline.Instance
	mode string
}

// New creates a REPL for a session. Results go to out and errors go to errs.
func New(c *calc.Calculator, out, errs io.Writer) *REPL {
	return &REPL{
		Digits: DefaultDigits,
		calc:   c,
		out:    out,
		errs:   errs,
		mode:   "emacs",
	}
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("bye"),
	readline.PcItem("quit"),
	readline.PcItem("exit"),
	readline.PcItem("vars"),
	readline.PcItem("tokens"),
	readline.PcItem("tree"),
	readline.PcItem("mode",
		readline.PcItem("vi"),
		readline.PcItem("emacs"),
	),
)

// Prompt reads lines from the terminal until end of input, an interrupt on an
// empty line, or an exit command.
func (r *REPL) Prompt() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         filepath.Join(os.TempDir(), "calc-repl-history.tmp"),
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("couldn't start terminal: %w", err)
	}
	defer rl.Close()
	r.rl = rl
	r.out, r.errs = rl.Stdout(), rl.Stderr()
	defer func() { r.rl = nil }()
	fmt.Fprintln(r.errs, welcome)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if r.Interpret(line) {
			fmt.Fprintln(r.errs, "goodbye")
			return nil
		}
	}
}

// Batch interprets each line of in without prompting until end of input or
// an exit command.
func (r *REPL) Batch(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if r.Interpret(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

// Interpret runs one line, which is either a built-in command or a line to
// calculate. The result is true if the line asks to end the session.
func (r *REPL) Interpret(line string) bool {
	line = strings.TrimSpace(line)
	var cmd, rest string
	if words := strings.Fields(line); len(words) > 0 {
		cmd = words[0]
		rest = strings.TrimSpace(line[len(cmd):])
	}
	log.LogVf("repl: command %q", cmd)
	switch cmd {
	case "":
		// nothing
	case "bye", "quit", "exit":
		return true
	case "help":
		r.help()
	case "vars":
		r.vars()
	case "tokens":
		toks, err := calc.Tokenize(rest)
		if err != nil {
			r.fail(err)
			break
		}
		if err := calc.FormatTokens(r.out, toks); err != nil {
			r.fail(err)
		}
	case "tree":
		a, err := calc.Parse(rest)
		if err != nil {
			r.fail(err)
			break
		}
		if err := a.Dump(r.out); err != nil {
			r.fail(err)
		}
	case "mode":
		r.setMode(rest)
	default:
		r.calculate(line)
	}
	return false
}

func (r *REPL) calculate(line string) {
	if r.Echo {
		if a, err := calc.Parse(line); err == nil {
			fmt.Fprintln(r.out, a)
		}
	}
	name, v, err := r.calc.Calc(line)
	if err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintf(r.out, "%s = %s\n", name, Format(v, r.Digits))
}

func (r *REPL) fail(err error) {
	log.Debugf("repl: %v", err)
	fmt.Fprintln(r.errs, text.FgRed.Sprint("error: "+err.Error()))
}

func (r *REPL) help() {
	io.WriteString(r.errs, `Enter an expression to calculate it and assign the result to ans,
or "name = expression" to assign it to a one-letter variable.
Operators: + - * / ^ and = ; functions: sqrt sin cos tan asin acos atan log ln
Constants: pi e phi tau

The following commands are available:

  help             : print this message
  bye, quit, exit  : end the session
  vars             : list all variables
  tokens <line>    : print the tokens of a line
  tree <line>      : print the parse tree of a line
  mode [vi|emacs]  : display or set the editing mode
`)
}

func (r *REPL) vars() {
	env := r.calc.Env()
	if env.Len() == 0 {
		fmt.Fprintln(r.out, "no variables")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(table.Row{"Name", "Value"})
	env.Each(func(name string, val float64) {
		t.AppendRow(table.Row{name, Format(val, r.Digits)})
	})
	t.Render()
}

func (r *REPL) setMode(mode string) {
	switch mode {
	case "":
		fmt.Fprintf(r.errs, "editing mode: %s\n", r.mode)
	case "vi", "emacs":
		if r.rl == nil {
			fmt.Fprintln(r.errs, "editing mode only applies to a terminal")
			return
		}
		r.rl.SetVimMode(mode == "vi")
		r.mode = mode
	default:
		r.fail(fmt.Errorf("unknown editing mode %q", mode))
	}
}

// filterInput blocks ctrl-z.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
