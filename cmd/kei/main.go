// ==============================================================================================
// FILE: cmd/kei/main.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: The kei CLI entry point (spec.md §6.1): no args starts the REPL,
//          a file argument executes it, and `--help`/`-h`/`--version`/`-v`
//          are handled by github.com/hashicorp/cli's built-in plumbing.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-version"

	"github.com/kei-lang/kei/evaluator"
	"github.com/kei-lang/kei/lexer"
	"github.com/kei-lang/kei/object"
	"github.com/kei-lang/kei/parser"
	"github.com/kei-lang/kei/repl"
	"github.com/kei-lang/kei/voice"
)

const languageVersion = "0.1.0"

func main() {
	v, err := version.NewVersion(languageVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "internal error: invalid version string: %s\n", err)
		os.Exit(1)
	}

	sink := voice.NewHCLogChannel("kei")

	c := cli.NewCLI("kei", v.String())
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"run": func() (cli.Command, error) {
			return &runCommand{sink: sink}, nil
		},
	}

	// A bare file path with no subcommand is the common case ("kei script.kei");
	// route it to the run command instead of requiring "kei run script.kei".
	if len(c.Args) == 1 && c.Args[0] != "--help" && c.Args[0] != "-h" &&
		c.Args[0] != "--version" && c.Args[0] != "-v" {
		os.Exit((&runCommand{sink: sink}).Run(c.Args))
	}

	if len(c.Args) == 0 {
		repl.Start(os.Stdin, os.Stdout, sink)
		return
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitStatus)
}

// runCommand implements `kei run <file>` (and the bare `kei <file>` shortcut):
// parse and evaluate a whole source file, exiting 1 on a parse or runtime
// anomaly and 0 on success.
type runCommand struct {
	sink evaluator.MessageSink
}

func (r *runCommand) Help() string     { return "Usage: kei run <file>\n\nExecutes a kei source file." }
func (r *runCommand) Synopsis() string { return "Execute a kei source file" }

func (r *runCommand) Run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, r.Help())
		return 1
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %s\n", args[0], err)
		return 1
	}

	p := parser.New(lexer.New(string(src)))
	program := p.ParseProgram()
	if errs := p.Errors(); errs != nil && errs.Len() > 0 {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", errs.Error())
		return 1
	}

	e := evaluator.New(r.sink)
	result := e.Run(program)
	if result != nil && result != object.NULL && result.Type() == "ANOMALY" {
		r.sink.Emit("error", result.Inspect())
		fmt.Fprintf(os.Stderr, "error: %s\n", result.Inspect())
		return 1
	}
	return 0
}
