// ==============================================================================================
// FILE: wasm/wasm_main.go
// BUILD: GOOS=js GOARCH=wasm go build -o main.wasm ./wasm
// ==============================================================================================
// PACKAGE: main
// PURPOSE: A browser entry point exposing the kei pipeline (lexer/parser/
//          evaluator) as a single `runKei(source)` JS function. `declare`/
//          `announce` are rebound to an in-memory buffer instead of stdout
//          (there is no terminal in a browser tab), and `inquire` is
//          rebound to a placeholder since the evaluator cannot suspend
//          mid-expression to wait on a JS prompt().
// ==============================================================================================
package main

import (
	"strings"
	"syscall/js"

	"github.com/kei-lang/kei/evaluator"
	"github.com/kei-lang/kei/lexer"
	"github.com/kei-lang/kei/object"
	"github.com/kei-lang/kei/parser"
)

// outputBuffer captures everything a running script writes via declare/announce,
// since there is no stdout to inherit inside a wasm module.
var outputBuffer strings.Builder

func main() {
	c := make(chan struct{})

	js.Global().Set("runKei", js.FuncOf(runKei))

	js.Global().Get("console").Call("log", "kei WASM engine loaded.")
	<-c
}

// runKei is the bridge between JS and Go: it takes one string argument
// (kei source) and returns a JS object {error, logs, result}.
func runKei(this js.Value, p []js.Value) interface{} {
	if len(p) != 1 {
		return map[string]interface{}{"error": "runKei expects exactly one string argument"}
	}
	source := p[0].String()
	outputBuffer.Reset()

	l := lexer.New(source)
	prog := parser.New(l)
	program := prog.ParseProgram()
	if errs := prog.Errors(); errs != nil && errs.Len() > 0 {
		return map[string]interface{}{"error": errs.Error()}
	}

	e := evaluator.New(nil)
	overrideIOForBrowser(e)

	result := e.Run(program)

	resultText := ""
	if result != nil && result != object.NULL {
		resultText = result.Inspect()
	}
	if result != nil && result.Type() == "ANOMALY" {
		return map[string]interface{}{
			"error": result.Inspect(),
			"logs":  outputBuffer.String(),
		}
	}

	return map[string]interface{}{
		"logs":   outputBuffer.String(),
		"result": resultText,
	}
}

// overrideIOForBrowser replaces the terminal-bound declare/announce/inquire
// builtins with versions that write to outputBuffer instead of os.Stdout,
// and a placeholder for inquire since there is no synchronous JS prompt
// the single-threaded evaluator can block on mid-call.
func overrideIOForBrowser(e *evaluator.Evaluator) {
	e.Globals.Define("declare", &object.Builtin{Name: "declare", Fn: func(args ...object.Value) (object.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = object.Stringify(a)
		}
		outputBuffer.WriteString(strings.Join(parts, " ") + "\n")
		return object.NULL, nil
	}})

	e.Globals.Define("announce", &object.Builtin{Name: "announce", Fn: func(args ...object.Value) (object.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = object.Stringify(a)
		}
		outputBuffer.WriteString(strings.Join(parts, " "))
		return object.NULL, nil
	}})

	e.Globals.Define("inquire", &object.Builtin{Name: "inquire", Fn: func(args ...object.Value) (object.Value, error) {
		if len(args) > 0 {
			outputBuffer.WriteString(object.Stringify(args[0]))
		}
		outputBuffer.WriteString("[inquire is not supported in the browser demo]\n")
		return &object.String{Value: ""}, nil
	}})
}
