// ==============================================================================================
// FILE: evaluator/builtins.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Wires object.NewBuiltins/NewApplyBuiltins into the global scope
//          and adds the generator/promise-control builtins from spec.md's
//          built-in table (§6.3) that need direct access to the evaluator's
//          currentGen and resumption engine: proceed, transmit, receive,
//          disrupt, resolve, defer.
// ==============================================================================================

package evaluator

import (
	"fmt"

	"github.com/kei-lang/kei/object"
)

func (e *Evaluator) registerBuiltins() {
	apply := func(callee object.Value, args []object.Value) (object.Value, error) {
		result := e.applyCallable(callee, args, &execCtx{})
		if a, ok := result.(*anomaly); ok {
			return nil, fmt.Errorf("%s", a.Message)
		}
		return result, nil
	}

	for name, b := range object.NewBuiltins() {
		e.Globals.Define(name, b)
	}
	for name, b := range object.NewApplyBuiltins(apply) {
		e.Globals.Define(name, b)
	}
	for name, b := range e.generatorBuiltins() {
		e.Globals.Define(name, b)
	}
}

func asGenerator(v object.Value) (*object.Generator, bool) {
	g, ok := v.(*object.Generator)
	return g, ok
}

func (e *Evaluator) generatorBuiltins() map[string]*object.Builtin {
	b := make(map[string]*object.Builtin)

	b["proceed"] = &object.Builtin{Name: "proceed", Fn: func(args ...object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("proceed: expected 1 argument, got %d", len(args))
		}
		gen, ok := asGenerator(args[0])
		if !ok {
			return nil, fmt.Errorf("proceed: expected a generator, got %s", args[0].Type())
		}
		v, _, err := e.resumeGeneratorRaw(gen, nil, false, nil, false)
		return v, err
	}}

	b["transmit"] = &object.Builtin{Name: "transmit", Fn: func(args ...object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("transmit: expected 2 arguments, got %d", len(args))
		}
		gen, ok := asGenerator(args[0])
		if !ok {
			return nil, fmt.Errorf("transmit: expected a generator, got %s", args[0].Type())
		}
		v, _, err := e.resumeGeneratorRaw(gen, args[1], true, nil, false)
		return v, err
	}}

	b["receive"] = &object.Builtin{Name: "receive", Fn: func(args ...object.Value) (object.Value, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("receive: expected 0 arguments, got %d", len(args))
		}
		if e.currentGen == nil || !e.currentGen.HasSent {
			return object.NULL, nil
		}
		v := e.currentGen.SentValue
		e.currentGen.HasSent = false
		e.currentGen.SentValue = nil
		return v, nil
	}}

	b["disrupt"] = &object.Builtin{Name: "disrupt", Fn: func(args ...object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("disrupt: expected 2 arguments, got %d", len(args))
		}
		gen, ok := asGenerator(args[0])
		if !ok {
			return nil, fmt.Errorf("disrupt: expected a generator, got %s", args[0].Type())
		}
		v, _, err := e.resumeGeneratorRaw(gen, nil, false, args[1], true)
		return v, err
	}}

	b["resolve"] = &object.Builtin{Name: "resolve", Fn: func(args ...object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("resolve: expected 1 argument, got %d", len(args))
		}
		return &object.Promise{State: object.Resolved, Result: args[0]}, nil
	}}

	// defer(ms, fn, ...args): the evaluator is single-threaded with no event
	// loop, so the delay is not honored — fn runs synchronously and its
	// result is wrapped in an already-resolved Promise, the closest faithful
	// rendering of "schedule a call, get a promise back" without concurrency.
	b["defer"] = &object.Builtin{Name: "defer", Fn: func(args ...object.Value) (object.Value, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("defer: expected at least 2 arguments, got %d", len(args))
		}
		callee := args[1]
		result := e.applyCallable(callee, args[2:], &execCtx{})
		if a, ok := result.(*anomaly); ok {
			return &object.Promise{State: object.Rejected, Result: &object.String{Value: a.Message}}, nil
		}
		return &object.Promise{State: object.Resolved, Result: result}, nil
	}}

	return b
}
