// ==============================================================================================
// FILE: evaluator/functions.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Call protocol (spec.md §4.4.3): parameter binding, ordinary vs.
//          async vs. sequence dispatch, the generator resumption engine
//          (proceed/transmit/disrupt drive this from builtins.go), await,
//          and file inclusion.
// ==============================================================================================

package evaluator

import (
	"fmt"
	"os"

	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/lexer"
	"github.com/kei-lang/kei/object"
	"github.com/kei-lang/kei/parser"
)

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *object.Environment, c *execCtx) object.Value {
	var callee object.Value
	if mem, ok := node.Function.(*ast.MemberExpression); ok {
		v, _, err := e.resolveMember(mem, env, c)
		if err != nil {
			return err
		}
		callee = v
	} else {
		callee = e.Eval(node.Function, env, c)
		if isAnomaly(callee) {
			return callee
		}
	}

	args, aerr := e.evalExpressionListWithSpread(node.Arguments, env, c)
	if aerr != nil {
		return aerr
	}
	return e.applyCallable(callee, args, c)
}

func (e *Evaluator) applyCallable(callee object.Value, args []object.Value, c *execCtx) object.Value {
	switch fn := callee.(type) {
	case *object.Builtin:
		res, err := fn.Fn(args...)
		if err != nil {
			return newAnomaly("%s", err.Error())
		}
		return res
	case *object.Function:
		return e.applyFunction(fn, args)
	default:
		return newAnomaly("%s is not callable", callee.Type())
	}
}

// applyFunction implements spec.md §4.4.3's three call shapes off one
// Function value: a sequence-flagged call packages a Generator without
// running the body; otherwise the body runs immediately (in a fresh
// execCtx with gen=nil — an ordinary call nested inside a generator's body
// is NOT itself part of that generator), surfacing the last yield value or
// explicit return as the result, wrapped in a Promise if async-flagged.
func (e *Evaluator) applyFunction(fn *object.Function, args []object.Value) object.Value {
	callEnv := object.NewEnclosedEnvironment(fn.Env)
	if fn.Self != nil {
		callEnv.Define("self", fn.Self)
	}
	if err := e.bindParams(fn.Node.ParamList(), args, callEnv); err != nil {
		return err
	}

	if fn.IsSequence {
		return &object.Generator{Fn: fn, Env: callEnv, Self: fn.Self, Status: object.Suspended, Body: fn.Node.BlockBody()}
	}

	result := e.Eval(fn.Node.BlockBody(), callEnv, &execCtx{})
	var out object.Value
	switch r := result.(type) {
	case *anomaly:
		return r
	case *returnSignal:
		out = r.Value
	default:
		out = object.NULL
	}
	if fn.IsAsync {
		return &object.Promise{State: object.Resolved, Result: out}
	}
	return out
}

// bindParams binds positional arguments against params, honoring defaults
// (evaluated in callEnv, so later defaults can reference earlier
// parameters) and at most one `*rest` parameter, which collects the
// unclaimed middle slice — mirroring bindListPattern's front/rest/back
// arithmetic for destructuring, since this is the same "extra slots get
// null, extra args collect or are ignored" shape applied to call arguments.
func (e *Evaluator) bindParams(params []*ast.Parameter, args []object.Value, env *object.Environment) *anomaly {
	restIdx := -1
	for i, p := range params {
		if p.IsRest {
			restIdx = i
			break
		}
	}

	valueFor := func(i int, p *ast.Parameter) (object.Value, *anomaly) {
		if i < len(args) {
			return args[i], nil
		}
		if p.Default != nil {
			v := e.Eval(p.Default, env, &execCtx{})
			if a, ok := v.(*anomaly); ok {
				return nil, a
			}
			return v, nil
		}
		return object.NULL, nil
	}

	if restIdx < 0 {
		for i, p := range params {
			v, err := valueFor(i, p)
			if err != nil {
				return err
			}
			if err := bindPattern(p.Pattern, v, env, true); err != nil {
				return err
			}
		}
		return nil
	}

	before := restIdx
	after := len(params) - restIdx - 1
	for i := 0; i < before; i++ {
		v, err := valueFor(i, params[i])
		if err != nil {
			return err
		}
		if err := bindPattern(params[i].Pattern, v, env, true); err != nil {
			return err
		}
	}
	for j := 0; j < after; j++ {
		p := params[restIdx+1+j]
		srcIdx := len(args) - after + j
		v, err := valueFor(srcIdx, p)
		if err != nil {
			return err
		}
		if err := bindPattern(p.Pattern, v, env, true); err != nil {
			return err
		}
	}
	restEnd := len(args) - after
	var rest []object.Value
	if restEnd > before {
		rest = append([]object.Value{}, args[before:restEnd]...)
	}
	return bindPattern(params[restIdx].Pattern, &object.List{Elements: rest}, env, true)
}

// evalAwaitExpression implements spec.md §5 and open question #2: a
// Resolved promise unwraps to its Result, a Rejected one surfaces as an
// anomaly, and a still-Pending one passes through unchanged (cooperative
// `await` never blocks). Awaiting a non-Promise value just yields it.
func (e *Evaluator) evalAwaitExpression(node *ast.AwaitExpression, env *object.Environment, c *execCtx) object.Value {
	v := e.Eval(node.Value, env, c)
	if isAnomaly(v) {
		return v
	}
	p, ok := v.(*object.Promise)
	if !ok {
		return v
	}
	switch p.State {
	case object.Resolved:
		return p.Result
	case object.Rejected:
		return newAnomaly("%s", object.Stringify(p.Result))
	default:
		return p
	}
}

// resumeGeneratorRaw drives gen forward from its current suspension point
// (or from the top, if it has never run) until the next yield/delegate or
// completion. sentValue/hasSent is what a resuming `receive()` call inside
// the body should observe; thrownValue/hasThrown is disrupt()'s injected
// exception, surfaced as an *anomaly* result at the resume point so the
// generator's own attempt/recover can catch it.
func (e *Evaluator) resumeGeneratorRaw(gen *object.Generator, sentValue object.Value, hasSent bool, thrownValue object.Value, hasThrown bool) (object.Value, bool, error) {
	if gen.Status == object.Done {
		return object.NULL, true, nil
	}
	if gen.Status == object.Running {
		return nil, false, fmt.Errorf("generator is already running")
	}

	gen.Status = object.Running
	gen.SentValue = sentValue
	gen.HasSent = hasSent
	gen.ThrownValue = thrownValue
	gen.HasThrown = hasThrown

	prevGen := e.currentGen
	e.currentGen = gen
	defer func() { e.currentGen = prevGen }()

	// A disrupt() thrown at a generator that has never actually suspended
	// (no resume frame for the injection to surface at) has nowhere to
	// raise from — report it as a direct resumption error instead.
	if hasThrown && gen.Stack == nil {
		gen.Status = object.Done
		return nil, false, fmt.Errorf("%s", object.Stringify(thrownValue))
	}

	c := &execCtx{gen: gen, resume: gen.Stack}
	result := e.Eval(gen.Body, gen.Env, c)

	switch r := result.(type) {
	case *yieldSuspend:
		gen.Status = object.Suspended
		gen.Stack = r.Frame
		return r.Value, false, nil
	case *anomaly:
		gen.Status = object.Done
		return nil, false, fmt.Errorf("%s", r.Message)
	case *returnSignal:
		gen.Status = object.Done
		return r.Value, true, nil
	default:
		gen.Status = object.Done
		return object.NULL, true, nil
	}
}

// includeModule reads, parses, and evaluates another kei source file's
// top-level statements into env — spec.md §4.6's single-namespace include.
func (e *Evaluator) includeModule(node *ast.IncludeStatement, env *object.Environment) object.Value {
	pathVal := e.Eval(node.Path, env, &execCtx{})
	if isAnomaly(pathVal) {
		return pathVal
	}
	path, ok := pathVal.(*object.String)
	if !ok {
		return newAnomaly("include path must be a string, got %s", pathVal.Type())
	}

	src, err := os.ReadFile(path.Value)
	if err != nil {
		return newAnomaly("cannot include %s: %s", path.Value, err.Error())
	}

	p := parser.New(lexer.New(string(src)))
	program := p.ParseProgram()
	if errs := p.Errors(); errs != nil && errs.Len() > 0 {
		return newAnomaly("parse error in %s: %s", path.Value, errs.Error())
	}

	return e.evalProgram(program, env)
}
