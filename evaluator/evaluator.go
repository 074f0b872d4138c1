// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: The tree-walking execution engine: expression/statement
//          evaluation, truthiness/operator rules (spec.md §4.4.1), and the
//          Eval dispatch every other file in this package hangs off of.
//          Mirrors the teacher's single Eval(node, env) switch, generalized
//          with a third execCtx parameter that threads generator-suspension
//          state (see resumeGeneratorRaw in functions.go) through every
//          recursive call.
// ==============================================================================================

package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/object"
)

// MessageSink is the minimal surface the evaluator needs from the external
// "voice channel" (spec.md §6.2) — defined here, at the point of use, so
// this package never imports the voice package; voice.Channel satisfies it.
type MessageSink interface {
	Emit(event string, payload string)
}

// noopSink discards every message; used when no sink is configured, so
// preview/scheme/override/absolute/anomaly statements still evaluate.
type noopSink struct{}

func (noopSink) Emit(string, string) {}

// Evaluator holds everything that outlives a single Eval call: the builtin
// registry, the voice-channel sink, and the one piece of mutable state
// spec.md §9 open question 4 calls for — a flat currentGen field so the
// zero-argument `receive()` builtin can reach the generator that is
// currently resuming, since the evaluator is single-threaded by design.
type Evaluator struct {
	Globals *object.Environment
	Sink    MessageSink

	anomalyDepth int
	currentGen   *object.Generator
}

// New builds an Evaluator with a fresh global environment pre-bound with
// every builtin from object.NewBuiltins/NewApplyBuiltins plus the
// generator/promise-control builtins this package owns (builtins.go).
func New(sink MessageSink) *Evaluator {
	if sink == nil {
		sink = noopSink{}
	}
	e := &Evaluator{Globals: object.NewEnvironment(), Sink: sink}
	e.registerBuiltins()
	return e
}

// execCtx threads the generator-suspension state through recursive Eval
// calls without polluting every call site with extra parameters beyond
// this one. gen is non-nil exactly while executing a sequence-flagged
// call's body (nested ordinary calls it makes are NOT generator bodies
// themselves — see applyFunction, which starts a fresh execCtx with
// gen=nil for ordinary nested calls). resume is the suspension frame this
// level should consume on entry, or nil for a normal, non-resuming pass.
type execCtx struct {
	gen    *object.Generator
	resume *object.Frame
}

func rootCtx() *execCtx { return &execCtx{} }

// Run evaluates a whole program against the evaluator's global scope.
func (e *Evaluator) Run(program *ast.Program) object.Value {
	return e.evalProgram(program, e.Globals)
}

// Eval is the heart of the interpreter: one switch over every AST node
// kind this package needs to handle directly (control-flow and callable
// forms are split into statements.go/functions.go/oop.go for readability,
// but all recursion still passes back through this function).
func (e *Evaluator) Eval(node ast.Node, env *object.Environment, c *execCtx) object.Value {
	switch node := node.(type) {

	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.BlockStatement:
		return e.evalBlock(node, env, c)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env, c)

	// --- literals ---
	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}
	case *ast.FloatLiteral:
		return &object.Float{Value: node.Value}
	case *ast.StringLiteral:
		return &object.String{Value: node.Value}
	case *ast.BooleanLiteral:
		return object.NativeBool(node.Value)
	case *ast.NilLiteral:
		return object.NULL
	case *ast.ListLiteral:
		return e.evalListLiteral(node, env, c)
	case *ast.DictLiteral:
		return e.evalDictLiteral(node, env, c)
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.SelfExpression:
		if self, ok := env.Get("self"); ok {
			return self
		}
		return newAnomaly("self is not bound in this scope")

	// --- operators ---
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env, c)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env, c)
	case *ast.AwaitExpression:
		return e.evalAwaitExpression(node, env, c)
	case *ast.ForeseeExpression:
		return e.evalForeseeExpression(node, env, c)
	case *ast.SpreadExpression:
		return e.Eval(node.Value, env, c)

	// --- access ---
	case *ast.IndexExpression:
		return e.evalIndexExpression(node, env, c)
	case *ast.SliceExpression:
		return e.evalSliceExpression(node, env, c)
	case *ast.MemberExpression:
		v, _, err := e.resolveMember(node, env, c)
		if err != nil {
			return err
		}
		return v

	// --- calls / callables ---
	case *ast.CallExpression:
		return e.evalCallExpression(node, env, c)
	case *ast.Lambda:
		return &object.Function{Node: node, Env: env, IsSequence: node.IsSequence, IsAsync: node.IsAsync}
	case *ast.Protocol:
		fn := &object.Function{Name: node.Name.Value, Node: node, Env: env, IsSequence: node.IsSequence, IsAsync: node.IsAsync}
		env.Define(node.Name.Value, fn)
		return object.NULL
	case *ast.AscendCallExpression:
		return e.evalAscendCall(node, env, c)
	case *ast.ManifestExpression:
		return e.evalManifestExpression(node, env, c)
	case *ast.EntityStmt:
		return e.evalEntityStmt(node, env)

	// --- functional forms ---
	case *ast.GeneratorExpression:
		return e.evalGeneratorExpression(node, env)
	case *ast.ListComprehension:
		return e.evalListComprehension(node, env, c)

	// --- bindings / assignment ---
	case *ast.DesignateStatement:
		return e.evalDesignateStatement(node, env, c)
	case *ast.AssignStatement:
		return e.evalAssignStatement(node, env, c)

	// --- control flow ---
	case *ast.BreakStatement:
		return &breakSignal{}
	case *ast.ContinueStatement:
		return &continueSignal{}
	case *ast.YieldStatement:
		return e.evalYieldStatement(node, env, c)
	case *ast.DelegateStatement:
		return e.evalDelegateStatement(node, env, c)
	case *ast.ForeseeStmt:
		return e.evalForeseeStmt(node, env, c)
	case *ast.SituationStmt:
		return e.evalSituationStmt(node, env, c)
	case *ast.CycleWhileStmt:
		return e.evalCycleWhile(node, env, c)
	case *ast.CycleThroughStmt:
		return e.evalCycleThrough(node, env, c)
	case *ast.CycleFromToStmt:
		return e.evalCycleFromTo(node, env, c)
	case *ast.AttemptStmt:
		return e.evalAttemptStmt(node, env, c)

	// --- voice-channel statements ---
	case *ast.PreviewStatement:
		return e.evalPreviewStatement(node, env, c)
	case *ast.OverrideStatement:
		return e.evalOverrideStatement(node, env, c)
	case *ast.AbsoluteStatement:
		return e.evalAbsoluteStatement(node, env, c)
	case *ast.AnomalyStatement:
		return e.evalAnomalyStatement(node, env, c)
	case *ast.SchemeStatement:
		return e.evalSchemeStatement(node, env, c)
	case *ast.IncludeStatement:
		return e.evalIncludeStatement(node, env, c)

	default:
		return newAnomaly("no evaluation rule for %T", node)
	}
}

func (e *Evaluator) evalProgram(p *ast.Program, env *object.Environment) object.Value {
	var result object.Value = object.NULL
	c := rootCtx()
	for _, stmt := range p.Statements {
		result = e.Eval(stmt, env, c)
		if isAnomaly(result) || isReturn(result) {
			return result
		}
	}
	return result
}

// evalBlock runs a statement list, resuming mid-way through when c.resume
// is set (spec.md §4.5.3), and pushing a BlockFrame (§4.5.2) when a nested
// yield suspends execution before reaching the end of the list.
func (e *Evaluator) evalBlock(block *ast.BlockStatement, env *object.Environment, c *execCtx) object.Value {
	start := 0
	var inner *object.Frame
	if c.resume != nil {
		start = c.resume.StmtIndex
		inner = c.resume.Inner

		// This is the innermost resume frame — the exact position a yield
		// suspended at. A pending disrupt() injection surfaces here as an
		// anomaly raised at that site, so any enclosing attempt/recover
		// catches it exactly as if the yield itself had raised it.
		if inner == nil && c.gen != nil && c.gen.HasThrown {
			thrown := c.gen.ThrownValue
			c.gen.HasThrown = false
			c.gen.ThrownValue = nil
			return newAnomaly("%s", object.Stringify(thrown))
		}
	}

	var result object.Value = object.NULL
	for i := start; i < len(block.Statements); i++ {
		childCtx := &execCtx{gen: c.gen}
		if i == start && inner != nil {
			childCtx.resume = inner
		}
		result = e.Eval(block.Statements[i], env, childCtx)

		if ys, ok := result.(*yieldSuspend); ok {
			idx := i + 1
			if ys.Frame != nil {
				idx = i // a nested construct already holds a frame; re-enter this statement, not the next one
			}
			return &yieldSuspend{Value: ys.Value, Frame: &object.Frame{Kind: object.BlockFrame, StmtIndex: idx, Inner: ys.Frame}}
		}
		if stopsBlock(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *object.Environment) object.Value {
	if v, ok := env.Get(node.Value); ok {
		return v
	}
	return newAnomaly("%s", unresolvedIdentifierMessage(node.Value, env))
}

// unresolvedIdentifierMessage builds a "did you mean" suggestion from the
// names visible on env's scope chain via fuzzy string matching, the way a
// human collaborator skimming a typo would.
func unresolvedIdentifierMessage(name string, env *object.Environment) string {
	msg := fmt.Sprintf("unresolved identifier: %s", name)
	candidates := env.VisibleNames()
	if len(candidates) == 0 {
		return msg
	}
	best, bestDist := "", -1
	for _, cand := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(cand))
		if bestDist < 0 || d < bestDist {
			best, bestDist = cand, d
		}
	}
	if bestDist >= 0 && bestDist <= 2 {
		msg += fmt.Sprintf(" (did you mean %q?)", best)
	}
	return msg
}

func (e *Evaluator) evalListLiteral(node *ast.ListLiteral, env *object.Environment, c *execCtx) object.Value {
	elems, err := e.evalExpressionListWithSpread(node.Elements, env, c)
	if err != nil {
		return err
	}
	return &object.List{Elements: elems}
}

func (e *Evaluator) evalDictLiteral(node *ast.DictLiteral, env *object.Environment, c *execCtx) object.Value {
	d := object.NewDict()
	for i, keyExpr := range node.Keys {
		kv := e.Eval(keyExpr, env, c)
		if isAnomaly(kv) {
			return kv
		}
		vv := e.Eval(node.Values[i], env, c)
		if isAnomaly(vv) {
			return vv
		}
		d.Pairs.Set(object.Stringify(kv), vv)
	}
	return d
}

// evalExpressionListWithSpread evaluates exprs left-to-right, splicing any
// *ast.SpreadExpression element's list in place, per spec.md §4.4.1.
func (e *Evaluator) evalExpressionListWithSpread(exprs []ast.Expression, env *object.Environment, c *execCtx) ([]object.Value, *anomaly) {
	var out []object.Value
	for _, expr := range exprs {
		if spread, ok := expr.(*ast.SpreadExpression); ok {
			v := e.Eval(spread.Value, env, c)
			if a, ok := v.(*anomaly); ok {
				return nil, a
			}
			l, ok := v.(*object.List)
			if !ok {
				return nil, newAnomaly("...spread requires a list, got %s", v.Type())
			}
			out = append(out, l.Elements...)
			continue
		}
		v := e.Eval(expr, env, c)
		if a, ok := v.(*anomaly); ok {
			return nil, a
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *object.Environment, c *execCtx) object.Value {
	right := e.Eval(node.Right, env, c)
	if isAnomaly(right) {
		return right
	}
	switch node.Operator {
	case "-":
		switch v := right.(type) {
		case *object.Integer:
			return &object.Integer{Value: -v.Value}
		case *object.Float:
			return &object.Float{Value: -v.Value}
		default:
			return newAnomaly("unary -: unsupported operand %s", right.Type())
		}
	case "not":
		return object.NativeBool(!right.Truthy())
	default:
		return newAnomaly("unknown prefix operator %s", node.Operator)
	}
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *object.Environment, c *execCtx) object.Value {
	// and/or short-circuit before evaluating the right operand.
	if node.Operator == "and" {
		left := e.Eval(node.Left, env, c)
		if isAnomaly(left) || !left.Truthy() {
			return left
		}
		return e.Eval(node.Right, env, c)
	}
	if node.Operator == "or" {
		left := e.Eval(node.Left, env, c)
		if isAnomaly(left) || left.Truthy() {
			return left
		}
		return e.Eval(node.Right, env, c)
	}

	left := e.Eval(node.Left, env, c)
	if isAnomaly(left) {
		return left
	}
	right := e.Eval(node.Right, env, c)
	if isAnomaly(right) {
		return right
	}
	return evalInfix(node.Operator, left, right)
}

func evalInfix(op string, left, right object.Value) object.Value {
	switch op {
	case "==":
		return object.NativeBool(object.Equal(left, right))
	case "!=":
		return object.NativeBool(!object.Equal(left, right))
	}

	if ls, ok := left.(*object.String); ok {
		return evalStringInfix(op, ls, right)
	}
	if _, ok := right.(*object.String); ok && op == "+" {
		return &object.String{Value: object.Stringify(left) + object.Stringify(right)}
	}

	li, lInt := left.(*object.Integer)
	ri, rInt := right.(*object.Integer)
	if lInt && rInt {
		return evalIntegerInfix(op, li, ri)
	}

	lf, lOk := asFloat(left)
	rf, rOk := asFloat(right)
	if lOk && rOk {
		return evalFloatInfix(op, lf, rf)
	}

	return newAnomaly("unsupported operand types for %s: %s, %s", op, left.Type(), right.Type())
}

func asFloat(v object.Value) (float64, bool) {
	switch val := v.(type) {
	case *object.Integer:
		return float64(val.Value), true
	case *object.Float:
		return val.Value, true
	default:
		return 0, false
	}
}

// evalIntegerInfix implements spec.md §4.4.1's promotion rule: both-int
// arithmetic stays integer except `/` (always float) and `//` (always int).
func evalIntegerInfix(op string, l, r *object.Integer) object.Value {
	switch op {
	case "+":
		return &object.Integer{Value: l.Value + r.Value}
	case "-":
		return &object.Integer{Value: l.Value - r.Value}
	case "*":
		return &object.Integer{Value: l.Value * r.Value}
	case "/":
		if r.Value == 0 {
			return newAnomaly("division by zero")
		}
		return &object.Float{Value: float64(l.Value) / float64(r.Value)}
	case "//":
		if r.Value == 0 {
			return newAnomaly("division by zero")
		}
		q := l.Value / r.Value
		if (l.Value%r.Value != 0) && ((l.Value < 0) != (r.Value < 0)) {
			q--
		}
		return &object.Integer{Value: q}
	case "%":
		if r.Value == 0 {
			return newAnomaly("modulo by zero")
		}
		m := l.Value % r.Value
		if m != 0 && (m < 0) != (r.Value < 0) {
			m += r.Value
		}
		return &object.Integer{Value: m}
	case "**":
		return &object.Integer{Value: intPow(l.Value, r.Value)}
	case "<":
		return object.NativeBool(l.Value < r.Value)
	case ">":
		return object.NativeBool(l.Value > r.Value)
	case "<=":
		return object.NativeBool(l.Value <= r.Value)
	case ">=":
		return object.NativeBool(l.Value >= r.Value)
	default:
		return newAnomaly("unknown integer operator %s", op)
	}
}

func intPow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func evalFloatInfix(op string, l, r float64) object.Value {
	switch op {
	case "+":
		return &object.Float{Value: l + r}
	case "-":
		return &object.Float{Value: l - r}
	case "*":
		return &object.Float{Value: l * r}
	case "/":
		if r == 0 {
			return newAnomaly("division by zero")
		}
		return &object.Float{Value: l / r}
	case "//":
		if r == 0 {
			return newAnomaly("division by zero")
		}
		return &object.Float{Value: math.Floor(l / r)}
	case "%":
		if r == 0 {
			return newAnomaly("modulo by zero")
		}
		m := math.Mod(l, r)
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return &object.Float{Value: m}
	case "**":
		return &object.Float{Value: math.Pow(l, r)}
	case "<":
		return object.NativeBool(l < r)
	case ">":
		return object.NativeBool(l > r)
	case "<=":
		return object.NativeBool(l <= r)
	case ">=":
		return object.NativeBool(l >= r)
	default:
		return newAnomaly("unknown float operator %s", op)
	}
}

func evalStringInfix(op string, l *object.String, right object.Value) object.Value {
	switch op {
	case "+":
		return &object.String{Value: l.Value + object.Stringify(right)}
	case "*":
		n, ok := right.(*object.Integer)
		if !ok {
			return newAnomaly("string * requires an integer repeat count")
		}
		if n.Value < 0 {
			return newAnomaly("string * requires a non-negative repeat count")
		}
		return &object.String{Value: strings.Repeat(l.Value, int(n.Value))}
	case "<":
		if rs, ok := right.(*object.String); ok {
			return object.NativeBool(l.Value < rs.Value)
		}
	case ">":
		if rs, ok := right.(*object.String); ok {
			return object.NativeBool(l.Value > rs.Value)
		}
	case "<=":
		if rs, ok := right.(*object.String); ok {
			return object.NativeBool(l.Value <= rs.Value)
		}
	case ">=":
		if rs, ok := right.(*object.String); ok {
			return object.NativeBool(l.Value >= rs.Value)
		}
	}
	return newAnomaly("unsupported operand types for %s: %s, %s", op, l.Type(), right.Type())
}
