// ==============================================================================================
// FILE: evaluator/control.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Internal control-flow signals. spec.md §3.3 closes object.Value
//          to exactly 13 variants ("no untagged payloads"), so break/
//          continue/return/yield-suspend/anomaly never touch that type —
//          they are evaluator-private values that happen to satisfy
//          object.Value (the same trick the teacher's evaluator plays with
//          object.ReturnValue/object.Error) purely so Eval can keep a single
//          return type, and are always unwrapped before a kei-visible value
//          escapes this package.
// ==============================================================================================

package evaluator

import (
	"fmt"

	"github.com/kei-lang/kei/object"
)

// breakSignal unwinds to the nearest enclosing cycle.
type breakSignal struct{}

func (*breakSignal) Type() object.ObjectType { return "BREAK" }
func (*breakSignal) Truthy() bool            { return false }
func (*breakSignal) Inspect() string         { return "<break>" }

// continueSignal unwinds to the nearest enclosing cycle's next iteration.
type continueSignal struct{}

func (*continueSignal) Type() object.ObjectType { return "CONTINUE" }
func (*continueSignal) Truthy() bool            { return false }
func (*continueSignal) Inspect() string         { return "<continue>" }

// returnSignal is yield-as-implicit-return: spec.md §4.4.3 says an ordinary
// (non-sequence) call surfaces "the last yield value before return, or null
// if none" — so a YieldStatement evaluated outside generator mode produces
// this instead of suspending.
type returnSignal struct{ Value object.Value }

func (*returnSignal) Type() object.ObjectType { return "RETURN" }
func (*returnSignal) Truthy() bool            { return false }
func (*returnSignal) Inspect() string         { return "<return>" }

// yieldSuspend is raised when `yield`/`delegate` fires inside a running
// generator body (spec.md §4.5.2). Value is what proceed/transmit/disrupt's
// caller receives; Frame accumulates as the signal bubbles out through
// enclosing blocks/loops, each level prepending its own suspension frame
// before re-raising, per §4.5.1-2.
type yieldSuspend struct {
	Value object.Value
	Frame *object.Frame
}

func (*yieldSuspend) Type() object.ObjectType { return "YIELD_SUSPEND" }
func (*yieldSuspend) Truthy() bool            { return false }
func (*yieldSuspend) Inspect() string         { return "<yield-suspend>" }

// anomaly is a raised runtime error: division by zero, an unresolved
// identifier, a mismatched call arity, a failed `absolute`, and so on.
// attempt/recover (spec.md §4.4.2) catches it and binds Message to the
// recover-body's error name, if any.
type anomaly struct{ Message string }

func (*anomaly) Type() object.ObjectType { return "ANOMALY" }
func (*anomaly) Truthy() bool            { return false }
func (a *anomaly) Inspect() string       { return "<anomaly: " + a.Message + ">" }

func newAnomaly(format string, args ...interface{}) *anomaly {
	return &anomaly{Message: fmt.Sprintf(format, args...)}
}

func isSignal(v object.Value) bool {
	switch v.(type) {
	case *breakSignal, *continueSignal, *returnSignal, *yieldSuspend, *anomaly:
		return true
	default:
		return false
	}
}

func isAnomaly(v object.Value) bool { _, ok := v.(*anomaly); return ok }
func isReturn(v object.Value) bool  { _, ok := v.(*returnSignal); return ok }
func isBreak(v object.Value) bool   { _, ok := v.(*breakSignal); return ok }
func isContinue(v object.Value) bool {
	_, ok := v.(*continueSignal)
	return ok
}
func isYieldSuspend(v object.Value) bool { _, ok := v.(*yieldSuspend); return ok }

// stopsBlock reports whether v should stop the current statement-list loop
// and propagate to the caller unchanged — true for every signal, including
// breakSignal and continueSignal, which the enclosing loop then consumes.
func stopsBlock(v object.Value) bool {
	return v != nil && isSignal(v)
}
