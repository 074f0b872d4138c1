// ==============================================================================================
// FILE: evaluator/statements.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Binding statements (designate/assign), the three cycle forms with
//          their suspension-frame resume logic, foresee/situation branching,
//          attempt/recover, and the voice-channel statements. Grounded on
//          spec.md §4.4.2, §4.4.3, and the frame algebra in §4.5.1-§4.5.3
//          that evaluator.go's evalBlock already implements for blocks.
// ==============================================================================================

package evaluator

import (
	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/object"
)

func (e *Evaluator) evalDesignateStatement(node *ast.DesignateStatement, env *object.Environment, c *execCtx) object.Value {
	val := e.Eval(node.Value, env, c)
	if isAnomaly(val) {
		return val
	}
	env.Define(node.Name.Value, val)
	return val
}

// evalAssignStatement implements spec.md §4.4.2: both `=` and `:=` define
// the name if absent anywhere on the scope chain, else update it in place.
// Walrus distinguishes only the source surface form, not runtime behavior.
func (e *Evaluator) evalAssignStatement(node *ast.AssignStatement, env *object.Environment, c *execCtx) object.Value {
	val := e.Eval(node.Value, env, c)
	if isAnomaly(val) {
		return val
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		env.Set(target.Value, val)
		return val
	case *ast.ListPattern:
		if err := bindPattern(target, val, env, false); err != nil {
			return err
		}
		return val
	case *ast.MemberExpression:
		return e.assignMember(target, val, env, c)
	case *ast.IndexExpression:
		return e.assignIndex(target, val, env, c)
	default:
		return newAnomaly("invalid assignment target %T", node.Target)
	}
}

func (e *Evaluator) evalForeseeStmt(node *ast.ForeseeStmt, env *object.Environment, c *execCtx) object.Value {
	cond := e.Eval(node.Condition, env, &execCtx{gen: c.gen})
	if isAnomaly(cond) {
		return cond
	}
	if cond.Truthy() {
		return e.Eval(node.Body, env, c)
	}
	for _, alt := range node.Alternatives {
		altCond := e.Eval(alt.Condition, env, &execCtx{gen: c.gen})
		if isAnomaly(altCond) {
			return altCond
		}
		if altCond.Truthy() {
			return e.Eval(alt.Body, env, c)
		}
	}
	if node.Otherwise != nil {
		return e.Eval(node.Otherwise, env, c)
	}
	return object.NULL
}

// evalSituationStmt matches Scrutinee against each alignment's value list by
// structural equality (object.Equal), running the first match's body; an
// `otherwise` alignment always matches.
func (e *Evaluator) evalSituationStmt(node *ast.SituationStmt, env *object.Environment, c *execCtx) object.Value {
	scrutinee := e.Eval(node.Scrutinee, env, &execCtx{gen: c.gen})
	if isAnomaly(scrutinee) {
		return scrutinee
	}
	for _, align := range node.Alignments {
		if align.IsOtherwise {
			return e.Eval(align.Body, env, c)
		}
		for _, valExpr := range align.Values {
			v := e.Eval(valExpr, env, &execCtx{gen: c.gen})
			if isAnomaly(v) {
				return v
			}
			if object.Equal(scrutinee, v) {
				return e.Eval(align.Body, env, c)
			}
		}
	}
	return object.NULL
}

// evalCycleWhile runs node.Body while Condition holds, suspending mid-body
// via CycleWhileFrame and, on resume, skipping straight back into the body
// instead of re-testing Condition for that one iteration (spec.md §4.5.1).
func (e *Evaluator) evalCycleWhile(node *ast.CycleWhileStmt, env *object.Environment, c *execCtx) object.Value {
	resumeFrame := c.resume
	for {
		var childCtx *execCtx
		if resumeFrame != nil {
			childCtx = &execCtx{gen: c.gen, resume: resumeFrame.Inner}
			resumeFrame = nil
		} else {
			cond := e.Eval(node.Condition, env, &execCtx{gen: c.gen})
			if isAnomaly(cond) {
				return cond
			}
			if !cond.Truthy() {
				return object.NULL
			}
			childCtx = &execCtx{gen: c.gen}
		}

		result := e.Eval(node.Body, env, childCtx)
		if ys, ok := result.(*yieldSuspend); ok {
			return &yieldSuspend{Value: ys.Value, Frame: &object.Frame{
				Kind: object.CycleWhileFrame, ResumeFirstIteration: true, Inner: ys.Frame,
			}}
		}
		if isBreak(result) {
			return object.NULL
		}
		if isContinue(result) {
			continue
		}
		if isAnomaly(result) || isReturn(result) {
			return result
		}
	}
}

// evalCycleThrough drives an iterable — List, String, Dict (iterates its
// keys), or Generator (driven lazily, element by element) — binding Var
// each pass. See runCycleThrough for the resume-state reconstruction.
func (e *Evaluator) evalCycleThrough(node *ast.CycleThroughStmt, env *object.Environment, c *execCtx) object.Value {
	if c.resume != nil && c.resume.Kind == object.CycleThroughFrame {
		return e.runCycleThrough(node, env, c, c.resume.RemainingElements, c.resume.SourceGenerator, c.resume.Current, c.resume.Inner, true)
	}

	iterable := e.Eval(node.Iterable, env, &execCtx{gen: c.gen})
	if isAnomaly(iterable) {
		return iterable
	}
	if gen, ok := iterable.(*object.Generator); ok {
		return e.runCycleThrough(node, env, c, nil, gen, nil, nil, false)
	}
	items, aerr := materializeIterable(e, iterable, c)
	if aerr != nil {
		return aerr
	}
	return e.runCycleThrough(node, env, c, items, nil, nil, nil, false)
}

func (e *Evaluator) runCycleThrough(
	node *ast.CycleThroughStmt, env *object.Environment, c *execCtx,
	remaining []object.Value, srcGen *object.Generator, resumeCurrent object.Value,
	resumeInner *object.Frame, resuming bool,
) object.Value {
	next := func() (object.Value, bool, *anomaly) {
		if srcGen != nil {
			v, done, err := e.resumeGeneratorRaw(srcGen, nil, false, nil, false)
			if err != nil {
				return nil, false, newAnomaly("%s", err.Error())
			}
			return v, done, nil
		}
		if len(remaining) == 0 {
			return nil, true, nil
		}
		v := remaining[0]
		remaining = remaining[1:]
		return v, false, nil
	}

	first := true
	for {
		var current object.Value
		if first && resuming {
			current = resumeCurrent
		} else {
			val, done, aerr := next()
			if aerr != nil {
				return aerr
			}
			if done {
				return object.NULL
			}
			current = val
		}

		var bodyEnv *object.Environment
		if first && resuming && resumeInner != nil && resumeInner.Env != nil {
			bodyEnv = resumeInner.Env
		} else {
			bodyEnv = object.NewEnclosedEnvironment(env)
			if err := bindPattern(node.Var, current, bodyEnv, true); err != nil {
				return err
			}
		}

		childCtx := &execCtx{gen: c.gen}
		if first && resuming {
			childCtx.resume = resumeInner
		}
		result := e.Eval(node.Body, bodyEnv, childCtx)
		first = false

		if ys, ok := result.(*yieldSuspend); ok {
			snapshot := append([]object.Value{}, remaining...)
			if ys.Frame != nil {
				ys.Frame.Env = bodyEnv
			}
			return &yieldSuspend{Value: ys.Value, Frame: &object.Frame{
				Kind: object.CycleThroughFrame, RemainingElements: snapshot,
				SourceGenerator: srcGen, Current: current, Inner: ys.Frame,
			}}
		}
		if isBreak(result) {
			return object.NULL
		}
		if isContinue(result) {
			continue
		}
		if isAnomaly(result) || isReturn(result) {
			return result
		}
	}
}

// evalCycleFromTo runs Var from Start to End (exclusive) by Step (default
// 1), suspending via CycleFromToFrame which carries the counter value of the
// iteration that was in progress when the body yielded.
func (e *Evaluator) evalCycleFromTo(node *ast.CycleFromToStmt, env *object.Environment, c *execCtx) object.Value {
	if c.resume != nil && c.resume.Kind == object.CycleFromToFrame {
		f := c.resume
		return e.runCycleFromTo(node, env, c, f.Counter, f.End, f.Step, f.Inner, true)
	}

	startV := e.Eval(node.Start, env, &execCtx{gen: c.gen})
	if isAnomaly(startV) {
		return startV
	}
	endV := e.Eval(node.End, env, &execCtx{gen: c.gen})
	if isAnomaly(endV) {
		return endV
	}
	step := int64(1)
	if node.Step != nil {
		stepV := e.Eval(node.Step, env, &execCtx{gen: c.gen})
		if isAnomaly(stepV) {
			return stepV
		}
		n, ok := stepV.(*object.Integer)
		if !ok {
			return newAnomaly("cycle step must be an integer")
		}
		step = n.Value
	}
	start, ok1 := startV.(*object.Integer)
	end, ok2 := endV.(*object.Integer)
	if !ok1 || !ok2 {
		return newAnomaly("cycle from/to bounds must be integers")
	}
	if step == 0 {
		return newAnomaly("cycle step must not be zero")
	}
	return e.runCycleFromTo(node, env, c, start.Value, end.Value, step, nil, false)
}

func (e *Evaluator) runCycleFromTo(node *ast.CycleFromToStmt, env *object.Environment, c *execCtx, counter, end, step int64, resumeInner *object.Frame, resuming bool) object.Value {
	inRange := func(i int64) bool {
		if step > 0 {
			return i < end
		}
		return i > end
	}

	first := true
	for inRange(counter) {
		var bodyEnv *object.Environment
		if first && resuming && resumeInner != nil && resumeInner.Env != nil {
			bodyEnv = resumeInner.Env
		} else {
			bodyEnv = object.NewEnclosedEnvironment(env)
			if err := bindPattern(node.Var, &object.Integer{Value: counter}, bodyEnv, true); err != nil {
				return err
			}
		}

		childCtx := &execCtx{gen: c.gen}
		if first && resuming {
			childCtx.resume = resumeInner
		}
		result := e.Eval(node.Body, bodyEnv, childCtx)
		first = false
		next := counter + step

		if ys, ok := result.(*yieldSuspend); ok {
			if ys.Frame != nil {
				ys.Frame.Env = bodyEnv
			}
			return &yieldSuspend{Value: ys.Value, Frame: &object.Frame{
				Kind: object.CycleFromToFrame, Counter: counter, End: end, Step: step, Inner: ys.Frame,
			}}
		}
		if isBreak(result) {
			return object.NULL
		}
		if isContinue(result) {
			counter = next
			continue
		}
		if isAnomaly(result) || isReturn(result) {
			return result
		}
		counter = next
	}
	return object.NULL
}

// evalScopedBlock evaluates block in a freshly enclosed scope, or — when
// resuming — the exact scope a prior suspension inside it left tagged on
// the resume frame, so locals designated before a yield survive across the
// suspend/resume boundary instead of being lost to a brand-new scope.
func (e *Evaluator) evalScopedBlock(block *ast.BlockStatement, outerEnv *object.Environment, c *execCtx) object.Value {
	var bodyEnv *object.Environment
	if c.resume != nil && c.resume.Env != nil {
		bodyEnv = c.resume.Env
	} else {
		bodyEnv = object.NewEnclosedEnvironment(outerEnv)
	}
	result := e.Eval(block, bodyEnv, c)
	if ys, ok := result.(*yieldSuspend); ok && ys.Frame != nil {
		ys.Frame.Env = bodyEnv
	}
	return result
}

// evalAttemptStmt runs TryBody, catching an *anomaly* instead of letting it
// propagate, binding its message to ErrorName (if given) for RecoverBody.
// Other signals (break/continue/return/yield-suspend) pass through
// untouched — attempt only intercepts anomalies, per spec.md §4.4.2.
//
// A yield inside RecoverBody itself (as opposed to TryBody) cannot be
// resumed correctly: attempt has no dedicated suspension-frame kind to
// distinguish "resuming into TryBody" from "resuming into RecoverBody", so
// resume always re-enters TryBody. Recovering from an injected disrupt()
// that itself suspends again is accordingly out of scope.
func (e *Evaluator) evalAttemptStmt(node *ast.AttemptStmt, env *object.Environment, c *execCtx) object.Value {
	e.anomalyDepth++
	result := e.evalScopedBlock(node.TryBody, env, c)
	e.anomalyDepth--

	a, ok := result.(*anomaly)
	if !ok {
		return result
	}
	recoverEnv := object.NewEnclosedEnvironment(env)
	if node.ErrorName != nil {
		recoverEnv.Define(node.ErrorName.Value, &object.String{Value: a.Message})
	}
	return e.Eval(node.RecoverBody, recoverEnv, &execCtx{gen: c.gen})
}

// --- voice-channel statements (spec.md §6.2) ---

func (e *Evaluator) evalPreviewStatement(node *ast.PreviewStatement, env *object.Environment, c *execCtx) object.Value {
	v := e.Eval(node.Value, env, c)
	if isAnomaly(v) {
		return v
	}
	e.Sink.Emit("preview", object.Stringify(v))
	return v
}

func (e *Evaluator) evalOverrideStatement(node *ast.OverrideStatement, env *object.Environment, c *execCtx) object.Value {
	val := e.Eval(node.Value, env, c)
	if isAnomaly(val) {
		return val
	}
	env.Global().ForceSetGlobal(node.Name.Value, val)
	e.Sink.Emit("override", node.Name.Value+" = "+object.Stringify(val))
	return val
}

func (e *Evaluator) evalAbsoluteStatement(node *ast.AbsoluteStatement, env *object.Environment, c *execCtx) object.Value {
	val := e.Eval(node.Value, env, c)
	if isAnomaly(val) {
		return val
	}
	if !val.Truthy() {
		e.Sink.Emit("absolute", node.Source)
		return newAnomaly("absolute failed (%s): %s", node.Source, object.Stringify(val))
	}
	return val
}

func (e *Evaluator) evalAnomalyStatement(node *ast.AnomalyStatement, env *object.Environment, c *execCtx) object.Value {
	e.anomalyDepth++
	e.Sink.Emit("anomaly_mode", "enter")
	result := e.evalScopedBlock(node.Body, env, c)
	e.anomalyDepth--
	if a, ok := result.(*anomaly); ok {
		e.Sink.Emit("anomaly", a.Message)
	}
	e.Sink.Emit("anomaly_mode", "exit")
	return result
}

func (e *Evaluator) evalSchemeStatement(node *ast.SchemeStatement, env *object.Environment, c *execCtx) object.Value {
	e.Sink.Emit("scheme", "enter")
	result := e.evalScopedBlock(node.Body, env, c)
	e.Sink.Emit("scheme", "exit")
	return result
}

func (e *Evaluator) evalYieldStatement(node *ast.YieldStatement, env *object.Environment, c *execCtx) object.Value {
	var val object.Value = object.NULL
	if node.Value != nil {
		val = e.Eval(node.Value, env, &execCtx{gen: c.gen})
		if isAnomaly(val) {
			return val
		}
	}
	if c.gen == nil {
		return &returnSignal{Value: val}
	}
	return &yieldSuspend{Value: val}
}

// evalDelegateStatement hands control to another generator, forwarding each
// of its yields as this generator's own, per spec.md §4.5.1's delegate form.
// The target generator keeps its own suspension stack (Generator.Stack), so
// the DelegateFrame this level pushes only needs to remember which
// generator to keep driving, not a separate resume position.
func (e *Evaluator) evalDelegateStatement(node *ast.DelegateStatement, env *object.Environment, c *execCtx) object.Value {
	var target *object.Generator
	if c.resume != nil && c.resume.Kind == object.DelegateFrame {
		target = c.resume.Delegate
	} else {
		iterable := e.Eval(node.Iterable, env, &execCtx{gen: c.gen})
		if isAnomaly(iterable) {
			return iterable
		}
		g, ok := iterable.(*object.Generator)
		if !ok {
			return newAnomaly("delegate requires a generator, got %s", iterable.Type())
		}
		target = g
	}

	if c.gen == nil {
		var last object.Value = object.NULL
		for {
			v, done, err := e.resumeGeneratorRaw(target, nil, false, nil, false)
			if err != nil {
				return newAnomaly("%s", err.Error())
			}
			if done {
				break
			}
			last = v
		}
		return &returnSignal{Value: last}
	}

	v, done, err := e.resumeGeneratorRaw(target, nil, false, nil, false)
	if err != nil {
		return newAnomaly("%s", err.Error())
	}
	if done {
		return object.NULL
	}
	return &yieldSuspend{Value: v, Frame: &object.Frame{Kind: object.DelegateFrame, Delegate: target}}
}

func (e *Evaluator) evalIncludeStatement(node *ast.IncludeStatement, env *object.Environment, c *execCtx) object.Value {
	return e.includeModule(node, env)
}
