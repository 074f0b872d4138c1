// ==============================================================================================
// FILE: evaluator/access.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Member/index/slice access and assignment, the postfix foresee/
//          otherwise ternary, and the two comprehension expression forms.
//          Grounded on spec.md §4.4.1's access rules.
// ==============================================================================================

package evaluator

import (
	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/object"
)

// resolveMember looks up node.Property on node.Object, returning (value,
// receiver, error). The receiver is returned too since evalCallExpression
// needs it to bind a method call's `self`.
func (e *Evaluator) resolveMember(node *ast.MemberExpression, env *object.Environment, c *execCtx) (object.Value, object.Value, *anomaly) {
	obj := e.Eval(node.Object, env, c)
	if a, ok := obj.(*anomaly); ok {
		return nil, nil, a
	}
	name := node.Property.Value

	if err := e.checkPrivateAccess(name, obj, env); err != nil {
		return nil, nil, err
	}

	switch v := obj.(type) {
	case *object.Instance:
		if val, ok := v.Fields.Get(name); ok {
			return val, obj, nil
		}
		if method, _ := v.Class.FindMethod(name); method != nil {
			bound := &object.Function{Name: method.Name, Node: method.Node, Env: method.Env, Self: v, IsSequence: method.IsSequence, IsAsync: method.IsAsync}
			return bound, obj, nil
		}
		return nil, nil, newAnomaly("%s has no field or method named %s", v.Class.Name, name)
	case *object.Class:
		if method, _ := v.FindMethod(name); method != nil {
			return method, obj, nil
		}
		return nil, nil, newAnomaly("entity %s has no method named %s", v.Name, name)
	default:
		return nil, nil, newAnomaly("cannot access member %s on a %s", name, obj.Type())
	}
}

// checkPrivateAccess enforces spec.md §4.4.1: a name beginning with `_` is
// only reachable when the current scope's bound `self` is identical to obj.
func (e *Evaluator) checkPrivateAccess(name string, obj object.Value, env *object.Environment) *anomaly {
	if len(name) == 0 || name[0] != '_' {
		return nil
	}
	self, ok := env.Get("self")
	if !ok || self != obj {
		return newAnomaly("%s is private and not accessible outside its own methods", name)
	}
	return nil
}

func (e *Evaluator) assignMember(node *ast.MemberExpression, val object.Value, env *object.Environment, c *execCtx) object.Value {
	obj := e.Eval(node.Object, env, c)
	if isAnomaly(obj) {
		return obj
	}
	name := node.Property.Value
	if err := e.checkPrivateAccess(name, obj, env); err != nil {
		return err
	}
	inst, ok := obj.(*object.Instance)
	if !ok {
		return newAnomaly("cannot assign member %s on a %s", name, obj.Type())
	}
	inst.Fields.Set(name, val)
	return val
}

func (e *Evaluator) evalIndexExpression(node *ast.IndexExpression, env *object.Environment, c *execCtx) object.Value {
	left := e.Eval(node.Left, env, c)
	if isAnomaly(left) {
		return left
	}
	idx := e.Eval(node.Index, env, c)
	if isAnomaly(idx) {
		return idx
	}
	return indexValue(left, idx)
}

// indexValue implements spec.md §4.4.1: negative indices are NOT wrapped
// here (only slices wrap); out-of-range reads yield null rather than error.
func indexValue(left, idx object.Value) object.Value {
	n, ok := idx.(*object.Integer)
	if !ok {
		return newAnomaly("index must be an integer, got %s", idx.Type())
	}
	switch v := left.(type) {
	case *object.List:
		if n.Value < 0 || n.Value >= int64(len(v.Elements)) {
			return object.NULL
		}
		return v.Elements[n.Value]
	case *object.String:
		runes := []rune(v.Value)
		if n.Value < 0 || n.Value >= int64(len(runes)) {
			return object.NULL
		}
		return &object.String{Value: string(runes[n.Value])}
	case *object.Dict:
		pair, ok := v.Pairs.Get(object.Stringify(idx))
		if !ok {
			return object.NULL
		}
		return pair
	default:
		return newAnomaly("value of type %s is not indexable", left.Type())
	}
}

func (e *Evaluator) assignIndex(node *ast.IndexExpression, val object.Value, env *object.Environment, c *execCtx) object.Value {
	left := e.Eval(node.Left, env, c)
	if isAnomaly(left) {
		return left
	}
	idx := e.Eval(node.Index, env, c)
	if isAnomaly(idx) {
		return idx
	}
	switch v := left.(type) {
	case *object.List:
		n, ok := idx.(*object.Integer)
		if !ok {
			return newAnomaly("index must be an integer, got %s", idx.Type())
		}
		if n.Value < 0 || n.Value >= int64(len(v.Elements)) {
			return newAnomaly("index %d out of range", n.Value)
		}
		v.Elements[n.Value] = val
		return val
	case *object.Dict:
		v.Pairs.Set(object.Stringify(idx), val)
		return val
	default:
		return newAnomaly("value of type %s does not support index assignment", left.Type())
	}
}

// evalSliceExpression implements `left[start:end:step]`: negative bounds
// wrap by length, negative step reverses, a zero step is an error.
func (e *Evaluator) evalSliceExpression(node *ast.SliceExpression, env *object.Environment, c *execCtx) object.Value {
	left := e.Eval(node.Left, env, c)
	if isAnomaly(left) {
		return left
	}

	var elems []object.Value
	var isString bool
	switch v := left.(type) {
	case *object.List:
		elems = v.Elements
	case *object.String:
		isString = true
		for _, r := range v.Value {
			elems = append(elems, &object.String{Value: string(r)})
		}
	default:
		return newAnomaly("value of type %s is not sliceable", left.Type())
	}

	step := int64(1)
	if node.Step != nil {
		sv := e.Eval(node.Step, env, c)
		if isAnomaly(sv) {
			return sv
		}
		n, ok := sv.(*object.Integer)
		if !ok {
			return newAnomaly("slice step must be an integer")
		}
		step = n.Value
	}
	if step == 0 {
		return newAnomaly("slice step must not be zero")
	}

	length := int64(len(elems))
	defaultStart, defaultEnd := int64(0), length
	if step < 0 {
		defaultStart, defaultEnd = length-1, -1
	}

	start := defaultStart
	if node.Start != nil {
		sv := e.Eval(node.Start, env, c)
		if isAnomaly(sv) {
			return sv
		}
		n, ok := sv.(*object.Integer)
		if !ok {
			return newAnomaly("slice start must be an integer")
		}
		start = wrapSliceIndex(n.Value, length)
	}
	end := defaultEnd
	if node.End != nil {
		ev := e.Eval(node.End, env, c)
		if isAnomaly(ev) {
			return ev
		}
		n, ok := ev.(*object.Integer)
		if !ok {
			return newAnomaly("slice end must be an integer")
		}
		end = wrapSliceIndex(n.Value, length)
	}

	var out []object.Value
	if step > 0 {
		for i := start; i < end && i < length; i += step {
			if i >= 0 {
				out = append(out, elems[i])
			}
		}
	} else {
		for i := start; i > end && i >= 0; i += step {
			if i < length {
				out = append(out, elems[i])
			}
		}
	}

	if isString {
		var sb []rune
		for _, el := range out {
			sb = append(sb, []rune(el.(*object.String).Value)...)
		}
		return &object.String{Value: string(sb)}
	}
	return &object.List{Elements: out}
}

func wrapSliceIndex(i, length int64) int64 {
	if i < 0 {
		i += length
	}
	return i
}

func (e *Evaluator) evalForeseeExpression(node *ast.ForeseeExpression, env *object.Environment, c *execCtx) object.Value {
	cond := e.Eval(node.Condition, env, c)
	if isAnomaly(cond) {
		return cond
	}
	if cond.Truthy() {
		return e.Eval(node.Value, env, c)
	}
	return e.Eval(node.Otherwise, env, c)
}

// evalGeneratorExpression builds the lazy Generator value a parenthesized
// `(result for var through iterable [where cond])` produces; its body is
// synthesized once, here, as the equivalent sequence-protocol loop.
func (e *Evaluator) evalGeneratorExpression(node *ast.GeneratorExpression, env *object.Environment) object.Value {
	body := &ast.BlockStatement{Token: node.Token, Statements: []ast.Statement{
		&ast.CycleThroughStmt{
			Token:    node.Token,
			Iterable: node.Iterable,
			Var:      node.Var,
			Body: &ast.BlockStatement{Token: node.Token, Statements: generatorExprBodyStatements(node)},
		},
	}}
	fn := &object.Function{Name: "<generator expression>", Node: &syntheticCallable{body: body}, Env: env, IsSequence: true}
	genEnv := object.NewEnclosedEnvironment(env)
	return &object.Generator{Fn: fn, Env: genEnv, Status: object.Suspended, Body: body}
}

// syntheticCallable lets the evaluator hand a hand-built block to the
// Generator machinery as if it were an ordinary parsed protocol body —
// used for desugaring generator-expression syntax (no declared parameters).
type syntheticCallable struct {
	body *ast.BlockStatement
}

func (s *syntheticCallable) TokenLiteral() string            { return "" }
func (s *syntheticCallable) String() string                  { return "<generator expression>" }
func (s *syntheticCallable) Pos() (int, int)                 { return 0, 0 }
func (s *syntheticCallable) ParamList() []*ast.Parameter      { return nil }
func (s *syntheticCallable) BlockBody() *ast.BlockStatement   { return s.body }

func generatorExprBodyStatements(node *ast.GeneratorExpression) []ast.Statement {
	yieldStmt := &ast.YieldStatement{Token: node.Token, Value: node.Result}
	if node.Condition == nil {
		return []ast.Statement{yieldStmt}
	}
	return []ast.Statement{&ast.ForeseeStmt{
		Token:     node.Token,
		Condition: node.Condition,
		Body:      &ast.BlockStatement{Token: node.Token, Statements: []ast.Statement{yieldStmt}},
	}}
}

// evalListComprehension eagerly materializes `[result cycle through iterable as var [foresee cond]]`.
func (e *Evaluator) evalListComprehension(node *ast.ListComprehension, env *object.Environment, c *execCtx) object.Value {
	iterable := e.Eval(node.Iterable, env, c)
	if isAnomaly(iterable) {
		return iterable
	}
	items, err := materializeIterable(e, iterable, c)
	if err != nil {
		return err
	}
	var out []object.Value
	for _, item := range items {
		bodyEnv := object.NewEnclosedEnvironment(env)
		if err := bindPattern(node.Var, item, bodyEnv, true); err != nil {
			return err
		}
		if node.Condition != nil {
			cond := e.Eval(node.Condition, bodyEnv, c)
			if isAnomaly(cond) {
				return cond
			}
			if !cond.Truthy() {
				continue
			}
		}
		v := e.Eval(node.Result, bodyEnv, c)
		if isAnomaly(v) {
			return v
		}
		out = append(out, v)
	}
	return &object.List{Elements: out}
}

// materializeIterable fully drains a List/String/Dict/Generator into a
// slice of Values — used where laziness isn't needed (list comprehensions).
func materializeIterable(e *Evaluator, v object.Value, c *execCtx) ([]object.Value, *anomaly) {
	switch val := v.(type) {
	case *object.List:
		return val.Elements, nil
	case *object.String:
		var out []object.Value
		for _, r := range val.Value {
			out = append(out, &object.String{Value: string(r)})
		}
		return out, nil
	case *object.Dict:
		var out []object.Value
		for pair := val.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, &object.String{Value: pair.Key})
		}
		return out, nil
	case *object.Generator:
		var out []object.Value
		for {
			item, done, err := e.resumeGeneratorRaw(val, nil, false, nil, false)
			if err != nil {
				return nil, newAnomaly("%s", err.Error())
			}
			if done {
				break
			}
			out = append(out, item)
		}
		return out, nil
	default:
		return nil, newAnomaly("value of type %s is not iterable", v.Type())
	}
}
