// ==============================================================================================
// FILE: evaluator/oop.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Single-inheritance classes (spec.md §4.4.1 OOP rules): entity
//          definition, manifesting instances (calling `construct` if
//          present), and `ascend` super-calls.
// ==============================================================================================

package evaluator

import (
	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/object"
)

const constructorName = "construct"

func (e *Evaluator) evalEntityStmt(node *ast.EntityStmt, env *object.Environment) object.Value {
	var parent *object.Class
	if node.Parent != nil {
		pv, ok := env.Get(node.Parent.Value)
		if !ok {
			return newAnomaly("%s", unresolvedIdentifierMessage(node.Parent.Value, env))
		}
		parentClass, ok := pv.(*object.Class)
		if !ok {
			return newAnomaly("%s is not an entity", node.Parent.Value)
		}
		parent = parentClass
	}

	class := &object.Class{Name: node.Name.Value, Methods: make(map[string]*object.Function), Parent: parent}
	for _, m := range node.Methods {
		class.Methods[m.Name.Value] = &object.Function{
			Name: m.Name.Value, Node: m, Env: env, IsSequence: m.IsSequence, IsAsync: m.IsAsync,
		}
	}
	env.Define(node.Name.Value, class)
	return object.NULL
}

// evalManifestExpression allocates a new Instance and, if the class (or an
// ancestor) defines `construct`, calls it bound to self with the given
// arguments before returning the instance.
func (e *Evaluator) evalManifestExpression(node *ast.ManifestExpression, env *object.Environment, c *execCtx) object.Value {
	classVal := e.Eval(node.Class, env, c)
	if isAnomaly(classVal) {
		return classVal
	}
	class, ok := classVal.(*object.Class)
	if !ok {
		return newAnomaly("manifest requires an entity, got %s", classVal.Type())
	}

	inst := &object.Instance{Class: class, Fields: object.NewEnvironment()}

	args, aerr := e.evalExpressionListWithSpread(node.Arguments, env, c)
	if aerr != nil {
		return aerr
	}
	if ctor, _ := class.FindMethod(constructorName); ctor != nil {
		bound := &object.Function{Name: ctor.Name, Node: ctor.Node, Env: ctor.Env, Self: inst, IsSequence: ctor.IsSequence, IsAsync: ctor.IsAsync}
		result := e.applyFunction(bound, args)
		if isAnomaly(result) {
			return result
		}
	}
	return inst
}

// evalAscendCall resolves `ascend name(args)` against the current scope's
// bound self, looking the method up starting at self's class's parent —
// so a method overridden in the subclass still reaches the one it shadows.
func (e *Evaluator) evalAscendCall(node *ast.AscendCallExpression, env *object.Environment, c *execCtx) object.Value {
	selfVal, ok := env.Get("self")
	if !ok {
		return newAnomaly("ascend used outside a method body")
	}
	inst, ok := selfVal.(*object.Instance)
	if !ok {
		return newAnomaly("ascend used outside a method body")
	}
	if inst.Class.Parent == nil {
		return newAnomaly("%s has no parent entity to ascend to", inst.Class.Name)
	}
	method, _ := inst.Class.Parent.FindMethod(node.Method.Value)
	if method == nil {
		return newAnomaly("parent entity %s has no method named %s", inst.Class.Parent.Name, node.Method.Value)
	}

	args, aerr := e.evalExpressionListWithSpread(node.Arguments, env, c)
	if aerr != nil {
		return aerr
	}
	bound := &object.Function{Name: method.Name, Node: method.Node, Env: method.Env, Self: inst, IsSequence: method.IsSequence, IsAsync: method.IsAsync}
	return e.applyFunction(bound, args)
}
