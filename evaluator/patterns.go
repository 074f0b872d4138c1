// ==============================================================================================
// FILE: evaluator/patterns.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Shared binding logic for every place spec.md lets a name slot be
//          either a plain identifier or a nested list-destructuring
//          pattern: designate/assign targets, `as` loop variables, and
//          call-parameter binding.
// ==============================================================================================

package evaluator

import (
	"github.com/kei-lang/kei/ast"
	"github.com/kei-lang/kei/object"
)

// bindPattern binds value into pattern (an *ast.Identifier or *ast.ListPattern)
// against env. define selects designate semantics (Define, always current
// scope) vs assign semantics (Set, nearest existing binding or current
// scope). Per spec.md §4.4.2: destructuring requires value to be a list;
// extra target slots get null, extra source elements are ignored.
func bindPattern(pattern ast.Expression, value object.Value, env *object.Environment, define bool) *anomaly {
	switch p := pattern.(type) {
	case *ast.Identifier:
		if define {
			env.Define(p.Value, value)
		} else {
			env.Set(p.Value, value)
		}
		return nil
	case *ast.ListPattern:
		list, ok := value.(*object.List)
		if !ok {
			return newAnomaly("destructuring target requires a list, got %s", value.Type())
		}
		return bindListPattern(p, list.Elements, env, define)
	default:
		return newAnomaly("invalid binding target %T", pattern)
	}
}

func bindListPattern(p *ast.ListPattern, src []object.Value, env *object.Environment, define bool) *anomaly {
	at := func(i int) object.Value {
		if i >= 0 && i < len(src) {
			return src[i]
		}
		return object.NULL
	}

	if p.RestIdx < 0 {
		for i, el := range p.Elements {
			if err := bindPattern(el, at(i), env, define); err != nil {
				return err
			}
		}
		return nil
	}

	before := p.RestIdx
	after := len(p.Elements) - p.RestIdx - 1

	for i := 0; i < before; i++ {
		if err := bindPattern(p.Elements[i], at(i), env, define); err != nil {
			return err
		}
	}
	for j := 0; j < after; j++ {
		srcIdx := len(src) - after + j
		if err := bindPattern(p.Elements[p.RestIdx+1+j], at(srcIdx), env, define); err != nil {
			return err
		}
	}

	restEnd := len(src) - after
	var rest []object.Value
	if restEnd > before {
		rest = append([]object.Value{}, src[before:restEnd]...)
	}
	return bindPattern(p.Elements[p.RestIdx], &object.List{Elements: rest}, env, define)
}
