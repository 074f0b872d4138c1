// ==============================================================================================
// FILE: object/object.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: Defines kei's runtime value model: the 13-variant Value sum type
//          from spec.md §3.3, and the truthiness/equality/deep-copy/
//          stringification operations from §4.3.
// ==============================================================================================

package object

import (
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kei-lang/kei/ast"
)

// ObjectType is a string alias for identifying the runtime type of a Value.
type ObjectType string

const (
	NULL_OBJ     = "NULL"
	BOOLEAN_OBJ  = "BOOLEAN"
	INTEGER_OBJ  = "INTEGER"
	FLOAT_OBJ    = "FLOAT"
	STRING_OBJ   = "STRING"
	LIST_OBJ     = "LIST"
	DICT_OBJ     = "DICT"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	CLASS_OBJ    = "CLASS"
	INSTANCE_OBJ = "INSTANCE"
	GENERATOR_OBJ = "GENERATOR"
	PROMISE_OBJ  = "PROMISE"
)

// Value is the interface every kei runtime value implements. Every Value is
// a closed sum — no untagged payloads — per spec.md §3.3's invariant.
type Value interface {
	Type() ObjectType
	Inspect() string
	Truthy() bool
}

// ==============================================================================================
// PRIMITIVES
// ==============================================================================================

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "none" }
func (n *Null) Truthy() bool     { return false }

var NULL = &Null{}

type Boolean struct{ Value bool }

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) Truthy() bool     { return b.Value }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// NativeBool returns the shared TRUE/FALSE singleton for a Go bool.
func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

type Integer struct{ Value int64 }

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) Truthy() bool     { return i.Value != 0 }

type Float struct{ Value float64 }

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (f *Float) Truthy() bool     { return f.Value != 0 }

type String struct{ Value string }

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }
func (s *String) Truthy() bool     { return s.Value != "" }

// ==============================================================================================
// COMPOSITE VALUES
// ==============================================================================================

// List is a growable, owned sequence of Values.
type List struct{ Elements []Value }

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Truthy() bool     { return len(l.Elements) > 0 }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = Stringify(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Dict is an insertion-ordered string-keyed map, backed by go-ordered-map so
// iteration order always matches insertion order — a correctness
// requirement of spec.md §3.3, not merely a style preference, since Go's
// built-in map has no iteration-order guarantee at all.
type Dict struct {
	Pairs *orderedmap.OrderedMap[string, Value]
}

// NewDict allocates an empty Dict.
func NewDict() *Dict {
	return &Dict{Pairs: orderedmap.New[string, Value]()}
}

func (d *Dict) Type() ObjectType { return DICT_OBJ }
func (d *Dict) Truthy() bool     { return d.Pairs.Len() > 0 }
func (d *Dict) Inspect() string {
	parts := make([]string, 0, d.Pairs.Len())
	for pair := d.Pairs.Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, fmt.Sprintf("%q: %s", pair.Key, Stringify(pair.Value)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ==============================================================================================
// CALLABLES
// ==============================================================================================

// Function is a closure: the defining AST node (a *ast.Protocol or
// *ast.Lambda, both satisfying the local Callable interface below), the
// environment captured at definition time, and an optional bound receiver
// for methods.
type Function struct {
	Name       string
	Node       Callable
	Env        *Environment
	Self       Value // bound receiver for methods, nil otherwise
	IsSequence bool
	IsAsync    bool
}

// Callable is satisfied by *ast.Protocol and *ast.Lambda: anything with a
// parameter list and a block body the evaluator can execute.
type Callable interface {
	ast.Node
	ParamList() []*ast.Parameter
	BlockBody() *ast.BlockStatement
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Truthy() bool     { return true }
func (f *Function) Inspect() string {
	if f.Name != "" {
		return "<protocol " + f.Name + ">"
	}
	return "<lambda>"
}

// Builtin wraps a native Go function exposed to kei source.
type Builtin struct {
	Name string
	Fn   func(args ...Value) (Value, error)
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Truthy() bool     { return true }
func (b *Builtin) Inspect() string  { return "<builtin " + b.Name + ">" }

// ==============================================================================================
// OOP
// ==============================================================================================

// Class is a single-inheritance class: its method table and an optional
// parent to walk for ascend/manifest resolution.
type Class struct {
	Name    string
	Methods map[string]*Function
	Parent  *Class
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Truthy() bool     { return true }
func (c *Class) Inspect() string  { return "<entity " + c.Name + ">" }

// FindMethod walks the parent chain looking for name, the way ascend and
// member-access method resolution both need to.
func (c *Class) FindMethod(name string) (*Function, *Class) {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.Methods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// Instance is a manifested object: its class pointer and its own field
// environment (distinct from any method's closure).
type Instance struct {
	Class  *Class
	Fields *Environment
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) Truthy() bool     { return true }
func (i *Instance) Inspect() string  { return "<" + i.Class.Name + " instance>" }

// ==============================================================================================
// PROMISE
// ==============================================================================================

type PromiseState int

const (
	Pending PromiseState = iota
	Resolved
	Rejected
)

// Promise is the value an `await`-flagged protocol call returns immediately;
// await pulls its Result once Resolved/Rejected, or per spec.md §9 open
// question 2 returns the Promise itself (unchanged) while still Pending.
type Promise struct {
	State  PromiseState
	Result Value
}

func (p *Promise) Type() ObjectType { return PROMISE_OBJ }
func (p *Promise) Truthy() bool     { return true }
func (p *Promise) Inspect() string {
	switch p.State {
	case Resolved:
		return "<promise resolved: " + Stringify(p.Result) + ">"
	case Rejected:
		return "<promise rejected: " + Stringify(p.Result) + ">"
	default:
		return "<promise pending>"
	}
}

// ==============================================================================================
// VALUE OPERATIONS — spec.md §4.3
// ==============================================================================================

// Equal implements same-tag structural equality for primitives/strings/
// lists/dicts, and identity equality for functions/classes/instances.
// Dict equality is resolved here as structural (key-set + per-key value
// equality), the §9 open question #3 decision: consistency with list
// equality outweighs the source's identity-only default.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case *Null:
		return true
	case *Boolean:
		return av.Value == b.(*Boolean).Value
	case *Integer:
		return av.Value == b.(*Integer).Value
	case *Float:
		return av.Value == b.(*Float).Value
	case *String:
		return av.Value == b.(*String).Value
	case *List:
		bv := b.(*List)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv := b.(*Dict)
		if av.Pairs.Len() != bv.Pairs.Len() {
			return false
		}
		for pair := av.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			other, ok := bv.Pairs.Get(pair.Key)
			if !ok || !Equal(pair.Value, other) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// DeepCopy duplicates strings and lists/dicts recursively; functions,
// classes, and instances are returned unchanged (shared by reference);
// generators clone their environment and suspension stack (see generator.go).
func DeepCopy(v Value) Value {
	switch val := v.(type) {
	case *String:
		return &String{Value: val.Value}
	case *List:
		elems := make([]Value, len(val.Elements))
		for i, e := range val.Elements {
			elems[i] = DeepCopy(e)
		}
		return &List{Elements: elems}
	case *Dict:
		out := NewDict()
		for pair := val.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			out.Pairs.Set(pair.Key, DeepCopy(pair.Value))
		}
		return out
	case *Generator:
		return val.Clone()
	default:
		return v
	}
}

// Stringify renders a Value the way a `declare` call or string-concat
// coercion should: primitives in their obvious form, strings WITHOUT
// surrounding quotes (coercion strips them per spec.md §4.4.1), lists
// recursively, everything else as "<kind name>".
func Stringify(v Value) string {
	switch val := v.(type) {
	case *String:
		return val.Value
	case nil:
		return "none"
	case *Null:
		return "none"
	case *List:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = quotedStringify(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return v.Inspect()
	}
}

// quotedStringify is Stringify except strings keep their quotes — used
// inside list rendering, where spec.md §4.3 says lists "render as
// [e1, e2, …] recursively" using each element's own Inspect-style form.
func quotedStringify(v Value) string {
	if s, ok := v.(*String); ok {
		return strconv.Quote(s.Value)
	}
	return Stringify(v)
}
