// ==============================================================================================
// FILE: object/builtins.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: Native builtins exposed to kei source, grounded on SPEC_FULL.md
//          §4.6's library table. Builtins needing to call back into a kei
//          Function/Builtin value (transform/select/fold) take an Apply
//          callback injected by the evaluator, which owns the call
//          protocol; builtins that drive the generator suspension engine or
//          Promise control (proceed/transmit/receive/disrupt/resolve/defer)
//          are registered directly by the evaluator instead, since they
//          need machinery this package does not own.
// ==============================================================================================

package object

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ApplyFunc calls a Function or Builtin value with args, the same protocol
// the evaluator uses for ordinary kei calls — injected so this package
// never imports evaluator.
type ApplyFunc func(callee Value, args []Value) (Value, error)

func argError(name string, want int, got int) error {
	return fmt.Errorf("%s: expected %d argument(s), got %d", name, want, got)
}

// NewBuiltins returns the builtin registry that does not require calling
// back into a kei callable.
func NewBuiltins() map[string]*Builtin {
	reader := bufio.NewReader(os.Stdin)

	b := map[string]*Builtin{}

	b["declare"] = &Builtin{Name: "declare", Fn: func(args ...Value) (Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = Stringify(a)
		}
		fmt.Println(strings.Join(parts, " "))
		return NULL, nil
	}}

	b["announce"] = &Builtin{Name: "announce", Fn: func(args ...Value) (Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = Stringify(a)
		}
		fmt.Print(strings.Join(parts, " "))
		return NULL, nil
	}}

	b["inquire"] = &Builtin{Name: "inquire", Fn: func(args ...Value) (Value, error) {
		if len(args) > 0 {
			fmt.Print(Stringify(args[0]))
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return NULL, nil
		}
		return &String{Value: strings.TrimRight(line, "\r\n")}, nil
	}}

	b["measure"] = &Builtin{Name: "measure", Fn: func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("measure", 1, len(args))
		}
		switch v := args[0].(type) {
		case *List:
			return &Integer{Value: int64(len(v.Elements))}, nil
		case *String:
			return &Integer{Value: int64(len([]rune(v.Value)))}, nil
		case *Dict:
			return &Integer{Value: int64(v.Pairs.Len())}, nil
		default:
			return nil, fmt.Errorf("measure: unsupported type %s", args[0].Type())
		}
	}}

	b["text"] = &Builtin{Name: "text", Fn: castBuiltin("text", func(v Value) (Value, error) {
		return &String{Value: cast.ToString(unwrap(v))}, nil
	})}
	b["number"] = &Builtin{Name: "number", Fn: castBuiltin("number", func(v Value) (Value, error) {
		i, err := cast.ToInt64E(unwrap(v))
		if err != nil {
			return nil, err
		}
		return &Integer{Value: i}, nil
	})}
	b["decimal"] = &Builtin{Name: "decimal", Fn: castBuiltin("decimal", func(v Value) (Value, error) {
		f, err := cast.ToFloat64E(unwrap(v))
		if err != nil {
			return nil, err
		}
		return &Float{Value: f}, nil
	})}
	b["boolean"] = &Builtin{Name: "boolean", Fn: castBuiltin("boolean", func(v Value) (Value, error) {
		return NativeBool(v.Truthy()), nil
	})}
	b["classify"] = &Builtin{Name: "classify", Fn: castBuiltin("classify", func(v Value) (Value, error) {
		return &String{Value: strings.ToLower(string(v.Type()))}, nil
	})}

	b["uppercase"] = &Builtin{Name: "uppercase", Fn: stringBuiltin("uppercase", strings.ToUpper)}
	b["lowercase"] = &Builtin{Name: "lowercase", Fn: stringBuiltin("lowercase", strings.ToLower)}

	b["split"] = &Builtin{Name: "split", Fn: func(args ...Value) (Value, error) {
		if len(args) != 2 {
			return nil, argError("split", 2, len(args))
		}
		s, ok := args[0].(*String)
		sep, ok2 := args[1].(*String)
		if !ok || !ok2 {
			return nil, fmt.Errorf("split: expected (string, string)")
		}
		parts := strings.Split(s.Value, sep.Value)
		elems := make([]Value, len(parts))
		for i, p := range parts {
			elems[i] = &String{Value: p}
		}
		return &List{Elements: elems}, nil
	}}

	b["join"] = &Builtin{Name: "join", Fn: func(args ...Value) (Value, error) {
		if len(args) != 2 {
			return nil, argError("join", 2, len(args))
		}
		l, ok := args[0].(*List)
		sep, ok2 := args[1].(*String)
		if !ok || !ok2 {
			return nil, fmt.Errorf("join: expected (list, string)")
		}
		parts := make([]string, len(l.Elements))
		for i, e := range l.Elements {
			parts[i] = Stringify(e)
		}
		return &String{Value: strings.Join(parts, sep.Value)}, nil
	}}

	b["contains"] = &Builtin{Name: "contains", Fn: func(args ...Value) (Value, error) {
		if len(args) != 2 {
			return nil, argError("contains", 2, len(args))
		}
		switch haystack := args[0].(type) {
		case *String:
			needle, ok := args[1].(*String)
			if !ok {
				return nil, fmt.Errorf("contains: string haystack needs a string needle")
			}
			return NativeBool(strings.Contains(haystack.Value, needle.Value)), nil
		case *List:
			for _, e := range haystack.Elements {
				if Equal(e, args[1]) {
					return TRUE, nil
				}
			}
			return FALSE, nil
		default:
			return nil, fmt.Errorf("contains: unsupported type %s", args[0].Type())
		}
	}}

	b["push"] = &Builtin{Name: "push", Fn: func(args ...Value) (Value, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("push: expected at least 2 arguments, got %d", len(args))
		}
		l, ok := args[0].(*List)
		if !ok {
			return nil, fmt.Errorf("push: expected a list")
		}
		out := append([]Value{}, l.Elements...)
		out = append(out, args[1:]...)
		return &List{Elements: out}, nil
	}}

	b["reverse"] = &Builtin{Name: "reverse", Fn: func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("reverse", 1, len(args))
		}
		l, ok := args[0].(*List)
		if !ok {
			return nil, fmt.Errorf("reverse: expected a list")
		}
		return &List{Elements: lo.Reverse(append([]Value{}, l.Elements...))}, nil
	}}

	b["encode_json"] = &Builtin{Name: "encode_json", Fn: func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("encode_json", 1, len(args))
		}
		raw, err := encodeJSON(args[0])
		if err != nil {
			return nil, err
		}
		return &String{Value: string(pretty.Pretty([]byte(raw)))}, nil
	}}

	b["decode_json"] = &Builtin{Name: "decode_json", Fn: func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("decode_json", 1, len(args))
		}
		s, ok := args[0].(*String)
		if !ok {
			return nil, fmt.Errorf("decode_json: expected a string")
		}
		if !gjson.Valid(s.Value) {
			return nil, fmt.Errorf("decode_json: invalid JSON")
		}
		return decodeJSON(gjson.Parse(s.Value)), nil
	}}

	b["clock"] = &Builtin{Name: "clock", Fn: func(args ...Value) (Value, error) {
		return &Float{Value: float64(time.Now().UnixNano()) / 1e9}, nil
	}}

	b["timestamp"] = &Builtin{Name: "timestamp", Fn: func(args ...Value) (Value, error) {
		return &String{Value: humanize.Time(time.Now())}, nil
	}}

	b["sleep"] = &Builtin{Name: "sleep", Fn: func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("sleep", 1, len(args))
		}
		ms, err := cast.ToInt64E(unwrap(args[0]))
		if err != nil {
			return nil, err
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return NULL, nil
	}}

	b["terminate"] = &Builtin{Name: "terminate", Fn: func(args ...Value) (Value, error) {
		code := 0
		if len(args) == 1 {
			c, err := cast.ToIntE(unwrap(args[0]))
			if err != nil {
				return nil, err
			}
			code = c
		}
		os.Exit(code)
		return NULL, nil
	}}

	b["inscribe"] = &Builtin{Name: "inscribe", Fn: func(args ...Value) (Value, error) {
		if len(args) != 2 {
			return nil, argError("inscribe", 2, len(args))
		}
		path, ok := args[0].(*String)
		content, ok2 := args[1].(*String)
		if !ok || !ok2 {
			return nil, fmt.Errorf("inscribe: expected (string, string)")
		}
		if err := os.WriteFile(path.Value, []byte(content.Value), 0o644); err != nil {
			return nil, err
		}
		return NULL, nil
	}}

	b["decipher"] = &Builtin{Name: "decipher", Fn: func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("decipher", 1, len(args))
		}
		path, ok := args[0].(*String)
		if !ok {
			return nil, fmt.Errorf("decipher: expected a string path")
		}
		data, err := os.ReadFile(path.Value)
		if err != nil {
			return nil, err
		}
		return &String{Value: string(data)}, nil
	}}

	b["chronicle"] = &Builtin{Name: "chronicle", Fn: func(args ...Value) (Value, error) {
		if len(args) != 2 {
			return nil, argError("chronicle", 2, len(args))
		}
		path, ok := args[0].(*String)
		content, ok2 := args[1].(*String)
		if !ok || !ok2 {
			return nil, fmt.Errorf("chronicle: expected (string, string)")
		}
		f, err := os.OpenFile(path.Value, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if _, err := f.WriteString(content.Value); err != nil {
			return nil, err
		}
		return NULL, nil
	}}

	b["exists"] = &Builtin{Name: "exists", Fn: func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("exists", 1, len(args))
		}
		path, ok := args[0].(*String)
		if !ok {
			return nil, fmt.Errorf("exists: expected a string path")
		}
		_, err := os.Stat(path.Value)
		return NativeBool(err == nil), nil
	}}

	b["abs"] = &Builtin{Name: "abs", Fn: numericBuiltin("abs", math.Abs, func(i int64) int64 {
		if i < 0 {
			return -i
		}
		return i
	})}
	b["sqrt"] = &Builtin{Name: "sqrt", Fn: func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("sqrt", 1, len(args))
		}
		f, err := cast.ToFloat64E(unwrap(args[0]))
		if err != nil {
			return nil, err
		}
		return &Float{Value: math.Sqrt(f)}, nil
	}}
	b["min"] = &Builtin{Name: "min", Fn: minMaxBuiltin("min", func(a, c float64) bool { return a < c })}
	b["max"] = &Builtin{Name: "max", Fn: minMaxBuiltin("max", func(a, c float64) bool { return a > c })}
	b["random"] = &Builtin{Name: "random", Fn: func(args ...Value) (Value, error) {
		return &Float{Value: rand.Float64()}, nil
	}}

	b["span"] = &Builtin{Name: "span", Fn: func(args ...Value) (Value, error) {
		var start, end, step int64 = 0, 0, 1
		switch len(args) {
		case 1:
			n, err := cast.ToInt64E(unwrap(args[0]))
			if err != nil {
				return nil, err
			}
			end = n
		case 2, 3:
			s, err := cast.ToInt64E(unwrap(args[0]))
			if err != nil {
				return nil, err
			}
			e, err := cast.ToInt64E(unwrap(args[1]))
			if err != nil {
				return nil, err
			}
			start, end = s, e
			if len(args) == 3 {
				st, err := cast.ToInt64E(unwrap(args[2]))
				if err != nil {
					return nil, err
				}
				step = st
			}
		default:
			return nil, fmt.Errorf("span: expected 1 to 3 arguments, got %d", len(args))
		}
		if step == 0 {
			return nil, fmt.Errorf("span: step must not be zero")
		}
		var elems []Value
		if step > 0 {
			for i := start; i < end; i += step {
				elems = append(elems, &Integer{Value: i})
			}
		} else {
			for i := start; i > end; i += step {
				elems = append(elems, &Integer{Value: i})
			}
		}
		return &List{Elements: elems}, nil
	}}

	return b
}

// NewApplyBuiltins returns the builtins that need to call back into a kei
// Function/Builtin value: transform (map), select (filter), fold (reduce),
// all grounded on github.com/samber/lo's generic helpers.
func NewApplyBuiltins(apply ApplyFunc) map[string]*Builtin {
	return map[string]*Builtin{
		"transform": {Name: "transform", Fn: func(args ...Value) (Value, error) {
			if len(args) != 2 {
				return nil, argError("transform", 2, len(args))
			}
			l, ok := args[0].(*List)
			if !ok {
				return nil, fmt.Errorf("transform: expected a list")
			}
			var callErr error
			out := lo.Map(l.Elements, func(item Value, idx int) Value {
				if callErr != nil {
					return NULL
				}
				r, err := apply(args[1], []Value{item, &Integer{Value: int64(idx)}})
				if err != nil {
					callErr = err
					return NULL
				}
				return r
			})
			if callErr != nil {
				return nil, callErr
			}
			return &List{Elements: out}, nil
		}},
		"select": {Name: "select", Fn: func(args ...Value) (Value, error) {
			if len(args) != 2 {
				return nil, argError("select", 2, len(args))
			}
			l, ok := args[0].(*List)
			if !ok {
				return nil, fmt.Errorf("select: expected a list")
			}
			var callErr error
			out := lo.Filter(l.Elements, func(item Value, idx int) bool {
				if callErr != nil {
					return false
				}
				r, err := apply(args[1], []Value{item, &Integer{Value: int64(idx)}})
				if err != nil {
					callErr = err
					return false
				}
				return r.Truthy()
			})
			if callErr != nil {
				return nil, callErr
			}
			return &List{Elements: out}, nil
		}},
		"fold": {Name: "fold", Fn: func(args ...Value) (Value, error) {
			if len(args) != 3 {
				return nil, argError("fold", 3, len(args))
			}
			l, ok := args[0].(*List)
			if !ok {
				return nil, fmt.Errorf("fold: expected a list")
			}
			var callErr error
			result := lo.Reduce(l.Elements, func(agg Value, item Value, idx int) Value {
				if callErr != nil {
					return agg
				}
				r, err := apply(args[1], []Value{agg, item, &Integer{Value: int64(idx)}})
				if err != nil {
					callErr = err
					return agg
				}
				return r
			}, args[2])
			if callErr != nil {
				return nil, callErr
			}
			return result, nil
		}},
	}
}

func castBuiltin(name string, f func(Value) (Value, error)) func(...Value) (Value, error) {
	return func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError(name, 1, len(args))
		}
		return f(args[0])
	}
}

func stringBuiltin(name string, f func(string) string) func(...Value) (Value, error) {
	return func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError(name, 1, len(args))
		}
		s, ok := args[0].(*String)
		if !ok {
			return nil, fmt.Errorf("%s: expected a string", name)
		}
		return &String{Value: f(s.Value)}, nil
	}
}

func numericBuiltin(name string, ffn func(float64) float64, ifn func(int64) int64) func(...Value) (Value, error) {
	return func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError(name, 1, len(args))
		}
		switch v := args[0].(type) {
		case *Integer:
			return &Integer{Value: ifn(v.Value)}, nil
		case *Float:
			return &Float{Value: ffn(v.Value)}, nil
		default:
			return nil, fmt.Errorf("%s: expected a number", name)
		}
	}
}

func minMaxBuiltin(name string, better func(a, b float64) bool) func(...Value) (Value, error) {
	return func(args ...Value) (Value, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("%s: expected at least 1 argument", name)
		}
		values := args
		if len(args) == 1 {
			if l, ok := args[0].(*List); ok {
				values = l.Elements
			}
		}
		if len(values) == 0 {
			return NULL, nil
		}
		best := values[0]
		bestF, err := cast.ToFloat64E(unwrap(best))
		if err != nil {
			return nil, err
		}
		for _, v := range values[1:] {
			f, err := cast.ToFloat64E(unwrap(v))
			if err != nil {
				return nil, err
			}
			if better(f, bestF) {
				best, bestF = v, f
			}
		}
		return best, nil
	}
}

// unwrap converts a Value into the native Go type cast.ToXE expects.
func unwrap(v Value) interface{} {
	switch val := v.(type) {
	case *Integer:
		return val.Value
	case *Float:
		return val.Value
	case *String:
		return val.Value
	case *Boolean:
		return val.Value
	default:
		return val.Inspect()
	}
}

func encodeJSON(v Value) (string, error) {
	switch val := v.(type) {
	case *Null:
		return "null", nil
	case *Boolean:
		return fmt.Sprintf("%t", val.Value), nil
	case *Integer:
		return fmt.Sprintf("%d", val.Value), nil
	case *Float:
		return fmt.Sprintf("%g", val.Value), nil
	case *String:
		return fmt.Sprintf("%q", val.Value), nil
	case *List:
		out := "[]"
		var err error
		for i, e := range val.Elements {
			child, e2 := encodeJSON(e)
			if e2 != nil {
				return "", e2
			}
			out, err = sjson.SetRaw(out, fmt.Sprintf("%d", i), child)
			if err != nil {
				return "", err
			}
		}
		return out, nil
	case *Dict:
		out := "{}"
		var err error
		for pair := val.Pairs.Oldest(); pair != nil; pair = pair.Next() {
			child, e2 := encodeJSON(pair.Value)
			if e2 != nil {
				return "", e2
			}
			out, err = sjson.SetRaw(out, pair.Key, child)
			if err != nil {
				return "", err
			}
		}
		return out, nil
	default:
		return "", fmt.Errorf("encode_json: unsupported type %s", v.Type())
	}
}

func decodeJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return NULL
	case gjson.False:
		return FALSE
	case gjson.True:
		return TRUE
	case gjson.Number:
		if r.Num == math.Trunc(r.Num) {
			return &Integer{Value: int64(r.Num)}
		}
		return &Float{Value: r.Num}
	case gjson.String:
		return &String{Value: r.Str}
	case gjson.JSON:
		if r.IsArray() {
			var elems []Value
			r.ForEach(func(_, value gjson.Result) bool {
				elems = append(elems, decodeJSON(value))
				return true
			})
			return &List{Elements: elems}
		}
		out := NewDict()
		r.ForEach(func(key, value gjson.Result) bool {
			out.Pairs.Set(key.String(), decodeJSON(value))
			return true
		})
		return out
	default:
		return NULL
	}
}
