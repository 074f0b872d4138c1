package object

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTruthiness(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{NULL, false},
		{FALSE, false},
		{TRUE, true},
		{&Integer{Value: 0}, false},
		{&Integer{Value: 1}, true},
		{&Float{Value: 0}, false},
		{&String{Value: ""}, false},
		{&String{Value: "x"}, true},
		{&List{}, false},
		{&List{Elements: []Value{TRUE}}, true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%s.Truthy() = %v, want %v", c.v.Inspect(), got, c.want)
		}
	}
}

func TestEqualityPrimitivesAndLists(t *testing.T) {
	a := &List{Elements: []Value{&Integer{Value: 1}, &String{Value: "x"}}}
	b := &List{Elements: []Value{&Integer{Value: 1}, &String{Value: "x"}}}
	if !Equal(a, b) {
		t.Fatalf("expected equal lists")
	}
	c := &List{Elements: []Value{&Integer{Value: 1}, &String{Value: "y"}}}
	if Equal(a, c) {
		t.Fatalf("expected unequal lists")
	}
}

func TestDictEqualityIsStructural(t *testing.T) {
	a := NewDict()
	a.Pairs.Set("x", &Integer{Value: 1})
	b := NewDict()
	b.Pairs.Set("x", &Integer{Value: 1})
	if !Equal(a, b) {
		t.Fatalf("expected structurally equal dicts")
	}
	b.Pairs.Set("x", &Integer{Value: 2})
	if Equal(a, b) {
		t.Fatalf("expected unequal dicts")
	}
}

func TestFunctionIdentityEquality(t *testing.T) {
	f1 := &Function{Name: "f"}
	f2 := &Function{Name: "f"}
	if Equal(f1, f2) {
		t.Fatalf("functions with equal names but distinct identity must not compare equal")
	}
	if !Equal(f1, f1) {
		t.Fatalf("a function must equal itself")
	}
}

func TestDeepCopyStringsAndListsDuplicate(t *testing.T) {
	orig := &List{Elements: []Value{&String{Value: "a"}, &Integer{Value: 7}}}
	before := DeepCopy(orig).(*List)

	dup := DeepCopy(orig).(*List)
	dup.Elements[0].(*String).Value = "b"

	if orig.Elements[0].(*String).Value != "a" {
		t.Fatalf("deep copy must not alias the original list's elements")
	}
	if diff := cmp.Diff(orig, before); diff != "" {
		t.Fatalf("untouched copy should still be structurally identical to the original (-orig +copy):\n%s", diff)
	}
	if diff := cmp.Diff(orig, dup); diff == "" {
		t.Fatalf("mutated copy should no longer be structurally identical to the original")
	}
}

func TestDeepCopySharesFunctions(t *testing.T) {
	fn := &Function{Name: "shared"}
	if DeepCopy(fn) != fn {
		t.Fatalf("functions must be shared by reference on deep copy")
	}
}

func TestStringifyStripsQuotesAtTopLevelButNotNested(t *testing.T) {
	s := &String{Value: "hi"}
	if got := Stringify(s); got != "hi" {
		t.Fatalf("top-level string stringify should strip quotes, got %q", got)
	}
	l := &List{Elements: []Value{&String{Value: "hi"}, &Integer{Value: 1}}}
	if got, want := Stringify(l), `["hi", 1]`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringifyOpaqueTypes(t *testing.T) {
	c := &Class{Name: "Dog", Methods: map[string]*Function{}}
	if got := Stringify(c); got != "<entity Dog>" {
		t.Fatalf("got %q", got)
	}
}
