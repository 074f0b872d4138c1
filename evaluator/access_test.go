// ==============================================================================================
// FILE: evaluator/access_test.go
// ==============================================================================================
// PURPOSE: indexing, slicing, the foresee-ternary, and both comprehension
//          forms (spec.md §4.4.1).
// ==============================================================================================

package evaluator

import (
	"testing"

	"github.com/kei-lang/kei/object"
)

func TestIndexOutOfRangeReadYieldsNull(t *testing.T) {
	v := run(t, "designate xs = [1, 2, 3]\nxs[10]\n")
	if v != object.NULL {
		t.Fatalf("expected NULL for an out-of-range read, got %#v", v)
	}
}

func TestIndexOutOfRangeWriteIsAnomaly(t *testing.T) {
	requireAnomaly(t, run(t, "designate xs = [1, 2, 3]\nxs[10] = 1\n"))
}

func TestSliceWrapsNegativeBoundsAndReversesOnNegativeStep(t *testing.T) {
	v := run(t, "designate xs = [1, 2, 3, 4, 5]\nxs[-3:]\n")
	l, ok := v.(*object.List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %#v", v)
	}
	requireInt(t, l.Elements[0], 3)

	v = run(t, "designate xs = [1, 2, 3]\nxs[::-1]\n")
	l, ok = v.(*object.List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("expected 3 reversed elements, got %#v", v)
	}
	requireInt(t, l.Elements[0], 3)
	requireInt(t, l.Elements[2], 1)
}

func TestForeseeTernary(t *testing.T) {
	requireInt(t, run(t, "designate x = 1 foresee true otherwise 2\n"), 1)
	requireInt(t, run(t, "designate x = 1 foresee false otherwise 2\n"), 2)
}

func TestListComprehensionFiltersAndMaps(t *testing.T) {
	input := "designate items = [1, 2, 3, 4, 5]\n" +
		"designate evens = [n * 10 cycle through items as n foresee n % 2 == 0]\n" +
		"evens\n"
	v := run(t, input)
	l, ok := v.(*object.List)
	if !ok || len(l.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %#v", v)
	}
	requireInt(t, l.Elements[0], 20)
	requireInt(t, l.Elements[1], 40)
}

func TestGeneratorExpressionIsLazy(t *testing.T) {
	input := "designate items = [1, 2, 3]\n" +
		"designate g = (n * 2 for n through items)\n" +
		"g\n"
	v := run(t, input)
	if _, ok := v.(*object.Generator); !ok {
		t.Fatalf("expected *object.Generator, got %T", v)
	}
}
