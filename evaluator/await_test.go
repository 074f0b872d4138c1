// ==============================================================================================
// FILE: evaluator/await_test.go
// ==============================================================================================
// PURPOSE: await/Promise resolution (spec.md §5, §9 open question 2) and the
//          `resolve`/`defer` promise-control builtins.
// ==============================================================================================

package evaluator

import (
	"testing"

	"github.com/kei-lang/kei/object"
)

func TestAwaitProtocolUnwrapsResolvedPromise(t *testing.T) {
	input := "await protocol fetch():\n" +
		"\tyield 42\n" +
		"await fetch()\n"
	requireInt(t, run(t, input), 42)
}

func TestAwaitNonPromiseValuePassesThrough(t *testing.T) {
	requireInt(t, run(t, "await 7\n"), 7)
}

func TestResolveBuiltinWrapsValue(t *testing.T) {
	v := run(t, "designate p = resolve(9)\nawait p\n")
	requireInt(t, v, 9)
}

func TestDeferRunsSynchronouslyAndResolves(t *testing.T) {
	input := "protocol double(n):\n" +
		"\tyield n * 2\n" +
		"designate p = defer(0, double, 21)\n" +
		"await p\n"
	requireInt(t, run(t, input), 42)
}

func TestDeferRejectsOnAnomaly(t *testing.T) {
	input := "protocol boom():\n" +
		"\tyield 1 / 0\n" +
		"designate p = defer(0, boom)\n" +
		"p\n"
	v := run(t, input)
	promise, ok := v.(*object.Promise)
	if !ok {
		t.Fatalf("expected *object.Promise, got %T", v)
	}
	if promise.State != object.Rejected {
		t.Fatalf("expected Rejected state, got %v", promise.State)
	}
}
