// ==============================================================================================
// FILE: evaluator/pipeline_test.go
// ==============================================================================================
// PURPOSE: Whole-pipeline integration tests (lexer -> parser -> evaluator)
//          exercising recursion, closures over a list argument, class-based
//          linked structures, and lexical shadowing together rather than in
//          isolation.
// ==============================================================================================

package evaluator

import (
	"testing"
)

func TestPipelineFibonacciRecursion(t *testing.T) {
	input := "protocol fib(x):\n" +
		"\tforesee x < 2:\n" +
		"\t\tyield x\n" +
		"\tyield fib(x - 1) + fib(x - 2)\n" +
		"fib(10)\n"
	requireInt(t, run(t, input), 55)
}

func TestPipelineHigherOrderFunctionArgument(t *testing.T) {
	input := "protocol double(x):\n" +
		"\tyield x * 2\n" +
		"protocol applyToLast(items, fn):\n" +
		"\tyield fn(items[measure(items) - 1])\n" +
		"applyToLast([10, 20, 30], double)\n"
	requireInt(t, run(t, input), 60)
}

func TestPipelineLinkedListViaEntities(t *testing.T) {
	input := "entity Node:\n" +
		"\tconstruct(val, next):\n" +
		"\t\tself.val = val\n" +
		"\t\tself.next = next\n" +
		"protocol sumList(node):\n" +
		"\tforesee node == none:\n" +
		"\t\tyield 0\n" +
		"\tyield node.val + sumList(node.next)\n" +
		"designate tail = manifest Node(30, none)\n" +
		"designate mid = manifest Node(20, tail)\n" +
		"designate head = manifest Node(10, mid)\n" +
		"sumList(head)\n"
	requireInt(t, run(t, input), 60)
}

func TestPipelineShadowingIsBlockScoped(t *testing.T) {
	input := "designate x = 10\n" +
		"foresee true:\n" +
		"\tdesignate x = 20\n" +
		"\tx = x + 1\n" +
		"x\n"
	requireInt(t, run(t, input), 10)
}

func TestPipelineDivisionByZeroPropagatesAsAnomaly(t *testing.T) {
	requireAnomaly(t, run(t, "10 / 0\n"))
}
