// ==============================================================================================
// FILE: evaluator/benchmark_test.go
// ==============================================================================================
// PURPOSE: Whole-pipeline benchmarks (lex + parse + eval) for iterative
//          loops, deep recursion, and repeated string concatenation.
// ==============================================================================================

package evaluator

import (
	"strings"
	"testing"

	"github.com/kei-lang/kei/lexer"
	"github.com/kei-lang/kei/parser"
)

func benchRun(b *testing.B, input string) {
	b.Helper()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := parser.New(lexer.New(input))
		program := p.ParseProgram()
		New(nil).Run(program)
	}
}

func BenchmarkCycleWhileLoop(b *testing.B) {
	input := "designate sum = 0\n" +
		"designate counter = 0\n" +
		"designate limit = 1000\n" +
		"cycle while counter < limit:\n" +
		"\tsum = sum + 1\n" +
		"\tcounter = counter + 1\n" +
		"sum\n"
	benchRun(b, input)
}

func BenchmarkDeepRecursion(b *testing.B) {
	input := "protocol dive(n):\n" +
		"\tforesee n == 0:\n" +
		"\t\tyield 0\n" +
		"\tyield dive(n - 1)\n" +
		"dive(200)\n"
	benchRun(b, input)
}

func BenchmarkStringConcatenation(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("designate str = \"\"\n")
	for i := 0; i < 100; i++ {
		sb.WriteString("str = str + \"a\"\n")
	}
	sb.WriteString("str\n")
	benchRun(b, sb.String())
}
