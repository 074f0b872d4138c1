// ==============================================================================================
// FILE: evaluator/generator_test.go
// ==============================================================================================
// PURPOSE: Generator suspend/resume across cycle-from-to and cycle-through
//          bodies, the transmit/receive round trip, delegate, and disrupt
//          injection — spec.md §4.5's frame-resumption engine end to end.
// ==============================================================================================

package evaluator

import (
	"testing"

	"github.com/kei-lang/kei/object"
)

func TestGeneratorProceedYieldsEachValue(t *testing.T) {
	input := "sequence g():\n" +
		"\tcycle from 1 to 4 as i:\n" +
		"\t\tyield i\n"
	p := newParserRun(t, input+"designate gen = g()\n")
	e := New(nil)
	env := e.Globals
	_ = e.evalProgram(p, env)

	genVal, ok := env.Get("gen")
	if !ok {
		t.Fatalf("expected gen to be bound")
	}
	gen, ok := genVal.(*object.Generator)
	if !ok {
		t.Fatalf("expected *object.Generator, got %T", genVal)
	}

	for want := int64(1); want <= 3; want++ {
		v, done, err := e.resumeGeneratorRaw(gen, nil, false, nil, false)
		if err != nil {
			t.Fatalf("proceed %d: unexpected error %v", want, err)
		}
		if done {
			t.Fatalf("proceed %d: generator finished early", want)
		}
		requireInt(t, v, want)
	}
	_, done, err := e.resumeGeneratorRaw(gen, nil, false, nil, false)
	if err != nil {
		t.Fatalf("final proceed: unexpected error %v", err)
	}
	if !done {
		t.Fatalf("expected generator to be done after exhausting its range")
	}
}

func TestGeneratorLocalsSurviveAcrossSuspend(t *testing.T) {
	input := "sequence g():\n" +
		"\tdesignate total = 0\n" +
		"\tcycle from 1 to 4 as i:\n" +
		"\t\ttotal = total + i\n" +
		"\t\tyield total\n"
	p := newParserRun(t, input+"designate gen = g()\n")
	e := New(nil)
	env := e.Globals
	e.evalProgram(p, env)
	genVal, _ := env.Get("gen")
	gen := genVal.(*object.Generator)

	v1, _, err := e.resumeGeneratorRaw(gen, nil, false, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireInt(t, v1, 1)
	v2, _, err := e.resumeGeneratorRaw(gen, nil, false, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireInt(t, v2, 3) // running total: 1, then +2 = 3 — proves `total` survived suspension
}

func TestTransmitReceiveRoundTrip(t *testing.T) {
	input := "sequence echo():\n" +
		"\tyield 1\n" +
		"\tdesignate got = receive()\n" +
		"\tyield got\n"
	p := newParserRun(t, input+"designate gen = echo()\n")
	e := New(nil)
	env := e.Globals
	e.evalProgram(p, env)
	genVal, _ := env.Get("gen")
	gen := genVal.(*object.Generator)

	v, _, err := e.resumeGeneratorRaw(gen, nil, false, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireInt(t, v, 1)

	v, _, err = e.resumeGeneratorRaw(gen, &object.Integer{Value: 99}, true, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireInt(t, v, 99)
}

func TestDisruptInjectsAnomalyAtYieldSite(t *testing.T) {
	input := "sequence g():\n" +
		"\tattempt:\n" +
		"\t\tyield 1\n" +
		"\t\tyield 2\n" +
		"\trecover as err:\n" +
		"\t\tyield err\n"
	p := newParserRun(t, input+"designate gen = g()\n")
	e := New(nil)
	env := e.Globals
	e.evalProgram(p, env)
	genVal, _ := env.Get("gen")
	gen := genVal.(*object.Generator)

	v, _, err := e.resumeGeneratorRaw(gen, nil, false, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireInt(t, v, 1)

	v, _, err = e.resumeGeneratorRaw(gen, nil, false, &object.String{Value: "boom"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := v.(*object.String)
	if !ok || s.Value != "boom" {
		t.Fatalf("expected the disrupted error to be caught and re-yielded, got %#v", v)
	}
}

func TestDelegateForwardsNestedGeneratorYields(t *testing.T) {
	input := "sequence inner():\n" +
		"\tyield 1\n" +
		"\tyield 2\n" +
		"sequence outer():\n" +
		"\tdelegate inner()\n" +
		"\tyield 3\n"
	p := newParserRun(t, input+"designate gen = outer()\n")
	e := New(nil)
	env := e.Globals
	e.evalProgram(p, env)
	genVal, _ := env.Get("gen")
	gen := genVal.(*object.Generator)

	var got []int64
	for i := 0; i < 3; i++ {
		v, done, err := e.resumeGeneratorRaw(gen, nil, false, nil, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if done {
			break
		}
		got = append(got, v.(*object.Integer).Value)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
}
