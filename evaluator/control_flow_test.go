// ==============================================================================================
// FILE: evaluator/control_flow_test.go
// ==============================================================================================
// PURPOSE: foresee/situation branching, the three cycle forms, and attempt/
//          recover — driven through the real parser so suspension-free
//          control flow is exercised end to end.
// ==============================================================================================

package evaluator

import (
	"testing"

	"github.com/kei-lang/kei/object"
)

func TestForeseeAlternateOtherwiseSelectsRightBranch(t *testing.T) {
	input := "designate x = 2\n" +
		"foresee x == 1:\n" +
		"\tdesignate y = \"one\"\n" +
		"alternate x == 2:\n" +
		"\tdesignate y = \"two\"\n" +
		"otherwise:\n" +
		"\tdesignate y = \"other\"\n" +
		"y\n"
	v := run(t, input)
	s, ok := v.(*object.String)
	if !ok || s.Value != "two" {
		t.Fatalf("expected \"two\", got %#v", v)
	}
}

func TestSituationMatchesAlignmentOrFallsToOtherwise(t *testing.T) {
	input := "designate x = 3\n" +
		"situation x:\n" +
		"\talignment 1, 2:\n" +
		"\t\tdesignate y = \"small\"\n" +
		"\totherwise:\n" +
		"\t\tdesignate y = \"big\"\n" +
		"y\n"
	v := run(t, input)
	s, ok := v.(*object.String)
	if !ok || s.Value != "big" {
		t.Fatalf("expected \"big\", got %#v", v)
	}
}

func TestCycleWhileAccumulates(t *testing.T) {
	input := "designate i = 0\ndesignate total = 0\n" +
		"cycle while i < 5:\n" +
		"\ttotal = total + i\n" +
		"\ti = i + 1\n" +
		"total\n"
	requireInt(t, run(t, input), 10)
}

func TestCycleWhileBreakAndContinue(t *testing.T) {
	input := "designate i = 0\ndesignate total = 0\n" +
		"cycle while i < 10:\n" +
		"\ti = i + 1\n" +
		"\tforesee i % 2 == 0:\n" +
		"\t\tcontinue\n" +
		"\tforesee i > 7:\n" +
		"\t\tbreak\n" +
		"\ttotal = total + i\n" +
		"total\n"
	// odd i in 1..7: 1 + 3 + 5 + 7 = 16
	requireInt(t, run(t, input), 16)
}

func TestCycleThroughList(t *testing.T) {
	input := "designate total = 0\n" +
		"cycle through [1, 2, 3, 4] as n:\n" +
		"\ttotal = total + n\n" +
		"total\n"
	requireInt(t, run(t, input), 10)
}

func TestCycleThroughDestructuredPairs(t *testing.T) {
	input := "designate total = 0\n" +
		"cycle through [[1, 2], [3, 4]] as [a, b]:\n" +
		"\ttotal = total + a + b\n" +
		"total\n"
	requireInt(t, run(t, input), 10)
}

func TestCycleFromToWithStep(t *testing.T) {
	input := "designate total = 0\n" +
		"cycle from 0 to 10 by 2 as i:\n" +
		"\ttotal = total + i\n" +
		"total\n"
	// 0 + 2 + 4 + 6 + 8 = 20
	requireInt(t, run(t, input), 20)
}

func TestCycleFromToDescending(t *testing.T) {
	input := "designate total = 0\n" +
		"cycle from 5 to 0 by -1 as i:\n" +
		"\ttotal = total + i\n" +
		"total\n"
	// 5 + 4 + 3 + 2 + 1 = 15
	requireInt(t, run(t, input), 15)
}

func TestAttemptRecoversFromAnomaly(t *testing.T) {
	input := "designate result = 0\n" +
		"attempt:\n" +
		"\tresult = 1 / 0\n" +
		"recover as err:\n" +
		"\tresult = -1\n" +
		"result\n"
	requireInt(t, run(t, input), -1)
}

func TestAttemptPassesThroughWhenNoAnomaly(t *testing.T) {
	input := "designate result = 0\n" +
		"attempt:\n" +
		"\tresult = 5\n" +
		"recover as err:\n" +
		"\tresult = -1\n" +
		"result\n"
	requireInt(t, run(t, input), 5)
}

func TestAttemptBindsErrorMessageInRecover(t *testing.T) {
	input := "attempt:\n" +
		"\tdesignate e = 1 / 0\n" +
		"recover as err:\n" +
		"\terr\n"
	v := run(t, input)
	s, ok := v.(*object.String)
	if !ok || s.Value != "division by zero" {
		t.Fatalf("expected the anomaly message bound to err, got %#v", v)
	}
}

func TestAbsoluteFailureRaisesAnomaly(t *testing.T) {
	a := requireAnomaly(t, run(t, "absolute 1 > 2\n"))
	if a.Message == "" {
		t.Errorf("expected a descriptive absolute-failure message")
	}
}
