// ==============================================================================================
// FILE: evaluator/oop_test.go
// ==============================================================================================
// PURPOSE: entity/manifest/ascend — construction, field access, method
//          dispatch, and single-inheritance super-calls (spec.md §4.4.1).
// ==============================================================================================

package evaluator

import (
	"testing"

	"github.com/kei-lang/kei/object"
)

func TestManifestRunsConstructAndBindsFields(t *testing.T) {
	input := "entity Dog:\n" +
		"\tconstruct(name):\n" +
		"\t\tself.name = name\n" +
		"\tprotocol speak():\n" +
		"\t\tyield self.name\n" +
		"designate d = manifest Dog(\"Rex\")\n" +
		"d.speak()\n"
	v := run(t, input)
	s, ok := v.(*object.String)
	if !ok || s.Value != "Rex" {
		t.Fatalf("expected \"Rex\", got %#v", v)
	}
}

func TestAscendCallsParentMethod(t *testing.T) {
	input := "entity Animal:\n" +
		"\tprotocol speak():\n" +
		"\t\tyield \"...\"\n" +
		"entity Dog inherits Animal:\n" +
		"\tprotocol speak():\n" +
		"\t\tyield \"Woof, \" + ascend speak()\n" +
		"designate d = manifest Dog()\n" +
		"d.speak()\n"
	v := run(t, input)
	s, ok := v.(*object.String)
	if !ok || s.Value != "Woof, ..." {
		t.Fatalf("expected \"Woof, ...\", got %#v", v)
	}
}

func TestPrivateFieldUnreachableOutsideSelf(t *testing.T) {
	input := "entity Wallet:\n" +
		"\tconstruct(amount):\n" +
		"\t\tself._balance = amount\n" +
		"designate w = manifest Wallet(10)\n" +
		"w._balance\n"
	a := requireAnomaly(t, run(t, input))
	if a.Message == "" {
		t.Fatalf("expected an anomaly denying private access")
	}
}

func TestAscendWithoutParentIsAnomaly(t *testing.T) {
	input := "entity Lone:\n" +
		"\tprotocol speak():\n" +
		"\t\tyield ascend speak()\n" +
		"designate l = manifest Lone()\n" +
		"l.speak()\n"
	requireAnomaly(t, run(t, input))
}
