package token

import "testing"

func TestLookupIdentKeyword(t *testing.T) {
	cases := map[string]TokenType{
		"protocol":  PROTOCOL,
		"sequence":  SEQUENCE,
		"designate": DESIGNATE,
		"yield":     YIELD,
		"ascend":    ASCEND,
		"manifest":  MANIFEST,
		"true":      TRUE,
		"none":      NIL,
	}
	for lit, want := range cases {
		if got := LookupIdent(lit); got != want {
			t.Errorf("LookupIdent(%q) = %s, want %s", lit, got, want)
		}
	}
}

func TestLookupIdentUserDefined(t *testing.T) {
	for _, ident := range []string{"my_var", "calculate_tax", "g"} {
		if got := LookupIdent(ident); got != IDENT {
			t.Errorf("LookupIdent(%q) = %s, want IDENT", ident, got)
		}
	}
}
