package surfexpr_test

import (
	"testing"

	"github.com/zephyrtronium/surfexpr"
)

func TestTokenConstructors(t *testing.T) {
	for _, c := range []byte(surfexpr.Operators) {
		tok, err := surfexpr.NewOperator(c)
		if err != nil {
			t.Errorf("NewOperator(%q): %v", c, err)
		}
		if v, ok := tok.Op(); !ok || v != c {
			t.Errorf("NewOperator(%q).Op() = %q, %t", c, v, ok)
		}
		if _, ok := tok.Delim(); ok {
			t.Errorf("operator %q is also a delimiter", c)
		}
	}
	for _, c := range []byte(surfexpr.Delimiters) {
		tok, err := surfexpr.NewDelimiter(c)
		if err != nil {
			t.Errorf("NewDelimiter(%q): %v", c, err)
		}
		if v, ok := tok.Delim(); !ok || v != c {
			t.Errorf("NewDelimiter(%q).Delim() = %q, %t", c, v, ok)
		}
	}
	for _, name := range surfexpr.Keywords() {
		tok, err := surfexpr.NewIdentifier(name)
		if err != nil {
			t.Errorf("NewIdentifier(%q): %v", name, err)
		}
		if v, ok := tok.Ident(); !ok || v != name {
			t.Errorf("NewIdentifier(%q).Ident() = %q, %t", name, v, ok)
		}
	}
}

func TestTokenRejects(t *testing.T) {
	if _, err := surfexpr.NewOperator('('); err == nil {
		t.Error("NewOperator accepted a delimiter")
	}
	if _, err := surfexpr.NewOperator('%'); err == nil {
		t.Error("NewOperator accepted %")
	}
	if _, err := surfexpr.NewDelimiter('+'); err == nil {
		t.Error("NewDelimiter accepted an operator")
	}
	for _, name := range []string{"", "y", "pi", "Sin", "sin2"} {
		if _, err := surfexpr.NewIdentifier(name); err == nil {
			t.Errorf("NewIdentifier accepted %q", name)
		}
	}
}

func TestTokenAccessors(t *testing.T) {
	i := surfexpr.NewInt(42)
	if i.Kind() != surfexpr.Int {
		t.Errorf("NewInt has kind %v", i.Kind())
	}
	if v, ok := i.Int(); !ok || v != 42 {
		t.Errorf("Int() = %d, %t", v, ok)
	}
	if _, ok := i.Float(); ok {
		t.Error("Int token has a float value")
	}
	if _, ok := i.Ident(); ok {
		t.Error("Int token has an identifier")
	}

	f := surfexpr.NewFloat(0.5)
	if v, ok := f.Float(); !ok || v != 0.5 {
		t.Errorf("Float() = %g, %t", v, ok)
	}
	if _, ok := f.Int(); ok {
		t.Error("Float token has an int value")
	}
	if f.Text() != "0.5" {
		t.Errorf("Float text is %q", f.Text())
	}
	if f.Pos() != 0 {
		t.Errorf("constructed token has position %d", f.Pos())
	}
}

func TestTokenString(t *testing.T) {
	toks, err := surfexpr.Tokenize("max(x, 2.5)^3")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Identifier:max@1",
		"Delimiter:(@4",
		"Identifier:x@5",
		"Delimiter:,@6",
		"Float:2.5@8",
		"Delimiter:)@11",
		"Operator:^@12",
		"Int:3@13",
	}
	if len(toks) != len(want) {
		t.Fatalf("want %d tokens, got %v", len(want), toks)
	}
	for i, tok := range toks {
		if tok.String() != want[i] {
			t.Errorf("token %d: want %s, got %s", i, want[i], tok)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[surfexpr.Kind]string{
		surfexpr.Operator:   "Operator",
		surfexpr.Int:        "Int",
		surfexpr.Float:      "Float",
		surfexpr.Delimiter:  "Delimiter",
		surfexpr.Identifier: "Identifier",
		surfexpr.Kind(9):    "Kind(9)",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("want %s, got %s", want, k)
		}
	}
}

func TestKeywords(t *testing.T) {
	kw := surfexpr.Keywords()
	for i := 1; i < len(kw); i++ {
		if kw[i-1] >= kw[i] {
			t.Errorf("keywords not sorted at %d: %q", i, kw)
		}
	}
	for _, name := range kw {
		n := 0
		if surfexpr.IsUnary(name) {
			n++
		}
		if surfexpr.IsBinary(name) {
			n++
		}
		if surfexpr.IsVariable(name) {
			n++
		}
		if n != 1 {
			t.Errorf("%q is in %d categories", name, n)
		}
	}
	kw[0] = "nope"
	if surfexpr.Keywords()[0] == "nope" {
		t.Error("Keywords returned shared storage")
	}
}
