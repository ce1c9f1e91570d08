package subst

import (
	"testing"

	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

func TestSubstituteReplacesBoundVariables(t *testing.T) {
	tab := symtab.New()
	v := tab.FreshVariable("x")
	c := tab.FreshConstant("c")

	in := term.NewFunctor(1, term.NewArgs(term.NewAtom(v), term.NewAtom(v)))
	out := Substitute(in, Map{v: term.NewAtom(c)})

	want := term.NewFunctor(1, term.NewArgs(term.NewAtom(c), term.NewAtom(c)))
	if !out.Equal(want) {
		t.Errorf("Substitute(%v) = %v, want %v", in, out, want)
	}
}

func TestSubstituteLeavesUnboundVariablesAlone(t *testing.T) {
	tab := symtab.New()
	v1 := tab.FreshVariable("x")
	v2 := tab.FreshVariable("y")
	c := tab.FreshConstant("c")

	in := term.NewArgs(term.NewAtom(v1), term.NewAtom(v2))
	out := Substitute(in, Map{v1: term.NewAtom(c)})

	if !out.(term.Args).At(1).Equal(term.NewAtom(v2)) {
		t.Error("an unbound variable should pass through unchanged")
	}
}

func TestSubstituteEmptyMapIsIdentity(t *testing.T) {
	in := term.NewFunctor(1, term.NewArgs(term.NewAtom(2)))
	out := Substitute(in, Map{})
	if !out.Equal(in) {
		t.Error("substituting with an empty map should return an equal term")
	}
}

func TestAllVariablesFirstAppearanceOrder(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")
	y := tab.FreshVariable("y")
	c := tab.FreshConstant("c")

	f := term.NewFunctor(1, term.NewArgs(term.NewAtom(y), term.NewAtom(c), term.NewAtom(x), term.NewAtom(y)))
	vars := AllVariables(f, tab)

	if len(vars) != 2 || vars[0] != y || vars[1] != x {
		t.Errorf("AllVariables = %v, want [%d %d] (first-appearance, deduplicated)", vars, y, x)
	}
}

func TestAllVariablesOfSetIsDeterministic(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")
	y := tab.FreshVariable("y")

	terms := []term.Term{term.NewAtom(y), term.NewAtom(x)}
	a := AllVariablesOfSet(terms, tab)
	b := AllVariablesOfSet(terms, tab)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("AllVariablesOfSet is not deterministic: %v vs %v", a, b)
		}
	}
}
