package render

import (
	"strings"
	"testing"

	"github.com/mkvale/resolv/internal/clause"
	"github.com/mkvale/resolv/internal/proof"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

func TestTermDefaultFixityIsPrefix(t *testing.T) {
	tab := symtab.New()
	p := tab.FreshConstant("p")
	a := term.NewAtom(tab.FreshConstant("a"))

	got := Term(term.NewRelation(p, term.NewArgs(a)), tab, DefaultPreferences())
	if got != "p(a)" {
		t.Errorf("got %q, want %q", got, "p(a)")
	}
}

func TestTermEqualityRendersInfixByDefault(t *testing.T) {
	tab := symtab.New()
	a := term.NewAtom(tab.FreshConstant("a"))
	b := term.NewAtom(tab.FreshConstant("b"))

	got := Term(term.NewRelation(symtab.EqualityID, term.NewArgs(a, b)), tab, DefaultPreferences())
	if got != "a = b" {
		t.Errorf("got %q, want %q", got, "a = b")
	}
}

func TestTermRespectsCustomInfixAndPostfixPreferences(t *testing.T) {
	tab := symtab.New()
	plus := tab.FreshConstant("+")
	neg := tab.FreshConstant("neg")
	a := term.NewAtom(tab.FreshConstant("a"))
	b := term.NewAtom(tab.FreshConstant("b"))

	prefs := NewPreferences()
	prefs.SetFixity(plus, Infix)
	prefs.SetFixity(neg, Postfix)

	sum := Term(term.NewFunctor(plus, term.NewArgs(a, b)), tab, prefs)
	if sum != "a + b" {
		t.Errorf("infix rendering: got %q, want %q", sum, "a + b")
	}

	negated := Term(term.NewFunctor(neg, term.NewArgs(a)), tab, prefs)
	if negated != "a neg" {
		t.Errorf("postfix rendering: got %q, want %q", negated, "a neg")
	}
}

func TestTermRendersCanonicalVariablesReadably(t *testing.T) {
	tab := symtab.New()
	p := tab.FreshConstant("p")

	c := clause.New(term.NewRelation(p, term.NewArgs(term.NewAtom(tab.FreshVariable("x")))))
	canon := clause.Canon(c, tab)

	got := Clause(canon, tab, DefaultPreferences())
	if got != "p(v1)" {
		t.Errorf("a canonicalized clause should display its variables as v1, v2, ...; got %q", got)
	}
}

func TestClauseRendersEmptyAsFalsityToken(t *testing.T) {
	tab := symtab.New()
	got := Clause(clause.Clause{}, tab, DefaultPreferences())
	if got != "⊥" {
		t.Errorf("got %q, want the distinguished falsity token", got)
	}
}

func TestClauseDisjoinsLiteralsWithOr(t *testing.T) {
	tab := symtab.New()
	p := tab.FreshConstant("p")
	q := tab.FreshConstant("q")
	a := term.NewAtom(tab.FreshConstant("a"))

	c := clause.New(
		term.NewRelation(p, term.NewArgs(a)),
		term.Not{Body: term.NewRelation(q, term.NewArgs(a))},
	)
	got := Clause(c, tab, DefaultPreferences())
	if !strings.Contains(got, " ∨ ") {
		t.Errorf("expected literals disjoined with ∨, got %q", got)
	}
}

func TestProofReturnsErrNoProofWhenEmptyClauseAbsent(t *testing.T) {
	tab := symtab.New()
	_, err := Proof(proof.Map{}, tab, DefaultPreferences())
	if err != ErrNoProof {
		t.Errorf("got error %v, want ErrNoProof", err)
	}
}

// TestProofNumbersAxiomsBeforeTheDerivationsThatUseThem exercises the
// topological walk directly on a hand-built two-leaf proof map (the
// shape a direct contradiction produces): both axioms must be numbered
// ahead of the empty clause that resolves them, and the justification
// line must name the resolved-upon literal.
func TestProofNumbersAxiomsBeforeTheDerivationsThatUseThem(t *testing.T) {
	tab := symtab.New()
	p := tab.FreshConstant("p")
	a := term.NewAtom(tab.FreshConstant("a"))

	pa := term.NewRelation(p, term.NewArgs(a))
	notPa := term.Not{Body: pa}

	axiomClause := clause.New(pa)
	negClause := clause.New(notPa)
	empty := clause.Clause{}

	pm := proof.Map{
		axiomClause.Key(): {Clause: axiomClause, IsAxiom: true},
		negClause.Key():   {Clause: negClause, IsAxiom: true},
		empty.Key(): {
			Clause:        empty,
			IsAxiom:       false,
			ParentA:       axiomClause,
			ParentB:       negClause,
			Justification: proof.Resolution{PositiveLiteral: pa},
		},
	}

	text, err := Proof(pm, tab, DefaultPreferences())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), text)
	}
	if !strings.Contains(lines[2], "⊥") {
		t.Errorf("expected the last line to render the empty clause, got %q", lines[2])
	}
	if !strings.Contains(lines[2], "resolution on") {
		t.Errorf("expected the derivation line to name its justification, got %q", lines[2])
	}
}
