// Package clause implements the clause normalizer (canonicalization
// and variable-freshening) and the Clause value type itself — a
// finite, duplicate-free set of literals.
package clause

import (
	"sort"

	"github.com/mkvale/resolv/internal/subst"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

// Clause is a finite set of literals, interpreted as their disjunction.
// The empty Clause denotes falsity. Clauses are immutable value objects;
// every operation in this package returns a new Clause.
type Clause struct {
	literals []term.Term
}

// New builds a clause from literals, deduplicating structurally equal
// ones. Order of the input is irrelevant; New fixes a deterministic
// internal order (sorted by hash) so that iteration elsewhere is stable.
func New(literals ...term.Term) Clause {
	seen := make(map[string]bool, len(literals))
	out := make([]term.Term, 0, len(literals))
	for _, l := range literals {
		key := term.Serialize(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	sortLiterals(out)
	return Clause{literals: out}
}

func sortLiterals(lits []term.Term) {
	sort.SliceStable(lits, func(i, j int) bool {
		hi, hj := lits[i].Hash(), lits[j].Hash()
		if hi != hj {
			return hi < hj
		}
		return term.Serialize(lits[i]) < term.Serialize(lits[j])
	})
}

// Literals returns the clause's literals in the clause's fixed internal
// order (sorted by hash, then by serialization to break ties).
func (c Clause) Literals() []term.Term { return c.literals }

// Len returns the number of literals.
func (c Clause) Len() int { return len(c.literals) }

// IsEmpty reports whether c is the empty clause (falsity).
func (c Clause) IsEmpty() bool { return len(c.literals) == 0 }

// Key returns a stable, structural-equality-respecting identity for c,
// suitable as a Go map key. Key is meant to be called on a Canon()-ed
// clause, so that two clauses with the same literal-set modulo
// α-renaming look up equal in maps like the engine's canon/cost/proof
// maps.
func (c Clause) Key() string {
	var b []byte
	for i, l := range c.literals {
		if i > 0 {
			b = append(b, ';')
		}
		b = append(b, term.Serialize(l)...)
	}
	return string(b)
}

// Without returns a copy of c with the literal equal to lit removed (at
// most one occurrence, since New already deduplicated).
func (c Clause) Without(lit term.Term) Clause {
	out := make([]term.Term, 0, len(c.literals))
	removed := false
	key := term.Serialize(lit)
	for _, l := range c.literals {
		if !removed && term.Serialize(l) == key {
			removed = true
			continue
		}
		out = append(out, l)
	}
	return Clause{literals: out}
}

// Union returns the deduplicated union of two clauses' literals.
func Union(a, b Clause) Clause {
	return New(append(append([]term.Term{}, a.literals...), b.literals...)...)
}

// WithLiteral returns a copy of c with lit added (a no-op if already present).
func (c Clause) WithLiteral(lit term.Term) Clause {
	return New(append(append([]term.Term{}, c.literals...), lit)...)
}

// isReflexiveNegatedEquality reports whether lit is ¬(t = t).
func isReflexiveNegatedEquality(lit term.Term) bool {
	n, ok := lit.(term.Not)
	if !ok {
		return false
	}
	rel, ok := n.Body.(term.Relation)
	if !ok || !rel.IsEquality() || rel.Args.Len() != 2 {
		return false
	}
	return rel.Args.At(0).Equal(rel.Args.At(1))
}

// Canon produces the canonical representative of c:
//  1. antireflexive pruning: remove every literal of shape ¬(a = a).
//  2. enumerate free variables in first-appearance order, with the
//     literal set linearized by hash first so the order is reproducible.
//  3. map those variables bijectively onto a prefix of the fixed
//     canonical variable enumeration (symtab.CanonicalVariable) and
//     substitute.
//
// Canon allocates nothing from tab at all: the canonical variable
// enumeration is fixed ahead of time, so two calls to Canon — on the
// same clause, or on two clauses that are α-variants of each other —
// land on exactly the same identifiers. That is what makes both
// Canon(Canon(c)) == Canon(c) and Canon(ρ(c)) == Canon(c), for a
// uniform variable-renaming ρ, hold as literal structural equality
// rather than mere isomorphism.
func Canon(c Clause, tab *symtab.Table) Clause {
	pruned := make([]term.Term, 0, len(c.literals))
	for _, l := range c.literals {
		if isReflexiveNegatedEquality(l) {
			continue
		}
		pruned = append(pruned, l)
	}

	vars := subst.AllVariablesOfSet(pruned, tab)

	sub := make(subst.Map, len(vars))
	for i, v := range vars {
		sub[v] = term.NewAtom(symtab.CanonicalVariable(i + 1))
	}

	out := make([]term.Term, len(pruned))
	for i, l := range pruned {
		out[i] = subst.Substitute(l, sub)
	}
	return New(out...)
}

// Uniquify produces a variable-freshened copy of c: every free variable
// is replaced with a newly allocated variable. Used before any binary
// operation between two clauses (internal/infer) to guarantee
// variable-disjointness between the clause pair.
func Uniquify(c Clause, tab *symtab.Table) Clause {
	vars := subst.AllVariablesOfSet(c.literals, tab)
	if len(vars) == 0 {
		return c
	}
	sub := make(subst.Map, len(vars))
	for _, v := range vars {
		name := tab.Name(v)
		fresh := tab.FreshVariable(name)
		sub[v] = term.NewAtom(fresh)
	}
	out := make([]term.Term, len(c.literals))
	for i, l := range c.literals {
		out[i] = subst.Substitute(l, sub)
	}
	return New(out...)
}

// SharesVariables reports whether a and b have any free variable in
// common. Binary resolution (internal/infer) must never be attempted on
// two clauses with overlapping free variables — that signals that
// clause-freshening (Uniquify) was skipped, an internal invariant
// violation.
func SharesVariables(a, b Clause, tab *symtab.Table) bool {
	bVars := make(map[int]bool)
	for _, v := range subst.AllVariablesOfSet(b.literals, tab) {
		bVars[v] = true
	}
	for _, v := range subst.AllVariablesOfSet(a.literals, tab) {
		if bVars[v] {
			return true
		}
	}
	return false
}
