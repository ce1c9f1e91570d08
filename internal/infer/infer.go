// Package infer implements binary resolution and paramodulation, the
// two inference rules the saturation engine combines clause pairs
// with. Derivations are a lazy sequence in callback form: Derive calls
// yield once per derived clause and stops early if yield returns
// false, which is how the engine bails out the moment the empty clause
// appears.
package infer

import (
	"github.com/pkg/errors"

	"github.com/mkvale/resolv/internal/clause"
	"github.com/mkvale/resolv/internal/proof"
	"github.com/mkvale/resolv/internal/subst"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
	"github.com/mkvale/resolv/internal/unify"
)

// Derivation is one clause produced by combining a and b, together with
// the justification for how it was produced.
type Derivation struct {
	Clause        clause.Clause
	Justification proof.Justification
}

// ErrVariableOverlap signals that two clauses were about to be combined
// despite sharing free variables — an internal invariant violation
// meaning clause-freshening was skipped, not a normal failure. Derive
// checks for it after freshening b and raises it as a panic rather
// than returning it; since Uniquify gives b only newly allocated
// variables, the check fires only if freshening itself is broken.
// resolve and paramodulate do not check for overlap themselves.
var ErrVariableOverlap = errors.New("VariableOverlapInResolution: clauses share free variables")

// Derive yields every binary-resolution and paramodulation derivation
// of clauses a and b. The right-hand clause b is always freshened
// (internal/clause.Uniquify) before use, guaranteeing
// variable-disjointness between the pair. yield is called once per
// derivation; returning false from yield stops enumeration early.
func Derive(a, b clause.Clause, tab *symtab.Table, yield func(Derivation) bool) {
	bFresh := clause.Uniquify(b, tab)

	if clause.SharesVariables(a, bFresh, tab) {
		panic(ErrVariableOverlap)
	}

	if !resolve(a, bFresh, tab, yield) {
		return
	}
	paramodulate(a, bFresh, tab, yield)
}

// resolve performs binary resolution: for each pair of literals of
// opposite polarity (exactly one negated), unify the atomic relations;
// on success, yield the union of the remaining literals under the
// unifier.
func resolve(a, b clause.Clause, tab *symtab.Table, yield func(Derivation) bool) bool {
	for _, la := range a.Literals() {
		for _, lb := range b.Literals() {
			negA, atomA, okA := asNegatedRelation(la)
			negB, atomB, okB := asNegatedRelation(lb)
			if !okA || !okB {
				continue
			}
			if negA == negB {
				continue // same polarity
			}

			var posLit term.Term
			var negAtom, posAtom term.Term
			if negA {
				posLit = lb
				negAtom, posAtom = atomA, atomB
			} else {
				posLit = la
				negAtom, posAtom = atomB, atomA
			}

			sub, err := unify.MGU(negAtom, posAtom, tab)
			if err != nil {
				continue
			}

			remainder := clause.Union(a.Without(la), b.Without(lb))
			resolved := substituteClause(remainder, sub)

			if !yield(Derivation{
				Clause:        resolved,
				Justification: proof.Resolution{PositiveLiteral: posLit},
			}) {
				return false
			}
		}
	}
	return true
}

// asNegatedRelation reports whether lit is a literal (a Relation or a
// Not wrapping one), returning whether it's negated and the underlying
// relation atom.
func asNegatedRelation(lit term.Term) (negated bool, atom term.Term, ok bool) {
	switch x := lit.(type) {
	case term.Relation:
		return false, x, true
	case term.Not:
		if r, ok := x.Body.(term.Relation); ok {
			return true, r, true
		}
	}
	return false, nil, false
}

func substituteClause(c clause.Clause, sub subst.Map) clause.Clause {
	lits := c.Literals()
	out := make([]term.Term, len(lits))
	for i, l := range lits {
		out[i] = subst.Substitute(l, sub)
	}
	return clause.New(out...)
}

// paramodulate performs equality rewriting in both directions (A's
// equalities into B, and B's equalities into A) and both orientations
// of each equality (s->t and t->s).
func paramodulate(a, b clause.Clause, tab *symtab.Table, yield func(Derivation) bool) bool {
	if !paramodulateDirected(a, b, tab, yield) {
		return false
	}
	return paramodulateDirected(b, a, tab, yield)
}

// paramodulateDirected rewrites using equalities found in eqClause
// applied into literals of targetClause.
func paramodulateDirected(eqClause, targetClause clause.Clause, tab *symtab.Table, yield func(Derivation) bool) bool {
	for _, eqLit := range eqClause.Literals() {
		rel, ok := eqLit.(term.Relation)
		if !ok || !rel.IsEquality() || rel.Args.Len() != 2 {
			continue
		}
		s, t := rel.Args.At(0), rel.Args.At(1)

		orientations := [2][2]term.Term{{s, t}, {t, s}}
		for _, o := range orientations {
			source, target := o[0], o[1]
			for _, lit := range targetClause.Literals() {
				cont := true
				rewriteLiteral(lit, source, target, tab, func(newLit term.Term, sub subst.Map) bool {
					rest := clause.Union(eqClause.Without(eqLit), targetClause.Without(lit))
					derived := clause.New(append(substituteClauseLiterals(rest, sub), subst.Substitute(newLit, sub))...)
					cont = yield(Derivation{
						Clause: derived,
						Justification: proof.Paramodulation{
							Source:       source,
							Target:       target,
							Substitution: sub,
						},
					})
					return cont
				})
				if !cont {
					return false
				}
			}
		}
	}
	return true
}

func substituteClauseLiterals(c clause.Clause, sub subst.Map) []term.Term {
	lits := c.Literals()
	out := make([]term.Term, len(lits))
	for i, l := range lits {
		out[i] = subst.Substitute(l, sub)
	}
	return out
}

// rewriteLiteral enumerates every subterm occurrence within t (including
// t itself) where source unifies, yielding the literal reconstructed
// with that single occurrence replaced by target, preserving the node
// variant everywhere else. An Args node is never itself a valid
// rewrite site (it carries no meaning of its own), a Relation node is
// never a rewrite site either (when source is a bare variable,
// unifying it against a Relation would bind a variable to a relation
// and smuggle it into term positions elsewhere in the clause), and a
// Relation replacement target is never substituted in.
func rewriteLiteral(t, source, target term.Term, tab *symtab.Table, yield func(term.Term, subst.Map) bool) bool {
	allowHere := t.Tag() != term.TagArgs &&
		t.Tag() != term.TagRelation &&
		target.Tag() != term.TagRelation
	if allowHere {
		if sub, err := unify.MGU(t, source, tab); err == nil {
			if !yield(target, sub) {
				return false
			}
		}
	}

	switch x := t.(type) {
	case term.Args:
		items := x.Items()
		for i, c := range items {
			cont := true
			rewriteLiteral(c, source, target, tab, func(newC term.Term, sub subst.Map) bool {
				newItems := append([]term.Term{}, items...)
				newItems[i] = newC
				cont = yield(term.NewArgs(newItems...), sub)
				return cont
			})
			if !cont {
				return false
			}
		}
	case term.Functor:
		if !rewriteLiteral(x.Args, source, target, tab, func(newArgs term.Term, sub subst.Map) bool {
			return yield(term.NewFunctor(x.Head, newArgs.(term.Args)), sub)
		}) {
			return false
		}
	case term.Relation:
		if !rewriteLiteral(x.Args, source, target, tab, func(newArgs term.Term, sub subst.Map) bool {
			return yield(term.NewRelation(x.Head, newArgs.(term.Args)), sub)
		}) {
			return false
		}
	case term.Not:
		if !rewriteLiteral(x.Body, source, target, tab, func(newBody term.Term, sub subst.Map) bool {
			return yield(term.Not{Body: newBody}, sub)
		}) {
			return false
		}
	}
	return true
}
