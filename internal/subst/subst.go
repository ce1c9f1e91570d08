// Package subst applies a variable→term map to a term, and enumerates
// a term's free variables in the fixed deterministic order
// canonicalization depends on.
package subst

import (
	"sort"

	"github.com/mkvale/resolv/internal/term"
)

// Map is a substitution: a variable identifier to the term it is bound
// to. Callers compose substitutions to fixpoint where needed;
// Substitute performs exactly one pass.
type Map map[int]term.Term

// Substitute walks t and replaces each Atom(v) with sub[v] when present,
// leaving every other node structurally intact (but rebuilt, since terms
// are immutable) while recurring into children.
func Substitute(t term.Term, sub Map) term.Term {
	if len(sub) == 0 {
		return t
	}
	switch n := t.(type) {
	case term.Atom:
		if repl, ok := sub[n.ID]; ok {
			return repl
		}
		return n
	case term.Args:
		items := n.Items()
		out := make([]term.Term, len(items))
		for i, c := range items {
			out[i] = Substitute(c, sub)
		}
		return term.NewArgs(out...)
	case term.Functor:
		return term.NewFunctor(n.Head, Substitute(n.Args, sub).(term.Args))
	case term.Relation:
		return term.NewRelation(n.Head, Substitute(n.Args, sub).(term.Args))
	case term.And:
		return term.And{Left: Substitute(n.Left, sub), Right: Substitute(n.Right, sub)}
	case term.Or:
		return term.Or{Left: Substitute(n.Left, sub), Right: Substitute(n.Right, sub)}
	case term.Not:
		return term.Not{Body: Substitute(n.Body, sub)}
	case term.Implies:
		return term.Implies{Left: Substitute(n.Left, sub), Right: Substitute(n.Right, sub)}
	case term.Iff:
		return term.Iff{Left: Substitute(n.Left, sub), Right: Substitute(n.Right, sub)}
	case term.Universal:
		return term.Universal{Var: n.Var, Body: Substitute(n.Body, sub)}
	case term.Existential:
		return term.Existential{Var: n.Var, Body: Substitute(n.Body, sub)}
	default:
		return t
	}
}

// Registry is the minimal view of the symbol table AllVariables and
// AllVariablesOfSet need: telling a variable identifier apart from a
// constant one.
type Registry interface {
	IsVariable(id int) bool
}

// AllVariables returns the free variables of t in first-appearance
// order under a fixed deterministic traversal: pre-order, left-to-right
// over children, with any set collection (there are none exposed here,
// since Term has no unordered child collections other than Args, which
// is already ordered) sorted by hash before traversal so the ordering
// is reproducible across calls. See internal/clause for the one place
// that actually needs to stabilize an unordered collection (the literal
// set of a Clause) before walking it with AllVariables.
func AllVariables(t term.Term, reg Registry) []int {
	seen := make(map[int]bool)
	var order []int
	var walk func(term.Term)
	walk = func(n term.Term) {
		switch x := n.(type) {
		case term.Atom:
			if reg.IsVariable(x.ID) && !seen[x.ID] {
				seen[x.ID] = true
				order = append(order, x.ID)
			}
		case term.Args:
			for _, c := range x.Items() {
				walk(c)
			}
		case term.Functor:
			walk(x.Args)
		case term.Relation:
			walk(x.Args)
		case term.And:
			walk(x.Left)
			walk(x.Right)
		case term.Or:
			walk(x.Left)
			walk(x.Right)
		case term.Not:
			walk(x.Body)
		case term.Implies:
			walk(x.Left)
			walk(x.Right)
		case term.Iff:
			walk(x.Left)
			walk(x.Right)
		case term.Universal:
			walk(x.Body)
		case term.Existential:
			walk(x.Body)
		}
	}
	walk(t)
	return order
}

// AllVariablesOfSet enumerates the free variables across an unordered
// collection of terms (used for a clause's literal set), first
// stabilizing iteration order by sorting the terms by hash, then
// walking in that order and within each term in the usual pre-order.
func AllVariablesOfSet(terms []term.Term, reg Registry) []int {
	sorted := make([]term.Term, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Hash() < sorted[j].Hash()
	})

	seen := make(map[int]bool)
	var order []int
	for _, t := range sorted {
		for _, v := range AllVariables(t, reg) {
			if !seen[v] {
				seen[v] = true
				order = append(order, v)
			}
		}
	}
	return order
}
