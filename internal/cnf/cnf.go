// Package cnf converts an arbitrary closed formula into a set of
// clauses through four passes: eliminate derived connectives, push
// negations to normal form, Skolemize and extract quantifiers, then
// distribute ∨ over ∧.
package cnf

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mkvale/resolv/internal/clause"
	"github.com/mkvale/resolv/internal/subst"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

// ErrMalformedInput is wrapped and returned when a formula violates a
// structural precondition the pipeline requires: free variables at top
// level, or a Relation nested inside a Functor's arguments.
var ErrMalformedInput = errors.New("malformed input")

// Validate checks the structural preconditions the pipeline assumes,
// accumulating every violation found (via go-multierror) rather than
// stopping at the first one, so a caller gets a complete diagnostic.
func Validate(f term.Term, tab *symtab.Table) error {
	var merr *multierror.Error

	free := subst.AllVariables(f, tab)
	boundStack := map[int]bool{}
	var walkBound func(term.Term)
	walkBound = func(t term.Term) {
		switch x := t.(type) {
		case term.Universal:
			boundStack[x.Var] = true
			walkBound(x.Body)
		case term.Existential:
			boundStack[x.Var] = true
			walkBound(x.Body)
		case term.And:
			walkBound(x.Left)
			walkBound(x.Right)
		case term.Or:
			walkBound(x.Left)
			walkBound(x.Right)
		case term.Not:
			walkBound(x.Body)
		case term.Implies:
			walkBound(x.Left)
			walkBound(x.Right)
		case term.Iff:
			walkBound(x.Left)
			walkBound(x.Right)
		}
	}
	walkBound(f)
	for _, v := range free {
		if !boundStack[v] {
			merr = multierror.Append(merr, errors.Wrapf(ErrMalformedInput,
				"free variable %q at top level", tab.Name(v)))
		}
	}

	var walkArgs func(term.Term)
	walkArgs = func(t term.Term) {
		switch x := t.(type) {
		case term.Args:
			for _, c := range x.Items() {
				if _, ok := c.(term.Relation); ok {
					merr = multierror.Append(merr, errors.Wrap(ErrMalformedInput,
						"relation nested inside functor/relation arguments"))
				}
				walkArgs(c)
			}
		case term.Functor:
			walkArgs(x.Args)
		case term.Relation:
			walkArgs(x.Args)
		case term.And:
			walkArgs(x.Left)
			walkArgs(x.Right)
		case term.Or:
			walkArgs(x.Left)
			walkArgs(x.Right)
		case term.Not:
			walkArgs(x.Body)
		case term.Implies:
			walkArgs(x.Left)
			walkArgs(x.Right)
		case term.Iff:
			walkArgs(x.Left)
			walkArgs(x.Right)
		case term.Universal:
			walkArgs(x.Body)
		case term.Existential:
			walkArgs(x.Body)
		}
	}
	walkArgs(f)

	if merr != nil {
		return merr.ErrorOrNil()
	}
	return nil
}

// CNF converts f to a set of clauses. f must be closed (every variable
// quantified) and otherwise well-formed; call Validate first if the
// caller's input is not already known-good.
func CNF(f term.Term, tab *symtab.Table) []clause.Clause {
	stripped := eliminate(f)
	nnf := negate(stripped)
	skolemized := skolemize(nnf, tab, nil)
	return distribute(skolemized)
}

// eliminate is pass 1: Implies/Iff are rewritten away.
//
//	Implies(L,R) -> Or(Not(L), R)
//	Iff(L,R)     -> Or(And(L',R'), And(Not(L'),Not(R')))
func eliminate(t term.Term) term.Term {
	switch x := t.(type) {
	case term.Implies:
		l := eliminate(x.Left)
		r := eliminate(x.Right)
		return term.Or{Left: term.Not{Body: l}, Right: r}
	case term.Iff:
		l := eliminate(x.Left)
		r := eliminate(x.Right)
		return term.Or{
			Left:  term.And{Left: l, Right: r},
			Right: term.And{Left: term.Not{Body: l}, Right: term.Not{Body: r}},
		}
	case term.And:
		return term.And{Left: eliminate(x.Left), Right: eliminate(x.Right)}
	case term.Or:
		return term.Or{Left: eliminate(x.Left), Right: eliminate(x.Right)}
	case term.Not:
		return term.Not{Body: eliminate(x.Body)}
	case term.Universal:
		return term.Universal{Var: x.Var, Body: eliminate(x.Body)}
	case term.Existential:
		return term.Existential{Var: x.Var, Body: eliminate(x.Body)}
	default:
		return t
	}
}

// negate is pass 2: negation normal form. Not is pushed inward until it
// applies only to atomic relations.
func negate(t term.Term) term.Term {
	switch x := t.(type) {
	case term.Not:
		switch b := x.Body.(type) {
		case term.Not:
			return negate(b.Body)
		case term.And:
			return term.Or{Left: negate(term.Not{Body: b.Left}), Right: negate(term.Not{Body: b.Right})}
		case term.Or:
			return term.And{Left: negate(term.Not{Body: b.Left}), Right: negate(term.Not{Body: b.Right})}
		case term.Universal:
			return term.Existential{Var: b.Var, Body: negate(term.Not{Body: b.Body})}
		case term.Existential:
			return term.Universal{Var: b.Var, Body: negate(term.Not{Body: b.Body})}
		default:
			return term.Not{Body: negate(b)}
		}
	case term.And:
		return term.And{Left: negate(x.Left), Right: negate(x.Right)}
	case term.Or:
		return term.Or{Left: negate(x.Left), Right: negate(x.Right)}
	case term.Universal:
		return term.Universal{Var: x.Var, Body: negate(x.Body)}
	case term.Existential:
		return term.Existential{Var: x.Var, Body: negate(x.Body)}
	default:
		return t
	}
}

// skolemize is pass 3: gathers, for each quantifier, the enclosing
// universal variables active at that point, replaces each existential
// variable with a fresh Skolem functor applied to those universals (or
// a bare Skolem constant if there are none), and strips all quantifier
// nodes. `order` carries the enclosing universals in binding order,
// threaded down the recursion rather than held globally, so Skolem
// functions never pick up spurious arguments from quantifiers that
// don't actually enclose the existential.
func skolemize(t term.Term, tab *symtab.Table, order []int) term.Term {
	switch x := t.(type) {
	case term.Universal:
		next := append(append([]int{}, order...), x.Var)
		return skolemize(x.Body, tab, next)
	case term.Existential:
		var skolemTerm term.Term
		if len(order) == 0 {
			skolemTerm = term.NewAtom(tab.FreshConstant(""))
		} else {
			args := make([]term.Term, len(order))
			for i, v := range order {
				args[i] = term.NewAtom(v)
			}
			skolemTerm = term.NewFunctor(tab.FreshConstant(""), term.NewArgs(args...))
		}
		body := skolemize(x.Body, tab, order)
		sub := subst.Map{x.Var: skolemTerm}
		return subst.Substitute(body, sub)
	case term.And:
		return term.And{Left: skolemize(x.Left, tab, order), Right: skolemize(x.Right, tab, order)}
	case term.Or:
		return term.Or{Left: skolemize(x.Left, tab, order), Right: skolemize(x.Right, tab, order)}
	case term.Not:
		return term.Not{Body: skolemize(x.Body, tab, order)}
	default:
		return t
	}
}

// distribute is pass 4: collects clauses by distributing ∨ over ∧.
//
//	cnf(And(L,R)) = cnf(L) ∪ cnf(R)
//	cnf(Or(L,R))  = { l ∪ r | l ∈ cnf(L), r ∈ cnf(R) }
//	otherwise     = { {T} }
//
// The result is a set of clauses: duplicate clauses and duplicate
// literals within a clause are silently collapsed by clause.New, the
// usual set-of-sets saving.
func distribute(t term.Term) []clause.Clause {
	switch x := t.(type) {
	case term.And:
		return append(distribute(x.Left), distribute(x.Right)...)
	case term.Or:
		left := distribute(x.Left)
		right := distribute(x.Right)
		out := make([]clause.Clause, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				out = append(out, clause.Union(l, r))
			}
		}
		return dedupeClauses(out)
	default:
		return []clause.Clause{clause.New(t)}
	}
}

func dedupeClauses(cs []clause.Clause) []clause.Clause {
	seen := make(map[string]bool, len(cs))
	out := make([]clause.Clause, 0, len(cs))
	for _, c := range cs {
		k := c.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
