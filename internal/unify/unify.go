// Package unify computes the most general unifier of two terms via
// disagreement-set iteration, with a mandatory occurs check. There is
// no fast path that skips the occurs check.
package unify

import (
	"github.com/pkg/errors"

	"github.com/mkvale/resolv/internal/subst"
	"github.com/mkvale/resolv/internal/term"
)

// ErrNotUnifiable is returned (wrapped) when two terms have no unifier.
var ErrNotUnifiable = errors.New("not unifiable")

// Registry tells a unifier which atoms are variables; satisfied by
// *symtab.Table.
type Registry interface {
	IsVariable(id int) bool
}

// MGU computes the most general unifier of a and b. On success it
// returns a substitution map such that substituting it into both a and
// b yields structurally equal terms; on failure it returns
// ErrNotUnifiable (never a panic — unification failure is an expected
// outcome, not a fault).
//
// Args nodes are never unified against anything but another Args node
// of matching arity: a disagreement against an Args node on one side
// and a non-Args node on the other is an immediate failure, never a
// variable binding, since Args never appears where a variable could
// stand.
func MGU(a, b term.Term, reg Registry) (subst.Map, error) {
	sub := subst.Map{}
	ca, cb := a, b

	for {
		da, db, found := disagree(ca, cb, reg)
		if !found {
			return sub, nil
		}

		if da.Tag() == term.TagArgs || db.Tag() == term.TagArgs {
			return nil, errors.Wrap(ErrNotUnifiable, "disagreement at an argument tuple")
		}

		va, aIsVar := asUnboundVar(da, reg)
		vb, bIsVar := asUnboundVar(db, reg)

		var bindVar int
		var bindTerm term.Term
		switch {
		case aIsVar && !occurs(va, db, reg):
			bindVar, bindTerm = va, db
		case bIsVar && !occurs(vb, da, reg):
			bindVar, bindTerm = vb, da
		default:
			return nil, errors.Wrapf(ErrNotUnifiable, "at %v vs %v", da, db)
		}

		// Compose the new binding into the accumulated substitution
		// rather than just inserting it: bindTerm was drawn from the
		// already-substituted working copies, so no existing binding's
		// domain appears in it, but bindVar may well appear in existing
		// bindings' ranges. Rewriting those ranges keeps the returned
		// map a one-pass unifier — substituting it once equalizes the
		// original a and b, with no fixpoint iteration asked of the
		// caller.
		step := subst.Map{bindVar: bindTerm}
		for v, t := range sub {
			sub[v] = subst.Substitute(t, step)
		}
		sub[bindVar] = bindTerm

		ca = subst.Substitute(ca, step)
		cb = subst.Substitute(cb, step)
	}
}

func asUnboundVar(t term.Term, reg Registry) (int, bool) {
	id, ok := term.IsAtom(t)
	if !ok || !reg.IsVariable(id) {
		return 0, false
	}
	return id, true
}

// disagree finds the leftmost pair of nodes at the same tree position
// where the variant tags differ, or both are atoms with differing
// identifiers. Returns found=false if a and b are already equal.
func disagree(a, b term.Term, reg Registry) (term.Term, term.Term, bool) {
	if a.Tag() != b.Tag() {
		return a, b, true
	}

	switch x := a.(type) {
	case term.Atom:
		y := b.(term.Atom)
		if x.ID == y.ID {
			return nil, nil, false
		}
		return a, b, true

	case term.Args:
		y := b.(term.Args)
		if x.Len() != y.Len() {
			return a, b, true
		}
		for i := 0; i < x.Len(); i++ {
			if d1, d2, ok := disagree(x.At(i), y.At(i), reg); ok {
				return d1, d2, true
			}
		}
		return nil, nil, false

	case term.Functor:
		y := b.(term.Functor)
		if x.Head != y.Head {
			return a, b, true
		}
		return disagree(x.Args, y.Args, reg)

	case term.Relation:
		y := b.(term.Relation)
		if x.Head != y.Head {
			return a, b, true
		}
		return disagree(x.Args, y.Args, reg)

	case term.And:
		y := b.(term.And)
		if d1, d2, ok := disagree(x.Left, y.Left, reg); ok {
			return d1, d2, true
		}
		return disagree(x.Right, y.Right, reg)

	case term.Or:
		y := b.(term.Or)
		if d1, d2, ok := disagree(x.Left, y.Left, reg); ok {
			return d1, d2, true
		}
		return disagree(x.Right, y.Right, reg)

	case term.Not:
		y := b.(term.Not)
		return disagree(x.Body, y.Body, reg)

	case term.Implies:
		y := b.(term.Implies)
		if d1, d2, ok := disagree(x.Left, y.Left, reg); ok {
			return d1, d2, true
		}
		return disagree(x.Right, y.Right, reg)

	case term.Iff:
		y := b.(term.Iff)
		if d1, d2, ok := disagree(x.Left, y.Left, reg); ok {
			return d1, d2, true
		}
		return disagree(x.Right, y.Right, reg)

	case term.Universal:
		y := b.(term.Universal)
		if x.Var != y.Var {
			return a, b, true
		}
		return disagree(x.Body, y.Body, reg)

	case term.Existential:
		y := b.(term.Existential)
		if x.Var != y.Var {
			return a, b, true
		}
		return disagree(x.Body, y.Body, reg)
	}

	return a, b, true
}

// occurs reports whether the variable v appears anywhere within t. The
// occurs check is what makes unification terminate: without it,
// unifying v with f(v) would loop substituting forever.
func occurs(v int, t term.Term, reg Registry) bool {
	switch x := t.(type) {
	case term.Atom:
		return x.ID == v
	case term.Args:
		for _, c := range x.Items() {
			if occurs(v, c, reg) {
				return true
			}
		}
		return false
	case term.Functor:
		return occurs(v, x.Args, reg)
	case term.Relation:
		return occurs(v, x.Args, reg)
	case term.And:
		return occurs(v, x.Left, reg) || occurs(v, x.Right, reg)
	case term.Or:
		return occurs(v, x.Left, reg) || occurs(v, x.Right, reg)
	case term.Not:
		return occurs(v, x.Body, reg)
	case term.Implies:
		return occurs(v, x.Left, reg) || occurs(v, x.Right, reg)
	case term.Iff:
		return occurs(v, x.Left, reg) || occurs(v, x.Right, reg)
	case term.Universal:
		return occurs(v, x.Body, reg)
	case term.Existential:
		return occurs(v, x.Body, reg)
	}
	return false
}
