package engine

import (
	"github.com/mkvale/resolv/internal/clause"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

// NewDefaultHeuristic builds the default cost function: weight a
// clause by syntactic size, with a larger penalty for relation/functor
// heads the prover did not already know about when the run started.
// knownBefore is a snapshot of the symbol table's counter taken when
// Prove began — "constants the prover already knows" means declared
// before this run, not discovered mid-saturation (Skolem constants
// minted while CNF-ing the input count as known; nothing else mints a
// new relation or functor head during the saturation loop itself,
// since resolution and paramodulation only ever rebind variables).
func NewDefaultHeuristic(tab *symtab.Table, knownBefore int) Heuristic {
	known := func(id int) bool { return id < knownBefore }
	return func(x, _, _ clause.Clause) int {
		total := 0
		for _, lit := range x.Literals() {
			total += nTerms(lit, tab, known)
		}
		return total * 10
	}
}

func nTerms(t term.Term, tab *symtab.Table, known func(int) bool) int {
	switch x := t.(type) {
	case term.Atom:
		if tab.IsVariable(x.ID) {
			return 3
		}
		return 1
	case term.Args:
		r := 0
		for _, c := range x.Items() {
			r += nTerms(c, tab, known)
		}
		return r
	case term.Functor:
		r := nTerms(x.Args, tab, known)
		if !known(x.Head) {
			r += 20
		}
		return r
	case term.Relation:
		r := nTerms(x.Args, tab, known)
		if !known(x.Head) {
			r += 20
		}
		return r
	case term.Not:
		return nTerms(x.Body, tab, known)
	case term.And:
		return nTerms(x.Left, tab, known) + nTerms(x.Right, tab, known)
	case term.Or:
		return nTerms(x.Left, tab, known) + nTerms(x.Right, tab, known)
	case term.Implies:
		return nTerms(x.Left, tab, known) + nTerms(x.Right, tab, known)
	case term.Iff:
		return nTerms(x.Left, tab, known) + nTerms(x.Right, tab, known)
	case term.Universal:
		return nTerms(x.Body, tab, known)
	case term.Existential:
		return nTerms(x.Body, tab, known)
	default:
		return 0
	}
}
