package engine

import (
	"container/heap"

	"github.com/pkg/errors"

	"github.com/mkvale/resolv/internal/clause"
	"github.com/mkvale/resolv/internal/cnf"
	"github.com/mkvale/resolv/internal/infer"
	"github.com/mkvale/resolv/internal/proof"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

// Engine is a saturation run's symbol table plus its configuration. A
// single Engine's Table is meant to be used to build every term passed
// to Prove across the Engine's lifetime — identifiers are never
// reused, and Prove's default heuristic treats every symbol this Table
// allocated before the saturation loop starts (including Skolem
// constants minted while converting the input to clauses) as known.
type Engine struct {
	tab *symtab.Table
	cfg Config
	mon *monitor
}

// New constructs an Engine with its own fresh symbol table.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		tab: symtab.New(),
		cfg: cfg,
		mon: newMonitor(cfg.Logger),
	}
}

// Table returns the Engine's symbol allocator. Callers build the
// term.Term values passed to CNF/Prove using this table's
// FreshVariable/FreshConstant.
func (e *Engine) Table() *symtab.Table { return e.tab }

// CNF converts a closed formula to clauses, validating its structural
// preconditions first.
func (e *Engine) CNF(f term.Term) ([]clause.Clause, error) {
	if err := cnf.Validate(f, e.tab); err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "%v", err)
	}
	return cnf.CNF(f, e.tab), nil
}

// run holds the mutable state of one saturation loop: the admitted
// clause set ("canon"), the insertion order those clauses were admitted
// in (every admitted clause is later paired against every other,
// including itself, for self-resolution), the cost and proof maps
// (registered at push time so a later, costlier rediscovery of the same
// clause can never overwrite the first), and the min-cost frontier.
type run struct {
	tab       *symtab.Table
	heuristic Heuristic
	mon       *monitor
	budget    int

	axiomKeys map[string]bool
	canon     map[string]bool
	order     []clause.Clause
	costMap   map[string]int
	proofMap  proof.Map
	frontier  frontierHeap
}

// push considers admitting clause x, derived from parents a and b under
// justification just, into the run. Axioms are pushed once during
// initialization with isAxiom true and no parents. A clause already
// known as an axiom, or already assigned a cost by an earlier (cheaper
// or equal) discovery, is ignored — first discovery wins.
func (r *run) push(x, a, b clause.Clause, just proof.Justification, isAxiom bool) {
	key := x.Key()

	if !isAxiom && r.axiomKeys[key] {
		return
	}
	if _, known := r.costMap[key]; known {
		return
	}

	cost := 0
	if !isAxiom {
		cost = r.heuristic(x, a, b) + max(r.costMap[a.Key()], r.costMap[b.Key()]) + 1
	}

	r.costMap[key] = cost
	r.proofMap[key] = proof.Node{
		Clause:        x,
		IsAxiom:       isAxiom,
		ParentA:       a,
		ParentB:       b,
		Justification: just,
	}
	heap.Push(&r.frontier, &frontierItem{cost: cost, key: key, clause: x})
}

// Prove attempts to derive a contradiction (the empty clause) from
// axioms together with the negated goal, via best-first saturation
// under binary resolution and paramodulation. It returns the run's
// proof map, holding every clause pushed during the run (the proof DAG
// is the part reachable from the empty clause's key, present only when
// a proof was found), whether a proof
// was found, and an error only for malformed input or an internal
// invariant violation — exhausting the budget without a proof is a
// normal (ok == false, err == nil) outcome, not an error.
func (e *Engine) Prove(axioms []term.Term, goal term.Term) (proof.Map, bool, error) {
	var clauses []clause.Clause
	for _, ax := range axioms {
		cs, err := e.CNF(ax)
		if err != nil {
			return nil, false, err
		}
		clauses = append(clauses, cs...)
	}
	negGoal, err := e.CNF(term.Not{Body: goal})
	if err != nil {
		return nil, false, err
	}
	clauses = append(clauses, negGoal...)

	return e.prove(clauses)
}

// prove runs the saturation loop over an already-CNF'd clause set;
// Prove calls it once the axioms and the negated goal are converted.
func (e *Engine) prove(clauses []clause.Clause) (pm proof.Map, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pm, ok, err = nil, false, errors.Wrapf(ErrInternalInvariant, "%v", rec)
		}
	}()

	r := &run{
		tab:       e.tab,
		heuristic: e.cfg.Heuristic,
		mon:       e.mon,
		budget:    e.cfg.Budget,
		axiomKeys: map[string]bool{},
		canon:     map[string]bool{},
		costMap:   map[string]int{},
		proofMap:  proof.Map{},
	}
	if r.heuristic == nil {
		r.heuristic = NewDefaultHeuristic(e.tab, e.tab.Cutoff())
	}

	empty := clause.Clause{}
	for _, c := range clauses {
		cc := clause.Canon(c, e.tab)
		key := cc.Key()
		r.axiomKeys[key] = true
		r.push(cc, empty, empty, nil, true)
	}

	for r.frontier.Len() > 0 {
		item := heap.Pop(&r.frontier).(*frontierItem)

		if item.cost > r.budget {
			r.mon.recordBudgetExceeded(item.cost, r.budget)
			return r.proofMap, false, nil
		}

		key := item.clause.Key()
		if r.canon[key] {
			r.mon.recordDuplicateSkip()
			continue
		}
		r.canon[key] = true
		r.order = append(r.order, item.clause)
		r.mon.recordAdmit(item.cost, item.clause.Len())

		if item.clause.IsEmpty() {
			r.mon.recordEmptyClause(item.cost)
			return r.proofMap, true, nil
		}

		foundEmpty := false
		for _, s := range r.order {
			infer.Derive(s, item.clause, e.tab, func(d infer.Derivation) bool {
				canonC := clause.Canon(d.Clause, e.tab)
				r.push(canonC, s, item.clause, d.Justification, false)
				if canonC.IsEmpty() {
					foundEmpty = true
					return false
				}
				return true
			})
			if foundEmpty {
				break
			}
		}
		if foundEmpty {
			r.mon.recordEmptyClause(r.costMap[empty.Key()])
			return r.proofMap, true, nil
		}
	}

	return r.proofMap, false, nil
}
