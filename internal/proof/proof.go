// Package proof holds the justification and proof-DAG value types
// shared between internal/infer (which produces them), engine (which
// stores them), and render (which consumes them).
package proof

import (
	"github.com/mkvale/resolv/internal/clause"
	"github.com/mkvale/resolv/internal/subst"
	"github.com/mkvale/resolv/internal/term"
)

// Justification records why a derived clause was admitted.
type Justification interface {
	isJustification()
}

// Resolution is the justification for a binary-resolution step: the
// positive literal that was resolved upon.
type Resolution struct {
	PositiveLiteral term.Term
}

func (Resolution) isJustification() {}

// Paramodulation is the justification for a paramodulation step: the
// equality source and target terms, and the unifier that was applied at
// the rewrite site.
type Paramodulation struct {
	Source, Target term.Term
	Substitution   subst.Map
}

func (Paramodulation) isJustification() {}

// Node is one entry of a Map: a clause is either an Axiom (no
// parents) or Derived from two earlier clauses under a Justification.
type Node struct {
	Clause        clause.Clause
	IsAxiom       bool
	ParentA       clause.Clause
	ParentB       clause.Clause
	Justification Justification
}

// Map is the proof DAG: canonical clause key -> Node. Acyclic by
// construction: a clause's parents were always admitted strictly
// earlier, since the engine only ever looks up already-admitted
// clauses when building a Node.
type Map map[string]Node
