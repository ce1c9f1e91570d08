// Package engine implements the best-first saturation loop and is this
// prover's programmatic API surface: Prove, CNF, and the types callers
// need to consume a proof. All state lives on an explicit Engine
// object threaded through the API; there are no package globals.
package engine

import (
	"github.com/hashicorp/go-hclog"

	"github.com/mkvale/resolv/internal/clause"
)

// Heuristic costs a derived clause x, given the two parent clauses it
// came from. The engine accepts any non-negative heuristic; Prove's
// cost for a derivation is Heuristic(x, a, b) plus the larger of its
// parents' costs, plus one.
type Heuristic func(x, a, b clause.Clause) int

// Config holds the engine's immutable-during-a-run parameters:
// constructed once, then read (never mutated) by the saturation loop.
type Config struct {
	// Budget is the maximum admissible cost; once the cheapest
	// frontier clause exceeds it, the run ends with no proof.
	Budget int

	// Heuristic costs a candidate derivation. If nil, Prove builds
	// NewDefaultHeuristic scoped to the run's symbol table.
	Heuristic Heuristic

	// Logger receives structured Trace/Debug records of engine
	// progress (clauses admitted, budget exhaustion). Defaults to a
	// null logger.
	Logger hclog.Logger
}

// DefaultBudget is the cost ceiling used when a Config leaves Budget
// unset (zero).
const DefaultBudget = 1000

func (c Config) withDefaults() Config {
	if c.Budget <= 0 {
		c.Budget = DefaultBudget
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	return c
}
