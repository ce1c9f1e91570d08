package engine

import "github.com/hashicorp/go-hclog"

// monitor reports saturation progress through the configured logger.
// The prover has no dashboard to poll, so instrumentation is emitted
// as structured log records rather than exposed counters.
type monitor struct {
	log      hclog.Logger
	admitted int
	skipped  int
}

func newMonitor(log hclog.Logger) *monitor {
	return &monitor{log: log.Named("saturation")}
}

func (m *monitor) recordAdmit(cost int, literals int) {
	m.admitted++
	m.log.Trace("admitted clause", "cost", cost, "literals", literals, "total_admitted", m.admitted)
}

func (m *monitor) recordDuplicateSkip() {
	m.skipped++
	m.log.Trace("skipped already-admitted clause", "total_skipped", m.skipped)
}

func (m *monitor) recordBudgetExceeded(cost, budget int) {
	m.log.Debug("budget exceeded, no proof found", "frontier_cost", cost, "budget", budget, "admitted", m.admitted)
}

func (m *monitor) recordEmptyClause(cost int) {
	m.log.Info("derived the empty clause", "cost", cost, "admitted", m.admitted)
}
