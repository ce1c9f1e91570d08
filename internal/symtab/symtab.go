// Package symtab implements the symbol registry: a monotonically
// growing namespace of variable and constant identifiers shared by
// everything built on top of it.
package symtab

import "sync"

// Kind distinguishes a variable identifier from a constant identifier.
type Kind int

const (
	// Variable marks an identifier as a logic variable.
	Variable Kind = iota
	// Constant marks an identifier as a constant (including Skolem constants).
	Constant
)

// EqualityID is the identifier reserved for the built-in equality relation.
// No other symbol may be allocated with this ID.
const EqualityID = 0

// IsCanonicalVariable reports whether id belongs to the fixed, reserved
// enumeration of canonical variable identifiers that internal/clause's
// Canon maps free variables onto. These live in the negative half of
// the identifier space, below every identifier fresh() can ever hand
// out, so they need no table entry — which is exactly what lets two
// calls to Canon, on two separate occasions, land on the same
// identifier for "the clause's first distinct variable" without the
// counter ever moving.
func IsCanonicalVariable(id int) bool { return id < 0 }

// CanonicalVariable returns the n-th (1-indexed) identifier of the fixed
// canonical variable enumeration.
func CanonicalVariable(n int) int { return -n }

type entry struct {
	kind        Kind
	displayName string
}

// Table is a registry of identifiers to their kind and display name.
// A zero Table is not usable; construct one with New. A Table is owned
// by a single engine's goroutine; the allocator is not meant for
// concurrent use across engines.
type Table struct {
	mu      sync.Mutex
	entries map[int]entry
	next    int
}

// New creates a symbol table with identifier 0 reserved for equality.
func New() *Table {
	t := &Table{
		entries: make(map[int]entry),
		next:    1,
	}
	t.entries[EqualityID] = entry{kind: Constant, displayName: "="}
	return t
}

// FreshVariable allocates a new variable identifier. If name is empty a
// generated display name is used.
func (t *Table) FreshVariable(name string) int {
	return t.fresh(Variable, name, "V")
}

// FreshConstant allocates a new constant identifier. If name is empty a
// generated display name is used.
func (t *Table) FreshConstant(name string) int {
	return t.fresh(Constant, name, "C")
}

func (t *Table) fresh(kind Kind, name, prefix string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.next
	t.next++

	display := name
	if display == "" {
		display = genName(prefix, id)
	}
	t.entries[id] = entry{kind: kind, displayName: display}
	return id
}

func genName(prefix string, id int) string {
	return prefix + "_" + itoa(id)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// IsVariable reports whether id was allocated as a variable.
func (t *Table) IsVariable(id int) bool {
	if IsCanonicalVariable(id) {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	return ok && e.kind == Variable
}

// IsConstant reports whether id was allocated as a constant.
func (t *Table) IsConstant(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	return ok && e.kind == Constant
}

// Name returns the display name of id, or "" if id is unknown.
func (t *Table) Name(id int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries[id].displayName
}

// Known reports whether id has been allocated by this table.
func (t *Table) Known(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[id]
	return ok
}

// Len returns the number of identifiers allocated, including the
// reserved equality constant.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Cutoff returns the identifier that will be allocated next. Any id
// strictly less than a previously captured Cutoff() was allocated
// before that point was reached — used by the engine's default
// heuristic to tell symbols the prover already knew about from ones it
// minted mid-run.
func (t *Table) Cutoff() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}
