package surface

import "github.com/mkvale/resolv/internal/symtab"

// Names resolves textual identifiers to symtab ids. It is an immutable
// value: Register returns an extended copy rather than mutating the
// receiver. Quantifier scoping depends on that: a nested quantifier's
// Register must not leak its binding back out to the caller's scope.
type Names struct {
	tab       *symtab.Table
	vars      map[string]int
	constants map[string]int
}

// NewNames builds a root scope with no bound variables. The "=" token
// is pre-bound to the reserved equality identifier so a parsed "a = b"
// is the built-in equality, not a freshly minted relation symbol that
// happens to share its display name.
func NewNames(tab *symtab.Table) Names {
	return Names{
		tab:       tab,
		vars:      map[string]int{},
		constants: map[string]int{"=": symtab.EqualityID},
	}
}

// Register binds name to id in a new scope extending n.
func (n Names) Register(name string, id int) Names {
	next := make(map[string]int, len(n.vars)+1)
	for k, v := range n.vars {
		next[k] = v
	}
	next[name] = id
	return Names{tab: n.tab, vars: next, constants: n.constants}
}

// ToIndex resolves name to a symtab id: a bound variable if name is in
// scope, otherwise a constant, minted once per distinct name and reused
// on every later occurrence (constants is shared across scope copies,
// since constant identity has no lexical extent).
func (n Names) ToIndex(name string) int {
	if id, ok := n.vars[name]; ok {
		return id
	}
	if id, ok := n.constants[name]; ok {
		return id
	}
	id := n.tab.FreshConstant(name)
	n.constants[name] = id
	return id
}
