// Package render turns clauses, terms, and a completed proof map into
// human-readable text. Display is driven off a caller-supplied
// per-symbol preference table (Preferences) rather than a single
// hardcoded layout.
package render

import "github.com/mkvale/resolv/internal/symtab"

// Fixity selects how a functor or relation symbol is displayed.
type Fixity int

const (
	// Prefix renders head(arg1, arg2, ...). The default for any symbol
	// with no entry in a Preferences table.
	Prefix Fixity = iota
	// Infix renders arg1 <name> arg2. Only meaningful for 2-ary symbols;
	// rendering falls back to Prefix for any other arity.
	Infix
	// Postfix renders arg1 <name>.  Only meaningful for 1-ary symbols;
	// rendering falls back to Prefix for any other arity.
	Postfix
)

// Preferences is a per-symbol display table, keyed by symtab identifier.
type Preferences struct {
	fixity map[int]Fixity
}

// NewPreferences builds an empty preference table; every symbol renders
// Prefix until SetFixity is called for it.
func NewPreferences() Preferences {
	return Preferences{fixity: map[int]Fixity{}}
}

// DefaultPreferences returns the table this package uses when no
// caller-supplied Preferences is given: equality renders Infix ("a =
// b"), matching conventional notation, everything else renders Prefix.
func DefaultPreferences() Preferences {
	p := NewPreferences()
	p.SetFixity(symtab.EqualityID, Infix)
	return p
}

// SetFixity records how symbol id should be displayed.
func (p Preferences) SetFixity(id int, f Fixity) {
	p.fixity[id] = f
}

func (p Preferences) fixityOf(id int) Fixity {
	return p.fixity[id]
}
