// Package term implements the tagged-variant term algebra: the full
// logical language (atoms, applied function and relation symbols, the
// propositional connectives, and quantifiers) as an immutable value
// tree with structural, variant-sensitive equality and hashing.
//
// Equality is tag-sensitive even when children coincide: a Functor and
// a Relation built from the same head and arguments are never equal.
// This matters because Skolemization (internal/cnf) turns a bare
// variable Atom into a Functor; substitution that ignored the variant
// tag would silently conflate the two.
package term

// Tag identifies which term variant a Term node is.
type Tag int

const (
	TagAtom Tag = iota
	TagFunctor
	TagRelation
	TagArgs
	TagAnd
	TagOr
	TagNot
	TagImplies
	TagIff
	TagUniversal
	TagExistential
)

// Term is an immutable node in the term/formula tree. All constructors
// return a Term; children are never mutated after construction, so
// trees are safe to share across clauses.
type Term interface {
	// Tag reports the variant of this node.
	Tag() Tag
	// Equal performs structural equality, tag-sensitive.
	Equal(other Term) bool
	// Hash returns a hash that is consistent with Equal: equal terms
	// hash equal, and the variant tag participates in the hash so that
	// same-shaped-but-different-tagged nodes are very unlikely to collide.
	Hash() uint64
}

// hash mixing constants (FNV-1a offset/prime, extended for per-tag salt).
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func mix(h uint64, x uint64) uint64 {
	h ^= x
	h *= fnvPrime
	return h
}

func hashInt(tag Tag, n int) uint64 {
	h := uint64(fnvOffset)
	h = mix(h, uint64(tag)+1)
	h = mix(h, uint64(n))
	return h
}

func hashChildren(tag Tag, children ...Term) uint64 {
	h := uint64(fnvOffset)
	h = mix(h, uint64(tag)+1)
	for _, c := range children {
		h = mix(h, c.Hash())
	}
	return h
}

// Atom is a bare identifier: either a variable or a constant, as
// disambiguated by the symbol table (internal/symtab). Atom carries no
// opinion about which — that's the registry's job.
type Atom struct {
	ID int
}

func NewAtom(id int) Atom { return Atom{ID: id} }

func (a Atom) Tag() Tag { return TagAtom }

func (a Atom) Equal(other Term) bool {
	o, ok := other.(Atom)
	return ok && o.ID == a.ID
}

func (a Atom) Hash() uint64 { return hashInt(TagAtom, a.ID) }

// Args is the distinguished argument-tuple node. It only ever appears
// as the second component of a Functor or Relation; it is never a
// top-level literal and must never be unified against a non-Args node
// (internal/unify enforces this) or serve as a paramodulation rewrite
// site (internal/infer enforces this).
type Args struct {
	items []Term
}

// NewArgs builds an argument tuple. The slice is copied defensively.
func NewArgs(items ...Term) Args {
	cp := make([]Term, len(items))
	copy(cp, items)
	return Args{items: cp}
}

func (a Args) Len() int          { return len(a.items) }
func (a Args) At(i int) Term     { return a.items[i] }
func (a Args) Items() []Term     { return a.items }
func (a Args) Tag() Tag          { return TagArgs }

func (a Args) Equal(other Term) bool {
	o, ok := other.(Args)
	if !ok || len(o.items) != len(a.items) {
		return false
	}
	for i := range a.items {
		if !a.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

func (a Args) Hash() uint64 {
	return hashChildren(TagArgs, a.items...)
}

// Functor is an applied function symbol: head(args...).
type Functor struct {
	Head int
	Args Args
}

func NewFunctor(head int, args Args) Functor { return Functor{Head: head, Args: args} }

func (f Functor) Tag() Tag { return TagFunctor }

func (f Functor) Equal(other Term) bool {
	o, ok := other.(Functor)
	return ok && o.Head == f.Head && f.Args.Equal(o.Args)
}

func (f Functor) Hash() uint64 {
	h := hashInt(TagFunctor, f.Head)
	return mix(h, f.Args.Hash())
}

// Relation is an applied relation symbol: head(args...), interpreted
// propositionally. Head == symtab.EqualityID denotes equality.
type Relation struct {
	Head int
	Args Args
}

func NewRelation(head int, args Args) Relation { return Relation{Head: head, Args: args} }

func (r Relation) Tag() Tag { return TagRelation }

// IsEquality reports whether this relation is the built-in equality.
func (r Relation) IsEquality() bool { return r.Head == 0 }

func (r Relation) Equal(other Term) bool {
	o, ok := other.(Relation)
	return ok && o.Head == r.Head && r.Args.Equal(o.Args)
}

func (r Relation) Hash() uint64 {
	h := hashInt(TagRelation, r.Head)
	return mix(h, r.Args.Hash())
}

// And, Or are binary propositional connectives.
type And struct{ Left, Right Term }
type Or struct{ Left, Right Term }

// Not is propositional negation.
type Not struct{ Body Term }

// Implies, Iff are derived connectives, eliminated by internal/cnf's
// first pass before anything downstream sees them.
type Implies struct{ Left, Right Term }
type Iff struct{ Left, Right Term }

// Universal, Existential are quantifiers, stripped by internal/cnf's
// Skolemization pass; no clause admitted to the engine should contain one.
type Universal struct {
	Var  int
	Body Term
}
type Existential struct {
	Var  int
	Body Term
}

func (x And) Tag() Tag         { return TagAnd }
func (x Or) Tag() Tag          { return TagOr }
func (x Not) Tag() Tag         { return TagNot }
func (x Implies) Tag() Tag     { return TagImplies }
func (x Iff) Tag() Tag         { return TagIff }
func (x Universal) Tag() Tag   { return TagUniversal }
func (x Existential) Tag() Tag { return TagExistential }

func (x And) Equal(other Term) bool {
	o, ok := other.(And)
	return ok && x.Left.Equal(o.Left) && x.Right.Equal(o.Right)
}
func (x Or) Equal(other Term) bool {
	o, ok := other.(Or)
	return ok && x.Left.Equal(o.Left) && x.Right.Equal(o.Right)
}
func (x Not) Equal(other Term) bool {
	o, ok := other.(Not)
	return ok && x.Body.Equal(o.Body)
}
func (x Implies) Equal(other Term) bool {
	o, ok := other.(Implies)
	return ok && x.Left.Equal(o.Left) && x.Right.Equal(o.Right)
}
func (x Iff) Equal(other Term) bool {
	o, ok := other.(Iff)
	return ok && x.Left.Equal(o.Left) && x.Right.Equal(o.Right)
}
func (x Universal) Equal(other Term) bool {
	o, ok := other.(Universal)
	return ok && x.Var == o.Var && x.Body.Equal(o.Body)
}
func (x Existential) Equal(other Term) bool {
	o, ok := other.(Existential)
	return ok && x.Var == o.Var && x.Body.Equal(o.Body)
}

func (x And) Hash() uint64     { return hashChildren(TagAnd, x.Left, x.Right) }
func (x Or) Hash() uint64      { return hashChildren(TagOr, x.Left, x.Right) }
func (x Not) Hash() uint64     { return hashChildren(TagNot, x.Body) }
func (x Implies) Hash() uint64 { return hashChildren(TagImplies, x.Left, x.Right) }
func (x Iff) Hash() uint64     { return hashChildren(TagIff, x.Left, x.Right) }
func (x Universal) Hash() uint64 {
	h := hashInt(TagUniversal, x.Var)
	return mix(h, x.Body.Hash())
}
func (x Existential) Hash() uint64 {
	h := hashInt(TagExistential, x.Var)
	return mix(h, x.Body.Hash())
}

// IsAtom reports whether t is an Atom, and if so returns its ID.
func IsAtom(t Term) (int, bool) {
	a, ok := t.(Atom)
	if !ok {
		return 0, false
	}
	return a.ID, true
}
