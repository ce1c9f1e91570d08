package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkvale/resolv/internal/subst"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

func TestMGUSoundness(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")
	y := tab.FreshVariable("y")
	c := tab.FreshConstant("c")

	a := term.NewFunctor(1, term.NewArgs(term.NewAtom(x), term.NewAtom(c)))
	b := term.NewFunctor(1, term.NewArgs(term.NewAtom(c), term.NewAtom(y)))

	sub, err := MGU(a, b, tab)
	require.NoError(t, err)

	sa := subst.Substitute(a, sub)
	sb := subst.Substitute(b, sub)
	assert.True(t, sa.Equal(sb), "substituted terms are not equal: %v vs %v", sa, sb)
}

func TestMGUMostGeneral(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")

	sub, err := MGU(term.NewAtom(x), term.NewAtom(x), tab)
	require.NoError(t, err, "unifying a variable with itself should succeed")
	assert.Empty(t, sub, "the most general unifier of x and x binds nothing")
}

func TestMGUOccursCheck(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")
	f := tab.FreshConstant("f")

	selfReferential := term.NewFunctor(f, term.NewArgs(term.NewAtom(x)))
	_, err := MGU(term.NewAtom(x), selfReferential, tab)
	assert.Error(t, err, "expected the occurs check to reject x = f(x)")
}

func TestMGUArityMismatch(t *testing.T) {
	tab := symtab.New()
	c := tab.FreshConstant("c")
	f := tab.FreshConstant("f")

	a := term.NewFunctor(f, term.NewArgs(term.NewAtom(c)))
	b := term.NewFunctor(f, term.NewArgs(term.NewAtom(c), term.NewAtom(c)))

	_, err := MGU(a, b, tab)
	assert.Error(t, err, "expected arity mismatch to fail unification")
}

func TestMGUHeadMismatch(t *testing.T) {
	tab := symtab.New()
	f := tab.FreshConstant("f")
	g := tab.FreshConstant("g")
	c := tab.FreshConstant("c")

	a := term.NewFunctor(f, term.NewArgs(term.NewAtom(c)))
	b := term.NewFunctor(g, term.NewArgs(term.NewAtom(c)))

	_, err := MGU(a, b, tab)
	assert.Error(t, err, "expected different functor heads to fail unification")
}

func TestMGUDistinctConstants(t *testing.T) {
	tab := symtab.New()
	c1 := tab.FreshConstant("c1")
	c2 := tab.FreshConstant("c2")

	_, err := MGU(term.NewAtom(c1), term.NewAtom(c2), tab)
	assert.Error(t, err, "expected two distinct constants to fail unification")
}

func TestMGUNeverBindsVariableToArgsTuple(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")
	c := tab.FreshConstant("c")

	_, err := MGU(term.NewAtom(x), term.NewArgs(term.NewAtom(c)), tab)
	assert.Error(t, err, "an Args tuple carries no meaning of its own and must never unify against a variable")
}

func TestSubstituteIsIdempotentAfterMGU(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")
	y := tab.FreshVariable("y")
	f := tab.FreshConstant("f")
	c := tab.FreshConstant("c")

	a := term.NewFunctor(f, term.NewArgs(term.NewAtom(x), term.NewAtom(y)))
	b := term.NewFunctor(f, term.NewArgs(term.NewAtom(c), term.NewAtom(x)))

	sub, err := MGU(a, b, tab)
	require.NoError(t, err)

	once := subst.Substitute(a, sub)
	twice := subst.Substitute(once, sub)
	assert.True(t, once.Equal(twice), "substituting an MGU a second time must change nothing: %v vs %v", once, twice)
}

func TestMGUComposesChainedBindings(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")
	y := tab.FreshVariable("y")
	f := tab.FreshConstant("f")
	c := tab.FreshConstant("c")

	// Unifying f(x, y) with f(y, c) first binds x to y, then y to c.
	// The returned map must have the first binding's range rewritten
	// (x to c, not x to y), or a single substitution pass would leave
	// the two sides unequal.
	a := term.NewFunctor(f, term.NewArgs(term.NewAtom(x), term.NewAtom(y)))
	b := term.NewFunctor(f, term.NewArgs(term.NewAtom(y), term.NewAtom(c)))

	sub, err := MGU(a, b, tab)
	require.NoError(t, err)

	sa := subst.Substitute(a, sub)
	sb := subst.Substitute(b, sub)
	assert.True(t, sa.Equal(sb), "one substitution pass must equalize both sides: %v vs %v", sa, sb)
}

func TestMGUVariableBoundToVariable(t *testing.T) {
	tab := symtab.New()
	x := tab.FreshVariable("x")
	y := tab.FreshVariable("y")

	sub, err := MGU(term.NewAtom(x), term.NewAtom(y), tab)
	require.NoError(t, err, "unifying two distinct variables should succeed")
	assert.Len(t, sub, 1, "expected exactly one binding")
}
