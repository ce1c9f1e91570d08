package surface

// Language configures the two operator precedence tables the grammar
// consults: which tokens are infix relation symbols (index 0 binds
// loosest, later indices bind tighter), and likewise for infix functor
// symbols.
type Language struct {
	RelationInfixOrder []string
	FunctorInfixOrder  []string
}

// DefaultLanguage recognizes "=" as an infix relation and "+" as an
// infix functor, enough to write the scenarios cmd/example demonstrates
// without needing prefix functional syntax for everyday arithmetic-like
// axioms.
func DefaultLanguage() Language {
	return Language{
		RelationInfixOrder: []string{"="},
		FunctorInfixOrder:  []string{"+"},
	}
}
