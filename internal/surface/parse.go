package surface

import (
	"github.com/pkg/errors"

	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

// errNotImplemented is returned once infix functor parsing is asked to
// go past its first precedence level; see the package BUG note.
var errNotImplemented = errors.New("surface: infix functor parsing beyond one precedence level is not implemented")

// errUnexpected is wrapped with the offending token for every other
// parse failure.
var errUnexpected = errors.New("surface: unexpected token")

// Parse reads a single formula from src under lang, minting symbols
// into tab. The grammar cannot express conjunction (see the package
// BUG note): the "and" keyword is never recognized and "x and y" fails
// with a trailing-input error. Build term.And nodes directly when a
// conjunction is required.
func Parse(src string, tab *symtab.Table, lang Language) (term.Term, error) {
	tokens := Lex(src)
	names := NewNames(tab)
	t, err := parseQuantifier(&tokens, lang, names)
	if err != nil {
		return nil, err
	}
	if !tokens.AtEnd() {
		return nil, errors.Wrapf(errUnexpected, "trailing input at %q", tokens.Peek())
	}
	return t, nil
}

func parseQuantifier(tokens *Tokens, lang Language, names Names) (term.Term, error) {
	switch tokens.Peek() {
	case "forall", "exists":
		which := tokens.Take()
		varName := tokens.Take()
		if varName == "" {
			return nil, errors.Wrap(errUnexpected, "expected a variable name after quantifier")
		}
		v := names.tab.FreshVariable(varName)
		names = names.Register(varName, v)

		if tokens.Peek() == "." {
			tokens.Take()
		}

		body, err := parseQuantifier(tokens, lang, names)
		if err != nil {
			return nil, err
		}
		if which == "forall" {
			return term.Universal{Var: v, Body: body}, nil
		}
		return term.Existential{Var: v, Body: body}, nil
	default:
		return parseInference(tokens, lang, names)
	}
}

func parseInference(tokens *Tokens, lang Language, names Names) (term.Term, error) {
	node, err := parseDisjunction(tokens, lang, names)
	if err != nil {
		return nil, err
	}

	switch tokens.Peek() {
	case "=>", "implies", "<=>", "iff":
		which := tokens.Take()
		rhs, err := parseInference(tokens, lang, names)
		if err != nil {
			return nil, err
		}
		if which == "=>" || which == "implies" {
			return term.Implies{Left: node, Right: rhs}, nil
		}
		return term.Iff{Left: node, Right: rhs}, nil
	default:
		return node, nil
	}
}

func parseDisjunction(tokens *Tokens, lang Language, names Names) (term.Term, error) {
	node, err := parseConjunction(tokens, lang, names)
	if err != nil {
		return nil, err
	}
	if tokens.Peek() == "or" {
		tokens.Take()
		rhs, err := parseDisjunction(tokens, lang, names)
		if err != nil {
			return nil, err
		}
		return term.Or{Left: node, Right: rhs}, nil
	}
	return node, nil
}

// parseConjunction checks for "or", the same token disjunction checks
// for, rather than "and". See the package BUG note.
func parseConjunction(tokens *Tokens, lang Language, names Names) (term.Term, error) {
	node, err := parseNegation(tokens, lang, names)
	if err != nil {
		return nil, err
	}
	if tokens.Peek() == "or" {
		tokens.Take()
		rhs, err := parseConjunction(tokens, lang, names)
		if err != nil {
			return nil, err
		}
		return term.Or{Left: node, Right: rhs}, nil
	}
	return node, nil
}

func parseNegation(tokens *Tokens, lang Language, names Names) (term.Term, error) {
	if tokens.Peek() == "not" {
		tokens.Take()
		body, err := parseLorPrimary(tokens, lang, names)
		if err != nil {
			return nil, err
		}
		return term.Not{Body: body}, nil
	}
	return parseLorPrimary(tokens, lang, names)
}

func parseLorPrimary(tokens *Tokens, lang Language, names Names) (term.Term, error) {
	if tokens.Peek() == "[" {
		tokens.Take()
		node, err := parseQuantifier(tokens, lang, names)
		if err != nil {
			return nil, err
		}
		if tokens.Peek() != "]" {
			return nil, errors.Wrapf(errUnexpected, "expected ] at %q", tokens.Peek())
		}
		tokens.Take()
		return node, nil
	}
	return parseRelationInfix(tokens, lang, names, 0)
}

func parseRelationInfix(tokens *Tokens, lang Language, names Names, precedence int) (term.Term, error) {
	if precedence >= len(lang.RelationInfixOrder) {
		return parsePrimaryRelation(tokens, lang, names)
	}
	left, err := parseRelationInfix(tokens, lang, names, precedence+1)
	if err != nil {
		return nil, err
	}
	if tokens.Peek() == lang.RelationInfixOrder[precedence] {
		op := tokens.Take()
		head := names.ToIndex(op)
		right, err := parseRelationInfix(tokens, lang, names, precedence)
		if err != nil {
			return nil, err
		}
		return term.NewRelation(head, term.NewArgs(left, right)), nil
	}
	return left, nil
}

// parsePrimaryRelation parses a value, then turns it into an applied
// relation if a bracketed argument list follows. With no brackets the
// bare value is returned as-is, which is how an infix functor term like
// "a + b" ends up as an operand of an infix relation like "=".
func parsePrimaryRelation(tokens *Tokens, lang Language, names Names) (term.Term, error) {
	v, err := parseValue(tokens, lang, names, 0)
	if err != nil {
		return nil, err
	}

	if tokens.Peek() != "[" {
		return v, nil
	}
	headAtom, ok := v.(term.Atom)
	if !ok {
		return nil, errors.Wrapf(errUnexpected, "relation head must be a bare symbol, got %T", v)
	}
	head := headAtom.ID
	tokens.Take()

	var args []term.Term
	for {
		v, err := parseValue(tokens, lang, names, 0)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		if tokens.Peek() == "," {
			tokens.Take()
			continue
		}
		break
	}
	if tokens.Peek() != "]" {
		return nil, errors.Wrapf(errUnexpected, "expected ] at %q", tokens.Peek())
	}
	tokens.Take()
	return term.NewRelation(head, term.NewArgs(args...)), nil
}

// parseValue parses a non-relation term for use inside an Args tuple.
// Precedence levels beyond the first are unimplemented; see the
// package BUG note.
func parseValue(tokens *Tokens, lang Language, names Names, precedence int) (term.Term, error) {
	if precedence >= len(lang.FunctorInfixOrder) {
		return parseFunctionalValue(tokens, lang, names)
	}
	if precedence >= 1 {
		return nil, errNotImplemented
	}
	left, err := parseValue(tokens, lang, names, precedence+1)
	if err != nil {
		return nil, err
	}
	if tokens.Peek() == lang.FunctorInfixOrder[precedence] {
		op := tokens.Take()
		head := names.ToIndex(op)
		right, err := parseValue(tokens, lang, names, precedence)
		if err != nil {
			return nil, err
		}
		return term.NewFunctor(head, term.NewArgs(left, right)), nil
	}
	return left, nil
}

func parseFunctionalValue(tokens *Tokens, lang Language, names Names) (term.Term, error) {
	if tokens.Peek() == "(" {
		tokens.Take()
		node, err := parseValue(tokens, lang, names, 0)
		if err != nil {
			return nil, err
		}
		if tokens.Peek() != ")" {
			return nil, errors.Wrapf(errUnexpected, "expected ) at %q", tokens.Peek())
		}
		tokens.Take()
		return node, nil
	}

	name := tokens.Take()
	if name == "" {
		return nil, errors.Wrap(errUnexpected, "expected a value")
	}
	head := names.ToIndex(name)

	if tokens.Peek() != "(" {
		return term.NewAtom(head), nil
	}
	tokens.Take()

	var args []term.Term
	for {
		v, err := parseValue(tokens, lang, names, 0)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		if tokens.Peek() == "," {
			tokens.Take()
			continue
		}
		break
	}
	if tokens.Peek() != ")" {
		return nil, errors.Wrapf(errUnexpected, "expected ) at %q", tokens.Peek())
	}
	tokens.Take()
	return term.NewFunctor(head, term.NewArgs(args...)), nil
}
