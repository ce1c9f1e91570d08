package render

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mkvale/resolv/internal/clause"
	"github.com/mkvale/resolv/internal/proof"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
)

// ErrNoProof is returned by Proof when pm has no entry for the empty
// clause — pm was not produced by a successful Prove.
var ErrNoProof = errors.New("proof map has no empty-clause entry")

// Term renders a single term/formula using prefs, falling back to
// DefaultPreferences if prefs is the zero value.
func Term(t term.Term, tab *symtab.Table, prefs Preferences) string {
	if prefs.fixity == nil {
		prefs = DefaultPreferences()
	}
	var b strings.Builder
	writeTerm(&b, t, tab, prefs)
	return b.String()
}

// Clause renders every literal of c, disjoined with "∨".
func Clause(c clause.Clause, tab *symtab.Table, prefs Preferences) string {
	if prefs.fixity == nil {
		prefs = DefaultPreferences()
	}
	if c.IsEmpty() {
		return "⊥"
	}
	parts := make([]string, 0, c.Len())
	for _, l := range c.Literals() {
		var b strings.Builder
		writeTerm(&b, l, tab, prefs)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ∨ ")
}

func writeTerm(b *strings.Builder, t term.Term, tab *symtab.Table, prefs Preferences) {
	switch x := t.(type) {
	case term.Atom:
		b.WriteString(symbolName(tab, x.ID))
	case term.Functor:
		writeApplication(b, x.Head, x.Args, tab, prefs)
	case term.Relation:
		writeApplication(b, x.Head, x.Args, tab, prefs)
	case term.Not:
		b.WriteString("¬")
		writeAtomicOperand(b, x.Body, tab, prefs)
	case term.And:
		b.WriteString("(")
		writeTerm(b, x.Left, tab, prefs)
		b.WriteString(" ∧ ")
		writeTerm(b, x.Right, tab, prefs)
		b.WriteString(")")
	case term.Or:
		b.WriteString("(")
		writeTerm(b, x.Left, tab, prefs)
		b.WriteString(" ∨ ")
		writeTerm(b, x.Right, tab, prefs)
		b.WriteString(")")
	case term.Implies:
		b.WriteString("(")
		writeTerm(b, x.Left, tab, prefs)
		b.WriteString(" → ")
		writeTerm(b, x.Right, tab, prefs)
		b.WriteString(")")
	case term.Iff:
		b.WriteString("(")
		writeTerm(b, x.Left, tab, prefs)
		b.WriteString(" ↔ ")
		writeTerm(b, x.Right, tab, prefs)
		b.WriteString(")")
	case term.Universal:
		fmt.Fprintf(b, "∀%s. ", symbolName(tab, x.Var))
		writeTerm(b, x.Body, tab, prefs)
	case term.Existential:
		fmt.Fprintf(b, "∃%s. ", symbolName(tab, x.Var))
		writeTerm(b, x.Body, tab, prefs)
	default:
		b.WriteString("?")
	}
}

// writeAtomicOperand parens a connective operand of Not so the result
// is unambiguous to re-read, but leaves an already-atomic operand bare.
func writeAtomicOperand(b *strings.Builder, t term.Term, tab *symtab.Table, prefs Preferences) {
	switch t.Tag() {
	case term.TagAnd, term.TagOr, term.TagImplies, term.TagIff, term.TagUniversal, term.TagExistential:
		b.WriteString("(")
		writeTerm(b, t, tab, prefs)
		b.WriteString(")")
	default:
		writeTerm(b, t, tab, prefs)
	}
}

func writeApplication(b *strings.Builder, head int, args term.Args, tab *symtab.Table, prefs Preferences) {
	name := symbolName(tab, head)

	switch prefs.fixityOf(head) {
	case Infix:
		if args.Len() == 2 {
			writeTerm(b, args.At(0), tab, prefs)
			fmt.Fprintf(b, " %s ", name)
			writeTerm(b, args.At(1), tab, prefs)
			return
		}
	case Postfix:
		if args.Len() == 1 {
			writeTerm(b, args.At(0), tab, prefs)
			fmt.Fprintf(b, " %s", name)
			return
		}
	}

	b.WriteString(name)
	if args.Len() == 0 {
		return
	}
	b.WriteString("(")
	for i := 0; i < args.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		writeTerm(b, args.At(i), tab, prefs)
	}
	b.WriteString(")")
}

func symbolName(tab *symtab.Table, id int) string {
	if symtab.IsCanonicalVariable(id) {
		return fmt.Sprintf("v%d", -id)
	}
	if name := tab.Name(id); name != "" {
		return name
	}
	return fmt.Sprintf("_%d", id)
}

// Proof renders a complete proof map as a numbered derivation listing:
// every clause pm reaches from the empty clause, premises before the
// conclusions that use them, each line tagged with its justification
// and the line numbers of its parents.
func Proof(pm proof.Map, tab *symtab.Table, prefs Preferences) (string, error) {
	if prefs.fixity == nil {
		prefs = DefaultPreferences()
	}

	root, ok := pm[clause.Clause{}.Key()]
	if !ok {
		return "", ErrNoProof
	}

	var order []string
	visited := map[string]bool{}
	var walk func(key string)
	walk = func(key string) {
		if visited[key] {
			return
		}
		visited[key] = true
		node, ok := pm[key]
		if !ok {
			return
		}
		if !node.IsAxiom {
			walk(node.ParentA.Key())
			walk(node.ParentB.Key())
		}
		order = append(order, key)
	}
	walk(root.Clause.Key())

	lineOf := make(map[string]int, len(order))
	for i, key := range order {
		lineOf[key] = i + 1
	}

	var b strings.Builder
	for i, key := range order {
		node := pm[key]
		fmt.Fprintf(&b, "%d. %s", i+1, Clause(node.Clause, tab, prefs))
		if node.IsAxiom {
			b.WriteString("  [axiom]\n")
			continue
		}
		fmt.Fprintf(&b, "  [%s, %d, %d]\n",
			justificationText(node.Justification, tab, prefs),
			lineOf[node.ParentA.Key()], lineOf[node.ParentB.Key()])
	}
	return b.String(), nil
}

func justificationText(j proof.Justification, tab *symtab.Table, prefs Preferences) string {
	switch x := j.(type) {
	case proof.Resolution:
		return fmt.Sprintf("resolution on %s", Term(x.PositiveLiteral, tab, prefs))
	case proof.Paramodulation:
		return fmt.Sprintf("paramodulation %s -> %s", Term(x.Source, tab, prefs), Term(x.Target, tab, prefs))
	default:
		return "derived"
	}
}
