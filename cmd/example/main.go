// Command example runs a set of demonstration scenarios through the
// prover, printing each one's axioms, goal, and rendered proof (or the
// reason no proof was found) to stdout.
package main

import (
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/mkvale/resolv/engine"
	"github.com/mkvale/resolv/internal/proof"
	"github.com/mkvale/resolv/internal/surface"
	"github.com/mkvale/resolv/internal/symtab"
	"github.com/mkvale/resolv/internal/term"
	"github.com/mkvale/resolv/render"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging from the engine")
	surfaceDemo := flag.Bool("surface", false, "also run the text-syntax parser demo")
	flag.Parse()

	level := hclog.Warn
	if *verbose {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{Name: "resolv-example", Level: level})

	scenarioReassociation(logger)
	scenarioZeroAnnihilator(logger)
	scenarioTrivialContradiction(logger)
	scenarioUnreachableGoal(logger)
	scenarioDistributivity(logger)
	scenarioSkolemArity(logger)
	chainedScenario(logger)

	if *surfaceDemo {
		surfaceDemoScenario(logger)
	}
}

func header(name, description string) {
	fmt.Println("===", name, "===")
	fmt.Println(description)
}

// scenarioReassociation proves (x+(y+z)) = (z+(y+x)) from
// commutativity and associativity of +.
func scenarioReassociation(logger hclog.Logger) {
	header("reassociation", "commutativity + associativity of +")

	e := engine.New(engine.Config{Logger: logger.Named("reassociation")})
	tab := e.Table()
	plus := tab.FreshConstant("+")

	a, b, c := tab.FreshVariable("a"), tab.FreshVariable("b"), tab.FreshVariable("c")
	commutes := quantifyAll([]int{a, b}, eq(
		funcOf(plus, term.NewAtom(a), term.NewAtom(b)),
		funcOf(plus, term.NewAtom(b), term.NewAtom(a)),
	))
	associates := quantifyAll([]int{a, b, c}, eq(
		funcOf(plus, term.NewAtom(a), funcOf(plus, term.NewAtom(b), term.NewAtom(c))),
		funcOf(plus, funcOf(plus, term.NewAtom(a), term.NewAtom(b)), term.NewAtom(c)),
	))

	x, y, z := tab.FreshVariable("x"), tab.FreshVariable("y"), tab.FreshVariable("z")
	goal := quantifyAll([]int{x, y, z}, eq(
		funcOf(plus, term.NewAtom(x), funcOf(plus, term.NewAtom(y), term.NewAtom(z))),
		funcOf(plus, term.NewAtom(z), funcOf(plus, term.NewAtom(y), term.NewAtom(x))),
	))

	runProof(e, []term.Term{commutes, associates}, goal)
}

// scenarioZeroAnnihilator proves x*0 = 0 from a full
// ring-without-negation axiom set.
func scenarioZeroAnnihilator(logger hclog.Logger) {
	header("zero-annihilator", "zero annihilator for *")

	e := engine.New(engine.Config{Logger: logger.Named("zero-annihilator")})
	tab := e.Table()
	plus := tab.FreshConstant("+")
	times := tab.FreshConstant("*")
	zero := term.NewAtom(tab.FreshConstant("0"))

	a, b, c := tab.FreshVariable("a"), tab.FreshVariable("b"), tab.FreshVariable("c")
	av, bv, cv := term.NewAtom(a), term.NewAtom(b), term.NewAtom(c)

	plusCommutes := quantifyAll([]int{a, b}, eq(funcOf(plus, av, bv), funcOf(plus, bv, av)))
	plusAssociates := quantifyAll([]int{a, b, c}, eq(
		funcOf(plus, av, funcOf(plus, bv, cv)),
		funcOf(plus, funcOf(plus, av, bv), cv),
	))
	cancellation := quantifyAll([]int{a, b, c}, term.Implies{
		Left:  eq(funcOf(plus, av, bv), funcOf(plus, av, cv)),
		Right: eq(bv, cv),
	})
	timesCommutes := quantifyAll([]int{a, b}, eq(funcOf(times, av, bv), funcOf(times, bv, av)))
	timesAssociates := quantifyAll([]int{a, b, c}, eq(
		funcOf(times, av, funcOf(times, bv, cv)),
		funcOf(times, funcOf(times, av, bv), cv),
	))
	distributes := quantifyAll([]int{a, b, c}, eq(
		funcOf(times, av, funcOf(plus, bv, cv)),
		funcOf(plus, funcOf(times, av, bv), funcOf(times, av, cv)),
	))
	zeroIdentity := quantifyAll([]int{a}, eq(funcOf(plus, av, zero), av))

	x := tab.FreshVariable("x")
	goal := quantifyAll([]int{x}, eq(funcOf(times, term.NewAtom(x), zero), zero))

	runProof(e, []term.Term{
		plusCommutes, plusAssociates, cancellation,
		timesCommutes, timesAssociates, distributes, zeroIdentity,
	}, goal)
}

// scenarioTrivialContradiction is the trivial two-axiom contradiction
// p(a), ¬p(a).
func scenarioTrivialContradiction(logger hclog.Logger) {
	header("trivial-contradiction", "trivial contradiction p(a), not p(a)")

	e := engine.New(engine.Config{Logger: logger.Named("trivial-contradiction")})
	tab := e.Table()
	p := tab.FreshConstant("p")
	a := term.NewAtom(tab.FreshConstant("a"))

	axiom1 := term.NewRelation(p, term.NewArgs(a))
	axiom2 := term.Not{Body: term.NewRelation(p, term.NewArgs(a))}

	// Prove negates its goal internally, so proving Not(axiom2) puts
	// axiom2 itself (¬p(a)) back into the clause set alongside axiom1.
	pm, ok, err := e.Prove([]term.Term{axiom1}, term.Not{Body: axiom2})
	report(tab, pm, ok, err)
}

// scenarioUnreachableGoal shows a goal that does not follow: no clause
// can be derived, so the frontier runs dry and no proof is reported.
func scenarioUnreachableGoal(logger hclog.Logger) {
	header("unreachable-goal", "unreachable goal within budget")

	e := engine.New(engine.Config{Logger: logger.Named("unreachable-goal"), Budget: 50})
	tab := e.Table()
	p := tab.FreshConstant("p")
	q := tab.FreshConstant("q")
	a := term.NewAtom(tab.FreshConstant("a"))

	axiom := term.NewRelation(p, term.NewArgs(a))
	goal := term.NewRelation(q, term.NewArgs(a))

	pm, ok, err := e.Prove([]term.Term{axiom}, goal)
	report(tab, pm, ok, err)
}

// scenarioDistributivity exercises CNF distribution directly: (A∧B)∨C
// should produce the two clauses {A,C} and {B,C}.
func scenarioDistributivity(logger hclog.Logger) {
	header("distributivity", "CNF distributivity")

	e := engine.New(engine.Config{Logger: logger.Named("distributivity")})
	tab := e.Table()
	ra := term.NewRelation(tab.FreshConstant("A"), term.NewArgs())
	rb := term.NewRelation(tab.FreshConstant("B"), term.NewArgs())
	rc := term.NewRelation(tab.FreshConstant("C"), term.NewArgs())

	formula := term.Or{Left: term.And{Left: ra, Right: rb}, Right: rc}
	clauses, err := e.CNF(formula)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, c := range clauses {
		fmt.Println(" ", render.Clause(c, tab, render.DefaultPreferences()))
	}
	fmt.Println()
}

// scenarioSkolemArity shows Skolemization producing a unary Skolem
// function of the enclosing universal.
func scenarioSkolemArity(logger hclog.Logger) {
	header("skolem-arity", "Skolem arity")

	e := engine.New(engine.Config{Logger: logger.Named("skolem-arity")})
	tab := e.Table()
	r := tab.FreshConstant("R")
	x := tab.FreshVariable("x")
	y := tab.FreshVariable("y")

	formula := term.Universal{Var: x, Body: term.Existential{Var: y, Body: term.NewRelation(
		r, term.NewArgs(term.NewAtom(x), term.NewAtom(y)),
	)}}

	clauses, err := e.CNF(formula)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, c := range clauses {
		fmt.Println(" ", render.Clause(c, tab, render.DefaultPreferences()))
	}
	fmt.Println()
}

// chainedScenario proves a theorem, then folds it into the axiom set
// before proving the next one, so later proofs can lean on earlier
// ones instead of re-deriving them.
func chainedScenario(logger hclog.Logger) {
	header("chained", "fold each proven theorem into the next proof's axioms")

	e := engine.New(engine.Config{Logger: logger.Named("chained")})
	tab := e.Table()
	plus := tab.FreshConstant("+")

	a, b, c := tab.FreshVariable("a"), tab.FreshVariable("b"), tab.FreshVariable("c")
	av, bv, cv := term.NewAtom(a), term.NewAtom(b), term.NewAtom(c)

	axioms := []term.Term{
		quantifyAll([]int{a, b}, eq(funcOf(plus, av, bv), funcOf(plus, bv, av))),
		quantifyAll([]int{a, b, c}, eq(
			funcOf(plus, av, funcOf(plus, bv, cv)),
			funcOf(plus, funcOf(plus, av, bv), cv),
		)),
	}

	x, y, z := tab.FreshVariable("x"), tab.FreshVariable("y"), tab.FreshVariable("z")
	xv, yv, zv := term.NewAtom(x), term.NewAtom(y), term.NewAtom(z)

	theorems := []term.Term{
		quantifyAll([]int{x, y, z}, eq(
			funcOf(plus, xv, funcOf(plus, yv, zv)),
			funcOf(plus, zv, funcOf(plus, yv, xv)),
		)),
	}

	for _, theorem := range theorems {
		fmt.Println("proving:", render.Term(theorem, tab, render.DefaultPreferences()))
		pm, ok, err := e.Prove(axioms, theorem)
		report(tab, pm, ok, err)
		if ok {
			axioms = append(axioms, theorem)
		}
	}
}

// surfaceDemoScenario parses the reassociation axioms and goal from
// text syntax and proves the same theorem. The parser cannot express
// conjunction (its grammar never recognizes the "and" keyword) but
// equalities and quantifiers are enough for this scenario.
func surfaceDemoScenario(logger hclog.Logger) {
	header("surface", "text-syntax parser (intentionally incomplete)")

	e := engine.New(engine.Config{Logger: logger.Named("surface")})
	tab := e.Table()
	lang := surface.DefaultLanguage()

	sources := []string{
		"forall a . forall b . a + b = b + a",
		"forall a . forall b . forall c . a + (b + c) = (a + b) + c",
	}
	goalSrc := "forall x . forall y . forall z . x + (y + z) = z + (y + x)"

	var axioms []term.Term
	for _, src := range sources {
		f, err := surface.Parse(src, tab, lang)
		if err != nil {
			fmt.Println("parse error:", err)
			fmt.Println()
			return
		}
		axioms = append(axioms, f)
	}
	goal, err := surface.Parse(goalSrc, tab, lang)
	if err != nil {
		fmt.Println("parse error:", err)
		fmt.Println()
		return
	}

	runProof(e, axioms, goal)
}

func runProof(e *engine.Engine, axioms []term.Term, goal term.Term) {
	pm, ok, err := e.Prove(axioms, goal)
	report(e.Table(), pm, ok, err)
}

func report(tab *symtab.Table, pm proof.Map, ok bool, err error) {
	if err != nil {
		fmt.Println("error:", err)
		fmt.Println()
		return
	}
	if !ok {
		fmt.Println("no proof found within budget")
		fmt.Println()
		return
	}
	text, err := render.Proof(pm, tab, render.DefaultPreferences())
	if err != nil {
		fmt.Println("error rendering proof:", err)
		fmt.Println()
		return
	}
	fmt.Print(text)
	fmt.Println()
}

func quantifyAll(vars []int, body term.Term) term.Term {
	result := body
	for i := len(vars) - 1; i >= 0; i-- {
		result = term.Universal{Var: vars[i], Body: result}
	}
	return result
}

func eq(l, r term.Term) term.Term {
	return term.NewRelation(symtab.EqualityID, term.NewArgs(l, r))
}

func funcOf(head int, args ...term.Term) term.Term {
	return term.NewFunctor(head, term.NewArgs(args...))
}
