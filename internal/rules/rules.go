// Package rules holds the closed table of inference rules for propositional
// natural deduction. The table is fixed at compile time: checking consults
// it by rule code, and nothing can register codes at run time.
package rules

import (
	"github.com/dnlab/dncheck/internal/formula"
	"github.com/dnlab/dncheck/internal/proof"
)

// Violation describes why applying a rule failed. Expected and Actual carry
// rendered formulas when the failure is a mismatch; both may be empty when
// a premise has the wrong shape.
type Violation struct {
	Message  string
	Expected string
	Actual   string
}

// CheckFunc validates one rule application. stated is the formula the record
// claims; premises holds the formulas of the referenced lines, in reference
// order. The arity is checked by the caller before the call.
type CheckFunc func(stated formula.Formula, premises []formula.Formula) *Violation

// Rule is one entry of the inference-rule table.
type Rule struct {
	Code     string
	Arity    int
	Polarity proof.Polarity // the only statement polarity the code may annotate
	Summary  string
	Check    CheckFunc // nil for the marker codes Hyp and IImpl
}

// table order is the presentation order of `dncheck rules`.
var table = []Rule{
	{Code: "Hyp", Arity: 0, Polarity: proof.Hypothesis, Summary: "marks a hypothesis line (optional)"},
	{Code: "IImpl", Arity: 0, Polarity: proof.Conclusion, Summary: "marks a discharge line (optional)"},
	{Code: "Rwrt", Arity: 1, Polarity: proof.Plain, Summary: "restates a visible line unchanged", Check: checkRwrt},
	{Code: "IAnd", Arity: 2, Polarity: proof.Plain, Summary: "from A and B conclude A ^ B", Check: checkIAnd},
	{Code: "EAndL", Arity: 1, Polarity: proof.Plain, Summary: "from A ^ B conclude A", Check: checkEAndL},
	{Code: "EAndR", Arity: 1, Polarity: proof.Plain, Summary: "from A ^ B conclude B", Check: checkEAndR},
	{Code: "IOrL", Arity: 1, Polarity: proof.Plain, Summary: "from A conclude A v B", Check: checkIOrL},
	{Code: "IOrR", Arity: 1, Polarity: proof.Plain, Summary: "from B conclude A v B", Check: checkIOrR},
	{Code: "EOr", Arity: 3, Polarity: proof.Plain, Summary: "from A => C, B => C and A v B conclude C", Check: checkEOr},
	{Code: "EImpl", Arity: 2, Polarity: proof.Plain, Summary: "from A and A => B conclude B", Check: checkEImpl},
	{Code: "IEquiv", Arity: 2, Polarity: proof.Plain, Summary: "from A => B and B => A conclude A <=> B", Check: checkIEquiv},
	{Code: "EEquivL", Arity: 1, Polarity: proof.Plain, Summary: "from A <=> B conclude A => B", Check: checkEEquivL},
	{Code: "EEquivR", Arity: 1, Polarity: proof.Plain, Summary: "from A <=> B conclude B => A", Check: checkEEquivR},
	{Code: "Efq", Arity: 1, Polarity: proof.Plain, Summary: "from _ conclude anything", Check: checkEfq},
	{Code: "Raa", Arity: 1, Polarity: proof.Plain, Summary: "from --A conclude A", Check: checkRaa},
}

var index = make(map[string]Rule, len(table))

func init() {
	for _, r := range table {
		index[r.Code] = r
	}
}

// Lookup returns the rule registered under code.
func Lookup(code string) (Rule, bool) {
	r, ok := index[code]
	return r, ok
}

// All returns the rule table in presentation order. The returned slice is
// shared; callers must not modify it.
func All() []Rule {
	return table
}
