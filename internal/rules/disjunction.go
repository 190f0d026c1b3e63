package rules

import "github.com/dnlab/dncheck/internal/formula"

// checkIOrL accepts A v X from a reference stating A; X is unconstrained.
func checkIOrL(stated formula.Formula, premises []formula.Formula) *Violation {
	or, ok := stated.(formula.Or)
	if !ok {
		return &Violation{
			Message: "conclusion must be a disjunction",
			Actual:  stated.String(),
		}
	}
	if !or.Left.Equal(premises[0]) {
		return &Violation{
			Message:  "left disjunct must restate the referenced line",
			Expected: premises[0].String(),
			Actual:   or.Left.String(),
		}
	}
	return nil
}

// checkIOrR accepts X v B from a reference stating B; X is unconstrained.
func checkIOrR(stated formula.Formula, premises []formula.Formula) *Violation {
	or, ok := stated.(formula.Or)
	if !ok {
		return &Violation{
			Message: "conclusion must be a disjunction",
			Actual:  stated.String(),
		}
	}
	if !or.Right.Equal(premises[0]) {
		return &Violation{
			Message:  "right disjunct must restate the referenced line",
			Expected: premises[0].String(),
			Actual:   or.Right.String(),
		}
	}
	return nil
}

// checkEOr is case analysis: references are A => C, B => C and A v B, in
// that order, and the conclusion is C.
func checkEOr(stated formula.Formula, premises []formula.Formula) *Violation {
	first, ok := premises[0].(formula.Implies)
	if !ok {
		return &Violation{
			Message: "first reference must be an implication",
			Actual:  premises[0].String(),
		}
	}
	second, ok := premises[1].(formula.Implies)
	if !ok {
		return &Violation{
			Message: "second reference must be an implication",
			Actual:  premises[1].String(),
		}
	}
	disj, ok := premises[2].(formula.Or)
	if !ok {
		return &Violation{
			Message: "third reference must be a disjunction",
			Actual:  premises[2].String(),
		}
	}
	if !first.Right.Equal(second.Right) {
		return &Violation{
			Message:  "both implications must share one consequent",
			Expected: first.Right.String(),
			Actual:   second.Right.String(),
		}
	}
	if !disj.Left.Equal(first.Left) {
		return &Violation{
			Message:  "left disjunct must match the first implication's antecedent",
			Expected: first.Left.String(),
			Actual:   disj.Left.String(),
		}
	}
	if !disj.Right.Equal(second.Left) {
		return &Violation{
			Message:  "right disjunct must match the second implication's antecedent",
			Expected: second.Left.String(),
			Actual:   disj.Right.String(),
		}
	}
	if !stated.Equal(first.Right) {
		return &Violation{
			Message:  "conclusion must be the shared consequent",
			Expected: first.Right.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}
