package rules

import "github.com/dnlab/dncheck/internal/formula"

// checkEImpl is modus ponens. The antecedent line is cited first, the
// implication second.
func checkEImpl(stated formula.Formula, premises []formula.Formula) *Violation {
	imp, ok := premises[1].(formula.Implies)
	if !ok {
		return &Violation{
			Message: "second reference must be an implication",
			Actual:  premises[1].String(),
		}
	}
	if !premises[0].Equal(imp.Left) {
		return &Violation{
			Message:  "first reference must match the implication's antecedent",
			Expected: imp.Left.String(),
			Actual:   premises[0].String(),
		}
	}
	if !stated.Equal(imp.Right) {
		return &Violation{
			Message:  "conclusion must be the implication's consequent",
			Expected: imp.Right.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}
