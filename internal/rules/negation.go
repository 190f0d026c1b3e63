package rules

import "github.com/dnlab/dncheck/internal/formula"

// checkEfq is ex falso quodlibet: a visible absurdity justifies any formula.
func checkEfq(stated formula.Formula, premises []formula.Formula) *Violation {
	if _, ok := premises[0].(formula.Bottom); !ok {
		return &Violation{
			Message: "referenced line must be the absurdity _",
			Actual:  premises[0].String(),
		}
	}
	return nil
}

// checkRaa is double-negation elimination.
func checkRaa(stated formula.Formula, premises []formula.Formula) *Violation {
	outer, ok := premises[0].(formula.Not)
	if !ok {
		return &Violation{
			Message: "referenced line must be a double negation",
			Actual:  premises[0].String(),
		}
	}
	inner, ok := outer.Operand.(formula.Not)
	if !ok {
		return &Violation{
			Message: "referenced line must be a double negation",
			Actual:  premises[0].String(),
		}
	}
	if !stated.Equal(inner.Operand) {
		return &Violation{
			Message:  "conclusion must drop exactly two negations from the referenced line",
			Expected: inner.Operand.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}
