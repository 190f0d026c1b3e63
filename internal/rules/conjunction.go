package rules

import "github.com/dnlab/dncheck/internal/formula"

func checkIAnd(stated formula.Formula, premises []formula.Formula) *Violation {
	want := formula.And{Left: premises[0], Right: premises[1]}
	if !stated.Equal(want) {
		return &Violation{
			Message:  "conclusion must be the conjunction of the referenced lines",
			Expected: want.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}

func checkEAndL(stated formula.Formula, premises []formula.Formula) *Violation {
	and, ok := premises[0].(formula.And)
	if !ok {
		return &Violation{
			Message: "referenced line must be a conjunction",
			Actual:  premises[0].String(),
		}
	}
	if !stated.Equal(and.Left) {
		return &Violation{
			Message:  "conclusion must be the left conjunct of the referenced line",
			Expected: and.Left.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}

func checkEAndR(stated formula.Formula, premises []formula.Formula) *Violation {
	and, ok := premises[0].(formula.And)
	if !ok {
		return &Violation{
			Message: "referenced line must be a conjunction",
			Actual:  premises[0].String(),
		}
	}
	if !stated.Equal(and.Right) {
		return &Violation{
			Message:  "conclusion must be the right conjunct of the referenced line",
			Expected: and.Right.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}
