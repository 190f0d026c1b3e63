package rules

import "github.com/dnlab/dncheck/internal/formula"

func checkIEquiv(stated formula.Formula, premises []formula.Formula) *Violation {
	forward, ok := premises[0].(formula.Implies)
	if !ok {
		return &Violation{
			Message: "first reference must be an implication",
			Actual:  premises[0].String(),
		}
	}
	backward, ok := premises[1].(formula.Implies)
	if !ok {
		return &Violation{
			Message: "second reference must be an implication",
			Actual:  premises[1].String(),
		}
	}
	if !backward.Left.Equal(forward.Right) || !backward.Right.Equal(forward.Left) {
		return &Violation{
			Message:  "second reference must be the converse of the first",
			Expected: (formula.Implies{Left: forward.Right, Right: forward.Left}).String(),
			Actual:   backward.String(),
		}
	}
	want := formula.Iff{Left: forward.Left, Right: forward.Right}
	if !stated.Equal(want) {
		return &Violation{
			Message:  "conclusion must be the biconditional of the two directions",
			Expected: want.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}

func checkEEquivL(stated formula.Formula, premises []formula.Formula) *Violation {
	iff, ok := premises[0].(formula.Iff)
	if !ok {
		return &Violation{
			Message: "referenced line must be a biconditional",
			Actual:  premises[0].String(),
		}
	}
	want := formula.Implies{Left: iff.Left, Right: iff.Right}
	if !stated.Equal(want) {
		return &Violation{
			Message:  "conclusion must be the left-to-right implication",
			Expected: want.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}

func checkEEquivR(stated formula.Formula, premises []formula.Formula) *Violation {
	iff, ok := premises[0].(formula.Iff)
	if !ok {
		return &Violation{
			Message: "referenced line must be a biconditional",
			Actual:  premises[0].String(),
		}
	}
	want := formula.Implies{Left: iff.Right, Right: iff.Left}
	if !stated.Equal(want) {
		return &Violation{
			Message:  "conclusion must be the right-to-left implication",
			Expected: want.String(),
			Actual:   stated.String(),
		}
	}
	return nil
}
