package rules

import "github.com/dnlab/dncheck/internal/formula"

func checkRwrt(stated formula.Formula, premises []formula.Formula) *Violation {
	if !stated.Equal(premises[0]) {
		return &Violation{
			Message:  "statement must restate the referenced line unchanged",
			Expected: premises[0].String(),
			Actual:   stated.String(),
		}
	}
	return nil
}
