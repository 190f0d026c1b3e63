package dncheck

import "github.com/dnlab/dncheck/internal/rules"

// Rule is one entry of the inference-rule table.
type Rule = rules.Rule

// Rules returns the rule table in presentation order.
func Rules() []Rule {
	return rules.All()
}
