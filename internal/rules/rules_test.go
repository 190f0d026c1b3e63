package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnlab/dncheck/internal/formula"
	"github.com/dnlab/dncheck/internal/proof"
)

func mustParse(t *testing.T, src string) formula.Formula {
	t.Helper()
	f, err := formula.Parse(src)
	require.NoError(t, err)
	return f
}

func TestRuleApplications(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		stated   string
		premises []string
		wantMsg  string // empty means the application must succeed
	}{
		{name: "Rwrt restates", code: "Rwrt", stated: "a ^ b", premises: []string{"a ^ b"}},
		{name: "Rwrt rejects change", code: "Rwrt", stated: "a", premises: []string{"b"}, wantMsg: "restate"},
		{name: "Rwrt rejects simplification", code: "Rwrt", stated: "a", premises: []string{"--a"}, wantMsg: "restate"},

		{name: "IAnd combines", code: "IAnd", stated: "a ^ b", premises: []string{"a", "b"}},
		{name: "IAnd keeps reference order", code: "IAnd", stated: "b ^ a", premises: []string{"a", "b"}, wantMsg: "conjunction of the referenced lines"},
		{name: "EAndL projects left", code: "EAndL", stated: "a", premises: []string{"a ^ b"}},
		{name: "EAndL rejects right conjunct", code: "EAndL", stated: "b", premises: []string{"a ^ b"}, wantMsg: "left conjunct"},
		{name: "EAndL needs a conjunction", code: "EAndL", stated: "a", premises: []string{"a v b"}, wantMsg: "must be a conjunction"},
		{name: "EAndR projects right", code: "EAndR", stated: "b", premises: []string{"a ^ b"}},

		{name: "IOrL widens to the right", code: "IOrL", stated: "a v c", premises: []string{"a"}},
		{name: "IOrL rejects swapped disjuncts", code: "IOrL", stated: "c v a", premises: []string{"a"}, wantMsg: "left disjunct"},
		{name: "IOrL needs a disjunction", code: "IOrL", stated: "a", premises: []string{"a"}, wantMsg: "must be a disjunction"},
		{name: "IOrR widens to the left", code: "IOrR", stated: "c v a", premises: []string{"a"}},

		{name: "EOr case analysis", code: "EOr", stated: "c", premises: []string{"a => c", "b => c", "a v b"}},
		{name: "EOr needs one consequent", code: "EOr", stated: "c", premises: []string{"a => c", "b => d", "a v b"}, wantMsg: "share one consequent"},
		{name: "EOr checks the disjunction", code: "EOr", stated: "c", premises: []string{"a => c", "b => c", "a v d"}, wantMsg: "right disjunct"},
		{name: "EOr premise shape", code: "EOr", stated: "c", premises: []string{"a", "b => c", "a v b"}, wantMsg: "first reference must be an implication"},
		{name: "EOr conclusion", code: "EOr", stated: "d", premises: []string{"a => c", "b => c", "a v b"}, wantMsg: "shared consequent"},

		{name: "EImpl modus ponens", code: "EImpl", stated: "b", premises: []string{"a", "a => b"}},
		{name: "EImpl antecedent mismatch", code: "EImpl", stated: "b", premises: []string{"c", "a => b"}, wantMsg: "antecedent"},
		{name: "EImpl needs an implication", code: "EImpl", stated: "b", premises: []string{"a", "b"}, wantMsg: "second reference must be an implication"},
		{name: "EImpl wrong conclusion", code: "EImpl", stated: "c", premises: []string{"a", "a => b"}, wantMsg: "consequent"},
		{name: "EImpl on nested implication", code: "EImpl", stated: "b => c", premises: []string{"a", "a => b => c"}},

		{name: "IEquiv joins directions", code: "IEquiv", stated: "a <=> b", premises: []string{"a => b", "b => a"}},
		{name: "IEquiv needs the converse", code: "IEquiv", stated: "a <=> b", premises: []string{"a => b", "a => b"}, wantMsg: "converse"},
		{name: "IEquiv is ordered", code: "IEquiv", stated: "b <=> a", premises: []string{"a => b", "b => a"}, wantMsg: "biconditional of the two directions"},
		{name: "EEquivL extracts forward", code: "EEquivL", stated: "a => b", premises: []string{"a <=> b"}},
		{name: "EEquivL rejects backward", code: "EEquivL", stated: "b => a", premises: []string{"a <=> b"}, wantMsg: "left-to-right"},
		{name: "EEquivR extracts backward", code: "EEquivR", stated: "b => a", premises: []string{"a <=> b"}},
		{name: "EEquiv needs a biconditional", code: "EEquivL", stated: "a => b", premises: []string{"a => b"}, wantMsg: "biconditional"},

		{name: "Efq proves anything", code: "Efq", stated: "z ^ -z", premises: []string{"_"}},
		{name: "Efq needs the absurdity", code: "Efq", stated: "a", premises: []string{"b"}, wantMsg: "absurdity"},

		{name: "Raa removes two negations", code: "Raa", stated: "a", premises: []string{"--a"}},
		{name: "Raa keeps remaining negations", code: "Raa", stated: "-a", premises: []string{"---a"}},
		{name: "Raa needs a double negation", code: "Raa", stated: "a", premises: []string{"-a"}, wantMsg: "double negation"},
		{name: "Raa exact operand", code: "Raa", stated: "b", premises: []string{"--a"}, wantMsg: "drop exactly two negations"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule, ok := Lookup(tc.code)
			require.True(t, ok, "unknown code %q", tc.code)
			require.Len(t, tc.premises, rule.Arity, "test premises must match rule arity")

			premises := make([]formula.Formula, len(tc.premises))
			for i, p := range tc.premises {
				premises[i] = mustParse(t, p)
			}

			violation := rule.Check(mustParse(t, tc.stated), premises)
			if tc.wantMsg == "" {
				assert.Nil(t, violation)
				return
			}
			require.NotNil(t, violation, "expected a violation")
			assert.Contains(t, violation.Message, tc.wantMsg)
		})
	}
}

func TestViolationCarriesRenderedFormulas(t *testing.T) {
	t.Parallel()

	rule, ok := Lookup("IAnd")
	require.True(t, ok)

	violation := rule.Check(mustParse(t, "b ^ a"), []formula.Formula{mustParse(t, "a"), mustParse(t, "b")})
	require.NotNil(t, violation)
	assert.Equal(t, "a ^ b", violation.Expected)
	assert.Equal(t, "b ^ a", violation.Actual)
}

func TestMarkerCodes(t *testing.T) {
	t.Parallel()

	hyp, ok := Lookup("Hyp")
	require.True(t, ok)
	assert.Nil(t, hyp.Check)
	assert.Equal(t, proof.Hypothesis, hyp.Polarity)
	assert.Equal(t, 0, hyp.Arity)

	iimpl, ok := Lookup("IImpl")
	require.True(t, ok)
	assert.Nil(t, iimpl.Check)
	assert.Equal(t, proof.Conclusion, iimpl.Polarity)
}

func TestTableIsClosed(t *testing.T) {
	t.Parallel()

	_, ok := Lookup("ModusPonens")
	assert.False(t, ok)
	_, ok = Lookup("")
	assert.False(t, ok)

	all := All()
	assert.Len(t, all, 15)

	seen := make(map[string]bool, len(all))
	for _, r := range all {
		assert.False(t, seen[r.Code], "duplicate code %s", r.Code)
		seen[r.Code] = true
		if r.Polarity == proof.Plain {
			assert.NotNil(t, r.Check, "%s needs a check function", r.Code)
		}
	}
}
