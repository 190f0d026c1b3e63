package checker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnlab/dncheck/internal/types"
)

func check(src string) types.Verdict {
	return Check("proof.dn", src, Options{})
}

func requireOneDiagnostic(t *testing.T, v types.Verdict, kind types.Kind, index int) types.Diagnostic {
	t.Helper()
	require.False(t, v.Valid)
	require.Len(t, v.Diagnostics, 1)
	d := v.Diagnostics[0]
	assert.Equal(t, kind, d.Kind)
	assert.Equal(t, index, d.Index)
	return d
}

func TestAcceptsIdentityProof(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;Donc a=>a;`)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Diagnostics)
	assert.Equal(t, 2, v.Records)
}

func TestAcceptsModusPonensProof(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;Supposons a=>b;
3;1,2;b;EImpl:1,2
4;1,2,3;Donc (a=>b)=>b;
5;1,4;Donc a=>(a=>b)=>b;`)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Diagnostics)
	assert.Equal(t, 5, v.Records)
}

func TestCheckIsDeterministic(t *testing.T) {
	t.Parallel()

	src := `1;;Supposons a;
2;1;Supposons a=>b;
3;1,2;b;EImpl:1,2
4;1,2,3;Donc (a=>b)=>b;
5;1,4;Donc a=>(a=>b)=>b;`
	first := check(src)
	second := check(src)

	require.True(t, first.Valid)
	assert.Empty(t, first.Diagnostics)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("verdicts differ between runs (-first +second):\n%s", diff)
	}
}

func TestRejectsDanglingConclusion(t *testing.T) {
	t.Parallel()

	v := check(`1;;Donc a=>a;`)
	d := requireOneDiagnostic(t, v, types.ContextMismatch, 1)
	assert.Contains(t, d.Message, "nothing to discharge")
	assert.Equal(t, 4, d.Start.Column, "diagnostic points at the statement field")
}

func TestConclusionContextIsTheSetBeforeDischarge(t *testing.T) {
	t.Parallel()

	// The context of a Donc cites the lines visible inside the scope being
	// closed, so declaring the post-discharge set is a mismatch.
	v := check(`1;;Supposons a;
2;;Donc a=>a;`)
	d := requireOneDiagnostic(t, v, types.ContextMismatch, 2)
	assert.Equal(t, "1", d.Expected)
	assert.Equal(t, "(empty)", d.Actual)
}

func TestRejectsDischargeOfWrongFormula(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;Donc a=>b;`)
	d := requireOneDiagnostic(t, v, types.RuleViolation, 2)
	assert.Equal(t, "a => a", d.Expected)
	assert.Equal(t, "a => b", d.Actual)
}

func TestConclusionTargetsThePrecedingLine(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;a ^ a;IAnd:1,1
3;1,2;Donc a=>a;`)
	d := requireOneDiagnostic(t, v, types.RuleViolation, 3)
	assert.Equal(t, "a => a ^ a", d.Expected)
	assert.Equal(t, "a => a", d.Actual)
}

func TestHypothesisContextExcludesItself(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;;Supposons b;
3;1,2;Donc b=>b;
4;1,3;Donc a=>b=>b;`)
	d := requireOneDiagnostic(t, v, types.ContextMismatch, 2)
	assert.Equal(t, "1", d.Expected)
	assert.Equal(t, "(empty)", d.Actual)
	assert.Equal(t, 4, v.Records, "a mismatched hypothesis still opens its scope")
}

func TestPlainContextMismatchKeepsChecking(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;;a;Rwrt:1
3;1,2;Donc a=>a;`)
	requireOneDiagnostic(t, v, types.ContextMismatch, 2)
}

func TestInvisibleReferenceIsContextMismatch(t *testing.T) {
	t.Parallel()

	// Line 3 sits inside the sub-proof discharged at line 4: citing it from
	// line 5 must fail even though the index parses fine.
	v := check(`1;;Supposons a;
2;1;Supposons b;
3;1,2;a ^ b;IAnd:1,2
4;1,2,3;Donc b=>a ^ b;
5;1,4;b;EAndR:3
6;1,4,5;Donc a=>b;`)
	d := requireOneDiagnostic(t, v, types.ContextMismatch, 5)
	assert.Equal(t, "EAndR", d.Rule)
	assert.Contains(t, d.Message, "line 3, which is not visible")
}

func TestIncompleteProof(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;a;Rwrt:1`)
	d := requireOneDiagnostic(t, v, types.IncompleteProof, 1)
	assert.Equal(t, 1, d.Start.Line, "diagnostic points at the undischarged hypothesis")
}

func TestParseDefectsSuspendSemantics(t *testing.T) {
	t.Parallel()

	// The open scope must not pile an IncompleteProof on top of the index
	// defect: semantic checking needs a clean arena.
	v := check(`1;;Supposons a;
3;1;Donc a=>a;`)
	d := requireOneDiagnostic(t, v, types.InvalidIndex, 3)
	assert.Contains(t, d.Message, "expected index 2")
	assert.Equal(t, 1, v.Records)
}

func TestEmptyJustificationOnPlainStatement(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;a;
3;1,2;Donc a=>a;`)
	d := requireOneDiagnostic(t, v, types.UnknownJustification, 2)
	assert.Contains(t, d.Message, "needs a justification")
}

func TestUnknownRuleCode(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;a;ModusPonens:1
3;1,2;Donc a=>a;`)
	d := requireOneDiagnostic(t, v, types.UnknownJustification, 2)
	assert.Contains(t, d.Message, `unknown rule code "ModusPonens"`)
}

func TestArityMismatch(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;a ^ a;IAnd:1
3;1,2;Donc a=>a ^ a;`)
	d := requireOneDiagnostic(t, v, types.RuleViolation, 2)
	assert.Equal(t, "IAnd", d.Rule)
	assert.Contains(t, d.Message, "want 2, got 1")
}

func TestMarkerPolarity(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;IImpl
2;1;a;Hyp
3;1,2;Donc a=>a;IImpl`)
	require.False(t, v.Valid)
	require.Len(t, v.Diagnostics, 2)
	assert.Equal(t, types.RuleViolation, v.Diagnostics[0].Kind)
	assert.Contains(t, v.Diagnostics[0].Message, "IImpl cannot justify a hypothesis statement")
	assert.Equal(t, types.RuleViolation, v.Diagnostics[1].Kind)
	assert.Contains(t, v.Diagnostics[1].Message, "Hyp cannot justify a plain statement")
}

func TestMarkerTakesNoReferences(t *testing.T) {
	t.Parallel()

	v := check(`1;;Supposons a;
2;1;Supposons b;Hyp:1
3;1,2;Donc b=>b;
4;1,3;Donc a=>b=>b;`)
	d := requireOneDiagnostic(t, v, types.RuleViolation, 2)
	assert.Contains(t, d.Message, "want 0, got 1")
}

func TestDisabledRuleCode(t *testing.T) {
	t.Parallel()

	src := `1;;Supposons --p;
2;1;p;Raa:1
3;1,2;Donc --p=>p;`

	v := Check("proof.dn", src, Options{})
	require.True(t, v.Valid, "Raa is part of the default table")

	v = Check("proof.dn", src, Options{Disabled: map[string]bool{"Raa": true}})
	d := requireOneDiagnostic(t, v, types.UnknownJustification, 2)
	assert.Equal(t, "Raa", d.Rule)
	assert.Contains(t, d.Message, "switched off by configuration")
}

func TestDepthLimitFlowsThroughOptions(t *testing.T) {
	t.Parallel()

	v := Check("proof.dn", `1;;Supposons ((((a))));`, Options{MaxDepth: 3})
	require.Len(t, v.Diagnostics, 1)
	assert.Equal(t, types.DepthExceeded, v.Diagnostics[0].Kind)
}
