// Package checker runs the semantic pass over a parsed proof: it tracks
// sub-proof scopes, compares declared contexts against the visible set,
// and applies the inference rules record by record. Like parsing, the
// pass never returns a Go error; every defect becomes a diagnostic.
package checker

import (
	"fmt"

	"github.com/dnlab/dncheck/internal/formula"
	"github.com/dnlab/dncheck/internal/proof"
	"github.com/dnlab/dncheck/internal/rules"
	"github.com/dnlab/dncheck/internal/types"
)

// Options tunes one checking pass.
type Options struct {
	// MaxDepth bounds formula nesting during parsing. Values <= 0 select
	// formula.DefaultMaxDepth.
	MaxDepth int
	// Disabled holds rule codes switched off by configuration. Citing a
	// disabled code is an UnknownJustification.
	Disabled map[string]bool
}

// Check parses and checks one proof source. Parse diagnostics suspend the
// semantic pass: scope and rule checking over an arena with holes would
// only produce cascade noise, so the verdict then carries the parse
// diagnostics alone. Semantic diagnostics never stop the pass.
func Check(filename, src string, opts Options) types.Verdict {
	prf, diags := proof.Parse(filename, src, opts.MaxDepth)
	if len(diags) > 0 {
		return types.Verdict{Records: prf.Len(), Diagnostics: diags}
	}

	c := &checker{proof: prf, scopes: newTracker(), disabled: opts.Disabled}
	diags = c.run()
	return types.Verdict{
		Valid:       len(diags) == 0,
		Records:     prf.Len(),
		Diagnostics: diags,
	}
}

// checker holds the state of one pass. It is built per invocation and
// discarded with it, so independent proofs check concurrently without
// coordination.
type checker struct {
	proof    *proof.Proof
	scopes   *tracker
	disabled map[string]bool
	diags    []types.Diagnostic
}

func (c *checker) run() []types.Diagnostic {
	for i := range c.proof.Records {
		rec := &c.proof.Records[i]
		switch rec.Statement.Polarity {
		case proof.Hypothesis:
			c.hypothesis(rec)
		case proof.Conclusion:
			c.conclusion(rec)
		default:
			c.plain(rec)
		}
	}
	c.reportOpenScopes()
	return c.diags
}

// hypothesis opens a sub-proof. A mismatched context is reported but the
// scope still opens: later records are checked against the discipline the
// writer evidently intended.
func (c *checker) hypothesis(rec *proof.Record) {
	c.checkContext(rec)
	c.justify(rec)
	c.scopes.push(rec.Index, rec.Statement.Formula)
}

// conclusion discharges the innermost sub-proof: the stated formula must
// be the assumption implying the formula of the immediately preceding
// record. The declared context is the visible set inside the scope being
// closed, before the pop.
func (c *checker) conclusion(rec *proof.Record) {
	if c.scopes.depth() == 0 {
		start, end := c.position(rec.Pos.Line, rec.Pos.StatementCol)
		c.diags = append(c.diags, types.Diagnostic{
			Kind:    types.ContextMismatch,
			Index:   rec.Index,
			Message: "nothing to discharge: no hypothesis is open here",
			Note:    "every Donc closes the nearest Supposons above it",
			Start:   start,
			End:     end,
		})
		c.justify(rec)
		c.scopes.mark(rec.Index)
		return
	}

	c.checkContext(rec)
	sc := c.scopes.pop()
	if prev := c.proof.FormulaAt(rec.Index - 1); prev != nil {
		want := formula.Implies{Left: sc.assumption, Right: prev}
		if !rec.Statement.Formula.Equal(want) {
			start, end := c.position(rec.Pos.Line, rec.Pos.StatementCol)
			c.diags = append(c.diags, types.Diagnostic{
				Kind:     types.RuleViolation,
				Index:    rec.Index,
				Message:  "conclusion must state the discharged assumption implying the last derived line",
				Expected: want.String(),
				Actual:   rec.Statement.Formula.String(),
				Start:    start,
				End:      end,
			})
		}
	}
	c.justify(rec)
	c.scopes.mark(rec.Index)
}

func (c *checker) plain(rec *proof.Record) {
	c.checkContext(rec)
	c.justify(rec)
	c.scopes.mark(rec.Index)
}

// checkContext compares the declared context with the visible set.
func (c *checker) checkContext(rec *proof.Record) {
	visible := c.scopes.visibleSet()
	if sameContext(rec.Context, visible) {
		return
	}
	start, end := c.position(rec.Pos.Line, rec.Pos.ContextCol)
	c.diags = append(c.diags, types.Diagnostic{
		Kind:     types.ContextMismatch,
		Index:    rec.Index,
		Message:  "context must list exactly the lines visible at this record",
		Expected: formatContext(visible),
		Actual:   formatContext(rec.Context),
		Start:    start,
		End:      end,
	})
}

// justify validates the justification field against the rule table. The
// marker codes Hyp and IImpl are optional, so an empty justification is a
// defect only on a plain statement.
func (c *checker) justify(rec *proof.Record) {
	j := rec.Justification
	col := rec.Pos.JustifCol

	if j.IsEmpty() {
		if rec.Statement.Polarity == proof.Plain {
			c.reportJustif(rec, "", col, types.UnknownJustification,
				"statement needs a justification")
		}
		return
	}
	if c.disabled[j.Code] {
		c.reportJustif(rec, j.Code, col, types.UnknownJustification,
			fmt.Sprintf("rule %s is switched off by configuration", j.Code))
		return
	}
	rule, ok := rules.Lookup(j.Code)
	if !ok {
		c.reportJustif(rec, j.Code, col, types.UnknownJustification,
			fmt.Sprintf("unknown rule code %q", j.Code))
		return
	}
	if rule.Polarity != rec.Statement.Polarity {
		c.reportJustif(rec, j.Code, col, types.RuleViolation,
			fmt.Sprintf("%s cannot justify a %s statement", rule.Code, rec.Statement.Polarity))
		return
	}
	if len(j.Refs) != rule.Arity {
		c.reportJustif(rec, j.Code, col, types.RuleViolation,
			fmt.Sprintf("wrong number of references for %s: want %d, got %d", rule.Code, rule.Arity, len(j.Refs)))
		return
	}
	if rule.Check == nil {
		return
	}

	premises := make([]formula.Formula, len(j.Refs))
	for i, ref := range j.Refs {
		if !c.scopes.isVisible(ref) {
			c.reportJustif(rec, j.Code, col, types.ContextMismatch,
				fmt.Sprintf("justification cites line %d, which is not visible here", ref))
			return
		}
		premises[i] = c.proof.FormulaAt(ref)
	}
	if v := rule.Check(rec.Statement.Formula, premises); v != nil {
		start, end := c.position(rec.Pos.Line, col)
		c.diags = append(c.diags, types.Diagnostic{
			Kind:     types.RuleViolation,
			Rule:     rule.Code,
			Index:    rec.Index,
			Message:  v.Message,
			Expected: v.Expected,
			Actual:   v.Actual,
			Start:    start,
			End:      end,
		})
	}
}

// reportOpenScopes emits one IncompleteProof per sub-proof left open at
// end of input, in source order of their hypotheses.
func (c *checker) reportOpenScopes() {
	for _, sc := range c.scopes.stack[1:] {
		d := types.Diagnostic{
			Kind:    types.IncompleteProof,
			Index:   sc.opening,
			Message: "hypothesis is never discharged (missing Donc)",
		}
		if rec := c.proof.Record(sc.opening); rec != nil {
			d.Start, d.End = c.position(rec.Pos.Line, rec.Pos.StatementCol)
		}
		c.diags = append(c.diags, d)
	}
}

func (c *checker) reportJustif(rec *proof.Record, code string, col int, kind types.Kind, msg string) {
	start, end := c.position(rec.Pos.Line, col)
	c.diags = append(c.diags, types.Diagnostic{
		Kind:    kind,
		Rule:    code,
		Index:   rec.Index,
		Message: msg,
		Start:   start,
		End:     end,
	})
}

func (c *checker) position(line, col int) (types.Position, types.Position) {
	start := types.Position{Filename: c.proof.Filename, Line: line, Column: col}
	end := start
	end.Column++
	return start, end
}
