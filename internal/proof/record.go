package proof

import (
	"strconv"
	"strings"

	"github.com/dnlab/dncheck/internal/formula"
)

// Polarity tags how a statement participates in the scoping discipline.
type Polarity int

const (
	// Plain statements must be justified by an inference rule.
	Plain Polarity = iota
	// Hypothesis statements ("Supposons") open a sub-proof.
	Hypothesis
	// Conclusion statements ("Donc") discharge the innermost sub-proof.
	Conclusion
)

func (p Polarity) String() string {
	switch p {
	case Plain:
		return "plain"
	case Hypothesis:
		return "hypothesis"
	case Conclusion:
		return "conclusion"
	default:
		return "?"
	}
}

// Statement is a formula plus its polarity marker.
type Statement struct {
	Polarity Polarity
	Formula  formula.Formula
}

// Justification is either empty or a rule code with reference indices.
type Justification struct {
	Code string // empty for the blank justification
	Refs []int
}

func (j Justification) IsEmpty() bool { return j.Code == "" }

func (j Justification) String() string {
	if j.IsEmpty() {
		return ""
	}
	if len(j.Refs) == 0 {
		return j.Code
	}
	refs := make([]string, len(j.Refs))
	for i, r := range j.Refs {
		refs[i] = strconv.Itoa(r)
	}
	return j.Code + ":" + strings.Join(refs, ",")
}

// Pos locates a record's fields on its physical line, 1-based columns.
type Pos struct {
	Line         int
	IndexCol     int
	ContextCol   int
	StatementCol int
	JustifCol    int
}

// Record is one parsed proof line. Records are immutable after parsing and
// refer to earlier records only through indices, never pointers.
type Record struct {
	Index         int
	Context       []int
	Statement     Statement
	Justification Justification
	Pos           Pos
}

// Proof is the append-only arena of parsed records. Records[i] holds the
// record with index i+1; the numbering rule guarantees there are no gaps
// in a proof that parsed without diagnostics.
type Proof struct {
	Filename string
	Records  []Record
}

// Len returns the number of parsed records.
func (p *Proof) Len() int { return len(p.Records) }

// Record returns the record with the given line index, or nil when the
// index is out of range.
func (p *Proof) Record(index int) *Record {
	if index < 1 || index > len(p.Records) {
		return nil
	}
	return &p.Records[index-1]
}

// FormulaAt returns the formula stated at the given line index, or nil.
func (p *Proof) FormulaAt(index int) formula.Formula {
	r := p.Record(index)
	if r == nil {
		return nil
	}
	return r.Statement.Formula
}
