package formula

// Formula represents a propositional formula tree.
type Formula interface {
	isFormula()
	// Equal reports structural equality with other.
	Equal(other Formula) bool
	// String renders the formula in ASCII notation with minimal parentheses.
	String() string
}

// Var is a single-letter propositional variable.
type Var struct {
	Name byte
}

func (Var) isFormula() {}
func (v Var) Equal(other Formula) bool {
	o, ok := other.(Var)
	return ok && v.Name == o.Name
}
func (v Var) String() string { return string(v.Name) }

// Top is the true constant.
type Top struct{}

func (Top) isFormula() {}
func (Top) Equal(other Formula) bool {
	_, ok := other.(Top)
	return ok
}
func (Top) String() string { return "T" }

// Bottom is the false constant.
type Bottom struct{}

func (Bottom) isFormula() {}
func (Bottom) Equal(other Formula) bool {
	_, ok := other.(Bottom)
	return ok
}
func (Bottom) String() string { return "_" }

// Not is a negation. Stacked negations are preserved as nested nodes.
type Not struct {
	Operand Formula
}

func (Not) isFormula() {}
func (n Not) Equal(other Formula) bool {
	o, ok := other.(Not)
	return ok && n.Operand.Equal(o.Operand)
}
func (n Not) String() string {
	s := n.Operand.String()
	if prec(n.Operand) < precNot {
		s = "(" + s + ")"
	}
	return "-" + s
}

// And is a conjunction.
type And struct {
	Left  Formula
	Right Formula
}

func (And) isFormula() {}
func (a And) Equal(other Formula) bool {
	o, ok := other.(And)
	return ok && a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
}
func (a And) String() string {
	return renderBinary(a.Left, "^", a.Right, precAnd, false)
}

// Or is a disjunction.
type Or struct {
	Left  Formula
	Right Formula
}

func (Or) isFormula() {}
func (o Or) Equal(other Formula) bool {
	x, ok := other.(Or)
	return ok && o.Left.Equal(x.Left) && o.Right.Equal(x.Right)
}
func (o Or) String() string {
	return renderBinary(o.Left, "v", o.Right, precOr, false)
}

// Implies is a left-to-right implication.
type Implies struct {
	Left  Formula
	Right Formula
}

func (Implies) isFormula() {}
func (i Implies) Equal(other Formula) bool {
	o, ok := other.(Implies)
	return ok && i.Left.Equal(o.Left) && i.Right.Equal(o.Right)
}
func (i Implies) String() string {
	return renderBinary(i.Left, "=>", i.Right, precImpl, true)
}

// ConverseImplies is a right-to-left implication: a <= b reads "a if b".
type ConverseImplies struct {
	Left  Formula
	Right Formula
}

func (ConverseImplies) isFormula() {}
func (c ConverseImplies) Equal(other Formula) bool {
	o, ok := other.(ConverseImplies)
	return ok && c.Left.Equal(o.Left) && c.Right.Equal(o.Right)
}
func (c ConverseImplies) String() string {
	return renderBinary(c.Left, "<=", c.Right, precImpl, true)
}

// Iff is a biconditional.
type Iff struct {
	Left  Formula
	Right Formula
}

func (Iff) isFormula() {}
func (i Iff) Equal(other Formula) bool {
	o, ok := other.(Iff)
	return ok && i.Left.Equal(o.Left) && i.Right.Equal(o.Right)
}
func (i Iff) String() string {
	return renderBinary(i.Left, "<=>", i.Right, precIff, false)
}

const (
	precIff = iota + 1
	precImpl
	precOr
	precAnd
	precNot
	precAtom
)

func prec(f Formula) int {
	switch f.(type) {
	case Iff:
		return precIff
	case Implies, ConverseImplies:
		return precImpl
	case Or:
		return precOr
	case And:
		return precAnd
	case Not:
		return precNot
	default:
		return precAtom
	}
}

// renderBinary parenthesizes a child only when it binds no tighter than the
// parent requires; the associative side keeps its bare form at equal
// precedence.
func renderBinary(left Formula, op string, right Formula, p int, rightAssoc bool) string {
	l, r := left.String(), right.String()
	if lp := prec(left); lp < p || (lp == p && rightAssoc) {
		l = "(" + l + ")"
	}
	if rp := prec(right); rp < p || (rp == p && !rightAssoc) {
		r = "(" + r + ")"
	}
	return l + " " + op + " " + r
}
