// Package formula implements the propositional formula language of the
// proof notation: parsing, rendering, and structural equality.
//
// Grammar, lowest to highest precedence:
//
//	iff         <=>        left-associative
//	implication =>  <=     right-associative
//	disjunction v          left-associative
//	conjunction ^          left-associative
//	negation    -          prefix, stacks
//	atom        variable | T | _ | ( formula )
//
// Variables are single ASCII letters, except `v` (reserved for disjunction)
// and `T` (reserved for the true constant). The Unicode operators
// ¬ ∧ ∨ ⇒ ⇐ ⇔ ⊤ ⊥ are accepted as aliases; rendering always emits the
// ASCII forms.
//
// Formulas are immutable values. Equality is structural: no logical
// simplification is ever applied, so -(-a) and a are different formulas.
package formula
