package checker

import (
	"strconv"
	"strings"

	"github.com/dnlab/dncheck/internal/formula"
)

// scope is one open sub-proof. The zero value is the implicit top level.
type scope struct {
	opening    int             // index of the hypothesis line, 0 at top level
	assumption formula.Formula // nil at top level
	visible    []int           // indices usable while this scope stays open
}

// tracker is the explicit scope stack. stack[0] is the implicit top level
// and never pops; indices grow monotonically during the pass, so every
// visible slice stays sorted without bookkeeping.
type tracker struct {
	stack []scope
}

func newTracker() *tracker {
	return &tracker{stack: []scope{{}}}
}

// depth counts the open sub-proofs, excluding the implicit top level.
func (t *tracker) depth() int { return len(t.stack) - 1 }

// push opens a sub-proof assuming f at the given hypothesis index. The
// hypothesis itself is visible inside the new scope.
func (t *tracker) push(index int, f formula.Formula) {
	t.stack = append(t.stack, scope{opening: index, assumption: f, visible: []int{index}})
}

// pop closes the innermost sub-proof and returns it. Everything that was
// visible only inside it stops being visible.
func (t *tracker) pop() scope {
	s := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return s
}

// mark makes index visible in the innermost open scope.
func (t *tracker) mark(index int) {
	top := &t.stack[len(t.stack)-1]
	top.visible = append(top.visible, index)
}

// visibleSet returns the indices usable at this point, in ascending order:
// the accumulated lines of every scope from the top level down to the
// innermost open sub-proof.
func (t *tracker) visibleSet() []int {
	var set []int
	for _, s := range t.stack {
		set = append(set, s.visible...)
	}
	return set
}

func (t *tracker) isVisible(index int) bool {
	for _, s := range t.stack {
		for _, v := range s.visible {
			if v == index {
				return true
			}
		}
	}
	return false
}

// sameContext reports whether a declared context equals the visible set.
// Both slices are ascending, so positional comparison suffices.
func sameContext(declared, visible []int) bool {
	if len(declared) != len(visible) {
		return false
	}
	for i, d := range declared {
		if d != visible[i] {
			return false
		}
	}
	return true
}

// formatContext renders an index set the way it appears in a record.
func formatContext(ctx []int) string {
	if len(ctx) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(ctx))
	for i, n := range ctx {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
