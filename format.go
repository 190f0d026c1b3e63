package dncheck

import (
	"github.com/dnlab/dncheck/formatter"
	tt "github.com/dnlab/dncheck/internal/types"
)

// FormatVerdict renders a verdict's diagnostics for terminal display.
// src is the proof source the diagnostics point into.
func FormatVerdict(src []byte, verdict tt.Verdict) string {
	return formatter.Format(verdict.Diagnostics, formatter.NewSourceText(string(src)))
}
