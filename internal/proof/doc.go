// Package proof parses the line-oriented proof notation into records.
//
// A proof file holds one record per physical line, blank lines ignored:
//
//	index ; context ; statement ; justification
//
// where context is a comma-separated list of earlier line indices, the
// statement optionally opens with "Supposons " (hypothesis) or "Donc "
// (conclusion) before a formula, and the justification is either empty or
// a rule code with optional ":"-introduced reference indices. Comments are
// delimited by (* and *) and may nest and span lines.
//
// Parsing never returns a Go error for defects in the proof text: every
// defect becomes a types.Diagnostic and parsing resynchronizes at the next
// line, so one run reports as many problems as it can find.
package proof
