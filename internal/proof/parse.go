package proof

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dnlab/dncheck/internal/formula"
	"github.com/dnlab/dncheck/internal/types"
)

const (
	hypothesisKeyword = "Supposons"
	conclusionKeyword = "Donc"
)

// Parse turns proof text into an arena of records plus parse diagnostics,
// in source order. A line that fails to parse produces one diagnostic and
// no record; parsing resynchronizes on the next line. maxDepth bounds
// formula nesting; values <= 0 select formula.DefaultMaxDepth.
func Parse(filename, src string, maxDepth int) (*Proof, []types.Diagnostic) {
	if maxDepth <= 0 {
		maxDepth = formula.DefaultMaxDepth
	}
	prf := &Proof{Filename: filename}

	stripped, err := StripComments(src)
	if err != nil {
		var unterm *UnterminatedCommentError
		errors.As(err, &unterm)
		line, col := lineCol(src, unterm.Offset)
		return prf, []types.Diagnostic{{
			Kind:    types.UnterminatedComment,
			Message: "comment is never closed",
			Start:   types.Position{Filename: filename, Line: line, Column: col},
			End:     types.Position{Filename: filename, Line: line, Column: col + 2},
		}}
	}

	var diags []types.Diagnostic
	expected := 1
	for i, raw := range strings.Split(stripped, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		rp := &recordParser{
			filename: filename,
			line:     i + 1,
			raw:      raw,
			maxDepth: maxDepth,
		}
		rec, next := rp.parse(expected)
		expected = next
		diags = append(diags, rp.diags...)
		if rec != nil {
			prf.Records = append(prf.Records, *rec)
		}
	}
	return prf, diags
}

// recordParser parses a single physical line. The first defect wins: it is
// reported and the rest of the line is abandoned, keeping messages free of
// cascade noise.
type recordParser struct {
	filename string
	line     int
	raw      string
	maxDepth int
	diags    []types.Diagnostic
}

// parse returns the parsed record (nil when the line is defective) and the
// index expected of the next line. A readable index resynchronizes the
// counter even when the rest of its line is broken.
func (rp *recordParser) parse(expected int) (*Record, int) {
	next := expected + 1

	fields := strings.Split(rp.raw, ";")
	if len(fields) != 4 {
		lead := leadingSpaces(rp.raw)
		rp.report(types.MalformedRecord, 0, lead+1, len(strings.TrimSpace(rp.raw)),
			fmt.Sprintf("line splits into %d fields, want 4 (index;context;statement;justification)", len(fields)))
		return nil, next
	}
	offs := fieldOffsets(fields)

	index, ok := rp.parseIndex(fields[0], offs[0], expected)
	if index > 0 {
		next = index + 1
	}
	if !ok {
		return nil, next
	}

	context, ok := rp.parseContext(fields[1], offs[1], index)
	if !ok {
		return nil, next
	}

	stmt, stmtCol, ok := rp.parseStatement(fields[2], offs[2], index)
	if !ok {
		return nil, next
	}

	justif, ok := rp.parseJustification(fields[3], offs[3], index)
	if !ok {
		return nil, next
	}

	return &Record{
		Index:         index,
		Context:       context,
		Statement:     stmt,
		Justification: justif,
		Pos: Pos{
			Line:         rp.line,
			IndexCol:     offs[0] + leadingSpaces(fields[0]) + 1,
			ContextCol:   offs[1] + leadingSpaces(fields[1]) + 1,
			StatementCol: stmtCol,
			JustifCol:    offs[3] + leadingSpaces(fields[3]) + 1,
		},
	}, next
}

func (rp *recordParser) parseIndex(field string, off, expected int) (int, bool) {
	trimmed := strings.TrimSpace(field)
	col := off + leadingSpaces(field) + 1

	index, err := strconv.Atoi(trimmed)
	if err != nil || index <= 0 {
		rp.report(types.InvalidIndex, 0, col, len(trimmed),
			fmt.Sprintf("record index must be a positive integer, found %q", trimmed))
		return 0, false
	}
	if index != expected {
		rp.report(types.InvalidIndex, index, col, len(trimmed),
			fmt.Sprintf("expected index %d, found %d", expected, index))
		return index, false
	}
	return index, true
}

func (rp *recordParser) parseContext(field string, off, index int) ([]int, bool) {
	trimmed := strings.TrimSpace(field)
	col := off + leadingSpaces(field) + 1
	if trimmed == "" {
		return nil, true
	}

	parts := strings.Split(trimmed, ",")
	context := make([]int, 0, len(parts))
	prev := 0
	for _, part := range parts {
		entry, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || entry <= 0 {
			rp.report(types.InvalidContext, index, col, len(trimmed),
				fmt.Sprintf("context must be a comma-separated list of line numbers, found %q", strings.TrimSpace(part)))
			return nil, false
		}
		switch {
		case entry == prev:
			rp.report(types.InvalidContext, index, col, len(trimmed),
				fmt.Sprintf("duplicate context entry %d", entry))
			return nil, false
		case entry < prev:
			rp.report(types.InvalidContext, index, col, len(trimmed),
				"context entries must be sorted in increasing order")
			return nil, false
		case entry >= index:
			rp.report(types.InvalidContext, index, col, len(trimmed),
				fmt.Sprintf("context cites line %d, which does not precede this record", entry))
			return nil, false
		}
		context = append(context, entry)
		prev = entry
	}
	return context, true
}

func (rp *recordParser) parseStatement(field string, off, index int) (Statement, int, bool) {
	trimmed := strings.TrimSpace(field)
	col := off + leadingSpaces(field) + 1

	polarity := Plain
	text := trimmed
	switch {
	case trimmed == hypothesisKeyword || strings.HasPrefix(trimmed, hypothesisKeyword+" "):
		polarity = Hypothesis
		text = trimmed[len(hypothesisKeyword):]
	case trimmed == conclusionKeyword || strings.HasPrefix(trimmed, conclusionKeyword+" "):
		polarity = Conclusion
		text = trimmed[len(conclusionKeyword):]
	}
	textCol := col + (len(trimmed) - len(text))

	f, err := formula.ParseDepth(text, rp.maxDepth)
	if err != nil {
		var depth *formula.DepthError
		if errors.As(err, &depth) {
			rp.report(types.DepthExceeded, index, textCol+depth.Offset, 1, err.Error())
			return Statement{}, 0, false
		}
		var syn *formula.SyntaxError
		errors.As(err, &syn)
		rp.report(types.SyntaxError, index, textCol+syn.Offset, 1, err.Error())
		return Statement{}, 0, false
	}
	return Statement{Polarity: polarity, Formula: f}, col, true
}

func (rp *recordParser) parseJustification(field string, off, index int) (Justification, bool) {
	trimmed := strings.TrimSpace(field)
	col := off + leadingSpaces(field) + 1
	if trimmed == "" {
		return Justification{}, true
	}

	code, refsPart, hasRefs := strings.Cut(trimmed, ":")
	code = strings.TrimSpace(code)
	if code == "" {
		rp.report(types.InvalidContext, index, col, len(trimmed),
			"justification has no rule code before ':'")
		return Justification{}, false
	}
	if !hasRefs {
		return Justification{Code: code}, true
	}

	parts := strings.Split(refsPart, ",")
	refs := make([]int, 0, len(parts))
	for _, part := range parts {
		ref, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || ref <= 0 {
			rp.report(types.InvalidContext, index, col, len(trimmed),
				fmt.Sprintf("justification references must be line numbers, found %q", strings.TrimSpace(part)))
			return Justification{}, false
		}
		if ref >= index {
			rp.report(types.InvalidContext, index, col, len(trimmed),
				fmt.Sprintf("justification cites line %d, which does not precede this record", ref))
			return Justification{}, false
		}
		refs = append(refs, ref)
	}
	return Justification{Code: code, Refs: refs}, true
}

func (rp *recordParser) report(kind types.Kind, index, col, width int, msg string) {
	if width < 1 {
		width = 1
	}
	rp.diags = append(rp.diags, types.Diagnostic{
		Kind:    kind,
		Index:   index,
		Message: msg,
		Start:   types.Position{Filename: rp.filename, Line: rp.line, Column: col},
		End:     types.Position{Filename: rp.filename, Line: rp.line, Column: col + width},
	})
}

// fieldOffsets returns the byte offset of each field within the raw line.
func fieldOffsets(fields []string) [4]int {
	var offs [4]int
	off := 0
	for i := range offs {
		offs[i] = off
		off += len(fields[i]) + 1
	}
	return offs
}

func leadingSpaces(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
