// Package formatter renders proof diagnostics for terminal display,
// with source snippets, underlines, and expected/found comparisons.
package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"

	tt "github.com/dnlab/dncheck/internal/types"
)

const tabWidth = 8

var (
	errorStyle    = color.New(color.FgRed, color.Bold)
	ruleStyle     = color.New(color.FgYellow, color.Bold)
	fileStyle     = color.New(color.FgCyan, color.Bold)
	lineStyle     = color.New(color.FgHiBlue, color.Bold)
	messageStyle  = color.New(color.FgRed, color.Bold)
	expectedStyle = color.New(color.FgGreen, color.Bold)
	actualStyle   = color.New(color.FgRed, color.Bold)
	noteStyle     = color.New(color.FgWhite)
)

// SourceText holds a proof split into lines for snippet rendering.
type SourceText struct {
	Lines []string
}

func NewSourceText(src string) *SourceText {
	return &SourceText{Lines: strings.Split(src, "\n")}
}

// diagnosticFormatter is the interface that wraps the template method.
// Implementations pick the layout for one class of diagnostics.
type diagnosticFormatter interface {
	template() string
}

// formatterFor returns the formatter for the given diagnostic kind.
// Kinds without a dedicated layout fall back to the general one.
func formatterFor(kind tt.Kind) diagnosticFormatter {
	switch kind {
	case tt.RuleViolation:
		return &ruleViolationFormatter{}
	case tt.ContextMismatch:
		return &contextMismatchFormatter{}
	default:
		return &generalFormatter{}
	}
}

// Format renders diagnostics into a human-readable report, one block
// per diagnostic in input order.
func Format(diags []tt.Diagnostic, src *SourceText) string {
	var builder strings.Builder
	for _, diag := range diags {
		builder.WriteString(build(diag, src, formatterFor(diag.Kind)))
		builder.WriteString("\n")
	}
	return builder.String()
}

type diagnosticData struct {
	Kind            string
	Rule            string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Expected        string
	Actual          string
	Note            string
	SnippetLines    []string
	CommonIndent    string
}

func build(diag tt.Diagnostic, src *SourceText, formatter diagnosticFormatter) string {
	startLine := diag.Start.Line
	endLine := diag.End.Line
	maxLineNumWidth := calculateMaxLineNumWidth(endLine)
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var commonIndent string
	if startLine >= 1 && endLine <= len(src.Lines) && startLine <= endLine {
		commonIndent = findCommonIndent(src.Lines[startLine-1 : endLine])
	}

	data := diagnosticData{
		Kind:            diag.Kind.String(),
		Rule:            diag.Rule,
		Filename:        diag.Start.Filename,
		StartLine:       startLine,
		StartColumn:     diag.Start.Column,
		EndLine:         endLine,
		EndColumn:       diag.End.Column,
		Message:         diag.Message,
		Expected:        diag.Expected,
		Actual:          diag.Actual,
		Note:            diag.Note,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         padding,
		CommonIndent:    commonIndent,
		SnippetLines:    src.Lines,
	}

	funcMap := template.FuncMap{
		"header":              header,
		"snippet":             snippet,
		"underlineAndMessage": underlineAndMessage,
		"comparison":          comparison,
		"note":                note,
	}

	tmpl := template.Must(template.New("diagnostic").Funcs(funcMap).Parse(formatter.template()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("error formatting diagnostic: %v", err)
	}
	return buf.String()
}

// functions used in the text templates

func header(kind string, rule string, maxLineNumWidth int, filename string, startLine int, startColumn int) string {
	label := kind
	if rule != "" {
		label = fmt.Sprintf("%s (%s)", kind, rule)
	}

	endString := errorStyle.Sprint("error: ")
	endString += ruleStyle.Sprintf("%s\n", label)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d\n", filename, startLine, startColumn)

	return endString
}

func snippet(snippetLines []string, startLine int, endLine int, maxLineNumWidth int, commonIndent string, padding string) string {
	endString := lineStyle.Sprintf("%s|\n", padding)

	for i := startLine; i <= endLine; i++ {
		if i-1 < 0 || i-1 >= len(snippetLines) {
			continue
		}

		line := strings.TrimPrefix(snippetLines[i-1], commonIndent)
		lineNum := fmt.Sprintf("%*d", maxLineNumWidth, i)

		endString += lineStyle.Sprintf("%s | %s\n", lineNum, line)
	}

	return endString
}

func underlineAndMessage(message string, padding string, startLine int, endLine int, startColumn int, endColumn int, snippetLines []string, commonIndent string) string {
	endString := lineStyle.Sprintf("%s| ", padding)

	if !isValidLineRange(startLine, endLine, snippetLines) {
		endString += messageStyle.Sprintf("%s\n", message)
		return endString
	}

	commonIndentWidth := calculateVisualColumn(commonIndent, len(commonIndent)+1)

	underlineStart := calculateVisualColumn(snippetLines[startLine-1], startColumn) - commonIndentWidth
	if underlineStart < 0 {
		underlineStart = 0
	}

	// End columns are exclusive, so the width is the plain difference.
	underlineEnd := calculateVisualColumn(snippetLines[endLine-1], endColumn) - commonIndentWidth
	underlineLength := underlineEnd - underlineStart
	if underlineLength < 1 {
		underlineLength = 1
	}

	endString += strings.Repeat(" ", underlineStart)
	endString += messageStyle.Sprintf("%s\n", strings.Repeat("~", underlineLength))

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprintf("%s\n", message)

	return endString
}

// comparison renders the expected/found pair under a diagnostic, with
// the values aligned. Labels vary by diagnostic class. Empty values
// produce no output.
func comparison(expected string, actual string, wantLabel string, gotLabel string, padding string) string {
	if expected == "" && actual == "" {
		return ""
	}

	labelWidth := len(wantLabel)
	if len(gotLabel) > labelWidth {
		labelWidth = len(gotLabel)
	}

	var endString string
	if expected != "" {
		endString += lineStyle.Sprintf("%s= ", padding)
		endString += expectedStyle.Sprintf("%-*s %s\n", labelWidth+1, wantLabel+":", expected)
	}
	if actual != "" {
		endString += lineStyle.Sprintf("%s= ", padding)
		endString += actualStyle.Sprintf("%-*s %s\n", labelWidth+1, gotLabel+":", actual)
	}
	return endString
}

func note(note string, padding string) string {
	if note == "" {
		return ""
	}

	endString := lineStyle.Sprintf("%s= ", padding)
	endString += noteStyle.Sprintf("note: %s\n", note)
	return endString
}

func isValidLineRange(startLine int, endLine int, snippetLines []string) bool {
	return startLine > 0 &&
		endLine > 0 &&
		startLine <= endLine &&
		startLine <= len(snippetLines) &&
		endLine <= len(snippetLines)
}

func calculateMaxLineNumWidth(endLine int) int {
	return len(fmt.Sprintf("%d", endLine))
}

// calculateVisualColumn converts a 1-based byte column into a visual
// column, expanding tab characters.
func calculateVisualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

// findCommonIndent finds the indentation shared by all non-empty lines.
func findCommonIndent(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	// find first non-empty line's indent
	firstIndent := make([]rune, 0)
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed != "" {
			firstIndent = []rune(line[:len(line)-len(trimmed)])
			break
		}
	}

	if len(firstIndent) == 0 {
		return ""
	}

	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}

		currentIndent := []rune(line[:len(line)-len(trimmed)])
		firstIndent = commonPrefix(firstIndent, currentIndent)

		if len(firstIndent) == 0 {
			break
		}
	}

	return string(firstIndent)
}

// commonPrefix finds the common prefix of two rune slices.
func commonPrefix(a, b []rune) []rune {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:minLen]
}
