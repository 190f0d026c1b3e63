package formatter

// ruleViolationFormatter lays out misapplied inference rules, showing
// the formula the rule would yield next to the one the line states.
type ruleViolationFormatter struct{}

func (f *ruleViolationFormatter) template() string {
	return `{{header .Kind .Rule .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{comparison .Expected .Actual "expected" "found" .Padding -}}
{{note .Note .Padding -}}
`
}
