package formatter

// contextMismatchFormatter lays out scoping defects, comparing the
// context a record declares against the lines actually visible there.
type contextMismatchFormatter struct{}

func (f *contextMismatchFormatter) template() string {
	return `{{header .Kind .Rule .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{comparison .Expected .Actual "visible" "declared" .Padding -}}
{{note .Note .Padding -}}
`
}
