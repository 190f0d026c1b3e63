package formatter

// generalFormatter lays out the diagnostics that carry no
// expected/found pair: parse defects, incomplete proofs, and the like.
type generalFormatter struct{}

func (f *generalFormatter) template() string {
	return `{{header .Kind .Rule .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{note .Note .Padding -}}
`
}
