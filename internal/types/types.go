package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Position is a location inside a proof source, 1-based line and column.
// Column counts bytes from the start of the line, like compiler output.
type Position struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += strconv.Itoa(p.Line)
		if p.Column > 0 {
			s += ":" + strconv.Itoa(p.Column)
		}
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Kind classifies a proof diagnostic.
type Kind int

const (
	// SyntaxError is malformed formula text.
	SyntaxError Kind = iota
	// MalformedRecord is a line that does not split into four fields.
	MalformedRecord
	// InvalidIndex is non-monotonic line numbering.
	InvalidIndex
	// InvalidContext is an unsorted, duplicate, or forward context or
	// justification reference.
	InvalidContext
	// ContextMismatch is a declared context that differs from the visible
	// set, or a discharge with nothing to discharge.
	ContextMismatch
	// UnknownJustification is an unrecognized (or disabled) rule code.
	UnknownJustification
	// RuleViolation is a rule whose premises do not yield the stated formula.
	RuleViolation
	// IncompleteProof is one or more sub-proofs left open at end of input.
	IncompleteProof
	// UnterminatedComment is a comment opened but never closed.
	UnterminatedComment
	// DepthExceeded is formula nesting beyond the configured limit.
	DepthExceeded
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "syntax-error"
	case MalformedRecord:
		return "malformed-record"
	case InvalidIndex:
		return "invalid-index"
	case InvalidContext:
		return "invalid-context"
	case ContextMismatch:
		return "context-mismatch"
	case UnknownJustification:
		return "unknown-justification"
	case RuleViolation:
		return "rule-violation"
	case IncompleteProof:
		return "incomplete-proof"
	case UnterminatedComment:
		return "unterminated-comment"
	case DepthExceeded:
		return "depth-exceeded"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalJSON renders the kind as its string form so machine output
// stays readable and stable across reorderings of the constants.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for cand := SyntaxError; cand <= DepthExceeded; cand++ {
		if cand.String() == str {
			*k = cand
			return nil
		}
	}
	return fmt.Errorf("unknown diagnostic kind: %q", str)
}

// Diagnostic represents one defect found in a proof.
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Rule     string   `json:"rule,omitempty"`  // rule code involved, if any
	Index    int      `json:"index,omitempty"` // record index, 0 when none applies
	Message  string   `json:"message"`
	Expected string   `json:"expected,omitempty"` // rendered expectation (formula or context), if any
	Actual   string   `json:"actual,omitempty"`
	Note     string   `json:"note,omitempty"`
	Start    Position `json:"start"`
	End      Position `json:"end"`
}

// Verdict is the outcome of checking one proof.
type Verdict struct {
	Valid       bool         `json:"valid"`
	Records     int          `json:"records"` // records successfully parsed
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Severity controls how a configured rule code is treated.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	switch str {
	case "off":
		*s = SeverityOff
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// ConfigRule is the per-rule-code entry of the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Duration is a time.Duration that reads and writes in the familiar
// "5m", "24h" notation in both YAML and environment variables.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	return d.set(str)
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalText lets environment parsing accept the same notation.
func (d *Duration) UnmarshalText(text []byte) error {
	return d.set(string(text))
}

func (d *Duration) set(str string) error {
	parsed, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", str, err)
	}
	*d = Duration(parsed)
	return nil
}
