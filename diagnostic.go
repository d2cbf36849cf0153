package linecfg

import "fmt"

// Diagnostic codes for advisory parse messages.
const (
	CodeInvalidLine    = "invalid_line"
	CodeUnknownKey     = "unknown_key"
	CodeDuplicateEntry = "duplicate_entry"
	CodeMissingKey     = "missing_key"
)

// Diagnostic is an advisory message produced while parsing. Only duplicate
// and missing keys are reflected in Status.
type Diagnostic struct {
	Code   string
	Key    string // Empty for invalid lines
	Source string // Empty for plain line sequences and missing keys
	Line   int    // 0 for missing keys
	Text   string // Offending trimmed line, for invalid lines
}

// Message returns a human-readable description.
func (d Diagnostic) Message() string {
	switch d.Code {
	case CodeInvalidLine:
		return fmt.Sprintf("invalid line %q, skipping", d.Text)
	case CodeUnknownKey:
		return fmt.Sprintf("unknown key %q, skipping", d.Key)
	case CodeDuplicateEntry:
		return fmt.Sprintf("duplicate entry for key %q, using new entry", d.Key)
	case CodeMissingKey:
		return fmt.Sprintf("configuration variable %q not found", d.Key)
	default:
		return d.Code
	}
}

func (d Diagnostic) String() string {
	switch {
	case d.Source != "":
		return fmt.Sprintf("%s:%d: %s", d.Source, d.Line, d.Message())
	case d.Line > 0:
		return fmt.Sprintf("line %d: %s", d.Line, d.Message())
	default:
		return d.Message()
	}
}
