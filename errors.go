package linecfg

import (
	"errors"
	"fmt"
	"strings"
)

// Schema authoring errors. Returned by NewSchema wrapped in *SchemaError.
var (
	ErrDuplicateSchemaKey = errors.New("linecfg: duplicate key in schema")
	ErrUnknownTypeTag     = errors.New("linecfg: unknown type tag")
)

// Value coercion errors. Returned by parse operations wrapped in *LiteralError;
// the parse is aborted and no map is returned.
var (
	ErrInvalidIntegerLiteral = errors.New("linecfg: invalid integer literal")
	ErrInvalidFloatLiteral   = errors.New("linecfg: invalid float literal")
)

// Struct binding errors. See StructSchema and Bind.
var (
	ErrInvalidBindTarget = errors.New("linecfg: bind target must be a non-nil pointer to a struct")
	ErrUnsupportedField  = errors.New("linecfg: unsupported field type")
	ErrKindMismatch      = errors.New("linecfg: value kind does not match field")
)

// Error codes for key-level validation failures.
const (
	ErrCodeRequired = "required"
	ErrCodeCharset  = "charset"
)

// SchemaError reports a bad declaration passed to NewSchema.
type SchemaError struct {
	Key  string
	Type string // Declared type tag
	Err  error  // ErrDuplicateSchemaKey or ErrUnknownTypeTag
}

func (e *SchemaError) Error() string {
	if errors.Is(e.Err, ErrUnknownTypeTag) {
		return fmt.Sprintf("%v %q for key %q", e.Err, e.Type, e.Key)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Key)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// LiteralError reports a value that could not be coerced to its declared kind.
type LiteralError struct {
	Key    string
	Kind   Kind
	Text   string // Trimmed value text
	Source string // Source name, empty for plain line sequences
	Line   int    // 1-based line number within the source
	Err    error  // Underlying strconv error
}

func (e *LiteralError) Error() string {
	var b strings.Builder
	b.WriteString(e.sentinel().Error())
	fmt.Fprintf(&b, " %q for key %q", e.Text, e.Key)
	if e.Source != "" {
		fmt.Fprintf(&b, " (%s:%d)", e.Source, e.Line)
	} else if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	return b.String()
}

// Unwrap returns the underlying strconv error.
func (e *LiteralError) Unwrap() error { return e.Err }

// Is matches ErrInvalidIntegerLiteral or ErrInvalidFloatLiteral by kind.
func (e *LiteralError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *LiteralError) sentinel() error {
	if e.Kind == KindDouble {
		return ErrInvalidFloatLiteral
	}
	return ErrInvalidIntegerLiteral
}

// ValidationError aggregates key-level validation failures.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "config validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("config validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "config validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.Key, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FieldError represents a single key validation failure.
type FieldError struct {
	Key     string // Schema key (e.g., "DIE_ID")
	Code    string // Error code (e.g., "required", "alphanum")
	Message string // Human-readable description
}
