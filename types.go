package linecfg

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the declared type of a schema key.
type Kind int

const (
	KindInt Kind = iota + 1
	KindDouble
	KindString
)

// String returns the canonical type tag ("integer", "double", "string").
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind resolves a type tag. Accepts "integer", "double", "string" and the
// short aliases "int"/"i", "float"/"d", "str"/"s" (case-insensitive).
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "integer", "int", "i":
		return KindInt, nil
	case "double", "float", "d":
		return KindDouble, nil
	case "string", "str", "s":
		return KindString, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTypeTag, tag)
	}
}

// Decl declares one expected key and its type tag.
type Decl struct {
	Key  string
	Type string
}

// Int declares an integer key.
func Int(key string) Decl { return Decl{Key: key, Type: KindInt.String()} }

// Double declares a floating-point key.
func Double(key string) Decl { return Decl{Key: key, Type: KindDouble.String()} }

// String declares a string key.
func String(key string) Decl { return Decl{Key: key, Type: KindString.String()} }

// Value is a coerced configuration value: exactly one of int64, float64 or string.
// The zero Value has no kind.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func IntValue(v int64) Value      { return Value{kind: KindInt, i: v} }
func DoubleValue(v float64) Value { return Value{kind: KindDouble, f: v} }
func StringValue(v string) Value  { return Value{kind: KindString, s: v} }

// Kind reports which variant is held.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer and true if v holds an integer.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsDouble returns the float and true if v holds a double.
func (v Value) AsDouble() (float64, bool) { return v.f, v.kind == KindDouble }

// AsString returns the text and true if v holds a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Interface returns the held value as int64, float64 or string (nil for the zero Value).
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// Text renders the value as text. Doubles use fixed notation with the given
// number of decimals; a negative precision selects the shortest representation.
func (v Value) Text(precision int) string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		if precision < 0 {
			return strconv.FormatFloat(v.f, 'g', -1, 64)
		}
		return strconv.FormatFloat(v.f, 'f', precision, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// String implements fmt.Stringer using the shortest float representation.
func (v Value) String() string {
	return v.Text(-1)
}

// Status is a bitmask of recoverable parse anomalies. Zero means a clean parse.
type Status uint8

const (
	// DuplicateEntry is set when a key was assigned more than once.
	DuplicateEntry Status = 1 << iota
	// MissingKey is set when a schema key was never assigned.
	MissingKey
)

// Has reports whether all bits of flag are set.
func (s Status) Has(flag Status) bool {
	return s&flag == flag
}

// OK reports a clean parse.
func (s Status) OK() bool { return s == 0 }

func (s Status) String() string {
	if s == 0 {
		return "ok"
	}
	var parts []string
	if s.Has(DuplicateEntry) {
		parts = append(parts, "duplicate_entry")
	}
	if s.Has(MissingKey) {
		parts = append(parts, "missing_key")
	}
	if rest := s &^ (DuplicateEntry | MissingKey); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// Source provides configuration lines from a backend (file, environment, memory).
type Source interface {
	// Name identifies the source in diagnostics and provenance (e.g. "file:iv.cfg").
	Name() string

	// Lines returns the raw lines. Missing optional sources should return no lines.
	Lines(ctx context.Context) ([]string, error)
}

// Validator performs domain checks on a parsed configuration.
type Validator interface {
	// Validate checks configuration. Return *ValidationError for key-level errors.
	Validate(ctx context.Context, cfg *Map) error
}

// ValidatorFunc is a function adapter for Validator interface.
type ValidatorFunc func(ctx context.Context, cfg *Map) error

func (f ValidatorFunc) Validate(ctx context.Context, cfg *Map) error {
	return f(ctx, cfg)
}
