package linecfg

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestValidationError_Error_SingleError(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{
				Key:     "DIE_ID",
				Code:    ErrCodeCharset,
				Message: "invalid character",
			},
		},
	}

	got := ve.Error()
	want := "config validation failed: 1 error\n  - DIE_ID: charset (invalid character)"

	if got != want {
		t.Errorf("ValidationError.Error() with single error\ngot:  %q\nwant: %q", got, want)
	}
}

func TestValidationError_Error_MultipleErrors(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{Key: "COM", Code: ErrCodeRequired, Message: "key is required"},
			{Key: "I_LIM", Code: "lte", Message: "value 1 fails lte=0.1"},
			{Key: "DIE_ID", Code: ErrCodeCharset, Message: "invalid character '-'"},
		},
	}

	got := ve.Error()

	// Check header
	if !strings.HasPrefix(got, "config validation failed: 3 errors\n") {
		t.Errorf("ValidationError.Error() header incorrect\ngot: %q", got)
	}

	expectedErrors := []string{
		"  - COM: required (key is required)",
		"  - I_LIM: lte (value 1 fails lte=0.1)",
		"  - DIE_ID: charset (invalid character '-')",
	}

	for _, expected := range expectedErrors {
		if !strings.Contains(got, expected) {
			t.Errorf("ValidationError.Error() missing expected error\ngot:  %q\nwant to contain: %q", got, expected)
		}
	}
}

func TestValidationError_Error_NoErrors(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{},
	}

	got := ve.Error()
	want := "config validation failed: no errors"

	if got != want {
		t.Errorf("ValidationError.Error() with no errors\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSchemaError(t *testing.T) {
	dup := &SchemaError{Key: "N", Type: "integer", Err: ErrDuplicateSchemaKey}
	if got, want := dup.Error(), `linecfg: duplicate key in schema: "N"`; got != want {
		t.Errorf("SchemaError.Error() = %q, want %q", got, want)
	}
	if !errors.Is(dup, ErrDuplicateSchemaKey) {
		t.Error("expected errors.Is(ErrDuplicateSchemaKey)")
	}

	tag := &SchemaError{Key: "FLAG", Type: "bool", Err: ErrUnknownTypeTag}
	if got, want := tag.Error(), `linecfg: unknown type tag "bool" for key "FLAG"`; got != want {
		t.Errorf("SchemaError.Error() = %q, want %q", got, want)
	}
	if errors.Is(tag, ErrDuplicateSchemaKey) {
		t.Error("unknown tag error must not match ErrDuplicateSchemaKey")
	}
}

func TestLiteralError(t *testing.T) {
	_, numErr := strconv.ParseInt("abc", 10, 64)

	tests := []struct {
		name     string
		err      *LiteralError
		want     string
		sentinel error
		other    error
	}{
		{
			name:     "integer without source",
			err:      &LiteralError{Key: "N", Kind: KindInt, Text: "abc", Line: 3, Err: numErr},
			want:     `linecfg: invalid integer literal "abc" for key "N" (line 3)`,
			sentinel: ErrInvalidIntegerLiteral,
			other:    ErrInvalidFloatLiteral,
		},
		{
			name:     "float with source",
			err:      &LiteralError{Key: "I_LIM", Kind: KindDouble, Text: "1..0", Source: "file:iv.cfg", Line: 2, Err: numErr},
			want:     `linecfg: invalid float literal "1..0" for key "I_LIM" (file:iv.cfg:2)`,
			sentinel: ErrInvalidFloatLiteral,
			other:    ErrInvalidIntegerLiteral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("LiteralError.Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected errors.Is(%v)", tt.sentinel)
			}
			if errors.Is(tt.err, tt.other) {
				t.Errorf("unexpected errors.Is(%v)", tt.other)
			}
			if !errors.Is(tt.err, strconv.ErrSyntax) {
				t.Error("expected underlying strconv.ErrSyntax")
			}
		})
	}
}
