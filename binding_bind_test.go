package linecfg

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type ivSweep struct {
	ILim   float64 `conf:"name:I_LIM,rule:gt=0,lte=0.1"`
	VStart float64 `conf:"name:V_START"`
	Steps  int     `conf:"name:STEPS,required"`
	Com    string  `conf:"name:COM,rule:startswith=COM"`
	DieID  string  `conf:"name:DIE_ID"`
	Notes  []string
	Debug  bool `conf:"-"`
}

// sweepSchema is ivSweep without the unsupported Notes field.
type sweepSchema struct {
	ILim   float64 `conf:"name:I_LIM,rule:gt=0,lte=0.1"`
	VStart float64 `conf:"name:V_START"`
	Steps  int     `conf:"name:STEPS,required"`
	Com    string  `conf:"name:COM,rule:startswith=COM"`
	DieID  string
	Debug  bool `conf:"-"`

	internal int
}

func TestStructSchema(t *testing.T) {
	schema, validators, err := StructSchema(&sweepSchema{})
	if err != nil {
		t.Fatalf("StructSchema failed: %v", err)
	}

	wantKeys := []string{"I_LIM", "V_START", "STEPS", "COM", "DieID"}
	if got := schema.Keys(); strings.Join(got, ",") != strings.Join(wantKeys, ",") {
		t.Errorf("keys = %v, want %v", got, wantKeys)
	}

	for key, want := range map[string]Kind{"I_LIM": KindDouble, "STEPS": KindInt, "COM": KindString} {
		if got, _ := schema.Kind(key); got != want {
			t.Errorf("kind of %s = %v, want %v", key, got, want)
		}
	}

	// Required first, then one Rule per rule directive.
	if len(validators) != 3 {
		t.Fatalf("expected 3 validators, got %d", len(validators))
	}
}

func TestStructSchema_AcceptsValue(t *testing.T) {
	schema, _, err := StructSchema(sweepSchema{})
	if err != nil {
		t.Fatalf("StructSchema failed: %v", err)
	}
	if schema.Len() != 5 {
		t.Errorf("expected 5 keys, got %d", schema.Len())
	}
}

func TestStructSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  any
		wantErr error
	}{
		{name: "nil", target: nil, wantErr: ErrInvalidBindTarget},
		{name: "not a struct", target: new(int), wantErr: ErrInvalidBindTarget},
		{name: "unsupported field", target: &ivSweep{}, wantErr: ErrUnsupportedField},
		{name: "duplicate key", target: &struct {
			A int `conf:"name:N"`
			B int `conf:"name:N"`
		}{}, wantErr: ErrDuplicateSchemaKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := StructSchema(tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBind(t *testing.T) {
	schema, _, err := StructSchema(&sweepSchema{})
	if err != nil {
		t.Fatalf("StructSchema failed: %v", err)
	}

	cfg, _, err := NewParser(schema).
		WithLogger(zerolog.Nop()).
		ParseString("I_LIM = 1e-7\nSTEPS = 41\nCOM = COM3\nDieID = W12_D07\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	out := sweepSchema{VStart: -2, Debug: true}
	if err := Bind(cfg, &out); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	if out.ILim != 1e-7 {
		t.Errorf("ILim = %v, want 1e-7", out.ILim)
	}
	if out.Steps != 41 {
		t.Errorf("Steps = %d, want 41", out.Steps)
	}
	if out.Com != "COM3" || out.DieID != "W12_D07" {
		t.Errorf("strings not bound: %+v", out)
	}
	if out.VStart != -2 {
		t.Errorf("absent key should keep preset value, got VStart = %v", out.VStart)
	}
	if !out.Debug {
		t.Error("skipped field should be untouched")
	}
}

func TestBind_WithLoaderValidators(t *testing.T) {
	schema, validators, err := StructSchema(&sweepSchema{})
	if err != nil {
		t.Fatalf("StructSchema failed: %v", err)
	}

	loader := NewLoader(schema).
		WithSource(TextSource("mem", "I_LIM = 0.5\nCOM = tty0\n")).
		WithLogger(zerolog.Nop())
	for _, v := range validators {
		loader.WithValidator(v)
	}

	_, _, err = loader.Load(context.Background())
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	codes := make(map[string]string)
	for _, fe := range valErr.FieldErrors {
		codes[fe.Key] = fe.Code
	}
	want := map[string]string{"STEPS": ErrCodeRequired, "I_LIM": "lte", "COM": "startswith"}
	for key, code := range want {
		if codes[key] != code {
			t.Errorf("code for %s = %q, want %q", key, codes[key], code)
		}
	}
}

func TestBind_Errors(t *testing.T) {
	m := newMap(2)
	m.Set("N", IntValue(1))

	var notPtr struct{ N int }
	if err := Bind(m, notPtr); !errors.Is(err, ErrInvalidBindTarget) {
		t.Errorf("expected ErrInvalidBindTarget for non-pointer, got %v", err)
	}

	var nilPtr *struct{ N int }
	if err := Bind(m, nilPtr); !errors.Is(err, ErrInvalidBindTarget) {
		t.Errorf("expected ErrInvalidBindTarget for nil pointer, got %v", err)
	}

	mismatch := struct {
		N string
	}{}
	err := Bind(m, &mismatch)
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), `bind key "N"`) {
		t.Errorf("expected key in error, got %q", err.Error())
	}
}

func TestBind_Overflow(t *testing.T) {
	m := newMap(2)
	m.Set("SMALL", IntValue(300))
	m.Set("F32", DoubleValue(math.MaxFloat64))

	var small struct {
		Small int8 `conf:"name:SMALL"`
	}
	if err := Bind(m, &small); err == nil || !strings.Contains(err.Error(), "overflows int8") {
		t.Errorf("expected int8 overflow, got %v", err)
	}

	var f32 struct {
		F float32 `conf:"name:F32"`
	}
	if err := Bind(m, &f32); err == nil || !strings.Contains(err.Error(), "overflows float32") {
		t.Errorf("expected float32 overflow, got %v", err)
	}
}
