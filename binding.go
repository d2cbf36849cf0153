package linecfg

import (
	"fmt"
	"reflect"
	"strings"
)

// tagConfig holds parsed directives from a struct field's `conf` tag.
type tagConfig struct {
	name     string // Schema key (name:I_LIM), defaults to the field name
	rule     string // Validator tag (rule:gt=0,lte=0.1)
	required bool   // Key must be assigned (required or required:true)
	skip     bool   // Field is ignored ("-")
}

// parseTag parses a `conf` struct tag into a structured tagConfig.
// Tag format: "directive1:value1,directive2:value2,..."
// Boolean directives can omit `:true` (e.g., "required" == "required:true")
func parseTag(tag string) tagConfig {
	cfg := tagConfig{}

	if strings.TrimSpace(tag) == "-" {
		cfg.skip = true
		return cfg
	}

	for _, directive := range splitDirectives(tag) {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		name, value, _ := strings.Cut(directive, ":")
		switch strings.TrimSpace(name) {
		case "name":
			cfg.name = strings.TrimSpace(value)
		case "rule":
			cfg.rule = strings.TrimSpace(value)
		case "required":
			// Anything but an explicit "false" means true
			cfg.required = value != "false"
		}
	}

	return cfg
}

// splitDirectives splits a tag string into individual directives.
// A rule value keeps its commas up to the next known directive.
func splitDirectives(tag string) []string {
	var directives []string
	var current strings.Builder
	inRule := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]

		if current.Len() == 0 && ch == ' ' {
			continue
		}

		if !inRule && current.Len() == 0 && strings.HasPrefix(tag[i:], "rule:") {
			inRule = true
			current.WriteString("rule:")
			i += len("rule:") - 1
			continue
		}

		if ch != ',' {
			current.WriteByte(ch)
			continue
		}

		if inRule && !startsWithDirective(tag[i+1:]) {
			current.WriteByte(ch)
			continue
		}

		inRule = false
		directives = append(directives, current.String())
		current.Reset()
	}

	if current.Len() > 0 {
		directives = append(directives, current.String())
	}

	return directives
}

// startsWithDirective checks if a string starts with a known directive name.
func startsWithDirective(s string) bool {
	s = strings.TrimSpace(s)
	for _, d := range []string{"name:", "rule:", "required"} {
		if strings.HasPrefix(s, d) {
			return true
		}
	}
	return false
}

// boundField is one struct field that maps to a schema key.
type boundField struct {
	index []int
	key   string
	kind  Kind
	tag   tagConfig
}

// structFields walks the exported fields of struct type t.
// Nested structs are rejected: the line format has no sections.
func structFields(t reflect.Type) ([]boundField, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidBindTarget, t)
	}

	fields := make([]boundField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := parseTag(field.Tag.Get("conf"))
		if tag.skip {
			continue
		}

		kind, ok := kindOf(field.Type)
		if !ok {
			return nil, fmt.Errorf("%w: field %s has type %s", ErrUnsupportedField, field.Name, field.Type)
		}

		key := tag.name
		if key == "" {
			key = field.Name
		}
		fields = append(fields, boundField{index: field.Index, key: key, kind: kind, tag: tag})
	}
	return fields, nil
}

func kindOf(t reflect.Type) (Kind, bool) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, true
	case reflect.Float32, reflect.Float64:
		return KindDouble, true
	case reflect.String:
		return KindString, true
	default:
		return 0, false
	}
}

// StructSchema derives a schema from the exported fields of a struct (or
// pointer to struct), in field order. Keys come from the `conf:"name:KEY"`
// directive or the field name; kinds come from the Go type (signed integers,
// floats and strings). `required` and `rule:TAG` directives become validators.
//
// Example:
//
//	type Sweep struct {
//		ILim  float64 `conf:"name:I_LIM,rule:gt=0,lte=0.1"`
//		Com   string  `conf:"name:COM,required"`
//		Notes string  `conf:"-"`
//	}
func StructSchema(v any) (*Schema, []Validator, error) {
	if v == nil {
		return nil, nil, ErrInvalidBindTarget
	}
	fields, err := structFields(reflect.TypeOf(v))
	if err != nil {
		return nil, nil, err
	}

	decls := make([]Decl, 0, len(fields))
	var required []string
	var validators []Validator
	for _, f := range fields {
		decls = append(decls, Decl{Key: f.key, Type: f.kind.String()})
		if f.tag.required {
			required = append(required, f.key)
		}
		if f.tag.rule != "" {
			validators = append(validators, Rule(f.key, f.tag.rule))
		}
	}

	schema, err := NewSchema(decls...)
	if err != nil {
		return nil, nil, err
	}
	if len(required) > 0 {
		validators = append([]Validator{Required(required...)}, validators...)
	}
	return schema, validators, nil
}

// Bind copies values from cfg into the fields of the struct dst points to.
// Fields whose key is absent from cfg keep their current value, so defaults
// can be set before binding.
func Bind(cfg *Map, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrInvalidBindTarget, dst)
	}

	fields, err := structFields(rv.Type())
	if err != nil {
		return err
	}

	elem := rv.Elem()
	for _, f := range fields {
		v, ok := cfg.Get(f.key)
		if !ok {
			continue
		}
		if err := setField(elem.FieldByIndex(f.index), v); err != nil {
			return fmt.Errorf("bind key %q: %w", f.key, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, v Value) error {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.AsInt()
		if !ok {
			return fmt.Errorf("%w: %s into %s", ErrKindMismatch, v.Kind(), fv.Type())
		}
		if fv.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, fv.Type())
		}
		fv.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, ok := v.AsDouble()
		if !ok {
			return fmt.Errorf("%w: %s into %s", ErrKindMismatch, v.Kind(), fv.Type())
		}
		if fv.OverflowFloat(f) {
			return fmt.Errorf("value %g overflows %s", f, fv.Type())
		}
		fv.SetFloat(f)
	case reflect.String:
		s, ok := v.AsString()
		if !ok {
			return fmt.Errorf("%w: %s into %s", ErrKindMismatch, v.Kind(), fv.Type())
		}
		fv.SetString(s)
	}
	return nil
}
