package linecfg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var tagValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New()
})

type ruleValidator struct {
	key string
	tag string
}

// Rule validates the value of key against a go-playground/validator tag
// (e.g. "min=1e-9,max=0.1", "startswith=COM", "oneof=A B"). The check runs
// on the coerced value, so numeric constraints compare numbers.
// Absent keys are skipped; their absence is reported by MissingKey.
func Rule(key, tag string) Validator {
	return &ruleValidator{key: key, tag: tag}
}

func (r *ruleValidator) Validate(ctx context.Context, cfg *Map) (err error) {
	v, ok := cfg.Get(r.key)
	if !ok {
		return nil
	}

	// validator panics on undefined tags and malformed params
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rule %q for key %q: %v", r.tag, r.key, p)
		}
	}()

	err = tagValidator().Var(v.Interface(), r.tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("rule %q for key %q: %w", r.tag, r.key, err)
	}

	out := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("value %s fails %q", v.Text(-1), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("value %s fails %s=%s", v.Text(-1), fe.Tag(), fe.Param())
		}
		out = append(out, FieldError{Key: r.key, Code: fe.Tag(), Message: msg})
	}
	return &ValidationError{FieldErrors: out}
}

// Charset requires every character of a string key to be a letter, a digit
// or one of extra. Non-string and absent keys are skipped.
func Charset(key, extra string) Validator {
	return ValidatorFunc(func(ctx context.Context, cfg *Map) error {
		s, ok := cfg.String(key)
		if !ok {
			return nil
		}
		for _, r := range s {
			if isAlnum(r) || strings.ContainsRune(extra, r) {
				continue
			}
			return &ValidationError{FieldErrors: []FieldError{{
				Key:     key,
				Code:    ErrCodeCharset,
				Message: fmt.Sprintf("invalid character %q in %q", r, s),
			}}}
		}
		return nil
	})
}

// Required fails for each key that was not assigned.
func Required(keys ...string) Validator {
	return ValidatorFunc(func(ctx context.Context, cfg *Map) error {
		var errs []FieldError
		for _, k := range keys {
			if !cfg.Has(k) {
				errs = append(errs, FieldError{
					Key:     k,
					Code:    ErrCodeRequired,
					Message: "key is required but not provided",
				})
			}
		}
		if len(errs) > 0 {
			return &ValidationError{FieldErrors: errs}
		}
		return nil
	})
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
