package linecfg

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/rs/zerolog"
)

// Loader reads lines from multiple sources, parses them as one stream and
// runs validators on the result. Sources are processed in order, so a key
// assigned by a later source overrides an earlier one (and sets DuplicateEntry).
type Loader struct {
	parser     *Parser
	sources    []Source
	validators []Validator
}

// NewLoader creates a Loader with no sources or validators.
func NewLoader(schema *Schema) *Loader {
	return &Loader{
		parser:     NewParser(schema),
		sources:    make([]Source, 0),
		validators: make([]Validator, 0),
	}
}

// WithSource adds a source. Sources are processed in order (later override earlier).
func (l *Loader) WithSource(src Source) *Loader {
	l.sources = append(l.sources, src)
	return l
}

// WithValidator adds a validator, run after a successful parse.
func (l *Loader) WithValidator(v Validator) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// WithLogger sets the logger that receives parse diagnostics.
func (l *Loader) WithLogger(logger zerolog.Logger) *Loader {
	l.parser.WithLogger(logger)
	return l
}

// OnDiagnostic registers a callback invoked for every parse diagnostic.
func (l *Loader) OnDiagnostic(fn func(Diagnostic)) *Loader {
	l.parser.OnDiagnostic(fn)
	return l
}

// Load reads all sources, parses and validates.
// Source, coercion and non-validation validator errors are returned with a nil
// map and zero status. A *ValidationError is returned with a nil map and the
// parse status.
func (l *Loader) Load(ctx context.Context) (*Map, Status, error) {
	// Step 1: collect lines from every source
	chunks := make([]sourceChunk, 0, len(l.sources))
	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		lines, err := src.Lines(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("load source %s: %w", src.Name(), err)
		}
		chunks = append(chunks, sourceChunk{name: src.Name(), lines: lines})
	}

	// Step 2: parse as one stream, keeping per-source line numbers
	cfg, status, err := l.parser.parse(concatChunks(chunks))
	if err != nil {
		return nil, 0, err
	}

	// Step 3: run validators
	if err := Validate(ctx, cfg, l.validators...); err != nil {
		return nil, status, err
	}

	return cfg, status, nil
}

// Validate runs validators in order. Key-level failures (*ValidationError)
// are aggregated into one *ValidationError; any other error aborts.
func Validate(ctx context.Context, cfg *Map, validators ...Validator) error {
	var all []FieldError
	for i, v := range validators {
		err := v.Validate(ctx, cfg)
		if err == nil {
			continue
		}

		var valErr *ValidationError
		if errors.As(err, &valErr) {
			all = append(all, valErr.FieldErrors...)
			continue
		}
		return fmt.Errorf("validator %d failed: %w", i, err)
	}

	if len(all) > 0 {
		return &ValidationError{FieldErrors: all}
	}
	return nil
}

type sourceChunk struct {
	name  string
	lines []string
}

func concatChunks(chunks []sourceChunk) iter.Seq[sourceLine] {
	return func(yield func(sourceLine) bool) {
		for _, c := range chunks {
			for i, text := range c.lines {
				if !yield(sourceLine{text: text, source: c.name, num: i + 1}) {
					return
				}
			}
		}
	}
}

type textSource struct {
	name string
	text string
}

// TextSource returns a Source serving the lines of an in-memory string.
func TextSource(name, text string) Source {
	return &textSource{name: name, text: text}
}

func (t *textSource) Name() string { return t.name }

func (t *textSource) Lines(ctx context.Context) ([]string, error) {
	return SplitLines(t.text), nil
}

// SplitLines splits text on "\n", dropping a single trailing empty line.
// Carriage returns are left for the parser's whitespace trimming.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
