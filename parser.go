package linecfg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxLineSize bounds a single line read by ParseReader.
const maxLineSize = 1 << 20

// Parser validates and coerces "key = value" lines against a Schema.
// A Parser holds no per-parse state; each call allocates its own fill state
// and result map, so a configured Parser may be reused and shared.
type Parser struct {
	schema    *Schema
	logger    zerolog.Logger
	hasLogger bool
	handlers  []func(Diagnostic)
}

// NewParser creates a Parser for schema. Diagnostics go to the global
// zerolog logger (github.com/rs/zerolog/log) unless WithLogger is used.
func NewParser(schema *Schema) *Parser {
	return &Parser{schema: schema}
}

// WithLogger sets the logger that receives diagnostics at warn level.
// Pass zerolog.Nop() to silence them.
func (p *Parser) WithLogger(logger zerolog.Logger) *Parser {
	p.logger = logger
	p.hasLogger = true
	return p
}

// OnDiagnostic registers a callback invoked for every diagnostic, in order.
func (p *Parser) OnDiagnostic(fn func(Diagnostic)) *Parser {
	p.handlers = append(p.handlers, fn)
	return p
}

// Schema returns the schema the parser validates against.
func (p *Parser) Schema() *Schema { return p.schema }

// Parse consumes lines in order and returns the coerced values and status.
// A malformed numeric value aborts the parse with a *LiteralError and no map.
func (p *Parser) Parse(lines iter.Seq[string]) (*Map, Status, error) {
	return p.parse(numbered("", lines))
}

// ParseString parses newline-separated text.
func (p *Parser) ParseString(text string) (*Map, Status, error) {
	return p.Parse(strings.Lines(text))
}

// ParseReader parses lines read from r. The caller owns opening and closing r.
func (p *Parser) ParseReader(r io.Reader) (*Map, Status, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	cfg, status, err := p.Parse(func(yield func(string) bool) {
		for sc.Scan() {
			if !yield(sc.Text()) {
				return
			}
		}
	})
	if err != nil {
		return nil, 0, err
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("read config lines: %w", err)
	}
	return cfg, status, nil
}

// Parse builds a schema from decls and parses lines against it.
func Parse(decls []Decl, lines iter.Seq[string]) (*Map, Status, error) {
	schema, err := NewSchema(decls...)
	if err != nil {
		return nil, 0, err
	}
	return NewParser(schema).Parse(lines)
}

// sourceLine is one raw line tagged with its origin.
type sourceLine struct {
	text   string
	source string
	num    int
}

func numbered(source string, lines iter.Seq[string]) iter.Seq[sourceLine] {
	return func(yield func(sourceLine) bool) {
		n := 0
		for text := range lines {
			n++
			if !yield(sourceLine{text: text, source: source, num: n}) {
				return
			}
		}
	}
}

// parse is the single pass over lines followed by the missing-key pass.
func (p *Parser) parse(lines iter.Seq[sourceLine]) (*Map, Status, error) {
	filled := make(map[string]bool, p.schema.Len())
	cfg := newMap(p.schema.Len())
	var status Status

	for ln := range lines {
		text := strings.TrimSpace(ln.text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		rawKey, rawValue, found := strings.Cut(text, "=")
		if !found {
			p.report(Diagnostic{Code: CodeInvalidLine, Source: ln.source, Line: ln.num, Text: text})
			continue
		}

		key := strings.TrimSpace(rawKey)
		value := strings.TrimSpace(rawValue)

		kind, known := p.schema.Kind(key)
		if !known {
			p.report(Diagnostic{Code: CodeUnknownKey, Key: key, Source: ln.source, Line: ln.num})
			continue
		}

		if filled[key] {
			p.report(Diagnostic{Code: CodeDuplicateEntry, Key: key, Source: ln.source, Line: ln.num})
			status |= DuplicateEntry
		}

		v, err := coerce(kind, value)
		if err != nil {
			return nil, 0, &LiteralError{
				Key:    key,
				Kind:   kind,
				Text:   value,
				Source: ln.source,
				Line:   ln.num,
				Err:    err,
			}
		}

		cfg.set(key, v, Provenance{Key: key, Source: ln.source, Line: ln.num})
		filled[key] = true
	}

	for _, key := range p.schema.keys {
		if !filled[key] {
			p.report(Diagnostic{Code: CodeMissingKey, Key: key})
			status |= MissingKey
		}
	}

	return cfg, status, nil
}

// coerce converts trimmed text to kind. Numbers are decimal only and may
// use underscores between digits. Doubles outside the float64 range
// saturate to ±Inf (or 0) instead of failing.
func coerce(kind Kind, text string) (Value, error) {
	switch kind {
	case KindInt:
		n, err := strconv.ParseInt(stripDigitSeparators(text), 10, 64)
		if err != nil {
			return Value{}, withNum(err, text)
		}
		return IntValue(n), nil
	case KindDouble:
		if hexPrefixed(text) {
			return Value{}, &strconv.NumError{Func: "ParseFloat", Num: text, Err: strconv.ErrSyntax}
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, err
		}
		return DoubleValue(f), nil
	default:
		return StringValue(text), nil
	}
}

// stripDigitSeparators drops underscores that sit between two digits.
// Text with any other underscore is returned unchanged so it fails to parse.
func stripDigitSeparators(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && (i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1])) {
			return s
		}
	}
	return strings.ReplaceAll(s, "_", "")
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func hexPrefixed(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// withNum reports the original text in a strconv error.
func withNum(err error, text string) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return &strconv.NumError{Func: numErr.Func, Num: text, Err: numErr.Err}
	}
	return err
}

func (p *Parser) report(d Diagnostic) {
	logger := p.logger
	if !p.hasLogger {
		logger = log.Logger
	}

	ev := logger.Warn().Str("code", d.Code)
	if d.Key != "" {
		ev = ev.Str("key", d.Key)
	}
	if d.Source != "" {
		ev = ev.Str("source", d.Source)
	}
	if d.Line > 0 {
		ev = ev.Int("line", d.Line)
	}
	ev.Msg(d.Message())

	for _, fn := range p.handlers {
		fn(d)
	}
}
