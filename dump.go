package linecfg

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	precision  int                // Decimals for double values
	keyWidth   int                // Right-justified key column width
	valueWidth int                // Right-justified value column width
	renderer   *lipgloss.Renderer // Renderer for the default styles
	styles     []lipgloss.Style   // Alternating line styles, nil = defaults
}

// WithPrecision sets the number of decimals used for double values. Default: 3.
func WithPrecision(n int) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.precision = n
	}
}

// WithWidths sets the key and value column widths. Default: 20 and 20.
func WithWidths(key, value int) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.keyWidth = key
		cfg.valueWidth = value
	}
}

// WithStyles sets the two styles alternated on even and odd lines.
func WithStyles(even, odd lipgloss.Style) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.styles = []lipgloss.Style{even, odd}
	}
}

// WithRenderer sets the renderer used to build the default styles.
// By default a renderer is created for the destination writer, which
// disables colors when it is not a terminal.
func WithRenderer(r *lipgloss.Renderer) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.renderer = r
	}
}

// DefaultStyles returns the default highlight pair: bright white on black,
// then black on bright white. Tabs in values are kept as-is.
func DefaultStyles(r *lipgloss.Renderer) (even, odd lipgloss.Style) {
	black, white := lipgloss.Color("0"), lipgloss.Color("15")
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	even = base.Background(black).Foreground(white)
	odd = base.Background(white).Foreground(black)
	return even, odd
}

// Dump writes one "key = value" line per entry in map order, with both
// columns right-justified and line styles alternating for legibility.
// Returns an error only if writing to w fails.
func Dump(w io.Writer, cfg *Map, opts ...DumpOption) error {
	config := dumpConfig{
		precision:  3,
		keyWidth:   20,
		valueWidth: 20,
	}
	for _, opt := range opts {
		opt(&config)
	}

	styles := config.styles
	if styles == nil {
		r := config.renderer
		if r == nil {
			r = lipgloss.NewRenderer(w)
		}
		even, odd := DefaultStyles(r)
		styles = []lipgloss.Style{even, odd}
	}

	idx := 0
	for key, v := range cfg.All() {
		line := fmt.Sprintf("%*s = %*s", config.keyWidth, key, config.valueWidth, v.Text(config.precision))
		if _, err := fmt.Fprintln(w, styles[idx%2].Render(line)); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
		idx++
	}

	return nil
}
