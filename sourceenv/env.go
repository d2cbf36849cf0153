package sourceenv

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/Azhovan/linecfg"
	"github.com/Azhovan/linecfg/internal/normalize"
)

// Options configures environment variable source behavior.
type Options struct {
	// Prefix filters vars starting with prefix (stripped from the key).
	// Empty = load all vars.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, prefix matching is case-insensitive (IV_ matches iv_, Iv_, etc.).
	// When true, prefix must match exactly.
	CaseSensitive bool

	// Lowercase lowercases keys after prefix stripping.
	// Default: false, case is kept (IV_I_LIM with prefix IV_ → I_LIM).
	Lowercase bool
}

type envSource struct {
	opts Options
}

// New creates an environment variable source.
func New(opts Options) linecfg.Source {
	return &envSource{opts: opts}
}

// Lines scans environment variables, filters by prefix and returns one
// "key = value" line per variable, sorted by key.
// Variables whose value spans several lines are skipped.
func (e *envSource) Lines(ctx context.Context) ([]string, error) {
	values := make(map[string]string)

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if e.opts.Prefix != "" {
			var hasPrefix bool
			if e.opts.CaseSensitive {
				hasPrefix = strings.HasPrefix(key, e.opts.Prefix)
			} else {
				hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(e.opts.Prefix))
			}

			if !hasPrefix {
				continue
			}
			key = key[len(e.opts.Prefix):]
		}

		if key == "" || strings.ContainsAny(value, "\r\n") {
			continue
		}

		values[normalize.EnvKey(key, e.opts.Lowercase)] = value
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+" = "+values[k])
	}
	return lines, nil
}

// Name returns a human-readable identifier for this source.
func (e *envSource) Name() string {
	if e.opts.Prefix == "" {
		return "env"
	}
	return "env:" + e.opts.Prefix
}
