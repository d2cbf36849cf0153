package sourcefile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Azhovan/linecfg"
	"github.com/Azhovan/linecfg/internal/normalize"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures file source behavior.
type Options struct {
	// Format: "kv", "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (no lines).
	Required bool
}

type fileSource struct {
	path string
	opts Options
}

// New creates a file-based line source.
func New(path string, opts Options) linecfg.Source {
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Lines reads the file and returns its configuration lines.
func (f *fileSource) Lines(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.opts.Required {
				return nil, fmt.Errorf("required config file not found: %s: %w", f.path, err)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", f.path, err)
	}

	format := f.opts.Format
	if format == "" {
		format = inferFormat(f.path)
	}

	if format == "kv" {
		return linecfg.SplitLines(string(data)), nil
	}

	raw, err := decode(format, f.path, data)
	if err != nil {
		return nil, err
	}

	// Flatten nested structures to dot-separated keys
	flattened := make(map[string]string)
	if err := flatten("", raw, flattened); err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}

	keys := make([]string, 0, len(flattened))
	for k := range flattened {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+" = "+flattened[k])
	}
	return lines, nil
}

// Name returns a human-readable identifier for this source.
func (f *fileSource) Name() string {
	return "file:" + filepath.Base(f.path)
}

func decode(format, path string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", path, err)
		}
	case "json":
		// UseNumber keeps integer literals exact instead of float64
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse JSON file %s: %w", path, err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("parse JSON file %s: unexpected data after top-level value", path)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: kv, yaml, json, toml)", format)
	}
	return raw, nil
}

// flatten renders nested maps as dot-separated keys with text values.
func flatten(prefix string, value any, result map[string]string) error {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			if err := flatten(normalize.JoinPath(prefix, key), val, result); err != nil {
				return err
			}
		}
		return nil
	case map[any]any:
		for key, val := range v {
			keyStr, ok := key.(string)
			if !ok {
				continue
			}
			if err := flatten(normalize.JoinPath(prefix, keyStr), val, result); err != nil {
				return err
			}
		}
		return nil
	case []any:
		return fmt.Errorf("key %q: arrays are not supported", prefix)
	}

	if prefix == "" {
		return nil
	}
	text, err := scalarText(value)
	if err != nil {
		return fmt.Errorf("key %q: %w", prefix, err)
	}
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("key %q: multi-line values are not supported", prefix)
	}
	result[prefix] = text
	return nil
}

func scalarText(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	case "", ".cfg", ".conf", ".txt", ".kv", ".env":
		return "kv"
	default:
		return ""
	}
}
