package sourcefile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Azhovan/linecfg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// schemaDoc is the on-disk schema layout, e.g. in TOML:
//
//	[[field]]
//	key = "I_LIM"
//	type = "double"
type schemaDoc struct {
	Fields []schemaField `yaml:"field" json:"field" toml:"field"`
}

type schemaField struct {
	Key  string `yaml:"key" json:"key" toml:"key"`
	Type string `yaml:"type" json:"type" toml:"type"`
}

// LoadSchema reads key declarations from a YAML, JSON or TOML file.
// Declarations keep file order; duplicates and type tags are checked later
// by linecfg.NewSchema.
func LoadSchema(path string) ([]linecfg.Decl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file %s: %w", path, err)
	}

	var doc schemaDoc
	switch inferFormat(path) {
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	case "json":
		err = json.Unmarshal(data, &doc)
	case "toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported schema format for %s (supported: yaml, json, toml)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}

	decls := make([]linecfg.Decl, 0, len(doc.Fields))
	for i, f := range doc.Fields {
		if f.Key == "" {
			return nil, fmt.Errorf("schema file %s: field %d has no key", path, i+1)
		}
		decls = append(decls, linecfg.Decl{Key: f.Key, Type: f.Type})
	}
	return decls, nil
}
