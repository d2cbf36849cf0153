package linecfg

// Schema is the ordered, immutable set of expected keys and their kinds.
// Safe for concurrent use once constructed.
type Schema struct {
	keys  []string
	kinds map[string]Kind
}

// NewSchema builds a schema from declarations in order.
// Fails on the first repeated key or unrecognised type tag.
func NewSchema(decls ...Decl) (*Schema, error) {
	s := &Schema{
		keys:  make([]string, 0, len(decls)),
		kinds: make(map[string]Kind, len(decls)),
	}

	for _, d := range decls {
		if _, dup := s.kinds[d.Key]; dup {
			return nil, &SchemaError{Key: d.Key, Type: d.Type, Err: ErrDuplicateSchemaKey}
		}

		kind, err := ParseKind(d.Type)
		if err != nil {
			return nil, &SchemaError{Key: d.Key, Type: d.Type, Err: ErrUnknownTypeTag}
		}

		s.kinds[d.Key] = kind
		s.keys = append(s.keys, d.Key)
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Intended for package-level schemas whose declarations are fixed in code.
func MustSchema(decls ...Decl) *Schema {
	s, err := NewSchema(decls...)
	if err != nil {
		panic(err)
	}
	return s
}

// Keys returns the declared keys in declaration order.
func (s *Schema) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of declared keys.
func (s *Schema) Len() int { return len(s.keys) }

// Has reports whether key is declared.
func (s *Schema) Has(key string) bool {
	_, ok := s.kinds[key]
	return ok
}

// Kind returns the declared kind of key.
func (s *Schema) Kind(key string) (Kind, bool) {
	k, ok := s.kinds[key]
	return k, ok
}

// Decls returns the schema as declarations with canonical type tags.
func (s *Schema) Decls() []Decl {
	out := make([]Decl, len(s.keys))
	for i, k := range s.keys {
		out[i] = Decl{Key: k, Type: s.kinds[k].String()}
	}
	return out
}
