package linecfg

import "fmt"

// Provenance describes where a key's winning assignment came from.
type Provenance struct {
	Key    string // Schema key (e.g., "I_LIM")
	Source string // Source identifier (e.g., "file:iv.cfg"), empty for plain line sequences
	Line   int    // 1-based line number within the source
}

// String formats the location as "source:line" or "line N".
func (p Provenance) String() string {
	if p.Source == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Source, p.Line)
}

// Provenance returns the location of the assignment that produced key's value.
func (m *Map) Provenance(key string) (Provenance, bool) {
	e, ok := m.entries[key]
	if !ok {
		return Provenance{}, false
	}
	return e.prov, true
}
