package normalize

import (
	"strings"
)

// EnvKey maps an environment variable name (prefix already stripped) to a
// config key. Double underscores separate levels so the result lines up with
// keys flattened from structured files; single underscores are kept.
// With lower set the key is lowercased as well.
// Examples:
//   - EnvKey("I_LIM", false) → "I_LIM"
//   - EnvKey("SWEEP__V_START", false) → "SWEEP.V_START"
//   - EnvKey("SMU__I_LIM", true) → "smu.i_lim"
func EnvKey(name string, lower bool) string {
	key := strings.ReplaceAll(name, "__", ".")
	if lower {
		key = strings.ToLower(key)
	}
	return key
}

// JoinPath joins a parent path and a child key with a dot.
// Either side may be empty, in which case the other is returned.
// Examples:
//   - JoinPath("sweep", "V_START") → "sweep.V_START"
//   - JoinPath("", "COM") → "COM"
func JoinPath(parent, key string) string {
	switch {
	case parent == "":
		return key
	case key == "":
		return parent
	default:
		return parent + "." + key
	}
}
