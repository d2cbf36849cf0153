// Package sourceenv serves environment variables as configuration lines.
//
// Each selected variable becomes a "key = value" line. Double underscores
// separate levels (SWEEP__V_START → SWEEP.V_START), matching keys flattened
// from YAML, JSON and TOML files. With Lowercase set, keys are lowercased too.
//
// Example:
//
//	source := sourceenv.New(sourceenv.Options{Prefix: "IV_"})
//	loader := linecfg.NewLoader(schema).WithSource(source)
package sourceenv
