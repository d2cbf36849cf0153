// Package sourcefile reads configuration lines and schema declarations from files.
//
// Native "key = value" files are served line by line. YAML, JSON and TOML
// documents are flattened to dot-separated keys and rendered as
// "key = value" lines, so every format goes through the same schema checks.
// Format is auto-detected from extension.
//
// Example:
//
//	decls, err := sourcefile.LoadSchema("iv.schema.toml")
//	schema, err := linecfg.NewSchema(decls...)
//	loader := linecfg.NewLoader(schema).
//	    WithSource(sourcefile.New("iv.cfg", sourcefile.Options{Required: true}))
package sourcefile
