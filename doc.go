// Package linecfg provides typed, schema-validated parsing of line-oriented
// "key = value" configuration text.
//
// Quick Start:
//
//	schema, err := linecfg.NewSchema(
//	    linecfg.Double("I_LIM"),
//	    linecfg.String("COM"),
//	)
//	if err != nil {
//	    log.Fatal(err) // duplicate key or unknown type tag
//	}
//
//	cfg, status, err := linecfg.NewParser(schema).ParseReader(f)
//	if err != nil {
//	    log.Fatal(err) // malformed numeric literal
//	}
//	if status.Has(linecfg.MissingKey) {
//	    log.Fatal("missing configuration keys")
//	}
//	iLim, _ := cfg.Double("I_LIM")
//
// Input format: one "key = value" per line, "#" starts a full-line comment,
// blank lines are ignored. Only the first "=" separates key and value.
//
// Recoverable anomalies are reported through the Status bitmask (DuplicateEntry,
// MissingKey) and advisory diagnostics; malformed numeric values and schema
// authoring mistakes are returned as errors.
//
// A schema can also be derived from a flat struct with `conf` tags and the
// parsed map bound back onto it:
//
//	type Sweep struct {
//	    ILim float64 `conf:"name:I_LIM,required,rule:gt=0,lte=0.1"`
//	    Com  string  `conf:"name:COM"`
//	}
//	schema, validators, err := linecfg.StructSchema(Sweep{})
//	...
//	var s Sweep
//	err = linecfg.Bind(cfg, &s)
//
// See example_test.go for detailed usage.
package linecfg
