package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Azhovan/linecfg"
	"github.com/Azhovan/linecfg/sourceenv"
	"github.com/Azhovan/linecfg/sourcefile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	schema    string
	envPrefix string
	rules     []string
	precision int
	json      bool
	strict    bool
}

func newCheckCommand() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check --schema FILE [flags] CONFIG...",
		Short: "Parse configuration files against a schema",
		Long: `Parse configuration files against a schema and print the result.

Config files are read in order, so later files override earlier ones.
Environment variables selected by --env-prefix are applied last.

The command fails when:
  - the schema is invalid
  - a numeric value cannot be parsed
  - a schema key is never assigned
  - a --rule check fails
  - a key is assigned more than once and --strict is set`,
		Example: `  # Check a sweep configuration
  linecfg check --schema iv.schema.yaml sweep.cfg

  # Layer a site override and environment variables, validate ranges
  linecfg check --schema iv.schema.toml --env-prefix IV_ \
    --rule 'I_LIM=gt=0,lte=0.1' --rule 'COM=startswith=COM' \
    base.cfg site.cfg

  # Machine-readable output
  linecfg check --schema iv.schema.yaml --json sweep.cfg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "schema file (yaml, json or toml)")
	cmd.Flags().StringVar(&opts.envPrefix, "env-prefix", "", "apply environment variables with this prefix last")
	cmd.Flags().StringArrayVar(&opts.rules, "rule", nil, "validation rule KEY=TAG (repeatable)")
	cmd.Flags().IntVar(&opts.precision, "precision", 3, "decimals printed for double values")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on duplicate entries")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions, paths []string) error {
	decls, err := sourcefile.LoadSchema(opts.schema)
	if err != nil {
		return err
	}
	schema, err := linecfg.NewSchema(decls...)
	if err != nil {
		return err
	}

	loader := linecfg.NewLoader(schema).WithLogger(log.Logger)
	for _, p := range paths {
		loader.WithSource(sourcefile.New(p, sourcefile.Options{Required: true}))
	}
	if opts.envPrefix != "" {
		loader.WithSource(sourceenv.New(sourceenv.Options{Prefix: opts.envPrefix}))
	}
	for _, r := range opts.rules {
		key, tag, ok := strings.Cut(r, "=")
		if !ok || key == "" || tag == "" {
			return fmt.Errorf("invalid rule %q: expected KEY=TAG", r)
		}
		loader.WithValidator(linecfg.Rule(key, tag))
	}

	log.Debug().
		Str("schema", opts.schema).
		Strs("configs", paths).
		Str("env_prefix", opts.envPrefix).
		Msg("Checking configuration")

	cfg, status, err := loader.Load(cmd.Context())
	if err != nil {
		var valErr *linecfg.ValidationError
		if errors.As(err, &valErr) {
			for _, fe := range valErr.FieldErrors {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", fe.Key, fe.Message, fe.Code)
			}
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
	} else if err := linecfg.Dump(out, cfg, linecfg.WithPrecision(opts.precision)); err != nil {
		return err
	}

	if status.Has(linecfg.MissingKey) {
		var missing []string
		for _, k := range schema.Keys() {
			if !cfg.Has(k) {
				missing = append(missing, k)
			}
		}
		return fmt.Errorf("missing keys: %s", strings.Join(missing, ", "))
	}
	if opts.strict && status.Has(linecfg.DuplicateEntry) {
		return errors.New("duplicate entries found (strict mode)")
	}

	return nil
}
