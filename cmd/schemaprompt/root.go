package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/schemaprompt"
	"github.com/reoring/schemaprompt/i18n"
	"github.com/reoring/schemaprompt/term"
)

type rootOptions struct {
	schema      string
	schemaFile  string
	prompt      string
	plain       bool
	lang        string
	indentWidth int
	logLevel    string
	sets        []string
}

// streams are the process's standard streams, replaceable in tests.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func newRootCmd(s streams, extracted []schemaprompt.Override) *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "schemaprompt (--schema SCHEMA | --schema-file FILE) [--set POINTER VALUE]...",
		Short: "Build a JSON value interactively from a JSON Schema",
		Long: `schemaprompt walks a JSON Schema and prompts for every value it needs,
validating objects and arrays as they are completed. The result is printed as
indented JSON.

Values can be fixed up front with --set POINTER VALUE (or --set POINTER=VALUE).
VALUE is parsed as JSON when possible and used as a plain string otherwise.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := append([]schemaprompt.Override(nil), extracted...)
			for _, kv := range o.sets {
				ov, err := parseSetPair(kv)
				if err != nil {
					return err
				}
				overrides = append(overrides, ov)
			}
			return run(cmd, s, o, overrides)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.schema, "schema", "", "inline schema (JSON or YAML)")
	f.StringVar(&o.schemaFile, "schema-file", "", "schema file (.json, .yaml or .yml)")
	f.StringArrayVar(&o.sets, "set", nil, "fix the value at a JSON Pointer: --set POINTER VALUE or --set POINTER=VALUE (repeatable)")
	f.StringVar(&o.prompt, "prompt", "", "label printed for the top-level value")
	f.BoolVar(&o.plain, "plain", false, "read answers line by line without colors")
	f.StringVar(&o.lang, "lang", "", "message language (en, ja)")
	f.IntVar(&o.indentWidth, "indent-width", 0, "spaces per nesting level")
	f.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.MarkFlagsMutuallyExclusive("schema", "schema-file")
	cmd.MarkFlagsOneRequired("schema", "schema-file")
	return cmd
}

func run(cmd *cobra.Command, s streams, o *rootOptions, overrides []schemaprompt.Override) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Lang = o.lang
	}
	if flags.Changed("indent-width") {
		cfg.IndentWidth = o.indentWidth
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("plain") {
		cfg.Plain = o.plain
	}
	if !i18n.Supported(cfg.Lang) {
		return fmt.Errorf("unsupported language %q", cfg.Lang)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	schema, err := loadSchema(o, s.err)
	if err != nil {
		return err
	}

	tr := i18n.ForLanguage(cfg.Lang)
	input := newInputHandler(s, cfg, tr)
	log.Debug("starting", zap.String("lang", cfg.Lang), zap.Bool("plain", cfg.Plain), zap.Int("overrides", len(overrides)))

	gen := schemaprompt.New(input,
		schemaprompt.WithLogger(log),
		schemaprompt.WithTranslator(tr),
		schemaprompt.WithPromptText(o.prompt),
	)
	v, err := gen.GenerateWithOverrides(cmd.Context(), schema, overrides)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, string(out))
	return err
}

func loadSchema(o *rootOptions, banner io.Writer) (*schemaprompt.Schema, error) {
	if o.schema != "" {
		s, err := schemaprompt.ParseSchema([]byte(o.schema))
		if err != nil {
			return nil, fmt.Errorf("parsing schema: %w", err)
		}
		return s, nil
	}
	s, err := schemaprompt.LoadSchemaFile(o.schemaFile)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}
	fmt.Fprintf(banner, "Schema: %s\n\n", s.String())
	return s, nil
}

func newInputHandler(s streams, cfg Config, tr i18n.Translator) schemaprompt.InputHandler {
	if cfg.Plain || !isTerminal(s.in) || !isTerminal(s.err) {
		opts := []term.LineOption{term.WithLineIndentWidth(cfg.IndentWidth), term.WithLineTranslator(tr)}
		if cfg.Plain {
			opts = append(opts, term.WithLinePlain())
		}
		return term.NewLineHandler(s.in, s.err, opts...)
	}
	return term.NewHandler(s.in, s.err, term.WithIndentWidth(cfg.IndentWidth), term.WithTranslator(tr))
}

// extractSetArgs removes the two-token form "--set POINTER VALUE" from args,
// which the flag parser cannot express, and returns the pairs in order. The
// forms "--set=POINTER=VALUE" and "--set POINTER=VALUE" are left to the flag.
func extractSetArgs(args []string) ([]string, []schemaprompt.Override, error) {
	var rest []string
	var pairs []schemaprompt.Override
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if a != "--set" {
			rest = append(rest, a)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, errors.New("--set requires a POINTER and a VALUE")
		}
		ptr := args[i+1]
		single := strings.Contains(ptr, "=") && (i+2 >= len(args) || strings.HasPrefix(args[i+2], "--"))
		if single {
			rest = append(rest, a, ptr)
			i++
			continue
		}
		if i+2 >= len(args) {
			return nil, nil, fmt.Errorf("--set %s requires a VALUE", ptr)
		}
		pairs = append(pairs, schemaprompt.Override{Pointer: ptr, Value: parseSetValue(args[i+2])})
		i += 2
	}
	return rest, pairs, nil
}

func parseSetPair(kv string) (schemaprompt.Override, error) {
	ptr, val, ok := strings.Cut(kv, "=")
	if !ok {
		return schemaprompt.Override{}, fmt.Errorf("--set %q: expected POINTER=VALUE or POINTER VALUE", kv)
	}
	return schemaprompt.Override{Pointer: ptr, Value: parseSetValue(val)}, nil
}

// parseSetValue decodes raw as JSON, falling back to the raw string.
func parseSetValue(raw string) any {
	v, err := schemaprompt.DecodeJSON(bytes.TrimSpace([]byte(raw)))
	if err != nil {
		return raw
	}
	return v
}

// exitCode maps the outcome of a run to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, schemaprompt.ErrCancelled),
		errors.Is(err, schemaprompt.ErrInterrupted),
		errors.Is(err, context.Canceled):
		return 130
	}
	fmt.Fprintf(stderr, "ERROR: %v\n", err)
	return 1
}
