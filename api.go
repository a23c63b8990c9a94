package schemaprompt

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/reoring/schemaprompt/i18n"
)

// Generator builds JSON values that satisfy a schema by prompting through an
// InputHandler.
type Generator struct {
	input        InputHandler
	log          *zap.Logger
	tr           i18n.Translator
	promptText   string
	assertFormat bool
	validators   *validatorCache
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug events. The default discards them.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithPromptText sets the label printed for the top-level value.
func WithPromptText(text string) Option {
	return func(g *Generator) { g.promptText = text }
}

// WithFormatAssertion turns checking of the "format" keyword on or off. It is on
// by default.
func WithFormatAssertion(enabled bool) Option {
	return func(g *Generator) { g.assertFormat = enabled }
}

// WithTranslator sets the source of the fixed prompt texts.
func WithTranslator(tr i18n.Translator) Option {
	return func(g *Generator) {
		if tr != nil {
			g.tr = tr
		}
	}
}

// New returns a Generator reading answers from input.
func New(input InputHandler, opts ...Option) *Generator {
	g := &Generator{
		input:        input,
		log:          zap.NewNop(),
		tr:           i18n.Current(),
		assertFormat: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.validators = newValidatorCache(g.assertFormat)
	return g
}

// Override binds a value to a JSON Pointer in the generated document.
type Override struct {
	Pointer string
	Value   any
}

// Generate prompts for a value of schema. overrides maps JSON Pointer strings to
// values used instead of prompting at those locations; they are applied in
// pointer order.
func (g *Generator) Generate(ctx context.Context, schema *Schema, overrides map[string]any) (any, error) {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]Override, len(keys))
	for i, k := range keys {
		list[i] = Override{Pointer: k, Value: overrides[k]}
	}
	return g.GenerateWithOverrides(ctx, schema, list)
}

// GenerateWithOverrides is Generate with overrides applied in the given order.
// A later override for the same pointer replaces an earlier one.
//
// The result is built from *Object, []any, string, float64, bool and nil
// (plus whatever values the overrides and the schema's const/enum supply). It
// fails with *PresetMismatchError or *SetValueError when an override cannot be
// honoured, and with ErrCancelled or ErrInterrupted when the user ends input
// where no collector absorbs it.
func (g *Generator) GenerateWithOverrides(ctx context.Context, schema *Schema, overrides []Override) (any, error) {
	if schema == nil {
		schema = EmptySchema()
	}
	presets := newPresetTable()
	for _, o := range overrides {
		p, err := ParsePointer(o.Pointer)
		if err != nil {
			return nil, err
		}
		presets.set(p, o.Value)
	}
	w := &walker{validators: g.validators, tr: g.tr, log: g.log}
	pc := newPromptContext(g.input, presets)

	g.log.Debug("generate", zap.Int("overrides", len(presets.order)))
	v, err := w.promptFromSchema(ctx, Text(g.promptText), schema, pc)
	if err != nil {
		return nil, err
	}
	return w.mergePresets(v, presets)
}

// Validate checks v against schema with the Generator's validator settings.
func (g *Generator) Validate(schema *Schema, v any) (Issues, error) {
	return g.validators.validate(schema, v)
}
