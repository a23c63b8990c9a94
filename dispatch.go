package schemaprompt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reoring/schemaprompt/i18n"
)

// walker holds what stays fixed for one generation: validators, text and logs.
type walker struct {
	validators *validatorCache
	tr         i18n.Translator
	log        *zap.Logger
}

// collector builds a value of one primitive type.
type collector interface {
	collect(ctx context.Context, w *walker, label string, s *Schema, pc PromptContext) (any, error)
}

type (
	stringCollector  struct{}
	numberCollector  struct{}
	booleanCollector struct{}
	nullCollector    struct{}
	objectCollector  struct{}
	arrayCollector   struct{}
)

func collectorFor(t Type) (collector, error) {
	switch t {
	case TypeString:
		return stringCollector{}, nil
	case TypeNumber, TypeInteger:
		return numberCollector{}, nil
	case TypeBoolean:
		return booleanCollector{}, nil
	case TypeNull:
		return nullCollector{}, nil
	case TypeObject:
		return objectCollector{}, nil
	case TypeArray:
		return arrayCollector{}, nil
	}
	return nil, singleIssue(CodeInvalidSchema, fmt.Sprintf("unknown type %q", string(t)))
}

// promptFromSchema produces a value for s at pc: the preset when one exists
// (after checking it against s), otherwise whatever the collector for the
// resolved or chosen type returns.
func (w *walker) promptFromSchema(ctx context.Context, label Label, s *Schema, pc PromptContext) (any, error) {
	if pc.HasPreset() {
		v := pc.Preset()
		iss, err := w.validators.validate(s, v)
		if err != nil {
			return nil, err
		}
		if len(iss) > 0 {
			return nil, &PresetMismatchError{Pointer: pc.Pointer(), Value: v, Issues: iss}
		}
		w.tracePreset(pc, v)
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if comment, ok := s.Comment(); ok {
		pc.input.PrintInstructions(comment, pc.indent)
	}
	types := ResolveTypes(s)
	if len(types) != 1 {
		// a pinned value needs no type either
		if v, ok := fixedValue(s); ok {
			return v, nil
		}
	}
	t, text, err := w.chooseType(ctx, label, types, pc)
	if err != nil {
		return nil, err
	}
	c, err := collectorFor(t)
	if err != nil {
		return nil, err
	}
	return c.collect(ctx, w, text, s, pc)
}

// promptFromTypes is promptFromSchema without a governing schema: the chosen
// type's collector receives {"type": <chosen>}.
func (w *walker) promptFromTypes(ctx context.Context, label Label, types []Type, pc PromptContext) (any, error) {
	if pc.HasPreset() {
		v := pc.Preset()
		w.tracePreset(pc, v)
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, text, err := w.chooseType(ctx, label, types, pc)
	if err != nil {
		return nil, err
	}
	c, err := collectorFor(t)
	if err != nil {
		return nil, err
	}
	return c.collect(ctx, w, text, TypeSchema(t), pc)
}

// chooseType settles the type to collect. A single candidate is taken as is and
// substituted into the label; otherwise the user picks one.
func (w *walker) chooseType(ctx context.Context, label Label, types []Type, pc PromptContext) (Type, string, error) {
	if len(types) == 1 {
		return types[0], label.fixed(types[0]), nil
	}
	text, err := pc.input.GetString(ctx, StringRequest{
		Message:   label.typePrompt(w.tr.Message(i18n.EnterType, nil) + ": "),
		Indent:    pc.indent,
		Validator: typeValidator(types, w.tr),
		Completer: typeNames(types),
	})
	if err != nil {
		return "", "", err
	}
	return Type(text), label.Selected, nil
}

func (w *walker) tracePreset(pc PromptContext, v any) {
	pc.print(w.tr.Message(i18n.PresetUsed, map[string]string{
		"path":  pc.Pointer().Display(),
		"value": renderValue(v),
	}), ColorTrace)
	w.log.Debug("preset consumed", zap.String("pointer", pc.Pointer().Display()))
}
