package schemaprompt

import (
	"context"
	"errors"

	"github.com/reoring/schemaprompt/i18n"
)

// itemsPolicy is what an array schema says about each position.
type itemsPolicy struct {
	indexed []*Schema
	// additional items past the indexed ones
	allowed bool
	schema  *Schema // nil: any type
	min     int
	hasMin  bool
	max     int
	hasMax  bool
}

func arrayPolicy(s *Schema) itemsPolicy {
	p := itemsPolicy{}
	p.min, p.hasMin = s.MinItems()
	p.max, p.hasMax = s.MaxItems()

	single, tuple, isTuple := s.Items()
	switch {
	case single != nil:
		p.allowed, p.schema = true, single
		return p
	case isTuple:
		p.indexed = tuple
	}
	sub, allowed, present := s.AdditionalItems()
	if !present {
		// a tuple closes the array unless additionalItems reopens it
		p.allowed = !isTuple
		return p
	}
	p.allowed, p.schema = allowed, sub
	return p
}

func (arrayCollector) collect(ctx context.Context, w *walker, label string, s *Schema, pc PromptContext) (any, error) {
	policy := arrayPolicy(s)
	if label != "" {
		pc.print(label, ColorDefault)
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		arr, err := w.arrayAttempt(ctx, policy, pc)
		if err != nil {
			return nil, err
		}
		iss, err := w.validators.validate(s, arr)
		if err != nil {
			return nil, err
		}
		if len(iss) == 0 {
			return arr, nil
		}
		w.reset(pc, iss, i18n.ArrayReset)
	}
}

func (w *walker) arrayAttempt(ctx context.Context, p itemsPolicy, pc PromptContext) ([]any, error) {
	enter := w.tr.Message(i18n.EnterValue, nil)
	arr := []any{}
	for i := 0; ; i++ {
		if i < len(p.indexed) {
			v, err := w.promptFromSchema(ctx, Label{
				Fixed:    enter + " [$type]: ",
				Selected: enter + ": ",
			}, p.indexed[i], pc.SubcontextIndex(i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
			continue
		}
		if (p.hasMax && i >= p.max) || !p.allowed {
			return arr, nil
		}
		end := ""
		if !p.hasMin || i >= p.min {
			end = w.tr.Message(i18n.FinishCoda, nil)
		}
		label := Label{
			Fixed:      enter + " [$type]" + end + ": ",
			Selected:   enter + ": ",
			TypePrompt: w.tr.Message(i18n.EnterType, nil) + end + ": ",
		}
		var v any
		var err error
		if p.schema != nil {
			v, err = w.promptFromSchema(ctx, label, p.schema, pc.SubcontextIndex(i))
		} else {
			v, err = w.promptFromTypes(ctx, label, AllTypes, pc.SubcontextIndex(i))
		}
		if errors.Is(err, ErrCancelled) {
			return arr, nil
		}
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
