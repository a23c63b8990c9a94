package schemaprompt

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/reoring/schemaprompt/i18n"
)

func (objectCollector) collect(ctx context.Context, w *walker, label string, s *Schema, pc PromptContext) (any, error) {
	if label != "" {
		pc.print(label, ColorDefault)
	}
	required := s.Required()
	isRequired := make(map[string]bool, len(required))
	for _, name := range required {
		isRequired[name] = true
	}
	var optional []Property
	for _, p := range s.Properties() {
		if !isRequired[p.Name] {
			optional = append(optional, p)
		}
	}
	additional, additionalSchema := s.AdditionalProperties()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		obj := NewObject()
		for _, name := range required {
			v, err := w.promptFromSchema(ctx, w.propertyLabel(name, i18n.RequiredCoda), s.Property(name), pc.Subcontext(name))
			if err != nil {
				return nil, err
			}
			obj.Set(name, v)
		}
		for _, p := range optional {
			v, err := w.promptFromSchema(ctx, w.propertyLabel(p.Name, i18n.SkipCoda), p.Schema, pc.Subcontext(p.Name))
			if errors.Is(err, ErrCancelled) {
				continue
			}
			if err != nil {
				return nil, err
			}
			obj.Set(p.Name, v)
		}
		if additional {
			if err := w.additionalProperties(ctx, obj, additionalSchema, pc); err != nil {
				return nil, err
			}
		}

		iss, err := w.validators.validate(s, obj)
		if err != nil {
			return nil, err
		}
		if len(iss) == 0 {
			return obj, nil
		}
		w.reset(pc, iss, i18n.ObjectReset)
	}
}

func (w *walker) propertyLabel(name, coda string) Label {
	c := w.tr.Message(coda, nil)
	return Label{
		Fixed:    name + " [$type]" + c + ": ",
		Selected: name + c + ": ",
	}
}

// additionalProperties asks for property names until the user cancels, then a
// value for each new name. A schema-valued additionalProperties governs the
// values; otherwise any type may be entered.
func (w *walker) additionalProperties(ctx context.Context, obj *Object, valueSchema *Schema, pc PromptContext) error {
	nameCtx := pc.WithIndent()
	for {
		name, err := pc.input.GetString(ctx, StringRequest{
			Message: w.tr.Message(i18n.PropertyName, nil),
			Indent:  nameCtx.indent,
		})
		if errors.Is(err, ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if obj.Has(name) {
			nameCtx.print(w.tr.Message(i18n.PropertyExists, nil), ColorError)
			continue
		}
		label := Text(w.tr.Message(i18n.PropertyValue, nil))
		var v any
		if valueSchema != nil {
			v, err = w.promptFromSchema(ctx, label, valueSchema, pc.Subcontext(name))
		} else {
			v, err = w.promptFromTypes(ctx, label, AllTypes, pc.Subcontext(name))
		}
		if err != nil {
			return err
		}
		obj.Set(name, v)
	}
}

// reset reports the issues that rejected a composite attempt one level deeper
// than the composite itself.
func (w *walker) reset(pc PromptContext, iss Issues, notice string) {
	in := pc.WithIndent()
	in.print(strings.Join(iss.Messages(), "\n"), ColorError)
	in.print(w.tr.Message(notice, nil), ColorError)
	w.log.Debug("composite reset",
		zap.String("pointer", pc.Pointer().Display()),
		zap.Int("issues", len(iss)))
}
