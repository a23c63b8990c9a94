package schemaprompt

import "context"

// fixedValue reports the value a schema pins: const, or the only enum member.
func fixedValue(s *Schema) (any, bool) {
	if v, ok := s.Const(); ok {
		return v, true
	}
	if list, ok := s.Enum(); ok && len(list) == 1 {
		return list[0], true
	}
	return nil, false
}

func (stringCollector) collect(ctx context.Context, w *walker, label string, s *Schema, pc PromptContext) (any, error) {
	if v, ok := fixedValue(s); ok {
		return v, nil
	}
	req := StringRequest{
		Message:   label,
		Indent:    pc.indent,
		Validator: w.validators.stringValidator(s),
		Multiline: s.Multiline(),
	}
	// a null default means no prefill
	if d, ok := s.Default(); ok && d != nil {
		text, isString := d.(string)
		if !isString {
			text = renderValue(d)
		}
		req.Default = &text
	}
	return pc.input.GetString(ctx, req)
}

func (numberCollector) collect(ctx context.Context, w *walker, label string, s *Schema, pc PromptContext) (any, error) {
	if v, ok := fixedValue(s); ok {
		return v, nil
	}
	req := NumberRequest{
		Message:   label,
		Indent:    pc.indent,
		Validator: w.validators.numberValidator(s, w.tr),
	}
	if d, ok := s.Default(); ok {
		if f, numeric := toFloat(d); numeric {
			req.Default = &f
		}
	}
	return pc.input.GetNumber(ctx, req)
}

func (booleanCollector) collect(ctx context.Context, w *walker, label string, s *Schema, pc PromptContext) (any, error) {
	if v, ok := fixedValue(s); ok {
		return v, nil
	}
	req := BoolRequest{Message: label, Indent: pc.indent}
	if d, ok := s.Default(); ok {
		if b, isBool := d.(bool); isBool {
			req.Default = &b
		}
	}
	return pc.input.GetBoolean(ctx, req)
}

func (nullCollector) collect(context.Context, *walker, string, *Schema, PromptContext) (any, error) {
	return nil, nil
}
