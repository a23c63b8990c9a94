package schemaprompt

import (
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// Schema is a read-only view over a decoded JSON Schema fragment: either an
// object node or a boolean schema. Accessors derive sub-schemas on demand and
// never modify the underlying document.
type Schema struct {
	obj     *Object
	boolean bool
}

// Property is a declared object property.
type Property struct {
	Name   string
	Schema *Schema
}

// EmptySchema returns the schema {} which accepts any value.
func EmptySchema() *Schema { return &Schema{obj: NewObject()} }

// TypeSchema returns the synthetic schema {"type": t}.
func TypeSchema(t Type) *Schema {
	o := NewObject()
	o.Set("type", string(t))
	return &Schema{obj: o}
}

// SchemaFromValue wraps a decoded document. Objects (ordered or plain maps) and
// booleans are accepted.
func SchemaFromValue(v any) (*Schema, error) {
	switch t := v.(type) {
	case *Schema:
		return t, nil
	case *Object:
		if t == nil {
			return EmptySchema(), nil
		}
		return &Schema{obj: t}, nil
	case map[string]any:
		return &Schema{obj: FromPlain(t).(*Object)}, nil
	case bool:
		return &Schema{boolean: t}, nil
	}
	return nil, singleIssue(CodeInvalidSchema, "schema must be an object or a boolean, got "+renderValue(v))
}

func subSchema(v any) (*Schema, bool) {
	switch t := v.(type) {
	case *Object:
		return &Schema{obj: t}, true
	case bool:
		return &Schema{boolean: t}, true
	case map[string]any:
		return &Schema{obj: FromPlain(t).(*Object)}, true
	}
	return nil, false
}

// Get returns the raw keyword value.
func (s *Schema) Get(keyword string) (any, bool) {
	if s == nil || s.obj == nil {
		return nil, false
	}
	return s.obj.Get(keyword)
}

// IsBoolean reports whether s is a boolean schema and returns its value.
func (s *Schema) IsBoolean() (value, ok bool) {
	if s == nil || s.obj != nil {
		return false, false
	}
	return s.boolean, true
}

// Properties returns the declared properties in declaration order.
func (s *Schema) Properties() []Property {
	raw, ok := s.Get("properties")
	if !ok {
		return nil
	}
	props, ok := raw.(*Object)
	if !ok {
		return nil
	}
	out := make([]Property, 0, props.Len())
	for _, name := range props.Keys() {
		v, _ := props.Get(name)
		sub, ok := subSchema(v)
		if !ok {
			sub = EmptySchema()
		}
		out = append(out, Property{Name: name, Schema: sub})
	}
	return out
}

// Property returns the schema declared for name, or {} when it is not declared.
func (s *Schema) Property(name string) *Schema {
	raw, ok := s.Get("properties")
	if !ok {
		return EmptySchema()
	}
	props, ok := raw.(*Object)
	if !ok {
		return EmptySchema()
	}
	v, ok := props.Get(name)
	if !ok {
		return EmptySchema()
	}
	if sub, ok := subSchema(v); ok {
		return sub
	}
	return EmptySchema()
}

// Required returns the required property names, de-duplicated preserving
// first-occurrence order.
func (s *Schema) Required() []string {
	raw, ok := s.Get("required")
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, v := range list {
		name, ok := v.(string)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// AdditionalProperties reports whether undeclared properties may be entered.
// When the keyword holds a schema it is returned as well; absent means allowed
// and an empty schema means none are asked for.
func (s *Schema) AdditionalProperties() (allowed bool, schema *Schema) {
	raw, ok := s.Get("additionalProperties")
	if !ok {
		return true, nil
	}
	switch t := raw.(type) {
	case bool:
		return t, nil
	case *Object:
		if t.Len() == 0 {
			return false, nil
		}
		return true, &Schema{obj: t}
	}
	return true, nil
}

// Items returns the items keyword: a single schema governing every position, or
// a tuple of per-position schemas (isTuple is true even for an empty list).
func (s *Schema) Items() (single *Schema, tuple []*Schema, isTuple bool) {
	raw, ok := s.Get("items")
	if !ok {
		return nil, nil, false
	}
	if list, ok := raw.([]any); ok {
		tuple = make([]*Schema, 0, len(list))
		for _, v := range list {
			sub, ok := subSchema(v)
			if !ok {
				sub = EmptySchema()
			}
			tuple = append(tuple, sub)
		}
		return nil, tuple, true
	}
	if sub, ok := subSchema(raw); ok {
		return sub, nil, false
	}
	return nil, nil, false
}

// AdditionalItems returns the additionalItems keyword. present is false when the
// keyword is absent; a boolean keyword yields a nil schema.
func (s *Schema) AdditionalItems() (schema *Schema, allowed, present bool) {
	raw, ok := s.Get("additionalItems")
	if !ok {
		return nil, false, false
	}
	switch t := raw.(type) {
	case bool:
		return nil, t, true
	case *Object:
		return &Schema{obj: t}, true, true
	}
	return nil, true, true
}

// MinItems returns the minItems bound.
func (s *Schema) MinItems() (int, bool) { return s.intKeyword("minItems") }

// MaxItems returns the maxItems bound.
func (s *Schema) MaxItems() (int, bool) { return s.intKeyword("maxItems") }

func (s *Schema) intKeyword(k string) (int, bool) {
	raw, ok := s.Get(k)
	if !ok {
		return 0, false
	}
	f, ok := toFloat(raw)
	if !ok || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt {
		return math.MaxInt, true
	}
	return int(f), true
}

// Const returns the const keyword.
func (s *Schema) Const() (any, bool) { return s.Get("const") }

// Enum returns the enum keyword.
func (s *Schema) Enum() ([]any, bool) {
	raw, ok := s.Get("enum")
	if !ok {
		return nil, false
	}
	list, ok := raw.([]any)
	return list, ok
}

// Default returns the default keyword.
func (s *Schema) Default() (any, bool) { return s.Get("default") }

// Multiline reports whether the custom "multiline" keyword is exactly true.
func (s *Schema) Multiline() bool {
	raw, ok := s.Get("multiline")
	b, isBool := raw.(bool)
	return ok && isBool && b
}

// Comment returns the $comment keyword.
func (s *Schema) Comment() (string, bool) {
	raw, ok := s.Get("$comment")
	if !ok {
		return "", false
	}
	str, ok := raw.(string)
	return str, ok
}

// AllOf returns the allOf subschemas.
func (s *Schema) AllOf() []*Schema {
	raw, ok := s.Get("allOf")
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]*Schema, 0, len(list))
	for _, v := range list {
		if sub, ok := subSchema(v); ok {
			out = append(out, sub)
		}
	}
	return out
}

// MarshalJSON encodes the fragment, keeping keyword order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	if s.obj == nil {
		return json.Marshal(s.boolean)
	}
	return s.obj.MarshalJSON()
}

// String renders the fragment as compact JSON.
func (s *Schema) String() string {
	b, err := s.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}
