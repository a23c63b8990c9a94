package schemaprompt

// ResolveTypes returns the primitive types a schema fragment can produce, in
// first-seen order without duplicates. A "type" keyword (string or list) wins;
// otherwise the types of the allOf subschemas are combined. oneOf, anyOf and
// if/then/else are not consulted. An empty result means any type.
func ResolveTypes(s *Schema) []Type {
	if s == nil {
		return nil
	}
	if raw, ok := s.Get("type"); ok {
		switch t := raw.(type) {
		case string:
			return []Type{Type(t)}
		case []any:
			var out []Type
			for _, v := range t {
				if name, ok := v.(string); ok {
					out = appendType(out, Type(name))
				}
			}
			return out
		}
	}
	var out []Type
	for _, sub := range s.AllOf() {
		for _, t := range ResolveTypes(sub) {
			out = appendType(out, t)
		}
	}
	return out
}

func appendType(list []Type, t Type) []Type {
	for _, have := range list {
		if have == t {
			return list
		}
	}
	return append(list, t)
}

func typeNames(types []Type) []string {
	if len(types) == 0 {
		types = AllTypes
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
