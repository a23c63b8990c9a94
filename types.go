package schemaprompt

// Type is a JSON Schema primitive type name.
type Type string

const (
	TypeArray   Type = "array"
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeNull    Type = "null"
	TypeNumber  Type = "number"
	TypeObject  Type = "object"
	TypeString  Type = "string"
)

// AllTypes lists the seven primitive types in canonical order.
var AllTypes = []Type{TypeArray, TypeBoolean, TypeInteger, TypeNull, TypeNumber, TypeObject, TypeString}

// Valid reports whether t is one of the seven primitive types.
func (t Type) Valid() bool {
	switch t {
	case TypeArray, TypeBoolean, TypeInteger, TypeNull, TypeNumber, TypeObject, TypeString:
		return true
	}
	return false
}

// Severity expresses the severity level for issues found while loading documents.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn (reported through LoadOpt.Warn) or Error.
}

// LoadOpt bundles schema/document loading options. When several are passed the
// last one wins.
type LoadOpt struct {
	Strictness Strictness
	MaxDepth   int
	// Warn receives non-fatal issues (duplicate keys in Warn mode).
	Warn func(Issue)
}

// DefaultLoadOpt rejects duplicate keys and caps nesting at 256 levels.
var DefaultLoadOpt = LoadOpt{Strictness: Strictness{OnDuplicateKey: Error}, MaxDepth: 256}

func pickLoadOpt(opts []LoadOpt) LoadOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return DefaultLoadOpt
}
