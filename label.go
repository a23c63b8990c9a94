package schemaprompt

import "strings"

// Label is the prompt text handed down to a collector. Fixed is used when the
// schema resolves to a single type and may reference it as $type or ${type};
// Selected is used after the user picked a type; TypePrompt asks for the type.
type Label struct {
	Fixed      string
	Selected   string
	TypePrompt string
}

// Text returns a Label that shows s whichever way the type is decided.
func Text(s string) Label { return Label{Fixed: s, Selected: s} }

func (l Label) fixed(t Type) string {
	return strings.NewReplacer("${type}", string(t), "$type", string(t)).Replace(l.Fixed)
}

func (l Label) typePrompt(fallback string) string {
	if l.TypePrompt != "" {
		return l.TypePrompt
	}
	return fallback
}
