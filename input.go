package schemaprompt

import (
	"context"
	"strings"
)

// Color tags printed text. Handlers map it to their own styling.
type Color int

const (
	ColorDefault Color = iota
	ColorError
	ColorTrace
)

// Validator checks raw entered text. A nil error accepts it; otherwise the
// error's message is shown to the user and the handler asks again.
type Validator func(text string) error

// StringRequest describes one line (or multi-line block) of text to read.
type StringRequest struct {
	Message   string
	Indent    int
	Validator Validator
	// Completer lists candidate answers offered for completion.
	Completer []string
	Multiline bool
	// Default pre-fills the input when non-nil.
	Default *string
}

// NumberRequest describes a numeric entry. The handler parses accepted text
// as a float64.
type NumberRequest struct {
	Message   string
	Indent    int
	Validator Validator
	Default   *float64
}

// BoolRequest describes a yes/no confirmation.
type BoolRequest struct {
	Message string
	Indent  int
	Default *bool
}

// InputHandler is the terminal capability the prompt engine consumes.
//
// The Get methods block until the user supplies a value the request's
// Validator accepts. They return ErrCancelled when the user signals end of
// input for this prompt (Ctrl-D) and ErrInterrupted when the whole session is
// aborted (Ctrl-C).
type InputHandler interface {
	GetString(ctx context.Context, req StringRequest) (string, error)
	GetNumber(ctx context.Context, req NumberRequest) (float64, error)
	GetBoolean(ctx context.Context, req BoolRequest) (bool, error)
	// Print writes message, every line indented by indent levels.
	Print(message string, indent int, color Color)
	// PrintInstructions writes free text word-wrapped with the first line at
	// indent and continuation lines one level deeper.
	PrintInstructions(text string, indent int)
}

// ValidatorMessage renders a Validator rejection for display: validation
// issues become one line per issue, other errors their plain message.
func ValidatorMessage(err error) string {
	if err == nil {
		return ""
	}
	if iss, ok := AsIssues(err); ok {
		return strings.Join(iss.Messages(), "\n")
	}
	return err.Error()
}
