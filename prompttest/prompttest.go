// Package prompttest provides a scripted schemaprompt.InputHandler for tests.
//
// A Script replays answers in order. Like an interactive handler it runs each
// request's validator over the answer and, when the answer is rejected, records
// the rejection and tries the next answer for the same prompt.
package prompttest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/schemaprompt"
)

// ErrExhausted is returned when a prompt is issued after the last answer.
var ErrExhausted = errors.New("prompttest: script exhausted")

// Kind identifies the request method.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	}
	return "unknown"
}

type answerKind int

const (
	answerText answerKind = iota
	answerDefault
	answerCancel
	answerInterrupt
)

// Answer is one scripted reply.
type Answer struct {
	kind answerKind
	text string
}

// Say answers with text. For confirmations "y"/"yes" and "n"/"no" are accepted.
func Say(text string) Answer { return Answer{text: text} }

// Yes confirms.
func Yes() Answer { return Say("y") }

// No declines.
func No() Answer { return Say("n") }

// Default accepts the request's default value.
func Default() Answer { return Answer{kind: answerDefault} }

// Cancel signals end of input for the current prompt (Ctrl-D).
func Cancel() Answer { return Answer{kind: answerCancel} }

// Interrupt aborts the session (Ctrl-C).
func Interrupt() Answer { return Answer{kind: answerInterrupt} }

func (a Answer) String() string {
	switch a.kind {
	case answerDefault:
		return "<default>"
	case answerCancel:
		return "<cancel>"
	case answerInterrupt:
		return "<interrupt>"
	}
	return strconv.Quote(a.text)
}

// Prompt records a request made to the Script.
type Prompt struct {
	Kind      Kind
	Message   string
	Indent    int
	Completer []string
	Multiline bool
}

// Rejection records an answer refused by a request's validator.
type Rejection struct {
	Message string
	Answer  string
	Reason  string
}

// Line records a Print or PrintInstructions call.
type Line struct {
	Text   string
	Indent int
	Color  schemaprompt.Color
}

// Script is a scripted InputHandler. It is not safe for concurrent use.
type Script struct {
	answers []Answer
	next    int

	Prompts    []Prompt
	Rejections []Rejection
	Printed    []Line
}

var _ schemaprompt.InputHandler = (*Script)(nil)

// New returns a Script that replays answers.
func New(answers ...Answer) *Script { return &Script{answers: answers} }

// Remaining reports how many answers have not been consumed.
func (s *Script) Remaining() int { return len(s.answers) - s.next }

// Count returns the number of prompts of kind k.
func (s *Script) Count(k Kind) int {
	n := 0
	for _, p := range s.Prompts {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// PrintedTexts returns the text of every printed line.
func (s *Script) PrintedTexts() []string {
	out := make([]string, len(s.Printed))
	for i, l := range s.Printed {
		out[i] = l.Text
	}
	return out
}

// Contains reports how many printed lines contain sub.
func (s *Script) Contains(sub string) int {
	n := 0
	for _, l := range s.Printed {
		if strings.Contains(l.Text, sub) {
			n++
		}
	}
	return n
}

func (s *Script) pop() (Answer, error) {
	if s.next >= len(s.answers) {
		return Answer{}, ErrExhausted
	}
	a := s.answers[s.next]
	s.next++
	switch a.kind {
	case answerCancel:
		return a, schemaprompt.ErrCancelled
	case answerInterrupt:
		return a, schemaprompt.ErrInterrupted
	}
	return a, nil
}

// text pops answers until one passes validate.
func (s *Script) text(ctx context.Context, message string, def *string, validate schemaprompt.Validator) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		a, err := s.pop()
		if err != nil {
			return "", err
		}
		text := a.text
		if a.kind == answerDefault {
			if def == nil {
				return "", fmt.Errorf("prompttest: %q has no default", message)
			}
			text = *def
		}
		if validate != nil {
			if verr := validate(text); verr != nil {
				s.Rejections = append(s.Rejections, Rejection{
					Message: message,
					Answer:  text,
					Reason:  schemaprompt.ValidatorMessage(verr),
				})
				continue
			}
		}
		return text, nil
	}
}

func (s *Script) GetString(ctx context.Context, req schemaprompt.StringRequest) (string, error) {
	s.Prompts = append(s.Prompts, Prompt{
		Kind:      KindString,
		Message:   req.Message,
		Indent:    req.Indent,
		Completer: req.Completer,
		Multiline: req.Multiline,
	})
	return s.text(ctx, req.Message, req.Default, req.Validator)
}

func (s *Script) GetNumber(ctx context.Context, req schemaprompt.NumberRequest) (float64, error) {
	s.Prompts = append(s.Prompts, Prompt{Kind: KindNumber, Message: req.Message, Indent: req.Indent})
	var def *string
	if req.Default != nil {
		d := strconv.FormatFloat(*req.Default, 'g', -1, 64)
		def = &d
	}
	validate := func(text string) error {
		if req.Validator != nil {
			if err := req.Validator(text); err != nil {
				return err
			}
		}
		_, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		return err
	}
	text, err := s.text(ctx, req.Message, def, validate)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(text), 64)
}

func (s *Script) GetBoolean(ctx context.Context, req schemaprompt.BoolRequest) (bool, error) {
	s.Prompts = append(s.Prompts, Prompt{Kind: KindBoolean, Message: req.Message, Indent: req.Indent})
	var def *string
	if req.Default != nil {
		d := "n"
		if *req.Default {
			d = "y"
		}
		def = &d
	}
	text, err := s.text(ctx, req.Message, def, func(text string) error {
		_, ok := parseYesNo(text)
		if !ok {
			return errors.New("answer y or n")
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	b, _ := parseYesNo(text)
	return b, nil
}

func parseYesNo(text string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

func (s *Script) Print(message string, indent int, color schemaprompt.Color) {
	for _, line := range strings.Split(message, "\n") {
		s.Printed = append(s.Printed, Line{Text: line, Indent: indent, Color: color})
	}
}

func (s *Script) PrintInstructions(text string, indent int) {
	s.Printed = append(s.Printed, Line{Text: text, Indent: indent})
}
