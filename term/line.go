package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reoring/schemaprompt"
	"github.com/reoring/schemaprompt/i18n"
)

// LineHandler reads one answer per line. End of input cancels the current
// prompt; a cancelled context interrupts the session. Multi-line answers end
// with a line holding a single ".".
type LineHandler struct {
	in          *bufio.Reader
	out         io.Writer
	indentWidth int
	tr          i18n.Translator
	st          styles
	lines       chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// LineOption configures a LineHandler.
type LineOption func(*LineHandler)

// WithLineIndentWidth sets the number of spaces per indent level.
func WithLineIndentWidth(n int) LineOption {
	return func(h *LineHandler) {
		if n >= 0 {
			h.indentWidth = n
		}
	}
}

// WithLineTranslator sets the source of the handler's own hints.
func WithLineTranslator(tr i18n.Translator) LineOption {
	return func(h *LineHandler) {
		if tr != nil {
			h.tr = tr
		}
	}
}

// WithLinePlain disables colors.
func WithLinePlain() LineOption {
	return func(h *LineHandler) { h.st = newStyles(h.out, true) }
}

// NewLineHandler reads from in and writes prompts to out.
func NewLineHandler(in io.Reader, out io.Writer, opts ...LineOption) *LineHandler {
	h := &LineHandler{
		in:          bufio.NewReader(in),
		out:         out,
		indentWidth: DefaultIndentWidth,
		tr:          i18n.Current(),
		st:          newStyles(out, false),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var _ schemaprompt.InputHandler = (*LineHandler)(nil)

// readLine returns the next line without its terminator. The read runs in the
// background so that a cancelled context is noticed while waiting. End of input
// cancels only the current read; a terminal can be read again after Ctrl-D.
func (h *LineHandler) readLine(ctx context.Context) (string, error) {
	if h.lines == nil {
		h.lines = make(chan lineResult, 1)
		go func() {
			for {
				line, err := h.in.ReadString('\n')
				switch {
				case err == nil || (errors.Is(err, io.EOF) && line != ""):
					h.lines <- lineResult{text: strings.TrimRight(line, "\r\n")}
				case errors.Is(err, io.EOF):
					h.lines <- lineResult{err: err}
				default:
					h.lines <- lineResult{err: err}
					close(h.lines)
					return
				}
			}
		}()
	}
	select {
	case <-ctx.Done():
		return "", schemaprompt.ErrInterrupted
	case r, ok := <-h.lines:
		if !ok {
			return "", schemaprompt.ErrCancelled
		}
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return "", schemaprompt.ErrCancelled
			}
			return "", r.err
		}
		return r.text, nil
	}
}

func (h *LineHandler) ask(message string, indent int, def *string) {
	msg := indentLines(message, indent, h.indentWidth)
	if def != nil {
		msg += h.st.hint.Render("[" + *def + "] ")
	}
	fmt.Fprint(h.out, h.st.prompt.Render(msg))
}

func (h *LineHandler) reject(err error, indent int) {
	fmt.Fprintln(h.out, h.st.invalid.Render(indentLines(schemaprompt.ValidatorMessage(err), indent+1, h.indentWidth)))
}

func (h *LineHandler) GetString(ctx context.Context, req schemaprompt.StringRequest) (string, error) {
	for {
		h.ask(req.Message, req.Indent, req.Default)
		var text string
		var err error
		if req.Multiline {
			fmt.Fprintln(h.out, h.st.hint.Render(h.tr.Message(i18n.MultilineHint, nil)))
			text, err = h.readBlock(ctx)
		} else {
			text, err = h.readLine(ctx)
		}
		if err != nil {
			if errors.Is(err, schemaprompt.ErrCancelled) {
				fmt.Fprintln(h.out)
			}
			return "", err
		}
		if text == "" && req.Default != nil {
			text = *req.Default
		}
		text = complete(text, req.Completer)
		if req.Validator != nil {
			if verr := req.Validator(text); verr != nil {
				h.reject(verr, req.Indent)
				continue
			}
		}
		return text, nil
	}
}

// readBlock reads lines up to a lone "." or end of input. End of input before
// any line cancels.
func (h *LineHandler) readBlock(ctx context.Context) (string, error) {
	var lines []string
	for {
		line, err := h.readLine(ctx)
		if errors.Is(err, schemaprompt.ErrCancelled) && len(lines) > 0 {
			return strings.Join(lines, "\n"), nil
		}
		if err != nil {
			return "", err
		}
		if line == "." {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}

func (h *LineHandler) GetNumber(ctx context.Context, req schemaprompt.NumberRequest) (float64, error) {
	sreq := schemaprompt.StringRequest{Message: req.Message, Indent: req.Indent}
	if req.Default != nil {
		d := strconv.FormatFloat(*req.Default, 'g', -1, 64)
		sreq.Default = &d
	}
	sreq.Validator = func(text string) error {
		if req.Validator != nil {
			if err := req.Validator(text); err != nil {
				return err
			}
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
			return errors.New(h.tr.Message(i18n.NotANumber, nil))
		}
		return nil
	}
	text, err := h.GetString(ctx, sreq)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(text), 64)
}

func (h *LineHandler) GetBoolean(ctx context.Context, req schemaprompt.BoolRequest) (bool, error) {
	hint := h.tr.Message(i18n.ConfirmHint, nil)
	for {
		h.ask(req.Message+hint, req.Indent, nil)
		text, err := h.readLine(ctx)
		if err != nil {
			if errors.Is(err, schemaprompt.ErrCancelled) {
				fmt.Fprintln(h.out)
			}
			return false, err
		}
		if b, ok := parseYesNo(text); ok {
			return b, nil
		}
		if strings.TrimSpace(text) == "" && req.Default != nil {
			return *req.Default, nil
		}
		h.reject(errors.New(h.tr.Message(i18n.AnswerYesNo, nil)), req.Indent)
	}
}

func (h *LineHandler) Print(message string, indent int, color schemaprompt.Color) {
	fmt.Fprintln(h.out, h.st.color(color).Render(indentLines(message, indent, h.indentWidth)))
}

func (h *LineHandler) PrintInstructions(text string, indent int) {
	fmt.Fprintln(h.out, wrapInstructions(text, indent, h.indentWidth))
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
