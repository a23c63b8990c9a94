package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reoring/schemaprompt"
	"github.com/reoring/schemaprompt/i18n"
)

// Handler prompts with bubbletea widgets: a text input with inline validation
// and completion suggestions, a text area for multi-line answers (submitted with
// ctrl+s or alt+enter) and a y/n confirmation. Ctrl-D cancels the prompt and
// Ctrl-C interrupts the session.
type Handler struct {
	in          io.Reader
	out         io.Writer
	indentWidth int
	tr          i18n.Translator
	st          styles
}

// Option configures a Handler.
type Option func(*Handler)

// WithIndentWidth sets the number of spaces per indent level.
func WithIndentWidth(n int) Option {
	return func(h *Handler) {
		if n >= 0 {
			h.indentWidth = n
		}
	}
}

// WithTranslator sets the source of the handler's own hints.
func WithTranslator(tr i18n.Translator) Option {
	return func(h *Handler) {
		if tr != nil {
			h.tr = tr
		}
	}
}

// NewHandler returns a Handler on the given terminal streams.
func NewHandler(in io.Reader, out io.Writer, opts ...Option) *Handler {
	h := &Handler{
		in:          in,
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

var _ schemaprompt.InputHandler = (*Handler)(nil)

type outcome int

const (
	pending outcome = iota
	submitted
	cancelled
	interrupted
)

func (o outcome) err() error {
	switch o {
	case cancelled:
		return schemaprompt.ErrCancelled
	case interrupted:
		return schemaprompt.ErrInterrupted
	}
	return nil
}

func (h *Handler) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(h.in),
		tea.WithOutput(h.out),
		tea.WithoutSignalHandler(),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil, schemaprompt.ErrInterrupted
		}
		return nil, err
	}
	return final, nil
}

func (h *Handler) GetString(ctx context.Context, req schemaprompt.StringRequest) (string, error) {
	var m tea.Model
	prefix := indentLines(req.Message, req.Indent, h.indentWidth)
	if req.Multiline {
		m = newAreaModel(h, prefix, req)
	} else {
		m = newInputModel(h, prefix, req.Validator, req.Completer, req.Default)
	}
	final, err := h.run(ctx, m)
	if err != nil {
		return "", err
	}
	switch fm := final.(type) {
	case inputModel:
		if err := fm.result.err(); err != nil {
			return "", err
		}
		return fm.value, nil
	case areaModel:
		if err := fm.result.err(); err != nil {
			return "", err
		}
		return fm.value, nil
	}
	return "", fmt.Errorf("term: unexpected model %T", final)
}

func (h *Handler) GetNumber(ctx context.Context, req schemaprompt.NumberRequest) (float64, error) {
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
		if _, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
			return errors.New(h.tr.Message(i18n.NotANumber, nil))
		}
		return nil
	}
	final, err := h.run(ctx, newInputModel(h, indentLines(req.Message, req.Indent, h.indentWidth), validate, nil, def))
	if err != nil {
		return 0, err
	}
	fm := final.(inputModel)
	if err := fm.result.err(); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(fm.value), 64)
}

func (h *Handler) GetBoolean(ctx context.Context, req schemaprompt.BoolRequest) (bool, error) {
	m := confirmModel{
		h:      h,
		prompt: indentLines(req.Message, req.Indent, h.indentWidth) + h.tr.Message(i18n.ConfirmHint, nil),
		def:    req.Default,
	}
	final, err := h.run(ctx, m)
	if err != nil {
		return false, err
	}
	fm := final.(confirmModel)
	if err := fm.result.err(); err != nil {
		return false, err
	}
	return fm.value, nil
}

func (h *Handler) Print(message string, indent int, color schemaprompt.Color) {
	fmt.Fprintln(h.out, h.st.color(color).Render(indentLines(message, indent, h.indentWidth)))
}

func (h *Handler) PrintInstructions(text string, indent int) {
	fmt.Fprintln(h.out, wrapInstructions(text, indent, h.indentWidth))
}

// ---- single line ----

type inputModel struct {
	h        *Handler
	prompt   string
	input    textinput.Model
	validate schemaprompt.Validator
	errText  string
	result   outcome
	value    string
}

func newInputModel(h *Handler, prompt string, validate schemaprompt.Validator, completer []string, def *string) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	if def != nil {
		ti.SetValue(*def)
		ti.CursorEnd()
	}
	if len(completer) > 0 {
		ti.SetSuggestions(completer)
		ti.ShowSuggestions = true
	}
	ti.Focus()
	return inputModel{h: h, prompt: prompt, input: ti, validate: validate}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC:
			m.result = interrupted
			return m, tea.Quit
		case tea.KeyCtrlD:
			m.result = cancelled
			return m, tea.Quit
		case tea.KeyEnter:
			text := m.input.Value()
			if m.validate != nil {
				if err := m.validate(text); err != nil {
					m.errText = schemaprompt.ValidatorMessage(err)
					return m, nil
				}
			}
			m.value = text
			m.result = submitted
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	switch m.result {
	case submitted:
		return m.h.st.prompt.Render(m.prompt) + m.value + "\n"
	case cancelled, interrupted:
		return m.h.st.prompt.Render(m.prompt) + "\n"
	}
	v := m.h.st.prompt.Render(m.prompt) + m.input.View()
	if m.errText != "" {
		v += "\n" + m.h.st.invalid.Render(m.errText)
	}
	return v
}

// ---- multi-line ----

type areaModel struct {
	h        *Handler
	prompt   string
	area     textarea.Model
	validate schemaprompt.Validator
	errText  string
	result   outcome
	value    string
}

func newAreaModel(h *Handler, prompt string, req schemaprompt.StringRequest) areaModel {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = strings.Repeat(".", h.indentWidth) + " "
	ta.CharLimit = 0
	ta.SetWidth(wrapWidth)
	ta.SetHeight(6)
	if req.Default != nil {
		ta.SetValue(*req.Default)
	}
	ta.Focus()
	return areaModel{h: h, prompt: prompt, area: ta, validate: req.Validator}
}

func (m areaModel) Init() tea.Cmd { return textarea.Blink }

func (m areaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			m.result = interrupted
			return m, tea.Quit
		case "ctrl+d":
			m.result = cancelled
			return m, tea.Quit
		case "ctrl+s", "alt+enter":
			text := m.area.Value()
			if m.validate != nil {
				if err := m.validate(text); err != nil {
					m.errText = schemaprompt.ValidatorMessage(err)
					return m, nil
				}
			}
			m.value = text
			m.result = submitted
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m areaModel) View() string {
	switch m.result {
	case submitted:
		return m.h.st.prompt.Render(m.prompt) + "\n" + m.value + "\n"
	case cancelled, interrupted:
		return m.h.st.prompt.Render(m.prompt) + "\n"
	}
	v := m.h.st.prompt.Render(m.prompt) + "\n" + m.area.View() + "\n" + m.h.st.hint.Render("ctrl+s / alt+enter")
	if m.errText != "" {
		v += "\n" + m.h.st.invalid.Render(m.errText)
	}
	return v
}

// ---- confirmation ----

type confirmModel struct {
	h      *Handler
	prompt string
	def    *bool
	result outcome
	value  bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.Type {
	case tea.KeyCtrlC:
		m.result = interrupted
		return m, tea.Quit
	case tea.KeyCtrlD:
		m.result = cancelled
		return m, tea.Quit
	case tea.KeyEnter:
		if m.def != nil {
			m.value, m.result = *m.def, submitted
			return m, tea.Quit
		}
		return m, nil
	}
	if b, ok := parseYesNo(k.String()); ok {
		m.value, m.result = b, submitted
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	switch m.result {
	case submitted:
		answer := "n"
		if m.value {
			answer = "y"
		}
		return m.h.st.prompt.Render(m.prompt) + answer + "\n"
	case cancelled, interrupted:
		return m.h.st.prompt.Render(m.prompt) + "\n"
	}
	return m.h.st.prompt.Render(m.prompt)
}
