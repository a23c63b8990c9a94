package term

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/reoring/schemaprompt"
)

func newTestLineHandler(input string) (*LineHandler, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewLineHandler(strings.NewReader(input), out, WithLinePlain()), out
}

func TestLineHandler_GetString(t *testing.T) {
	h, out := newTestLineHandler("hello\n")
	got, err := h.GetString(context.Background(), schemaprompt.StringRequest{Message: "name: ", Indent: 1})
	if err != nil {
		t.Fatalf("GetString: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
	if out.String() != "  name: " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestLineHandler_DefaultOnEmptyLine(t *testing.T) {
	h, out := newTestLineHandler("\n")
	def := "abc"
	got, err := h.GetString(context.Background(), schemaprompt.StringRequest{Message: "v: ", Default: &def})
	if err != nil || got != "abc" {
		t.Fatalf("got %q, %v", got, err)
	}
	if !strings.Contains(out.String(), "v: [abc] ") {
		t.Fatalf("default hint missing: %q", out.String())
	}
}

func TestLineHandler_RejectsUntilValid(t *testing.T) {
	h, out := newTestLineHandler("x\nok\n")
	got, err := h.GetString(context.Background(), schemaprompt.StringRequest{
		Message: "v: ",
		Indent:  1,
		Validator: func(s string) error {
			if s != "ok" {
				return errors.New("bad")
			}
			return nil
		},
	})
	if err != nil || got != "ok" {
		t.Fatalf("got %q, %v", got, err)
	}
	if want := "  v:     bad\n  v: "; out.String() != want {
		t.Fatalf("output %q, want %q", out.String(), want)
	}
}

func TestLineHandler_EndOfInputCancels(t *testing.T) {
	h, _ := newTestLineHandler("")
	_, err := h.GetString(context.Background(), schemaprompt.StringRequest{Message: "v: "})
	if !errors.Is(err, schemaprompt.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if _, err := h.GetBoolean(context.Background(), schemaprompt.BoolRequest{Message: "b "}); !errors.Is(err, schemaprompt.ErrCancelled) {
		t.Fatalf("later prompts stay cancelled, got %v", err)
	}
}

// ttyReader hands out one chunk per Read; an empty chunk reports end of input
// the way a terminal does on Ctrl-D.
type ttyReader []string

func (r *ttyReader) Read(p []byte) (int, error) {
	if len(*r) == 0 {
		return 0, io.EOF
	}
	chunk := (*r)[0]
	*r = (*r)[1:]
	if chunk == "" {
		return 0, io.EOF
	}
	return copy(p, chunk), nil
}

func TestLineHandler_ReadsAgainAfterCtrlD(t *testing.T) {
	in := &ttyReader{"", "x\n"}
	h := NewLineHandler(in, &bytes.Buffer{}, WithLinePlain())
	ctx := context.Background()
	if _, err := h.GetString(ctx, schemaprompt.StringRequest{Message: "skip: "}); !errors.Is(err, schemaprompt.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	got, err := h.GetString(ctx, schemaprompt.StringRequest{Message: "next: "})
	if err != nil || got != "x" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestLineHandler_LastLineWithoutNewline(t *testing.T) {
	h, _ := newTestLineHandler("tail")
	got, err := h.GetString(context.Background(), schemaprompt.StringRequest{})
	if err != nil || got != "tail" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestLineHandler_Multiline(t *testing.T) {
	h, out := newTestLineHandler("a\nb\n.\nc\nd")
	req := schemaprompt.StringRequest{Message: "text: ", Multiline: true}
	got, err := h.GetString(context.Background(), req)
	if err != nil || got != "a\nb" {
		t.Fatalf("got %q, %v", got, err)
	}
	if !strings.Contains(out.String(), `(end with a line containing only ".")`) {
		t.Fatalf("multiline hint missing: %q", out.String())
	}
	got, err = h.GetString(context.Background(), req)
	if err != nil || got != "c\nd" {
		t.Fatalf("end of input closes a started block: %q, %v", got, err)
	}
	if _, err := h.GetString(context.Background(), req); !errors.Is(err, schemaprompt.ErrCancelled) {
		t.Fatalf("empty block at end of input cancels, got %v", err)
	}
}

func TestLineHandler_CompletesUniquePrefix(t *testing.T) {
	h, _ := newTestLineHandler("str\n")
	got, err := h.GetString(context.Background(), schemaprompt.StringRequest{Completer: []string{"string", "null"}})
	if err != nil || got != "string" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestLineHandler_GetNumber(t *testing.T) {
	h, out := newTestLineHandler("abc\n4.5\n")
	got, err := h.GetNumber(context.Background(), schemaprompt.NumberRequest{Message: "n: "})
	if err != nil || got != 4.5 {
		t.Fatalf("got %v, %v", got, err)
	}
	if !strings.Contains(out.String(), "not a number") {
		t.Fatalf("rejection missing: %q", out.String())
	}

	h, out = newTestLineHandler("\n")
	def := 3.0
	got, err = h.GetNumber(context.Background(), schemaprompt.NumberRequest{Message: "n: ", Default: &def})
	if err != nil || got != 3 {
		t.Fatalf("got %v, %v", got, err)
	}
	if !strings.Contains(out.String(), "[3] ") {
		t.Fatalf("default hint missing: %q", out.String())
	}
}

func TestLineHandler_GetBoolean(t *testing.T) {
	h, out := newTestLineHandler("maybe\nYes\n")
	got, err := h.GetBoolean(context.Background(), schemaprompt.BoolRequest{Message: "ok? "})
	if err != nil || !got {
		t.Fatalf("got %v, %v", got, err)
	}
	if !strings.Contains(out.String(), "ok? (y/n) ") || !strings.Contains(out.String(), "Please answer y or n") {
		t.Fatalf("unexpected output %q", out.String())
	}

	h, _ = newTestLineHandler("\n")
	def := false
	got, err = h.GetBoolean(context.Background(), schemaprompt.BoolRequest{Message: "ok? ", Default: &def})
	if err != nil || got {
		t.Fatalf("empty answer should take the default: %v, %v", got, err)
	}
}

func TestLineHandler_CancelledContextInterrupts(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	h := NewLineHandler(pr, io.Discard, WithLinePlain())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.GetString(ctx, schemaprompt.StringRequest{}); !errors.Is(err, schemaprompt.ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
}

func TestLineHandler_Print(t *testing.T) {
	h, out := newTestLineHandler("")
	h.Print("a\nb", 1, schemaprompt.ColorError)
	h.PrintInstructions(strings.Repeat("word ", 30), 0)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if lines[0] != "  a" || lines[1] != "  b" {
		t.Fatalf("indent not applied: %q", lines[:2])
	}
	if len(lines) < 4 || !strings.HasPrefix(lines[2], "word") || !strings.HasPrefix(lines[3], "  word") {
		t.Fatalf("instructions should wrap with deeper continuation lines: %q", lines[2:])
	}
	for _, l := range lines[2:] {
		if len(l) > wrapWidth {
			t.Fatalf("line exceeds %d columns: %q", wrapWidth, l)
		}
	}
}

func TestLineHandler_IndentWidth(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewLineHandler(strings.NewReader(""), out, WithLinePlain(), WithLineIndentWidth(4))
	h.Print("x", 2, schemaprompt.ColorDefault)
	if out.String() != "        x\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestLineHandler_DrivesGenerator(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewLineHandler(strings.NewReader("ann\n\nnope\n7\n"), out, WithLinePlain())
	schema := schemaprompt.MustParseSchema(`{"type":"object","properties":{
		"name":{"type":"string"},
		"nick":{"type":"string"},
		"age":{"type":"integer","minimum":0}},
		"required":["name","age"],"additionalProperties":false}`)
	v, err := schemaprompt.New(h).Generate(context.Background(), schema, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !schemaprompt.Equal(v, map[string]any{"name": "ann", "age": 7.0}) {
		t.Fatalf("got %#v", v)
	}
}

func TestComplete(t *testing.T) {
	cands := []string{"string", "null", "number"}
	cases := map[string]string{
		"":       "",
		"s":      "string",
		"NU":     "NU",
		"nul":    "null",
		"Number": "number",
		"x":      "x",
	}
	for in, want := range cases {
		if got := complete(in, cands); got != want {
			t.Fatalf("complete(%q) = %q, want %q", in, got, want)
		}
	}
}
