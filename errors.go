package schemaprompt

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeSchemaViolation = "schema_violation"
	CodeInvalidType     = "invalid_type"
	CodeParseError      = "parse_error"
	CodeDuplicateKey    = "duplicate_key"
	CodeInvalidSchema   = "invalid_schema"
	CodePresetMismatch  = "preset_mismatch"
	CodeSetValue        = "set_value"
)

var (
	// ErrCancelled is the cancellation signal raised by an InputHandler (Ctrl-D).
	// Collectors decide per call site whether it skips a field, ends a
	// collection loop, or propagates.
	ErrCancelled = errors.New("schemaprompt: input cancelled")
	// ErrInterrupted is raised by an InputHandler when the user aborts the whole
	// session (Ctrl-C). It is never intercepted by the engine.
	ErrInterrupted = errors.New("schemaprompt: input interrupted")
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer of the offending instance ("" for the root).
	Code    string // One of the codes listed above.
	Message string
	Rule    string // Keyword location that produced the issue, when known.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. schema_violation at /path: message
		fmt.Fprintf(b, "%s at %s", it.Code, displayPath(it.Path))
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages renders one line per issue, prefixed by its path when the issue is
// not about the root value.
func (iss Issues) Messages() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		if it.Path == "" || it.Path == "/" {
			out = append(out, it.Message)
			continue
		}
		out = append(out, it.Path+": "+it.Message)
	}
	return out
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// PresetMismatchError reports a preset value that does not validate against the
// schema at its pointer. It aborts the whole generation.
type PresetMismatchError struct {
	Pointer Pointer
	Value   any
	Issues  Issues
}

func (e *PresetMismatchError) Error() string {
	return fmt.Sprintf("preset value %s at %s does not match schema: %s",
		renderValue(e.Value), e.Pointer.Display(), strings.Join(e.Issues.Messages(), "; "))
}

func (e *PresetMismatchError) Unwrap() error { return e.Issues }

// SetValueError reports an override that could not be reconciled with the
// generated value, either because it conflicts with a produced value or because
// its location cannot be written.
type SetValueError struct {
	Pointer Pointer
	Value   any
	Reason  string
	Err     error
}

func (e *SetValueError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	return fmt.Sprintf("cannot set %s at %s: %s", renderValue(e.Value), e.Pointer.Display(), reason)
}

func (e *SetValueError) Unwrap() error { return e.Err }
