package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling and
// max depth checks in a streaming fashion.

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	// IssueSink is an optional callback to receive non-fatal issues (duplicate
	// keys in warn mode).
	IssueSink func(SimpleIssue)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy
// and maximum nesting depth.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []dupFrame
	depth int
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPathForToken(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := dupFrame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "parse_error", Path: path, Message: "max depth exceeded"}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		if e.depth > 0 {
			e.depth--
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if _, ok := top.keys[tok.String]; ok && e.opt.OnDuplicate != DupIgnore {
					si := SimpleIssue{Code: "duplicate_key", Path: path, Message: "key '" + tok.String + "' duplicated"}
					if e.opt.OnDuplicate == DupError {
						return Token{}, IssueError{si}
					}
					if e.opt.IssueSink != nil {
						e.opt.IssueSink(si)
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}
	return tok, nil
}

// valueDone flips the enclosing object frame back to expecting a key.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return joinJSONPointer(top.path, top.pendingKey)
		}
	}
	return top.path
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
