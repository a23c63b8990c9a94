package schemaprompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrPointerNotFound reports that a pointer addresses a location that does
	// not exist in a document.
	ErrPointerNotFound = errors.New("schemaprompt: pointer location does not exist")
	// ErrEndOfSequence reports that a pointer addresses the position just past
	// the end of an array ("-", or an index equal to the length).
	ErrEndOfSequence = errors.New("schemaprompt: pointer addresses end of sequence")
)

// EndOfSequence is the RFC 6901 token addressing the position after the last
// array element.
const EndOfSequence = "-"

// Pointer is an RFC 6901 JSON Pointer held as unescaped reference tokens. The
// zero value addresses the document root. Pointers are values; Field and Index
// return new pointers and never share backing storage with the receiver.
type Pointer struct {
	parts []string
}

// PointerError reports a malformed pointer string.
type PointerError struct {
	Pointer string
	Reason  string
}

func (e *PointerError) Error() string {
	return fmt.Sprintf("invalid JSON pointer %q: %s", e.Pointer, e.Reason)
}

// ParsePointer parses the string form of a pointer ("" or "/a/0/b~1c").
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return Pointer{}, &PointerError{Pointer: s, Reason: "must be empty or start with '/'"}
	}
	raw := strings.Split(s[1:], "/")
	parts := make([]string, len(raw))
	for i, r := range raw {
		tok, err := unescapeToken(r)
		if err != nil {
			return Pointer{}, &PointerError{Pointer: s, Reason: err.Error()}
		}
		parts[i] = tok
	}
	return Pointer{parts: parts}, nil
}

// MustParsePointer is like ParsePointer but panics on error.
func MustParsePointer(s string) Pointer {
	p, err := ParsePointer(s)
	if err != nil {
		panic(err)
	}
	return p
}

func unescapeToken(s string) (string, error) {
	if !strings.Contains(s, "~") {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) || (s[i+1] != '0' && s[i+1] != '1') {
			return "", errors.New("'~' must be followed by '0' or '1'")
		}
		if s[i+1] == '0' {
			b.WriteByte('~')
		} else {
			b.WriteByte('/')
		}
		i++
	}
	return b.String(), nil
}

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Field returns the pointer extended by an object member name.
func (p Pointer) Field(name string) Pointer {
	return Pointer{parts: append(append(make([]string, 0, len(p.parts)+1), p.parts...), name)}
}

// Index returns the pointer extended by an array index.
func (p Pointer) Index(i int) Pointer { return p.Field(strconv.Itoa(i)) }

// Parent returns the pointer without its last token. The root is its own parent.
func (p Pointer) Parent() Pointer {
	if len(p.parts) == 0 {
		return p
	}
	return Pointer{parts: append([]string(nil), p.parts[:len(p.parts)-1]...)}
}

// Tokens returns a copy of the unescaped reference tokens.
func (p Pointer) Tokens() []string { return append([]string(nil), p.parts...) }

// IsRoot reports whether p addresses the whole document.
func (p Pointer) IsRoot() bool { return len(p.parts) == 0 }

// Equal reports whether both pointers hold the same token sequence.
func (p Pointer) Equal(o Pointer) bool {
	if len(p.parts) != len(o.parts) {
		return false
	}
	for i := range p.parts {
		if p.parts[i] != o.parts[i] {
			return false
		}
	}
	return true
}

// String renders the RFC 6901 form. The root renders as "".
func (p Pointer) String() string {
	if len(p.parts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range p.parts {
		b.WriteByte('/')
		b.WriteString(tokenEscaper.Replace(t))
	}
	return b.String()
}

// Display renders the pointer for messages; the root renders as "/".
func (p Pointer) Display() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return p.String()
}

// Get resolves p against doc. It returns ErrPointerNotFound (wrapped with the
// failing prefix) when a member or element is missing, and ErrEndOfSequence when
// the last token addresses the slot just past the end of an array.
func (p Pointer) Get(doc any) (any, error) {
	cur := doc
	for i, tok := range p.parts {
		last := i == len(p.parts)-1
		switch c := cur.(type) {
		case *Object:
			v, ok := c.Get(tok)
			if !ok {
				return nil, p.notFound(i, "member not found")
			}
			cur = v
		case map[string]any:
			v, ok := c[tok]
			if !ok {
				return nil, p.notFound(i, "member not found")
			}
			cur = v
		case []any:
			idx, end, err := arrayIndex(tok, len(c))
			if err != nil {
				return nil, p.notFound(i, err.Error())
			}
			if end {
				if last {
					return nil, ErrEndOfSequence
				}
				return nil, p.notFound(i, "end of sequence has no members")
			}
			cur = c[idx]
		default:
			return nil, p.notFound(i, "cannot descend into a scalar")
		}
	}
	return cur, nil
}

func (p Pointer) notFound(i int, reason string) error {
	return fmt.Errorf("%w: %s at %s", ErrPointerNotFound, reason, Pointer{parts: p.parts[:i+1]}.Display())
}

// arrayIndex interprets tok for an array of length n. end is true for "-" and
// for an index equal to n.
func arrayIndex(tok string, n int) (idx int, end bool, err error) {
	if tok == EndOfSequence {
		return n, true, nil
	}
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false, fmt.Errorf("invalid array index %q", tok)
	}
	i, convErr := strconv.Atoi(tok)
	if convErr != nil || i < 0 {
		return 0, false, fmt.Errorf("invalid array index %q", tok)
	}
	if i > n {
		return 0, false, fmt.Errorf("index %d out of range", i)
	}
	return i, i == n, nil
}

// Set writes v at p inside doc and returns the updated document. Object members
// are created or replaced, array elements are replaced, and the end-of-sequence
// slot appends. Intermediate containers are never created.
func (p Pointer) Set(doc, v any) (any, error) {
	return p.set(doc, 0, v)
}

func (p Pointer) set(cur any, i int, v any) (any, error) {
	if i == len(p.parts) {
		return v, nil
	}
	tok := p.parts[i]
	last := i == len(p.parts)-1
	switch c := cur.(type) {
	case *Object:
		if last {
			c.Set(tok, v)
			return c, nil
		}
		child, ok := c.Get(tok)
		if !ok {
			return nil, p.notFound(i, "member not found")
		}
		nv, err := p.set(child, i+1, v)
		if err != nil {
			return nil, err
		}
		c.Set(tok, nv)
		return c, nil
	case map[string]any:
		if last {
			c[tok] = v
			return c, nil
		}
		child, ok := c[tok]
		if !ok {
			return nil, p.notFound(i, "member not found")
		}
		nv, err := p.set(child, i+1, v)
		if err != nil {
			return nil, err
		}
		c[tok] = nv
		return c, nil
	case []any:
		idx, end, err := arrayIndex(tok, len(c))
		if err != nil {
			return nil, p.notFound(i, err.Error())
		}
		if end {
			if !last {
				return nil, p.notFound(i, "end of sequence has no members")
			}
			return append(c, v), nil
		}
		nv, err := p.set(c[idx], i+1, v)
		if err != nil {
			return nil, err
		}
		c[idx] = nv
		return c, nil
	default:
		return nil, p.notFound(i, "cannot descend into a scalar")
	}
}
