package engine

import (
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ObjectSetter receives object members in document order.
type ObjectSetter interface {
	Set(key string, v any)
}

// NewObjectFunc allocates the container used for decoded JSON objects.
type NewObjectFunc func() ObjectSetter

// ErrTrailingData is returned when a document holds more than one value.
var ErrTrailingData = errors.New("engine: trailing data after top-level value")

// DecodeOrdered builds a value tree from src. Objects are created with newObject and
// populated in document order; numbers are kept as json.Number.
func DecodeOrdered(src TokenSource, newObject NewObjectFunc) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := decodeValue(src, tok, newObject)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

func decodeValue(src TokenSource, tok Token, newObject NewObjectFunc) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, newObject)
	case KindBeginArray:
		return decodeArray(src, newObject)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource, newObject NewObjectFunc) (any, error) {
	m := newObject()
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpected(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, unexpected(err)
		}
		v, err := decodeValue(src, vt, newObject)
		if err != nil {
			return nil, err
		}
		m.Set(tok.String, v)
	}
}

func decodeArray(src TokenSource, newObject NewObjectFunc) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpected(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok, newObject)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
