package schemaprompt

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	eng "github.com/reoring/schemaprompt/internal/engine"
)

// DecodeJSON decodes a single JSON document into Object/[]any/json.Number/string/
// bool/nil values, keeping object members in document order.
func DecodeJSON(data []byte, opts ...LoadOpt) (any, error) {
	return DecodeJSONReader(bytes.NewReader(data), opts...)
}

// DecodeJSONReader is DecodeJSON over an io.Reader.
func DecodeJSONReader(r io.Reader, opts ...LoadOpt) (any, error) {
	opt := pickLoadOpt(opts)
	src := eng.WrapWithEnforcement(eng.NewReader(r), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink:   forwardIssues(opt.Warn),
	})
	v, err := eng.DecodeOrdered(src, newEngineObject)
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

func newEngineObject() eng.ObjectSetter { return NewObject() }

// ParseSchemaJSON decodes a JSON Schema document.
func ParseSchemaJSON(data []byte, opts ...LoadOpt) (*Schema, error) {
	v, err := DecodeJSON(data, opts...)
	if err != nil {
		return nil, err
	}
	return SchemaFromValue(v)
}

// ParseSchemaYAML decodes a YAML document holding a JSON Schema.
func ParseSchemaYAML(data []byte, opts ...LoadOpt) (*Schema, error) {
	v, err := DecodeYAML(data, opts...)
	if err != nil {
		return nil, err
	}
	return SchemaFromValue(v)
}

// ParseSchema accepts JSON and falls back to YAML, so that inline schemas may be
// written in either syntax.
func ParseSchema(data []byte, opts ...LoadOpt) (*Schema, error) {
	s, err := ParseSchemaJSON(data, opts...)
	if err == nil {
		return s, nil
	}
	if iss, ok := AsIssues(err); ok && len(iss) > 0 && iss[0].Code != CodeParseError {
		// well-formed JSON that failed for another reason (duplicate key, schema shape)
		return nil, err
	}
	return ParseSchemaYAML(data, opts...)
}

// MustParseSchema is like ParseSchema but panics on error.
func MustParseSchema(text string) *Schema {
	s, err := ParseSchema([]byte(text))
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSchemaFile reads a schema from path. Files ending in .yaml or .yml are read
// as YAML, everything else as JSON with YAML fallback.
func LoadSchemaFile(path string, opts ...LoadOpt) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseSchemaYAML(data, opts...)
	case ".json":
		return ParseSchemaJSON(data, opts...)
	default:
		return ParseSchema(data, opts...)
	}
}

// ---- helpers (engine mapping, error mapping) ----

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func forwardIssues(sink func(Issue)) func(eng.SimpleIssue) {
	if sink == nil {
		return nil
	}
	return func(si eng.SimpleIssue) {
		sink(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Cause: err})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Cause: err})
}
