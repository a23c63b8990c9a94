package schemaprompt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reoring/schemaprompt/i18n"
)

// validatorCache compiles schema fragments with the Draft 7 vocabulary and keeps
// them keyed by their canonical JSON text, so a fragment validated on every
// retry is compiled once.
type validatorCache struct {
	assertFormat bool

	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

func newValidatorCache(assertFormat bool) *validatorCache {
	return &validatorCache{assertFormat: assertFormat, compiled: map[string]*jsonschema.Schema{}}
}

func (c *validatorCache) compile(s *Schema) (*jsonschema.Schema, error) {
	raw, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	key := string(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cs, ok := c.compiled[key]; ok {
		return cs, nil
	}
	comp := jsonschema.NewCompiler()
	comp.Draft = jsonschema.Draft7
	if !c.assertFormat {
		// Draft 7 always asserts known formats; shadow them with permissive checks.
		for name := range jsonschema.Formats {
			comp.Formats[name] = func(any) bool { return true }
		}
	}
	url := fmt.Sprintf("mem://schemaprompt/fragment-%d.json", len(c.compiled))
	if err := comp.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, AppendIssues(nil, Issue{Code: CodeInvalidSchema, Message: err.Error(), Cause: err})
	}
	cs, err := comp.Compile(url)
	if err != nil {
		return nil, AppendIssues(nil, Issue{Code: CodeInvalidSchema, Message: err.Error(), Cause: err})
	}
	c.compiled[key] = cs
	return cs, nil
}

// validate checks v against s. Violations are returned as Issues; the error is
// reserved for fragments that cannot be compiled or values the validator
// cannot represent.
func (c *validatorCache) validate(s *Schema, v any) (Issues, error) {
	cs, err := c.compile(s)
	if err != nil {
		return nil, err
	}
	err = cs.Validate(Plain(v))
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return validationIssues(ve), nil
	}
	return nil, err
}

// validationIssues flattens the validator's error tree into its leaves, which
// carry the specific messages ("missing properties: 'a'", "expected string, but
// got number").
func validationIssues(ve *jsonschema.ValidationError) Issues {
	var out Issues
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = AppendIssues(out, Issue{
				Path:    e.InstanceLocation,
				Code:    CodeSchemaViolation,
				Message: e.Message,
				Rule:    e.KeywordLocation,
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}

// stringValidator checks entered text as a JSON string value against s.
func (c *validatorCache) stringValidator(s *Schema) Validator {
	return func(text string) error {
		iss, err := c.validate(s, text)
		if err != nil {
			return err
		}
		if len(iss) > 0 {
			return iss
		}
		return nil
	}
}

// numberValidator parses entered text as a JSON number and checks it against s.
func (c *validatorCache) numberValidator(s *Schema, tr i18n.Translator) Validator {
	return func(text string) error {
		v, err := DecodeJSON([]byte(strings.TrimSpace(text)))
		if err != nil {
			return errors.New(ValidatorMessage(err))
		}
		if _, ok := v.(json.Number); !ok {
			return errors.New(tr.Message(i18n.NotANumber, nil))
		}
		iss, err := c.validate(s, v)
		if err != nil {
			return err
		}
		if len(iss) > 0 {
			return iss
		}
		return nil
	}
}

// typeValidator accepts the name of a primitive type from candidates, or any
// primitive type when candidates is empty.
func typeValidator(candidates []Type, tr i18n.Translator) Validator {
	return func(text string) error {
		t := Type(text)
		if !t.Valid() {
			return errors.New(tr.Message(i18n.InvalidType, nil))
		}
		if len(candidates) == 0 {
			return nil
		}
		for _, c := range candidates {
			if c == t {
				return nil
			}
		}
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = string(c)
		}
		return errors.New(tr.Message(i18n.TypeOneOf, map[string]string{"types": strings.Join(names, ", ")}))
	}
}
