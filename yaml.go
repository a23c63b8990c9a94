package schemaprompt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// DecodeYAML decodes the first document of a YAML stream into the same value
// model as DecodeJSON. Mapping order is preserved.
func DecodeYAML(data []byte, opts ...LoadOpt) (any, error) {
	opt := pickLoadOpt(opts)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, singleIssue(CodeParseError, "empty YAML document")
		}
		return nil, toIssues(err)
	}
	w := yamlWalker{opt: opt}
	v, err := w.node(&root, Pointer{}, 0)
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

type yamlWalker struct {
	opt LoadOpt
}

func (w yamlWalker) node(n *yaml.Node, at Pointer, depth int) (any, error) {
	if w.opt.MaxDepth > 0 && depth > w.opt.MaxDepth {
		return nil, Issues{IssueAt(at, CodeParseError, "max depth exceeded")}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.node(n.Content[0], at, depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		return w.node(n.Alias, at, depth)
	case yaml.MappingNode:
		m := NewObject()
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			key := k.Value
			if pos, dup := first[key]; dup {
				de := &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
				iss := Issue{Path: at.Field(key).String(), Code: CodeDuplicateKey, Message: de.Error(), Cause: de}
				switch w.opt.Strictness.OnDuplicateKey {
				case Error:
					return nil, Issues{iss}
				case Warn:
					if w.opt.Warn != nil {
						w.opt.Warn(iss)
					}
				}
			} else {
				first[key] = [2]int{k.Line, k.Column}
			}
			val, err := w.node(n.Content[i+1], at.Field(key), depth+1)
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := w.node(c, at.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(n), nil
	default:
		return nil, nil
	}
}

func yamlScalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
		return n.Value
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return i
		}
		return n.Value
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
		return n.Value
	default:
		return n.Value
	}
}
