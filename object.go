package schemaprompt

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// Object is a string-keyed mapping that remembers insertion order. Collected
// objects and decoded schema documents use it so that properties are prompted
// and printed in the order they were declared or entered.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object { return &Object{values: map[string]any{}} }

// Set stores v under key. New keys are appended; existing keys keep their position.
func (o *Object) Set(key string, v any) {
	if o.values == nil {
		o.values = map[string]any{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// MarshalJSON encodes the members in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if o != nil {
		for i, k := range o.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := json.Marshal(o.values[k])
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Plain converts v into the representation produced by encoding/json with
// UseNumber: map[string]any, []any, json.Number, string, bool and nil. Objects lose
// their ordering; integer and float Go types become json.Number.
func Plain(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil
		}
		m := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			m[k] = Plain(t.values[k])
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = Plain(vv)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = Plain(vv)
		}
		return out
	case json.Number, string, bool, nil:
		return t
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	case float32:
		return json.Number(strconv.FormatFloat(float64(t), 'g', -1, 32))
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	}
	return v
}

// FromPlain converts map[string]any trees into *Object trees with keys sorted so
// that the result is deterministic.
func FromPlain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			o.Set(k, FromPlain(t[k]))
		}
		return o
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = FromPlain(vv)
		}
		return out
	}
	return v
}

// Equal reports whether a and b are the same JSON value. Numbers compare by
// numeric value regardless of their Go representation; object key order is
// ignored.
func Equal(a, b any) bool {
	return equalPlain(Plain(a), Plain(b))
}

func equalPlain(a, b any) bool {
	switch x := a.(type) {
	case json.Number:
		y, ok := b.(json.Number)
		if !ok {
			return false
		}
		rx, okx := new(big.Rat).SetString(string(x))
		ry, oky := new(big.Rat).SetString(string(y))
		if !okx || !oky {
			return x == y
		}
		return rx.Cmp(ry) == 0
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !equalPlain(xv, yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalPlain(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// renderValue renders v as compact JSON for messages.
func renderValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
