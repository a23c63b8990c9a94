package schemaprompt

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestObject_MarshalKeepsInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", 1)
	o.Set("a", []any{true, nil})
	o.Set("b", 2) // existing key keeps its slot
	got, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"b":2,"a":[true,null]}` {
		t.Fatalf("got %s", got)
	}
}

func TestEqual_NumbersCompareByValue(t *testing.T) {
	cases := []struct {
		a, b any
		want bool
	}{
		{json.Number("5"), 5.0, true},
		{json.Number("5.0"), int64(5), true},
		{json.Number("5.1"), 5.0, false},
		{"5", 5.0, false},
		{nil, nil, true},
		{[]any{1.0, "x"}, []any{json.Number("1"), "x"}, true},
	}
	for i, c := range cases {
		if got := Equal(c.a, c.b); got != c.want {
			t.Fatalf("case %d: Equal(%#v, %#v) = %v", i, c.a, c.b, got)
		}
	}
}

func TestEqual_ObjectsIgnoreOrder(t *testing.T) {
	a := NewObject()
	a.Set("x", 1.0)
	a.Set("y", "s")
	b := map[string]any{"y": "s", "x": json.Number("1")}
	if !Equal(a, b) {
		t.Fatalf("expected equal objects")
	}
	b["z"] = true
	if Equal(a, b) {
		t.Fatalf("extra member must differ")
	}
}

func TestFromPlain_SortsKeys(t *testing.T) {
	o := FromPlain(map[string]any{"b": 1, "a": map[string]any{"d": 1, "c": 2}}).(*Object)
	if keys := o.Keys(); keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected order %v", keys)
	}
	inner, _ := o.Get("a")
	if keys := inner.(*Object).Keys(); keys[0] != "c" {
		t.Fatalf("nested maps must convert too: %v", keys)
	}
}
