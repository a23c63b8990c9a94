package schemaprompt

import (
	"errors"
	"testing"
)

func TestParsePointer_Escapes(t *testing.T) {
	p, err := ParsePointer("/a~1b/c~0d/0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	toks := p.Tokens()
	if len(toks) != 3 || toks[0] != "a/b" || toks[1] != "c~d" || toks[2] != "0" {
		t.Fatalf("unexpected tokens: %q", toks)
	}
	if p.String() != "/a~1b/c~0d/0" {
		t.Fatalf("round trip: %s", p.String())
	}
}

func TestParsePointer_Invalid(t *testing.T) {
	for _, s := range []string{"a", "/a~2"} {
		_, err := ParsePointer(s)
		var pe *PointerError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected PointerError, got %v", s, err)
		}
	}
}

func TestPointer_RootAndDerivation(t *testing.T) {
	root := Pointer{}
	if !root.IsRoot() || root.String() != "" || root.Display() != "/" {
		t.Fatalf("unexpected root rendering")
	}
	child := root.Field("items").Index(2)
	if child.String() != "/items/2" {
		t.Fatalf("got %s", child.String())
	}
	if !child.Parent().Equal(root.Field("items")) {
		t.Fatalf("parent mismatch")
	}
	if !root.IsRoot() {
		t.Fatalf("derivation must not modify the receiver")
	}
}

func TestPointer_Get(t *testing.T) {
	doc := NewObject()
	doc.Set("a", []any{"x", "y"})

	v, err := MustParsePointer("/a/1").Get(doc)
	if err != nil || v != "y" {
		t.Fatalf("get /a/1: %v %v", v, err)
	}
	if _, err := MustParsePointer("/b").Get(doc); !errors.Is(err, ErrPointerNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := MustParsePointer("/a/-").Get(doc); !errors.Is(err, ErrEndOfSequence) {
		t.Fatalf("expected end of sequence for '-', got %v", err)
	}
	if _, err := MustParsePointer("/a/2").Get(doc); !errors.Is(err, ErrEndOfSequence) {
		t.Fatalf("expected end of sequence for len index, got %v", err)
	}
	if _, err := MustParsePointer("/a/3").Get(doc); !errors.Is(err, ErrPointerNotFound) {
		t.Fatalf("expected not found past the end, got %v", err)
	}
	if _, err := MustParsePointer("/a/0/z").Get(doc); !errors.Is(err, ErrPointerNotFound) {
		t.Fatalf("expected not found below a scalar, got %v", err)
	}
}

func TestPointer_Set(t *testing.T) {
	doc := NewObject()
	doc.Set("list", []any{1.0})

	out, err := MustParsePointer("/list/-").Set(doc, "tail")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	list, _ := out.(*Object).Get("list")
	if got := list.([]any); len(got) != 2 || got[1] != "tail" {
		t.Fatalf("append failed: %#v", got)
	}

	if _, err := MustParsePointer("/name").Set(doc, "n"); err != nil {
		t.Fatalf("set member: %v", err)
	}
	if !doc.Has("name") {
		t.Fatalf("member not written")
	}

	_, err = MustParsePointer("/missing/x").Set(doc, 1)
	if !errors.Is(err, ErrPointerNotFound) {
		t.Fatalf("intermediate containers must not be created, got %v", err)
	}

	replaced, err := Pointer{}.Set(doc, 5)
	if err != nil || replaced != 5 {
		t.Fatalf("root set should replace the document: %v %v", replaced, err)
	}
}

