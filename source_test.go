package schemaprompt_test

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	sp "github.com/reoring/schemaprompt"
)

func TestDecodeJSON_DuplicateKey_Error(t *testing.T) {
	_, err := sp.DecodeJSON([]byte(`{"a":1,"a":2}`))
	if err == nil {
		t.Fatalf("expected error for duplicate key")
	}
	if iss, ok := sp.AsIssues(err); ok {
		if len(iss) == 0 || iss[0].Code != sp.CodeDuplicateKey {
			t.Fatalf("expected duplicate_key issue, got: %v", iss)
		} else if iss[0].Path != "/a" {
			t.Fatalf("expected path=/a, got: %s", iss[0].Path)
		}
	} else {
		t.Fatalf("expected Issues error, got: %v", err)
	}
}

func TestDecodeJSON_DuplicateKey_NestedPath(t *testing.T) {
	_, err := sp.DecodeJSON([]byte(`[{"a":1,"a":2}]`))
	iss, ok := sp.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if iss[0].Path != "/0/a" {
		t.Fatalf("expected path=/0/a, got: %s", iss[0].Path)
	}
}

func TestDecodeJSON_DuplicateKey_Warn(t *testing.T) {
	var warned []sp.Issue
	opt := sp.LoadOpt{
		Strictness: sp.Strictness{OnDuplicateKey: sp.Warn},
		Warn:       func(i sp.Issue) { warned = append(warned, i) },
	}
	if _, err := sp.DecodeJSON([]byte(`{"a":1,"a":2}`), opt); err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(warned) != 1 || warned[0].Code != sp.CodeDuplicateKey {
		t.Fatalf("expected one duplicate_key warning, got %v", warned)
	}
}

func TestDecodeJSON_MaxDepth_Exceeded(t *testing.T) {
	// depth = 3 for { a: { b: { c: 1 } } }
	_, err := sp.DecodeJSON([]byte(`{"a":{"b":{"c":1}}}`), sp.LoadOpt{MaxDepth: 2})
	if err == nil {
		t.Fatalf("expected error for max depth exceeded")
	}
	if iss, ok := sp.AsIssues(err); ok {
		if len(iss) == 0 || iss[0].Path != "/a/b" {
			t.Fatalf("expected path=/a/b for max depth, got: %v", iss)
		}
	}
}

func TestDecodeJSON_OrderAndNumbers(t *testing.T) {
	v, err := sp.DecodeJSON([]byte(`{"z":1,"a":2.50}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	o := v.(*sp.Object)
	if keys := o.Keys(); keys[0] != "z" || keys[1] != "a" {
		t.Fatalf("order lost: %v", keys)
	}
	if a, _ := o.Get("a"); a != json.Number("2.50") {
		t.Fatalf("numbers must keep their literal: %#v", a)
	}
}

func TestDecodeYAML_OrderAndScalars(t *testing.T) {
	v, err := sp.DecodeYAML([]byte("type: object\nproperties:\n  zeta: {type: integer}\n  alpha: {type: boolean}\nrequired: [zeta]\nmaxItems: 3\nflag: yes\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	o := v.(*sp.Object)
	props, _ := o.Get("properties")
	if keys := props.(*sp.Object).Keys(); keys[0] != "zeta" || keys[1] != "alpha" {
		t.Fatalf("yaml mapping order lost: %v", keys)
	}
	if n, _ := o.Get("maxItems"); n != int64(3) {
		t.Fatalf("expected int64 3, got %#v", n)
	}
	if f, _ := o.Get("flag"); f != "yes" {
		t.Fatalf("YAML 1.2 keeps yes as a string, got %#v", f)
	}
}

func TestDecodeYAML_DuplicateKey(t *testing.T) {
	_, err := sp.DecodeYAML([]byte("a: 1\nb: 2\na: 3\n"))
	iss, ok := sp.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != sp.CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got %v", err)
	}
	de, ok := iss[0].Cause.(*sp.DuplicateKeyError)
	if !ok || de.Key != "a" || de.FirstLine != 1 || de.Line != 3 {
		t.Fatalf("expected positions in cause, got %#v", iss[0].Cause)
	}
}

func TestParseSchema_FallsBackToYAML(t *testing.T) {
	s, err := sp.ParseSchema([]byte("type: string\nminLength: 2"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := s.String(); got != `{"type":"string","minLength":2}` {
		t.Fatalf("unexpected schema %s", got)
	}
}

func TestParseSchema_RejectsScalarDocument(t *testing.T) {
	_, err := sp.ParseSchema([]byte(`"just a string"`))
	iss, ok := sp.AsIssues(err)
	if !ok || iss[0].Code != sp.CodeInvalidSchema {
		t.Fatalf("expected invalid_schema, got %v", err)
	}
}

func TestLoadSchemaFile_ByExtension(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "s.yaml")
	if err := os.WriteFile(yml, []byte("type: array\nitems: {type: number}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := sp.LoadSchemaFile(yml)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if s.String() != `{"type":"array","items":{"type":"number"}}` {
		t.Fatalf("unexpected %s", s.String())
	}

	js := filepath.Join(dir, "s.json")
	if err := os.WriteFile(js, []byte("type: array"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := sp.LoadSchemaFile(js); err == nil {
		t.Fatalf(".json files must not fall back to YAML")
	}
}
