package schemaprompt_test

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"

	sp "github.com/reoring/schemaprompt"
	"github.com/reoring/schemaprompt/prompttest"
)

// ---- Helpers ----

func smallUserSchema(tb testing.TB) *sp.Schema {
	tb.Helper()
	s, err := sp.ParseSchema([]byte(`{
		"type": "object",
		"properties": {"id": {"type": "string"}, "name": {"type": "string"}, "age": {"type": "integer", "minimum": 0}},
		"required": ["id"],
		"additionalProperties": false
	}`))
	if err != nil {
		tb.Fatalf("schema parse failed: %v", err)
	}
	return s
}

func smallUserAnswers() []prompttest.Answer {
	return []prompttest.Answer{prompttest.Say("u_1"), prompttest.Say("alice"), prompttest.Say("30")}
}

// generateHugeJSONArray returns a JSON array of objects of the form:
// [{"id":"obj_0","name":"n0","age":0,"active":true,"meta":{"score":0},"k0":"v0",...}, ...]
func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		fmt.Fprintf(&buf, "\"id\":\"obj_%d\",", i)
		fmt.Fprintf(&buf, "\"name\":\"n%d\",", i)
		fmt.Fprintf(&buf, "\"age\":%d,", i)
		if i%2 == 0 {
			buf.WriteString("\"active\":true,")
		} else {
			buf.WriteString("\"active\":false,")
		}
		fmt.Fprintf(&buf, "\"meta\":{\"score\":%d}", i)
		for k := 0; k < extraFields; k++ {
			buf.WriteString(",\"k")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\":\"v")
			buf.WriteString(strconv.Itoa(i))
			buf.WriteString("_")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\"")
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// ---- Micro benchmarks ----

func Benchmark_Generate_Object_Small(b *testing.B) {
	ctx := context.Background()
	s := smallUserSchema(b)
	answers := smallUserAnswers()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := sp.New(prompttest.New(answers...))
		if _, err := g.Generate(ctx, s, nil); err != nil {
			b.Fatal(err)
		}
	}
}

// A single Generator reuses compiled validators across runs.
func Benchmark_Generate_Object_Small_Presets(b *testing.B) {
	ctx := context.Background()
	s := smallUserSchema(b)
	g := sp.New(prompttest.New())
	presets := map[string]any{"/id": "u_1", "/name": "alice", "/age": 30.0}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Generate(ctx, s, presets); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Validate_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(1000, 4)
	v, err := sp.DecodeJSON(data)
	if err != nil {
		b.Fatal(err)
	}
	s := sp.MustParseSchema(`{"type":"array","items":{"type":"object","required":["id"],"properties":{"id":{"type":"string"}}}}`)
	g := sp.New(prompttest.New())
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		iss, err := g.Validate(s, v)
		if err != nil || len(iss) > 0 {
			b.Fatalf("validate: %v %v", iss, err)
		}
	}
}

func Benchmark_DecodeJSON_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(1000, 4)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sp.DecodeJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}
