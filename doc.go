// Package schemaprompt builds JSON values interactively from a JSON Schema.
//
// A Generator walks the schema and asks an InputHandler for each value it
// needs:
//
//   - Scalars are prompted directly; const and single-member enum values are
//     taken without asking.
//   - Objects collect required properties, then optional ones (which may be
//     skipped), then any additional properties the schema allows.
//   - Arrays collect tuple positions first, then further items until the user
//     finishes or maxItems is reached.
//   - When the type is ambiguous the user picks one of the candidate types.
//
// Every completed object and array is validated against its schema (Draft 7
// via santhosh-tekuri/jsonschema); a failing attempt is reported and collected
// again from scratch.
//
// Values can be fixed in advance with overrides keyed by JSON Pointer. An
// override is checked against the schema at its location and used instead of
// prompting; overrides the walk never reaches are merged into the result.
//
// Typical usage:
//
//	s, err := schemaprompt.LoadSchemaFile("person.yaml")
//	in := term.NewHandler(os.Stdin, os.Stderr)
//	v, err := schemaprompt.New(in).Generate(ctx, s, map[string]any{"/kind": "person"})
//
// The term package provides interactive and line-based handlers; prompttest
// provides a scripted handler for tests.
package schemaprompt
