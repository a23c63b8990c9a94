package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T(ObjectReset, nil); msg != "Object has been reset" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T(ObjectReset, nil); msg == "Object has been reset" || msg == ObjectReset {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Placeholders(t *testing.T) {
	tr := ForLanguage("en")
	got := tr.Message(PresetUsed, map[string]string{"path": "/a", "value": "5"})
	if got != "At path /a using value 5" {
		t.Fatalf("got %q", got)
	}
}

func TestTranslator_UnknownLanguageAndCode(t *testing.T) {
	tr := ForLanguage("fr")
	if got := tr.Message(ArrayReset, nil); got != "Array has been reset" {
		t.Fatalf("fallback to en expected, got %q", got)
	}
	if got := tr.Message("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown code should echo, got %q", got)
	}
	if Supported("fr") || !Supported("ja") {
		t.Fatalf("Supported mismatch")
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	if got := T(InvalidType, nil); got != "X"+InvalidType {
		t.Fatalf("custom translator not used: %q", got)
	}
	SetTranslator(nil)
	if got := T(InvalidType, nil); got != "Invalid type" {
		t.Fatalf("reset failed: %q", got)
	}
}
