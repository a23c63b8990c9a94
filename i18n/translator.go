package i18n

import "strings"

// Translator retrieves localized text for message codes.
// data provides values substituted into {name} placeholders (for example,
// "path" or "types").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Message codes for the fixed text printed while prompting.
const (
	RequiredCoda   = "required_coda"
	SkipCoda       = "skip_coda"
	FinishCoda     = "finish_coda"
	EnterValue     = "enter_value"
	EnterType      = "enter_type"
	PropertyName   = "property_name"
	PropertyValue  = "property_value"
	PropertyExists = "property_exists"
	ObjectReset    = "object_reset"
	ArrayReset     = "array_reset"
	PresetUsed     = "preset_used"
	InvalidType    = "invalid_type"
	TypeOneOf      = "type_one_of"
	NotANumber     = "not_a_number"
	ConfirmHint    = "confirm_hint"
	AnswerYesNo    = "answer_yes_no"
	MultilineHint  = "multiline_hint"
)

var dictionaries = map[string]map[string]string{
	"en": {
		RequiredCoda:   " [REQUIRED]",
		SkipCoda:       " (CTRL-D to skip)",
		FinishCoda:     " (CTRL+D to finish)",
		EnterValue:     "Enter a value",
		EnterType:      "Enter a type",
		PropertyName:   "Enter a property name (CTRL+D to finish): ",
		PropertyValue:  "Enter the property value: ",
		PropertyExists: "Property already exists",
		ObjectReset:    "Object has been reset",
		ArrayReset:     "Array has been reset",
		PresetUsed:     "At path {path} using value {value}",
		InvalidType:    "Invalid type",
		TypeOneOf:      "Type must be one of: {types}",
		NotANumber:     "not a number",
		ConfirmHint:    "(y/n) ",
		AnswerYesNo:    "Please answer y or n",
		MultilineHint:  "(end with a line containing only \".\")",
	},
	"ja": {
		RequiredCoda:   " [必須]",
		SkipCoda:       " (CTRL-D でスキップ)",
		FinishCoda:     " (CTRL+D で終了)",
		EnterValue:     "値を入力してください",
		EnterType:      "型を入力してください",
		PropertyName:   "プロパティ名を入力してください (CTRL+D で終了): ",
		PropertyValue:  "プロパティの値を入力してください: ",
		PropertyExists: "プロパティは既に存在します",
		ObjectReset:    "オブジェクトをリセットしました",
		ArrayReset:     "配列をリセットしました",
		PresetUsed:     "パス {path} では値 {value} を使用します",
		InvalidType:    "型が不正です",
		TypeOneOf:      "型は次のいずれかです: {types}",
		NotANumber:     "数値ではありません",
		ConfirmHint:    "(y/n) ",
		AnswerYesNo:    "y または n で答えてください",
		MultilineHint:  "(\".\" だけの行で終了)",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		msg, ok = dictionaries["en"][code]
	}
	if !ok {
		return code
	}
	return fill(msg, data)
}

func fill(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// ForLanguage returns the built-in Translator for lang ("en"/"ja"). Unknown
// languages fall back to English.
func ForLanguage(lang string) Translator {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

// Supported reports whether lang has a built-in dictionary.
func Supported(lang string) bool {
	_, ok := dictionaries[lang]
	return ok
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) { currentTranslator = ForLanguage(lang) }

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// Current returns the Translator installed with SetLanguage/SetTranslator.
func Current() Translator { return currentTranslator }

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
