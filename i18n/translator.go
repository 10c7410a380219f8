// Package i18n localizes validation messages by issue code.
package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "min" or "max"); occurrences of "{key}" in the dictionary entry are
// replaced with the corresponding value.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := lookup(t.lang, code)
	if msg == "" {
		msg = code
	}
	return expand(msg, data)
}

func lookup(lang, code string) string {
	switch lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "この項目は必須です"
		case "invalid_integer":
			return "整数ではありません"
		case "invalid_float":
			return "数値ではありません"
		case "invalid_datetime":
			return "日時の形式が不正です"
		case "invalid_date":
			return "日付の形式が不正です"
		case "invalid_time":
			return "時刻の形式が不正です"
		case "invalid_list":
			return "リストではありません"
		case "too_short":
			return "{min}文字以上で入力してください"
		case "too_long":
			return "{max}文字以内で入力してください"
		case "too_small":
			return "{min}以上の値を入力してください"
		case "too_big":
			return "{max}以下の値を入力してください"
		case "pattern":
			return "形式が不正です"
		case "invalid_enum":
			return "許可されていない値です"
		case "invalid_format":
			return "形式が不正です"
		case "equal_to":
			return "{other}と一致しません"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		case "stopped":
			return "検証を中断しました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "This field is required."
		case "invalid_integer":
			return "Not a valid integer value"
		case "invalid_float":
			return "Not a valid float value"
		case "invalid_datetime":
			return "Not a valid datetime value"
		case "invalid_date":
			return "Not a valid date value"
		case "invalid_time":
			return "Not a valid time value"
		case "invalid_list":
			return "Not a valid list value"
		case "too_short":
			return "Must be at least {min} characters long."
		case "too_long":
			return "Cannot be longer than {max} characters."
		case "too_small":
			return "Number must be at least {min}."
		case "too_big":
			return "Number must be at most {max}."
		case "pattern":
			return "Invalid input."
		case "invalid_enum":
			return "Invalid value, must be one of: {values}."
		case "invalid_format":
			return "Invalid input."
		case "equal_to":
			return "Field must be equal to {other}."
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		case "stopped":
			return "validation stopped"
		}
	}
	return ""
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.ContainsRune(msg, '{') {
		return msg
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
