package i18n_test

import (
	"strings"
	"testing"

	"github.com/jsonlint/jsonlint/i18n"
)

func TestDefaultMessages(t *testing.T) {
	if got := i18n.T("required", nil); got != "This field is required." {
		t.Fatalf("got %q", got)
	}
	// unknown codes echo back
	if got := i18n.T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("got %q", got)
	}
}

func TestPlaceholderSubstitution(t *testing.T) {
	got := i18n.T("too_short", map[string]string{"min": "3"})
	if !strings.Contains(got, "3") || strings.Contains(got, "{min}") {
		t.Fatalf("placeholder not substituted: %q", got)
	}
}

func TestLanguageSwitch(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	if got := i18n.T("required", nil); got != "この項目は必須です" {
		t.Fatalf("got %q", got)
	}

	// unknown languages fall back to English
	i18n.SetLanguage("fr")
	if got := i18n.T("required", nil); got != "This field is required." {
		t.Fatalf("got %q", got)
	}
}

type constTranslator struct{}

func (constTranslator) Message(code string, data map[string]string) string { return "X" }

func TestCustomTranslator(t *testing.T) {
	i18n.SetTranslator(constTranslator{})
	defer i18n.SetTranslator(nil)
	if got := i18n.T("required", nil); got != "X" {
		t.Fatalf("got %q", got)
	}
}
