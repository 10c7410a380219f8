// Package validators provides the built-in validator set: presence checks,
// bounds, pattern and format checks, and cross-field comparison. Every
// constructor accepts an optional custom message; the default comes from the
// i18n dictionary.
package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/mail"
	"net/netip"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	jsonlint "github.com/jsonlint/jsonlint"
	"github.com/jsonlint/jsonlint/dsl"
	"github.com/jsonlint/jsonlint/i18n"
	js "github.com/jsonlint/jsonlint/jsonschema"
)

func pickMessage(message []string, code string, data map[string]string) string {
	if len(message) > 0 && message[0] != "" {
		return message[0]
	}
	return i18n.T(code, data)
}

// isEmptyData mirrors truthiness on coerced values: nil, empty string, false,
// zero numbers, empty collections and the zero time all count as empty.
func isEmptyData(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case int64:
		return t == 0
	case int:
		return t == 0
	case float64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case time.Time:
		return t.IsZero()
	}
	return false
}

// DataRequired fails when the coerced value is empty, halting the rest of the
// field's chain. Flags the field "required".
func DataRequired(message ...string) dsl.Validator {
	return dataRequired{msg: pickMessage(message, jsonlint.CodeRequired, nil)}
}

type dataRequired struct{ msg string }

func (v dataRequired) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	if isEmptyData(f.Data()) {
		return jsonlint.StopWithCode(jsonlint.CodeRequired, v.msg)
	}
	return nil
}
func (dataRequired) FieldFlags() []string { return []string{"required"} }

// InputRequired fails when the input omitted the field entirely, regardless
// of what the coerced value is. Flags the field "required".
func InputRequired(message ...string) dsl.Validator {
	return inputRequired{msg: pickMessage(message, jsonlint.CodeRequired, nil)}
}

type inputRequired struct{ msg string }

func (v inputRequired) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	if !f.Present() || f.Raw() == nil {
		return jsonlint.StopWithCode(jsonlint.CodeRequired, v.msg)
	}
	return nil
}
func (inputRequired) FieldFlags() []string { return []string{"required"} }

// Optional halts the chain without failing when the field is absent or its
// coerced value is empty, discarding any failures recorded so far. Flags the
// field "optional".
func Optional() dsl.Validator { return optional{} }

type optional struct{}

func (optional) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	if !f.Present() || isEmptyData(f.Data()) {
		return jsonlint.StopAndClear()
	}
	return nil
}
func (optional) FieldFlags() []string { return []string{"optional"} }

// Length bounds the rune count of a string value. Pass -1 to leave either
// bound open.
func Length(min, max int, message ...string) dsl.Validator {
	return length{min: min, max: max, message: message}
}

type length struct {
	min, max int
	message  []string
}

func (v length) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	s, ok := f.Data().(string)
	if !ok {
		return nil
	}
	n := utf8.RuneCountInString(s)
	if v.min >= 0 && n < v.min {
		return jsonlint.Fail(jsonlint.CodeTooShort,
			pickMessage(v.message, jsonlint.CodeTooShort, map[string]string{"min": strconv.Itoa(v.min)}))
	}
	if v.max >= 0 && n > v.max {
		return jsonlint.Fail(jsonlint.CodeTooLong,
			pickMessage(v.message, jsonlint.CodeTooLong, map[string]string{"max": strconv.Itoa(v.max)}))
	}
	return nil
}

func (v length) DecorateSchema(s *js.Schema) {
	if v.min >= 0 {
		n := v.min
		s.MinLength = &n
	}
	if v.max >= 0 {
		n := v.max
		s.MaxLength = &n
	}
}

// NumberRange bounds a numeric value. min and max accept any numeric type or
// nil for an open bound.
func NumberRange(min, max any, message ...string) dsl.Validator {
	return numberRange{min: toBound(min), max: toBound(max), message: message}
}

type numberRange struct {
	min, max *float64
	message  []string
}

func toBound(v any) *float64 {
	if v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

func (v numberRange) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	n, ok := toFloat(f.Data())
	if !ok {
		if v.min != nil {
			return jsonlint.Fail(jsonlint.CodeTooSmall,
				pickMessage(v.message, jsonlint.CodeTooSmall, map[string]string{"min": formatBound(*v.min)}))
		}
		return jsonlint.Fail(jsonlint.CodeTooBig,
			pickMessage(v.message, jsonlint.CodeTooBig, map[string]string{"max": formatBound(deref(v.max))}))
	}
	if v.min != nil && n < *v.min {
		return jsonlint.Fail(jsonlint.CodeTooSmall,
			pickMessage(v.message, jsonlint.CodeTooSmall, map[string]string{"min": formatBound(*v.min)}))
	}
	if v.max != nil && n > *v.max {
		return jsonlint.Fail(jsonlint.CodeTooBig,
			pickMessage(v.message, jsonlint.CodeTooBig, map[string]string{"max": formatBound(*v.max)}))
	}
	return nil
}

func (v numberRange) DecorateSchema(s *js.Schema) {
	s.Minimum = v.min
	s.Maximum = v.max
}

func formatBound(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Regexp matches the string value against pattern, anchored at the start.
// The pattern must compile; use MustCompile semantics for package-level
// documents.
func Regexp(pattern string, message ...string) dsl.Validator {
	return regexpRule{re: regexp.MustCompile(pattern), message: message}
}

// RegexpCompiled is Regexp with a pre-compiled expression.
func RegexpCompiled(re *regexp.Regexp, message ...string) dsl.Validator {
	return regexpRule{re: re, message: message}
}

type regexpRule struct {
	re      *regexp.Regexp
	message []string
}

func (v regexpRule) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	s, _ := f.Data().(string)
	loc := v.re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return jsonlint.Fail(jsonlint.CodePattern, pickMessage(v.message, jsonlint.CodePattern, nil))
	}
	return nil
}

func (v regexpRule) DecorateSchema(s *js.Schema) { s.Pattern = v.re.String() }

// Email checks that the value parses as a bare address with a dotted domain.
func Email(message ...string) dsl.Validator {
	return email{msg: pickMessage(message, jsonlint.CodeInvalidFormat, nil)}
}

type email struct{ msg string }

func (v email) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	s, _ := f.Data().(string)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return jsonlint.Fail(jsonlint.CodeInvalidFormat, v.msg)
	}
	at := strings.LastIndexByte(s, '@')
	if at < 0 || !strings.Contains(s[at+1:], ".") {
		return jsonlint.Fail(jsonlint.CodeInvalidFormat, v.msg)
	}
	return nil
}

func (email) DecorateSchema(s *js.Schema) { s.Format = "email" }

// URL checks for an absolute http(s) URL with a host.
func URL(message ...string) dsl.Validator {
	return urlRule{msg: pickMessage(message, jsonlint.CodeInvalidFormat, nil)}
}

type urlRule struct{ msg string }

func (v urlRule) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	s, _ := f.Data().(string)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return jsonlint.Fail(jsonlint.CodeInvalidFormat, v.msg)
	}
	return nil
}

func (urlRule) DecorateSchema(s *js.Schema) { s.Format = "uri" }

// AnyOf requires the value to equal one of values. Numeric values compare by
// magnitude, so int64(3) matches 3.0.
func AnyOf(values []any, message ...string) dsl.Validator {
	return anyOf{values: values, message: message}
}

type anyOf struct {
	values  []any
	message []string
}

func (v anyOf) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	for _, want := range v.values {
		if valuesEqual(f.Data(), want) {
			return nil
		}
	}
	return jsonlint.Fail(jsonlint.CodeInvalidEnum,
		pickMessage(v.message, jsonlint.CodeInvalidEnum, map[string]string{"values": formatValues(v.values)}))
}

func (v anyOf) DecorateSchema(s *js.Schema) { s.Enum = v.values }

// NoneOf requires the value to differ from every entry in values.
func NoneOf(values []any, message ...string) dsl.Validator {
	return noneOf{values: values, message: message}
}

type noneOf struct {
	values  []any
	message []string
}

func (v noneOf) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	for _, bad := range v.values {
		if valuesEqual(f.Data(), bad) {
			return jsonlint.Fail(jsonlint.CodeInvalidEnum,
				pickMessage(v.message, jsonlint.CodeInvalidEnum, map[string]string{"values": formatValues(v.values)}))
		}
	}
	return nil
}

func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return a == b
}

func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// EqualTo requires the value to equal the coerced value of another field in
// the same document.
func EqualTo(other string, message ...string) dsl.Validator {
	return equalTo{other: other, message: message}
}

type equalTo struct {
	other   string
	message []string
}

func (v equalTo) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	of := r.Field(v.other)
	if of == nil {
		return jsonlint.Failf(jsonlint.CodeEqualTo, "invalid field name %q", v.other)
	}
	if !valuesEqual(f.Data(), of.Data()) {
		return jsonlint.Fail(jsonlint.CodeEqualTo,
			pickMessage(v.message, jsonlint.CodeEqualTo, map[string]string{"other": v.other}))
	}
	return nil
}

// UUID checks the canonical textual forms accepted by google/uuid.
func UUID(message ...string) dsl.Validator {
	return uuidRule{msg: pickMessage(message, jsonlint.CodeInvalidFormat, nil)}
}

type uuidRule struct{ msg string }

func (v uuidRule) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	s, _ := f.Data().(string)
	if _, err := uuid.Parse(s); err != nil {
		return jsonlint.Fail(jsonlint.CodeInvalidFormat, v.msg)
	}
	return nil
}

func (uuidRule) DecorateSchema(s *js.Schema) { s.Format = "uuid" }

// IPAddress accepts IPv4 or IPv6 textual addresses.
func IPAddress(message ...string) dsl.Validator {
	return ipRule{msg: pickMessage(message, jsonlint.CodeInvalidFormat, nil)}
}

type ipRule struct{ msg string }

func (v ipRule) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	s, _ := f.Data().(string)
	if _, err := netip.ParseAddr(s); err != nil {
		return jsonlint.Fail(jsonlint.CodeInvalidFormat, v.msg)
	}
	return nil
}

// MacAddress accepts hardware addresses in the forms net.ParseMAC allows.
func MacAddress(message ...string) dsl.Validator {
	return macRule{msg: pickMessage(message, jsonlint.CodeInvalidFormat, nil)}
}

type macRule struct{ msg string }

func (v macRule) Validate(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
	s, _ := f.Data().(string)
	if _, err := net.ParseMAC(s); err != nil {
		return jsonlint.Fail(jsonlint.CodeInvalidFormat, v.msg)
	}
	return nil
}
