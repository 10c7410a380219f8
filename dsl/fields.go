package dsl

import (
	"encoding/json"
	"math"
	"strconv"

	jsonlint "github.com/jsonlint/jsonlint"
	"github.com/jsonlint/jsonlint/i18n"
)

// String returns a string field spec. Non-string input coerces to the empty
// string without recording an error; validators decide whether that is
// acceptable.
func String() *Spec {
	return &Spec{kind: kindString, defaultVal: "", coerce: coerceString}
}

// Integer returns an int64 field spec. Fractional numeric input truncates
// toward zero; fractional text does not parse.
func Integer() *Spec {
	return &Spec{kind: kindInteger, coerce: coerceInteger}
}

// Float returns a float64 field spec.
func Float() *Spec {
	return &Spec{kind: kindFloat, coerce: coerceFloat}
}

// Bool returns a bool field spec. Coercion never fails: empty and zero values
// are false, as is any string listed in falseValues (default "false" and "").
func Bool(falseValues ...string) *Spec {
	if falseValues == nil {
		falseValues = []string{"false", ""}
	}
	fv := make(map[string]struct{}, len(falseValues))
	for _, s := range falseValues {
		fv[s] = struct{}{}
	}
	return &Spec{kind: kindBool, defaultVal: false, coerce: func(raw any) (any, bool, error) {
		return coerceBool(raw, fv), true, nil
	}}
}

func coerceString(raw any) (any, bool, error) {
	if s, ok := raw.(string); ok {
		return s, true, nil
	}
	return "", true, nil
}

func coerceInteger(raw any) (any, bool, error) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true, nil
		}
		if f, err := v.Float64(); err == nil {
			return int64(math.Trunc(f)), true, nil
		}
	case int64:
		return v, true, nil
	case int:
		return int64(v), true, nil
	case float64:
		return int64(math.Trunc(v)), true, nil
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true, nil
		}
	case bool:
		if v {
			return int64(1), true, nil
		}
		return int64(0), true, nil
	}
	return nil, false, coerceIssue(jsonlint.CodeInvalidInteger, nil)
}

func coerceFloat(raw any) (any, bool, error) {
	switch v := raw.(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true, nil
		}
	case float64:
		return v, true, nil
	case int64:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true, nil
		}
	case bool:
		if v {
			return float64(1), true, nil
		}
		return float64(0), true, nil
	}
	return nil, false, coerceIssue(jsonlint.CodeInvalidFloat, nil)
}

func coerceBool(raw any, falseValues map[string]struct{}) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		_, isFalse := falseValues[v]
		return !isFalse
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func coerceIssue(code string, data map[string]string) error {
	return jsonlint.Fail(code, i18n.T(code, data))
}
