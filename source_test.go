package jsonlint_test

import (
	"encoding/json"
	"strings"
	"testing"

	jsonlint "github.com/jsonlint/jsonlint"
	"github.com/jsonlint/jsonlint/source/gojson"
)

func TestDecodeAnyBasics(t *testing.T) {
	src := jsonlint.JSONBytes([]byte(`{"name":"a","n":3,"ok":true,"none":null,"xs":[1,2]}`))
	v, err := jsonlint.DecodeAny(src, jsonlint.BindOpt{}, nil)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	if m["name"] != "a" || m["ok"] != true || m["none"] != nil {
		t.Fatalf("unexpected values: %v", m)
	}
	if n, ok := m["n"].(json.Number); !ok || n.String() != "3" {
		t.Fatalf("numbers must stay json.Number, got %T %v", m["n"], m["n"])
	}
	if xs, ok := m["xs"].([]any); !ok || len(xs) != 2 {
		t.Fatalf("unexpected array: %v", m["xs"])
	}
}

func TestDecodeAnyMalformed(t *testing.T) {
	src := jsonlint.JSONReader(strings.NewReader(`{"a":`))
	_, err := jsonlint.DecodeAny(src, jsonlint.BindOpt{}, nil)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	iss, ok := jsonlint.AsIssues(err)
	if !ok || iss[0].Code != jsonlint.CodeParseError {
		t.Fatalf("expected parse_error issue, got %v", err)
	}
}

func TestDecodeAnyDuplicateWarnSink(t *testing.T) {
	var seen []jsonlint.Issue
	src := jsonlint.JSONBytes([]byte(`{"a":1,"a":2}`))
	opt := jsonlint.BindOpt{Strictness: jsonlint.Strictness{OnDuplicateKey: jsonlint.Warn}}
	_, err := jsonlint.DecodeAny(src, opt, func(is jsonlint.Issue) { seen = append(seen, is) })
	if err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(seen) != 1 || seen[0].Code != jsonlint.CodeDuplicateKey || seen[0].Path != "/a" {
		t.Fatalf("unexpected sink issues: %v", seen)
	}
}

func TestDecodeAnyDuplicateError(t *testing.T) {
	src := jsonlint.JSONBytes([]byte(`{"a":1,"a":2}`))
	opt := jsonlint.BindOpt{Strictness: jsonlint.Strictness{OnDuplicateKey: jsonlint.Error}}
	_, err := jsonlint.DecodeAny(src, opt, nil)
	iss, ok := jsonlint.AsIssues(err)
	if !ok || iss[0].Code != jsonlint.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key failure, got %v", err)
	}
}

func TestJSONDriverSwap(t *testing.T) {
	jsonlint.SetJSONDriver(gojson.Driver())
	defer jsonlint.UseDefaultJSONDriver()

	v, err := jsonlint.DecodeAny(jsonlint.JSONBytes([]byte(`{"k":"v"}`)), jsonlint.BindOpt{}, nil)
	if err != nil {
		t.Fatalf("decode via go-json err: %v", err)
	}
	m := v.(map[string]any)
	if m["k"] != "v" {
		t.Fatalf("unexpected value: %v", m)
	}
}

func TestEnforceSourceMaxBytes(t *testing.T) {
	big := `{"a":"` + strings.Repeat("x", 128) + `"}`
	src := jsonlint.JSONBytes([]byte(big))
	_, err := jsonlint.DecodeAny(src, jsonlint.BindOpt{MaxBytes: 16}, nil)
	iss, ok := jsonlint.AsIssues(err)
	if !ok || iss[0].Code != jsonlint.CodeTruncated {
		t.Fatalf("expected truncated failure, got %v", err)
	}
}
