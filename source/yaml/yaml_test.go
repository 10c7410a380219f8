package yaml_test

import (
	"strings"
	"testing"

	yamlsrc "github.com/jsonlint/jsonlint/source/yaml"
)

func TestBytesDecodesToJSONTree(t *testing.T) {
	v, err := yamlsrc.Bytes([]byte("name: ann\nage: 3\nnested:\n  ok: true\nxs:\n  - 1\n  - 2\n"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", v)
	}
	if m["name"] != "ann" {
		t.Fatalf("got %v", m["name"])
	}
	nested, ok := m["nested"].(map[string]any)
	if !ok || nested["ok"] != true {
		t.Fatalf("nested maps must be string-keyed, got %T", m["nested"])
	}
	if xs, ok := m["xs"].([]any); !ok || len(xs) != 2 {
		t.Fatalf("got %v", m["xs"])
	}
}

func TestEmptyInput(t *testing.T) {
	v, err := yamlsrc.Bytes(nil)
	if err != nil || v != nil {
		t.Fatalf("empty input: v=%v err=%v", v, err)
	}
}

func TestDocuments(t *testing.T) {
	docs, err := yamlsrc.Documents(strings.NewReader("a: 1\n---\nb: 2\n"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}

func TestDepth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3", 0},
		{"a: 1", 1},
		{"a:\n  b: 1", 2},
		{"a:\n  - b: 1", 3},
	}
	for _, tc := range cases {
		v, err := yamlsrc.Bytes([]byte(tc.in))
		if err != nil {
			t.Fatalf("decode %q err: %v", tc.in, err)
		}
		if got := yamlsrc.Depth(v); got != tc.want {
			t.Fatalf("depth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMalformed(t *testing.T) {
	if _, err := yamlsrc.Bytes([]byte("a: [1, 2")); err == nil {
		t.Fatalf("expected parse error")
	}
}
