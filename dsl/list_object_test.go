package dsl_test

import (
	"context"
	"testing"

	jsonlint "github.com/jsonlint/jsonlint"
	"github.com/jsonlint/jsonlint/dsl"
	v "github.com/jsonlint/jsonlint/validators"
)

func addressDoc() *dsl.Schema {
	return dsl.Document().
		Field("city", dsl.String().Check(v.DataRequired())).
		Field("zip", dsl.String().Check(v.Regexp(`^\d{5}$`))).
		MustBuild()
}

func TestObjectFieldDelegates(t *testing.T) {
	ctx := context.Background()
	doc := dsl.Document().
		Field("name", dsl.String()).
		Field("address", dsl.Object(addressDoc())).
		MustBuild()

	res, err := doc.Bind(ctx, []byte(`{"name":"a","address":{"city":"tokyo","zip":"12345"}}`))
	if err != nil {
		t.Fatalf("bind err: %v", err)
	}
	if !res.Validate(ctx) {
		t.Fatalf("expected valid, got %v", res.Errors())
	}
	data := res.Data()
	addr, ok := data["address"].(map[string]any)
	if !ok || addr["city"] != "tokyo" {
		t.Fatalf("nested data wrong: %v", data)
	}
}

func TestObjectFieldErrorsNest(t *testing.T) {
	ctx := context.Background()
	doc := dsl.Document().
		Field("address", dsl.Object(addressDoc())).
		MustBuild()

	res, _ := doc.Bind(ctx, map[string]any{"address": map[string]any{"zip": "x"}})
	if res.Validate(ctx) {
		t.Fatalf("expected invalid")
	}
	nested, ok := res.Errors()["address"].(map[string]any)
	if !ok {
		t.Fatalf("object failures must nest as a map, got %T", res.Errors()["address"])
	}
	if _, ok := nested["city"]; !ok {
		t.Fatalf("missing city failure: %v", nested)
	}
	if _, ok := nested["zip"]; !ok {
		t.Fatalf("missing zip failure: %v", nested)
	}

	// issues carry nested pointers
	var sawNested bool
	for _, is := range res.Issues() {
		if is.Path == "/address/city" {
			sawNested = true
		}
	}
	if !sawNested {
		t.Fatalf("expected /address/city issue, got %v", res.Issues())
	}
}

func TestObjectFieldNonObjectInput(t *testing.T) {
	ctx := context.Background()
	doc := dsl.Document().
		Field("address", dsl.Object(addressDoc())).
		MustBuild()

	res, _ := doc.Bind(ctx, map[string]any{"address": "not an object"})
	if res.Validate(ctx) {
		t.Fatalf("expected invalid")
	}
	msgs, ok := res.Errors()["address"].([]string)
	if !ok || len(msgs) == 0 {
		t.Fatalf("expected type failure messages, got %v", res.Errors()["address"])
	}
}

func TestListFieldPerEntry(t *testing.T) {
	ctx := context.Background()
	doc := dsl.Document().
		Field("tags", dsl.List(dsl.String().Check(v.Length(1, 5)))).
		MustBuild()

	res, err := doc.Bind(ctx, []byte(`{"tags":["ok","toolongtag","also"]}`))
	if err != nil {
		t.Fatalf("bind err: %v", err)
	}
	if res.Validate(ctx) {
		t.Fatalf("expected invalid")
	}
	f := res.Field("tags")
	if len(f.Entries()) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(f.Entries()))
	}
	errVal, ok := res.Errors()["tags"].([]any)
	if !ok || len(errVal) != 1 {
		t.Fatalf("expected one failing entry, got %v", res.Errors()["tags"])
	}

	// entry issues carry their index in the pointer
	var sawIdx bool
	for _, is := range res.Issues() {
		if is.Path == "/tags/1" {
			sawIdx = true
		}
	}
	if !sawIdx {
		t.Fatalf("expected /tags/1 issue, got %v", res.Issues())
	}
}

func TestListEntryCounts(t *testing.T) {
	ctx := context.Background()
	doc := dsl.Document().
		Field("xs", dsl.List(dsl.Integer()).MinEntries(3).MaxEntries(4)).
		MustBuild()

	// padded up to the minimum
	res, _ := doc.Bind(ctx, map[string]any{"xs": []any{jsonNumber("1")}})
	if got := len(res.Field("xs").Entries()); got != 3 {
		t.Fatalf("expected padding to 3 entries, got %d", got)
	}

	// oversize input fails instead of silently truncating data
	res, _ = doc.Bind(ctx, map[string]any{"xs": []any{
		jsonNumber("1"), jsonNumber("2"), jsonNumber("3"), jsonNumber("4"), jsonNumber("5"),
	}})
	if res.Validate(ctx) {
		t.Fatalf("expected too_long failure")
	}
	var tooLong bool
	for _, is := range res.Issues() {
		if is.Code == jsonlint.CodeTooLong && is.Path == "/xs" {
			tooLong = true
		}
	}
	if !tooLong {
		t.Fatalf("expected too_long at /xs, got %v", res.Issues())
	}
	if got := len(res.Field("xs").Entries()); got != 4 {
		t.Fatalf("entries must cap at the maximum, got %d", got)
	}
}

func TestListOfObjects(t *testing.T) {
	ctx := context.Background()
	doc := dsl.Document().
		Field("addrs", dsl.List(dsl.Object(addressDoc()))).
		MustBuild()

	res, err := doc.Bind(ctx, []byte(`{"addrs":[{"city":"osaka","zip":"55555"},{"zip":"bad"}]}`))
	if err != nil {
		t.Fatalf("bind err: %v", err)
	}
	if res.Validate(ctx) {
		t.Fatalf("expected invalid")
	}
	errVal := res.Errors()["addrs"].([]any)
	if len(errVal) != 1 {
		t.Fatalf("expected one failing entry, got %v", errVal)
	}
	if _, ok := errVal[0].(map[string]any); !ok {
		t.Fatalf("object entry failures must nest as maps, got %T", errVal[0])
	}

	data := res.Data()["addrs"].([]any)
	first := data[0].(map[string]any)
	if first["city"] != "osaka" {
		t.Fatalf("entry data wrong: %v", data)
	}
}

func TestListInvalidInput(t *testing.T) {
	ctx := context.Background()
	doc := dsl.Document().
		Field("xs", dsl.List(dsl.Integer())).
		MustBuild()

	res, _ := doc.Bind(ctx, map[string]any{"xs": "nope"})
	if res.Validate(ctx) {
		t.Fatalf("expected invalid")
	}
	var code string
	for _, is := range res.Issues() {
		if is.Path == "/xs" {
			code = is.Code
		}
	}
	if code != jsonlint.CodeInvalidList {
		t.Fatalf("expected invalid_list, got %q", code)
	}
}
