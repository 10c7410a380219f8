package validators_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonlint/jsonlint/dsl"
	v "github.com/jsonlint/jsonlint/validators"
)

func check(t *testing.T, spec *dsl.Spec, input map[string]any) (*dsl.Result, bool) {
	t.Helper()
	doc := dsl.Document().Field("v", spec).MustBuild()
	res, err := doc.Bind(context.Background(), input)
	require.NoError(t, err)
	return res, res.Validate(context.Background())
}

func TestDataRequired(t *testing.T) {
	_, ok := check(t, dsl.String().Check(v.DataRequired()), map[string]any{"v": "x"})
	assert.True(t, ok)

	res, ok := check(t, dsl.String().Check(v.DataRequired()), map[string]any{"v": ""})
	assert.False(t, ok)
	assert.Equal(t, []string{"This field is required."}, res.Field("v").Errors())

	// whitespace-only counts as empty
	_, ok = check(t, dsl.String().Check(v.DataRequired()), map[string]any{"v": "   "})
	assert.False(t, ok)

	// custom message
	res, _ = check(t, dsl.String().Check(v.DataRequired("need it")), map[string]any{})
	assert.Equal(t, []string{"need it"}, res.Field("v").Errors())

	// flag is stamped at build time
	res, _ = check(t, dsl.String().Check(v.DataRequired()), map[string]any{"v": "x"})
	assert.True(t, res.Field("v").Flags().Has("required"))
}

func TestDataRequiredHaltsChain(t *testing.T) {
	ran := false
	spy := dsl.ValidatorFunc(func(ctx context.Context, r *dsl.Result, f *dsl.Field) error {
		ran = true
		return nil
	})
	_, ok := check(t, dsl.String().Check(v.DataRequired(), spy), map[string]any{"v": ""})
	assert.False(t, ok)
	assert.False(t, ran, "validators after a failing DataRequired must not run")
}

func TestInputRequired(t *testing.T) {
	// empty string satisfies InputRequired as long as the key was present
	_, ok := check(t, dsl.String().Check(v.InputRequired()), map[string]any{"v": ""})
	assert.True(t, ok)

	_, ok = check(t, dsl.String().Check(v.InputRequired()), map[string]any{})
	assert.False(t, ok)

	_, ok = check(t, dsl.String().Check(v.InputRequired()), map[string]any{"v": nil})
	assert.False(t, ok)
}

func TestOptionalFlag(t *testing.T) {
	res, ok := check(t, dsl.String().Check(v.Optional()), map[string]any{})
	assert.True(t, ok)
	assert.True(t, res.Field("v").Flags().Has("optional"))
}

func TestLength(t *testing.T) {
	_, ok := check(t, dsl.String().Check(v.Length(2, 4)), map[string]any{"v": "abc"})
	assert.True(t, ok)

	res, ok := check(t, dsl.String().Check(v.Length(2, 4)), map[string]any{"v": "a"})
	assert.False(t, ok)
	assert.Contains(t, res.Field("v").Errors()[0], "at least 2")

	res, ok = check(t, dsl.String().Check(v.Length(2, 4)), map[string]any{"v": "abcde"})
	assert.False(t, ok)
	assert.Contains(t, res.Field("v").Errors()[0], "longer than 4")

	// open bounds
	_, ok = check(t, dsl.String().Check(v.Length(-1, 4)), map[string]any{"v": ""})
	assert.True(t, ok)

	// rune count, not byte count
	_, ok = check(t, dsl.String().Check(v.Length(-1, 3)), map[string]any{"v": "日本語"})
	assert.True(t, ok)
}

func TestNumberRange(t *testing.T) {
	spec := func() *dsl.Spec { return dsl.Integer().Check(v.NumberRange(1, 10)) }

	_, ok := check(t, spec(), map[string]any{"v": json.Number("5")})
	assert.True(t, ok)

	_, ok = check(t, spec(), map[string]any{"v": json.Number("0")})
	assert.False(t, ok)

	_, ok = check(t, spec(), map[string]any{"v": json.Number("11")})
	assert.False(t, ok)

	// open upper bound
	_, ok = check(t, dsl.Integer().Check(v.NumberRange(1, nil)), map[string]any{"v": json.Number("99999")})
	assert.True(t, ok)
}

func TestRegexp(t *testing.T) {
	spec := func() *dsl.Spec { return dsl.String().Check(v.Regexp(`^[a-z]+$`)) }

	_, ok := check(t, spec(), map[string]any{"v": "abc"})
	assert.True(t, ok)

	_, ok = check(t, spec(), map[string]any{"v": "ABC"})
	assert.False(t, ok)

	// match must anchor at the start
	_, ok = check(t, dsl.String().Check(v.Regexp(`[a-z]+`)), map[string]any{"v": "1abc"})
	assert.False(t, ok)
}

func TestEmail(t *testing.T) {
	for _, good := range []string{"a@example.com", "first.last@sub.example.org"} {
		_, ok := check(t, dsl.String().Check(v.Email()), map[string]any{"v": good})
		assert.True(t, ok, good)
	}
	for _, bad := range []string{"", "no-at", "a@nodot", "Name <a@example.com>"} {
		_, ok := check(t, dsl.String().Check(v.Email()), map[string]any{"v": bad})
		assert.False(t, ok, bad)
	}
}

func TestURL(t *testing.T) {
	_, ok := check(t, dsl.String().Check(v.URL()), map[string]any{"v": "https://example.com/x"})
	assert.True(t, ok)

	for _, bad := range []string{"", "example.com", "/relative/only"} {
		_, ok := check(t, dsl.String().Check(v.URL()), map[string]any{"v": bad})
		assert.False(t, ok, bad)
	}
}

func TestAnyOfNoneOf(t *testing.T) {
	vals := []any{"red", "green", "blue"}

	_, ok := check(t, dsl.String().Check(v.AnyOf(vals)), map[string]any{"v": "red"})
	assert.True(t, ok)

	res, ok := check(t, dsl.String().Check(v.AnyOf(vals)), map[string]any{"v": "pink"})
	assert.False(t, ok)
	assert.Contains(t, res.Field("v").Errors()[0], "red, green, blue")

	_, ok = check(t, dsl.String().Check(v.NoneOf(vals)), map[string]any{"v": "pink"})
	assert.True(t, ok)

	_, ok = check(t, dsl.String().Check(v.NoneOf(vals)), map[string]any{"v": "red"})
	assert.False(t, ok)

	// numeric values compare by magnitude across coerced types
	_, ok = check(t, dsl.Integer().Check(v.AnyOf([]any{3})), map[string]any{"v": json.Number("3")})
	assert.True(t, ok)
}

func TestEqualTo(t *testing.T) {
	ctx := context.Background()
	doc := dsl.Document().
		Field("pw", dsl.String()).
		Field("confirm", dsl.String().Check(v.EqualTo("pw"))).
		MustBuild()

	res, _ := doc.Bind(ctx, map[string]any{"pw": "s3cret", "confirm": "s3cret"})
	assert.True(t, res.Validate(ctx))

	res, _ = doc.Bind(ctx, map[string]any{"pw": "s3cret", "confirm": "other"})
	assert.False(t, res.Validate(ctx))

	// referring to a missing field is itself a failure
	doc2 := dsl.Document().Field("x", dsl.String().Check(v.EqualTo("ghost"))).MustBuild()
	res, _ = doc2.Bind(ctx, map[string]any{"x": "v"})
	assert.False(t, res.Validate(ctx))
}

func TestUUID(t *testing.T) {
	_, ok := check(t, dsl.String().Check(v.UUID()), map[string]any{"v": "123e4567-e89b-12d3-a456-426614174000"})
	assert.True(t, ok)

	_, ok = check(t, dsl.String().Check(v.UUID()), map[string]any{"v": "not-a-uuid"})
	assert.False(t, ok)
}

func TestIPAddress(t *testing.T) {
	for _, good := range []string{"127.0.0.1", "::1", "2001:db8::8a2e:370:7334"} {
		_, ok := check(t, dsl.String().Check(v.IPAddress()), map[string]any{"v": good})
		assert.True(t, ok, good)
	}
	_, ok := check(t, dsl.String().Check(v.IPAddress()), map[string]any{"v": "999.1.1.1"})
	assert.False(t, ok)
}

func TestMacAddress(t *testing.T) {
	_, ok := check(t, dsl.String().Check(v.MacAddress()), map[string]any{"v": "00:1b:63:84:45:e6"})
	assert.True(t, ok)

	_, ok = check(t, dsl.String().Check(v.MacAddress()), map[string]any{"v": "nope"})
	assert.False(t, ok)
}
