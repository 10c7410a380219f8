// Package dsl provides the declarative builder API for assembling validation
// documents from field specs and validator chains.
package dsl

import (
	"context"
	"fmt"

	js "github.com/jsonlint/jsonlint/jsonschema"
)

// Validator checks a bound field in the context of its result. Returning a
// non-nil error records the failure against the field; returning an error
// produced by jsonlint.Stop or jsonlint.StopAndClear halts the remainder of
// the field's chain.
type Validator interface {
	Validate(ctx context.Context, r *Result, f *Field) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, r *Result, f *Field) error

func (fn ValidatorFunc) Validate(ctx context.Context, r *Result, f *Field) error {
	return fn(ctx, r, f)
}

// FlagProvider is implemented by validators that stamp flags onto the fields
// they are attached to (for example "required" or "optional"). Flags are
// collected once at build time.
type FlagProvider interface {
	FieldFlags() []string
}

// SchemaDecorator is implemented by validators that can project their
// constraint into a JSON Schema fragment.
type SchemaDecorator interface {
	DecorateSchema(s *js.Schema)
}

// Filter transforms a coerced value before validation runs. Filters apply in
// registration order; an error records a binding failure on the field.
type Filter func(v any) (any, error)

// Flags exposes the build-time flags stamped on a field by its validators.
type Flags map[string]bool

// Has reports whether the named flag is set.
func (fl Flags) Has(name string) bool { return fl[name] }

type specKind int

const (
	kindString specKind = iota
	kindInteger
	kindFloat
	kindBool
	kindDateTime
	kindDate
	kindTime
	kindObject
	kindList
)

// coerceFunc converts raw bound input into the field's data type. set=false
// leaves the field's default in place without recording an error.
type coerceFunc func(raw any) (v any, set bool, err error)

// Spec describes a single field: how raw input is coerced, which filters and
// validators run, and what the field defaults to when input is absent.
// Specs are assembled by the package-level constructors (String, Integer,
// Object, List, ...) and refined by chaining.
type Spec struct {
	kind       specKind
	coerce     coerceFunc
	filters    []Filter
	checks     []Validator
	defaultVal any
	defaultFn  func() any
	describe   string

	// object fields
	doc *Schema

	// list fields
	elem       *Spec
	minEntries int
	maxEntries int

	buildErr error
}

// Check appends validators to the field's chain.
func (s *Spec) Check(vs ...Validator) *Spec {
	if s.kind == kindObject && s.buildErr == nil {
		s.buildErr = fmt.Errorf("dsl: object fields do not accept validators; attach them to the inner document's fields")
	}
	s.checks = append(s.checks, vs...)
	return s
}

// Filter appends filters to the field. Filters run after coercion and before
// validation.
func (s *Spec) Filter(fs ...Filter) *Spec {
	if (s.kind == kindObject || s.kind == kindList) && s.buildErr == nil {
		s.buildErr = fmt.Errorf("dsl: object and list fields do not accept filters")
	}
	s.filters = append(s.filters, fs...)
	return s
}

// Default sets the value the field takes when the input omits it.
func (s *Spec) Default(v any) *Spec {
	s.defaultVal = v
	return s
}

// DefaultFunc sets a per-bind default producer; it wins over Default.
func (s *Spec) DefaultFunc(fn func() any) *Spec {
	s.defaultFn = fn
	return s
}

// Describe attaches a human-readable description, surfaced through
// Field.Description and the JSON Schema export.
func (s *Spec) Describe(d string) *Spec {
	s.describe = d
	return s
}

// MinEntries pads list input with empty entries up to n. Only meaningful on
// list specs.
func (s *Spec) MinEntries(n int) *Spec {
	if s.kind != kindList && s.buildErr == nil {
		s.buildErr = fmt.Errorf("dsl: MinEntries applies to list fields only")
	}
	s.minEntries = n
	return s
}

// MaxEntries rejects list input longer than n entries. Only meaningful on
// list specs.
func (s *Spec) MaxEntries(n int) *Spec {
	if s.kind != kindList && s.buildErr == nil {
		s.buildErr = fmt.Errorf("dsl: MaxEntries applies to list fields only")
	}
	s.maxEntries = n
	return s
}

// fieldFlags collects the flags stamped by the spec's validators.
func (s *Spec) fieldFlags() Flags {
	fl := Flags{}
	for _, v := range s.checks {
		if fp, ok := v.(FlagProvider); ok {
			for _, name := range fp.FieldFlags() {
				fl[name] = true
			}
		}
	}
	return fl
}

func (s *Spec) defaultValue() any {
	if s.defaultFn != nil {
		return s.defaultFn()
	}
	return s.defaultVal
}
