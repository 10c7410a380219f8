package dsl

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	jsonlint "github.com/jsonlint/jsonlint"
)

// Result holds the outcome of binding input to a document: the coerced data
// per field plus any failures recorded during binding and validation.
type Result struct {
	schema     *Schema
	fields     []*Field
	index      map[string]int
	bindIssues jsonlint.Issues
}

// Field carries one bound field: its raw input, coerced data, presence and
// accumulated failures. Object fields hold a nested Result; list fields hold
// one entry Field per element.
type Field struct {
	name      string
	shortName string
	spec      *Spec
	flags     Flags
	inline    []Validator

	raw      any
	data     any
	presence jsonlint.Presence

	procIssues []jsonlint.Issue // binding failures; survive re-validation
	valIssues  []jsonlint.Issue // validator failures; reset on each Validate

	sub     *Result  // object fields
	entries []*Field // list fields
}

// Field returns the bound field declared under name, or nil.
func (r *Result) Field(name string) *Field {
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	return r.fields[i]
}

// Fields returns the bound fields in declaration order.
func (r *Result) Fields() []*Field { return r.fields }

// Validate runs every field's validator chain and reports whether the whole
// document passed. Calling it again re-runs validation from a clean slate:
// validator failures are discarded first, binding failures are kept. extra
// supplies additional validators per field name for this run only.
func (r *Result) Validate(ctx context.Context, extra ...map[string][]Validator) bool {
	var ex map[string][]Validator
	if len(extra) > 0 {
		ex = extra[0]
	}
	ok := true
	for _, f := range r.fields {
		if !f.validate(ctx, r, ex[f.shortName]) {
			ok = false
		}
	}
	return ok
}

func (f *Field) validate(ctx context.Context, r *Result, extra []Validator) bool {
	f.valIssues = nil
	switch f.spec.kind {
	case kindObject:
		if len(extra) > 0 {
			f.valIssues = append(f.valIssues, jsonlint.Issue{
				Code:    jsonlint.CodeParseError,
				Message: "object fields do not accept validators",
			})
		}
		sub := f.sub.Validate(ctx)
		return sub && len(f.procIssues) == 0 && len(f.valIssues) == 0
	case kindList:
		ok := true
		for _, e := range f.entries {
			if !e.validate(ctx, r, nil) {
				ok = false
			}
		}
		f.runChain(ctx, r, extra)
		return ok && len(f.procIssues) == 0 && len(f.valIssues) == 0
	default:
		f.runChain(ctx, r, extra)
		return len(f.procIssues) == 0 && len(f.valIssues) == 0
	}
}

// runChain executes the field's validators in order: spec checks, inline
// document checks, then extras. A StopError ends the chain early.
func (f *Field) runChain(ctx context.Context, r *Result, extra []Validator) {
	chain := make([]Validator, 0, len(f.spec.checks)+len(f.inline)+len(extra))
	chain = append(chain, f.spec.checks...)
	chain = append(chain, f.inline...)
	chain = append(chain, extra...)
	for _, v := range chain {
		err := v.Validate(ctx, r, f)
		if err == nil {
			continue
		}
		if stop, ok := jsonlint.AsStop(err); ok {
			if stop.Clear {
				f.valIssues = nil
				f.procIssues = nil
			}
			if stop.Message != "" {
				code := stop.Code
				if code == "" {
					code = jsonlint.CodeStopped
				}
				f.valIssues = append(f.valIssues, jsonlint.Issue{Code: code, Message: stop.Message})
			}
			return
		}
		f.valIssues = appendFieldIssue(f.valIssues, err)
	}
}

// Name returns the field's full input key, including any document prefix and,
// for list entries, the entry index.
func (f *Field) Name() string { return f.name }

// ShortName returns the name the field was declared under.
func (f *Field) ShortName() string { return f.shortName }

// Raw returns the uncoerced input value, nil when the input omitted the field.
func (f *Field) Raw() any { return f.raw }

// Data returns the coerced value. Object fields return the nested data map,
// list fields a []any of entry values.
func (f *Field) Data() any {
	switch f.spec.kind {
	case kindObject:
		return f.sub.Data()
	case kindList:
		out := make([]any, len(f.entries))
		for i, e := range f.entries {
			out[i] = e.Data()
		}
		return out
	default:
		return f.data
	}
}

// Present reports whether the input contained the field's key.
func (f *Field) Present() bool { return f.presence&jsonlint.PresenceSeen != 0 }

// Presence returns the field's presence bits.
func (f *Field) Presence() jsonlint.Presence { return f.presence }

// Description returns the text set via Spec.Describe.
func (f *Field) Description() string { return f.spec.describe }

// Flags returns the build-time flags stamped by the field's validators.
func (f *Field) Flags() Flags { return f.flags }

// Sub returns the nested Result of an object field, nil otherwise.
func (f *Field) Sub() *Result { return f.sub }

// Entries returns the per-element fields of a list field, nil otherwise.
func (f *Field) Entries() []*Field { return f.entries }

// Errors returns the field's own failure messages: binding failures first,
// then validator failures. Nested failures of object and list fields are not
// included; use Result.Errors for the full shape.
func (f *Field) Errors() []string {
	out := make([]string, 0, len(f.procIssues)+len(f.valIssues))
	for _, is := range f.procIssues {
		out = append(out, is.Message)
	}
	for _, is := range f.valIssues {
		out = append(out, is.Message)
	}
	return out
}

func (f *Field) hasErrors() bool {
	if len(f.procIssues) > 0 || len(f.valIssues) > 0 {
		return true
	}
	switch f.spec.kind {
	case kindObject:
		return f.sub.hasErrors()
	case kindList:
		for _, e := range f.entries {
			if e.hasErrors() {
				return true
			}
		}
	}
	return false
}

func (r *Result) hasErrors() bool {
	if len(r.bindIssues) > 0 {
		return true
	}
	for _, f := range r.fields {
		if f.hasErrors() {
			return true
		}
	}
	return false
}

// Errors returns the failures keyed by declared field name, only for fields
// that have any. Scalar fields map to a []string of messages, object fields
// to a nested map, list fields to a []any holding each failing entry's value
// followed by the list's own messages.
func (r *Result) Errors() map[string]any {
	out := map[string]any{}
	for _, f := range r.fields {
		if !f.hasErrors() {
			continue
		}
		out[f.shortName] = f.errorValue()
	}
	return out
}

func (f *Field) errorValue() any {
	switch f.spec.kind {
	case kindObject:
		if msgs := f.Errors(); len(msgs) > 0 {
			return msgs
		}
		return f.sub.Errors()
	case kindList:
		var out []any
		for _, e := range f.entries {
			if e.hasErrors() {
				out = append(out, e.errorValue())
			}
		}
		for _, m := range f.Errors() {
			out = append(out, m)
		}
		return out
	default:
		return f.Errors()
	}
}

// Issues flattens every failure into path-coded issues: field failures under
// /name (nested as /name/sub and /name/idx), plus any issues recorded while
// reading the input.
func (r *Result) Issues() jsonlint.Issues {
	var iss jsonlint.Issues
	iss = append(iss, r.bindIssues...)
	for _, f := range r.fields {
		iss = f.appendIssues(iss, "/"+escapePointer(f.shortName))
	}
	return iss
}

func (f *Field) appendIssues(dst jsonlint.Issues, path string) jsonlint.Issues {
	for _, is := range f.procIssues {
		is.Path = path
		dst = jsonlint.AppendIssues(dst, is)
	}
	for _, is := range f.valIssues {
		is.Path = path
		dst = jsonlint.AppendIssues(dst, is)
	}
	switch f.spec.kind {
	case kindObject:
		for _, sf := range f.sub.fields {
			dst = sf.appendIssues(dst, path+"/"+escapePointer(sf.shortName))
		}
	case kindList:
		for _, e := range f.entries {
			dst = e.appendIssues(dst, path+"/"+e.shortName)
		}
	}
	return dst
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Data returns the coerced document keyed by declared field name.
func (r *Result) Data() map[string]any {
	out := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		out[f.shortName] = f.Data()
	}
	return out
}

// Presence returns the presence bits per JSON Pointer path.
func (r *Result) Presence() jsonlint.PresenceMap {
	pm := jsonlint.PresenceMap{}
	for _, f := range r.fields {
		f.appendPresence(pm, "/"+escapePointer(f.shortName))
	}
	return pm
}

func (f *Field) appendPresence(pm jsonlint.PresenceMap, path string) {
	pm[path] = f.presence
	switch f.spec.kind {
	case kindObject:
		for _, sf := range f.sub.fields {
			sf.appendPresence(pm, path+"/"+escapePointer(sf.shortName))
		}
	case kindList:
		for _, e := range f.entries {
			e.appendPresence(pm, path+"/"+e.shortName)
		}
	}
}

// Decode copies the coerced data onto out, which must be a non-nil pointer to
// a struct. Keys resolve per jsonlint.ResolveStructKey; object fields fill
// nested structs and list fields fill slices.
func (r *Result) Decode(out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("dsl: Decode requires a non-nil pointer, got %T", out)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("dsl: Decode requires a pointer to struct, got %T", out)
	}
	return r.decodeStruct(rv)
}

func (r *Result) decodeStruct(rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := jsonlint.ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		f := r.Field(key)
		if f == nil {
			continue
		}
		if err := f.decodeInto(rv.Field(i)); err != nil {
			return fmt.Errorf("dsl: field %q: %w", key, err)
		}
	}
	return nil
}

func (f *Field) decodeInto(dst reflect.Value) error {
	switch f.spec.kind {
	case kindObject:
		if dst.Kind() == reflect.Pointer {
			if dst.IsNil() {
				dst.Set(reflect.New(dst.Type().Elem()))
			}
			dst = dst.Elem()
		}
		if dst.Kind() != reflect.Struct {
			return fmt.Errorf("object field needs a struct target, got %s", dst.Kind())
		}
		return f.sub.decodeStruct(dst)
	case kindList:
		if dst.Kind() != reflect.Slice {
			return fmt.Errorf("list field needs a slice target, got %s", dst.Kind())
		}
		out := reflect.MakeSlice(dst.Type(), len(f.entries), len(f.entries))
		for i, e := range f.entries {
			if err := e.decodeInto(out.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	default:
		return assignScalar(dst, f.data)
	}
}

func assignScalar(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if t, ok := v.(time.Time); ok {
		if dst.Type() == reflect.TypeOf(time.Time{}) {
			dst.Set(reflect.ValueOf(t))
			return nil
		}
		return fmt.Errorf("cannot assign time.Time to %s", dst.Type())
	}
	sv := reflect.ValueOf(v)
	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return nil
	}
	if isNumericKind(sv.Kind()) && isNumericKind(dst.Kind()) && sv.Type().ConvertibleTo(dst.Type()) {
		dst.Set(sv.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", v, dst.Type())
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
