package dsl

import (
	"context"
	"fmt"
	"strconv"

	jsonlint "github.com/jsonlint/jsonlint"
	"github.com/jsonlint/jsonlint/i18n"
)

// Bind processes input against the document and returns a Result holding the
// coerced data and any binding failures. v may be a map[string]any, a []byte
// or string of JSON text, a jsonlint.Source, or nil (all fields take their
// defaults). Binding never fails on bad field values, only on input that
// cannot be read as a JSON object at all.
func (s *Schema) Bind(ctx context.Context, v any, opts ...jsonlint.BindOpt) (*Result, error) {
	return s.BindSeeded(ctx, v, nil, opts...)
}

// BindSeeded is Bind with per-field fallback values: when the input omits a
// field, its seed entry (keyed by declared name) wins over the spec default.
func (s *Schema) BindSeeded(ctx context.Context, v any, seed map[string]any, opts ...jsonlint.BindOpt) (*Result, error) {
	switch in := v.(type) {
	case nil:
		return s.bind(ctx, map[string]any{}, seed, nil), nil
	case map[string]any:
		return s.bind(ctx, in, seed, nil), nil
	case []byte:
		return s.bindSource(ctx, jsonlint.JSONBytes(in), seed, pickOpt(opts))
	case string:
		return s.bindSource(ctx, jsonlint.JSONBytes([]byte(in)), seed, pickOpt(opts))
	case jsonlint.Source:
		return s.bindSource(ctx, in, seed, pickOpt(opts))
	default:
		return nil, jsonlint.Failf(jsonlint.CodeInvalidType, "cannot bind input of type %T", v)
	}
}

// BindFrom processes input read from a token Source, applying the enforcement
// described by opt (duplicate keys, depth and size limits). Warn-severity
// findings are attached to the Result as issues; Error-severity findings
// abort the bind.
func (s *Schema) BindFrom(ctx context.Context, src jsonlint.Source, opts ...jsonlint.BindOpt) (*Result, error) {
	return s.bindSource(ctx, src, nil, pickOpt(opts))
}

func pickOpt(opts []jsonlint.BindOpt) jsonlint.BindOpt {
	if len(opts) > 0 {
		return opts[0]
	}
	return jsonlint.BindOpt{}
}

func (s *Schema) bindSource(ctx context.Context, src jsonlint.Source, seed map[string]any, opt jsonlint.BindOpt) (*Result, error) {
	var bindIssues jsonlint.Issues
	v, err := jsonlint.DecodeAny(src, opt, func(is jsonlint.Issue) {
		bindIssues = jsonlint.AppendIssues(bindIssues, is)
	})
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, jsonlint.Fail(jsonlint.CodeInvalidType, i18n.T(jsonlint.CodeInvalidType, nil))
	}
	r := s.bind(ctx, m, seed, bindIssues)
	return r, nil
}

func (s *Schema) bind(ctx context.Context, data map[string]any, seed map[string]any, bindIssues jsonlint.Issues) *Result {
	r := &Result{
		schema:     s,
		fields:     make([]*Field, 0, len(s.fields)),
		index:      make(map[string]int, len(s.fields)),
		bindIssues: bindIssues,
	}
	for i, def := range s.fields {
		raw, present := data[def.full]
		seedv, seeded := seed[def.name]
		f := processSpec(ctx, def.full, def.name, def.spec, def.flags, def.inline, raw, present, seedv, seeded)
		r.fields = append(r.fields, f)
		r.index[def.name] = i
	}
	return r
}

func processSpec(ctx context.Context, full, short string, spec *Spec, flags Flags, inline []Validator, raw any, present bool, seedv any, seeded bool) *Field {
	f := &Field{name: full, shortName: short, spec: spec, flags: flags, inline: inline}
	switch spec.kind {
	case kindObject:
		processObject(ctx, f, raw, present)
	case kindList:
		processList(ctx, f, raw, present, seedv, seeded)
	default:
		processScalar(f, raw, present, seedv, seeded)
	}
	return f
}

func processScalar(f *Field, raw any, present bool, seedv any, seeded bool) {
	spec := f.spec
	if present {
		f.raw = raw
		f.presence |= jsonlint.PresenceSeen
		if raw == nil {
			f.presence |= jsonlint.PresenceWasNull
		}
		v, set, err := spec.coerce(raw)
		switch {
		case err != nil:
			f.procIssues = appendFieldIssue(f.procIssues, err)
			f.data = spec.defaultValue()
		case set:
			f.data = v
		default:
			f.data = spec.defaultValue()
		}
	} else if seeded {
		f.data = seedv
		f.presence |= jsonlint.PresenceDefaultApplied
	} else if d := spec.defaultValue(); d != nil {
		f.data = d
		f.presence |= jsonlint.PresenceDefaultApplied
	}
	for _, flt := range spec.filters {
		v, err := flt(f.data)
		if err != nil {
			f.procIssues = appendFieldIssue(f.procIssues, err)
			continue
		}
		f.data = v
	}
}

func processObject(ctx context.Context, f *Field, raw any, present bool) {
	var sub map[string]any
	if present {
		f.raw = raw
		f.presence |= jsonlint.PresenceSeen
		if raw == nil {
			f.presence |= jsonlint.PresenceWasNull
		}
		m, ok := raw.(map[string]any)
		if ok {
			sub = m
		} else if raw != nil {
			f.procIssues = append(f.procIssues, jsonlint.Issue{
				Code:    jsonlint.CodeInvalidType,
				Message: i18n.T(jsonlint.CodeInvalidType, nil),
			})
		}
	}
	if sub == nil {
		sub = map[string]any{}
	}
	f.sub = f.spec.doc.bind(ctx, sub, nil, nil)
}

func processList(ctx context.Context, f *Field, raw any, present bool, seedv any, seeded bool) {
	spec := f.spec
	var items []any
	if present {
		f.raw = raw
		f.presence |= jsonlint.PresenceSeen
		if raw == nil {
			f.presence |= jsonlint.PresenceWasNull
		}
		arr, ok := raw.([]any)
		if ok {
			items = arr
		} else if raw != nil {
			f.procIssues = append(f.procIssues, jsonlint.Issue{
				Code:    jsonlint.CodeInvalidList,
				Message: i18n.T(jsonlint.CodeInvalidList, nil),
			})
		}
	} else if seeded {
		if arr, ok := seedv.([]any); ok {
			items = arr
			f.presence |= jsonlint.PresenceDefaultApplied
		}
	}
	if spec.maxEntries > 0 && len(items) > spec.maxEntries {
		f.procIssues = append(f.procIssues, jsonlint.Issue{
			Code:    jsonlint.CodeTooLong,
			Message: i18n.T(jsonlint.CodeTooLong, map[string]string{"max": strconv.Itoa(spec.maxEntries)}),
			Params:  map[string]any{"max": spec.maxEntries},
		})
		items = items[:spec.maxEntries]
	}
	for i, it := range items {
		f.entries = append(f.entries, listEntry(ctx, f, i, it, true))
	}
	for len(f.entries) < spec.minEntries {
		f.entries = append(f.entries, listEntry(ctx, f, len(f.entries), nil, false))
	}
}

func listEntry(ctx context.Context, f *Field, i int, raw any, present bool) *Field {
	elem := f.spec.elem
	name := fmt.Sprintf("%s-%d", f.name, i)
	return processSpec(ctx, name, strconv.Itoa(i), elem, elem.fieldFlags(), nil, raw, present, nil, false)
}

// appendFieldIssue records a coercion or filter failure on a field,
// preserving issue codes when the error carries them.
func appendFieldIssue(dst []jsonlint.Issue, err error) []jsonlint.Issue {
	if iss, ok := jsonlint.AsIssues(err); ok {
		for _, is := range iss {
			is.Path = ""
			dst = append(dst, is)
		}
		return dst
	}
	return append(dst, jsonlint.Issue{Code: jsonlint.CodeInvalidFormat, Message: err.Error(), Cause: err})
}
