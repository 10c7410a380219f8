package dsl

import (
	"context"
	"fmt"
	"strings"

	js "github.com/jsonlint/jsonlint/jsonschema"
)

// Schema is a compiled validation document: an ordered set of named field
// specs plus document-level inline validators. Build one with Document() and
// bind input with Bind/BindFrom.
type Schema struct {
	fields []fieldDef
	index  map[string]int
	prefix string
}

type fieldDef struct {
	name   string // declared name
	full   string // prefix + name, used for input lookup
	spec   *Spec
	inline []Validator
	flags  Flags
}

// Builder assembles a Schema. Field declaration order is preserved and drives
// processing and validation order.
type Builder struct {
	fields []fieldDef
	index  map[string]int
	prefix string
	errs   []error
}

// Document starts a new document builder.
func Document() *Builder {
	return &Builder{index: map[string]int{}}
}

// Field declares a field under the given name.
func (b *Builder) Field(name string, spec *Spec) *Builder {
	if _, dup := b.index[name]; dup {
		b.errs = append(b.errs, fmt.Errorf("dsl: duplicate field %q", name))
		return b
	}
	if spec == nil {
		b.errs = append(b.errs, fmt.Errorf("dsl: nil spec for field %q", name))
		return b
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, fieldDef{name: name, spec: spec})
	return b
}

// Check attaches an inline validator to a declared field. Inline validators
// run after the field spec's own chain.
func (b *Builder) Check(name string, fn func(ctx context.Context, r *Result, f *Field) error) *Builder {
	i, ok := b.index[name]
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("dsl: Check refers to undeclared field %q", name))
		return b
	}
	if b.fields[i].spec.kind == kindObject {
		b.errs = append(b.errs, fmt.Errorf("dsl: object field %q does not accept validators", name))
		return b
	}
	b.fields[i].inline = append(b.fields[i].inline, ValidatorFunc(fn))
	return b
}

// Prefix namespaces input lookup: each field reads its value from the key
// prefix + name. A separator "-" is appended unless the prefix already ends
// in one of "-_;:/.".
func (b *Builder) Prefix(p string) *Builder {
	if p != "" && !strings.ContainsRune("-_;:/.", rune(p[len(p)-1])) {
		p += "-"
	}
	b.prefix = p
	return b
}

// Build compiles the document, verifying every spec.
func (b *Builder) Build() (*Schema, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	s := &Schema{
		fields: make([]fieldDef, len(b.fields)),
		index:  make(map[string]int, len(b.fields)),
		prefix: b.prefix,
	}
	for i, def := range b.fields {
		if err := verifySpec(def.name, def.spec); err != nil {
			return nil, err
		}
		def.full = b.prefix + def.name
		def.flags = def.spec.fieldFlags()
		s.fields[i] = def
		s.index[def.name] = i
	}
	return s, nil
}

// MustBuild compiles the document and panics on error. Intended for
// package-level schema variables.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func verifySpec(name string, spec *Spec) error {
	if spec.buildErr != nil {
		return fmt.Errorf("dsl: field %q: %w", name, spec.buildErr)
	}
	switch spec.kind {
	case kindObject:
		if spec.doc == nil {
			return fmt.Errorf("dsl: object field %q has no inner document", name)
		}
	case kindList:
		if spec.elem == nil {
			return fmt.Errorf("dsl: list field %q has no element spec", name)
		}
		if spec.maxEntries > 0 && spec.minEntries > spec.maxEntries {
			return fmt.Errorf("dsl: list field %q: MinEntries exceeds MaxEntries", name)
		}
		if err := verifySpec(name, spec.elem); err != nil {
			return err
		}
	}
	return nil
}

// Fields returns the declared field names in order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	for i, def := range s.fields {
		out[i] = def.name
	}
	return out
}

// JSONSchema projects the document onto a minimal JSON Schema. Validators
// implementing SchemaDecorator contribute their constraints; fields flagged
// required by their validators populate the required list.
func (s *Schema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "object", Properties: map[string]*js.Schema{}}
	for _, def := range s.fields {
		out.Properties[def.name] = specSchema(def.spec)
		if def.flags.Has("required") {
			out.Required = append(out.Required, def.name)
		}
	}
	return out
}

func specSchema(spec *Spec) *js.Schema {
	var sc *js.Schema
	switch spec.kind {
	case kindString:
		sc = &js.Schema{Type: "string"}
	case kindInteger:
		sc = &js.Schema{Type: "integer"}
	case kindFloat:
		sc = &js.Schema{Type: "number"}
	case kindBool:
		sc = &js.Schema{Type: "boolean"}
	case kindDateTime:
		sc = &js.Schema{Type: "string", Format: "date-time"}
	case kindDate:
		sc = &js.Schema{Type: "string", Format: "date"}
	case kindTime:
		sc = &js.Schema{Type: "string", Format: "time"}
	case kindObject:
		sc = spec.doc.JSONSchema()
	case kindList:
		sc = &js.Schema{Type: "array", Items: specSchema(spec.elem)}
		if spec.minEntries > 0 {
			n := spec.minEntries
			sc.MinItems = &n
		}
		if spec.maxEntries > 0 {
			n := spec.maxEntries
			sc.MaxItems = &n
		}
	default:
		sc = &js.Schema{}
	}
	switch spec.defaultVal {
	case nil, "", false:
		// zero defaults stay out of the export
	default:
		if spec.kind != kindObject && spec.kind != kindList {
			sc.Default = spec.defaultVal
		}
	}
	if spec.describe != "" {
		sc.Description = spec.describe
	}
	for _, v := range spec.checks {
		if d, ok := v.(SchemaDecorator); ok {
			d.DecorateSchema(sc)
		}
	}
	return sc
}
