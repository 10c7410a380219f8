package token

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Enforcement wrapper for Source to apply duplicate key handling, max depth
// checks, and max bytes truncation while tokens stream by. Findings carry
// JSON Pointer paths so the lint surface can report precise locations.

// DuplicateMode controls duplicate key handling.
type DuplicateMode int

const (
	DupIgnore DuplicateMode = iota
	DupWarn
	DupError
)

// Finding is a minimal lint finding produced during enforcement.
type Finding struct {
	Code    string
	Path    string
	Message string
	Offset  int64
}

// FindingError is a lightweight error carrying a Finding.
type FindingError struct{ Finding }

func (e FindingError) Error() string { return e.Finding.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateMode
	MaxDepth    int
	MaxBytes    int64
	// Sink is an optional callback receiving non-fatal findings.
	Sink func(Finding)
	// FailFast promotes the first finding to an error immediately.
	FailFast bool
}

// WrapWithEnforcement returns a Source that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner Source, opt EnforceOptions) Source {
	return &enforcingSource{inner: inner, opt: opt}
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

type enforcingSource struct {
	inner Source
	opt   EnforceOptions
	stack []frame
	depth int
}

func (e *enforcingSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	// pathForToken advances array element indices, so it must run exactly
	// once per token; container frames reuse the same path.
	rawPath := e.pathForToken(tok)
	path := normalizePointer(rawPath)

	switch tok.Kind {
	case KindBeginObject:
		e.stack = append(e.stack, frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: rawPath})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, e.fatal(Finding{Code: "parse_error", Path: path, Message: "max depth exceeded", Offset: tok.Offset})
		}
	case KindBeginArray:
		e.stack = append(e.stack, frame{kind: kindArray, path: rawPath})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, e.fatal(Finding{Code: "parse_error", Path: path, Message: "max depth exceeded", Offset: tok.Offset})
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		if e.depth > 0 {
			e.depth--
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, dup := top.keys[tok.String]; dup {
						f := Finding{Code: "duplicate_key", Path: path, Message: "key '" + tok.String + "' duplicated", Offset: tok.Offset}
						if e.opt.OnDuplicate == DupError || e.opt.FailFast {
							return Token{}, e.fatal(f)
						}
						if e.opt.Sink != nil {
							e.opt.Sink(f)
						}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, e.fatal(Finding{Code: "truncated", Path: path, Message: "max bytes exceeded", Offset: off})
		}
	}

	return tok, nil
}

func (e *enforcingSource) Location() int64 { return e.inner.Location() }

func (e *enforcingSource) fatal(f Finding) error {
	if e.opt.Sink != nil {
		e.opt.Sink(f)
	}
	return FindingError{f}
}

// valueDone flips the enclosing object frame back to expecting a key after a
// value finished.
func (e *enforcingSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingSource) pathForToken(tok Token) string {
	if len(e.stack) == 0 {
		if tok.Kind == KindKey {
			return joinPointer("", tok.String)
		}
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		switch top.kind {
		case kindArray:
			p := joinPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		case kindObject:
			if top.pendingKey != "" || !top.expectingKey {
				return joinPointer(top.path, top.pendingKey)
			}
		}
	}
	return top.path
}

// ScanFindings drains the source through enforcement and collects findings.
// maxFindings <= 0 means unlimited. A fatal enforcement finding is returned
// as part of the slice, not as an error; malformed input surfaces as the
// returned error.
func ScanFindings(inner Source, opt EnforceOptions, maxFindings int) ([]Finding, error) {
	var out []Finding
	capped := false
	opt.Sink = func(f Finding) {
		if capped {
			return
		}
		out = append(out, f)
		if maxFindings > 0 && len(out) >= maxFindings {
			out = append(out, Finding{Code: "truncated", Path: "/", Message: "max findings reached"})
			capped = true
		}
	}
	src := WrapWithEnforcement(inner, opt)
	for {
		_, err := src.NextToken()
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		var fe FindingError
		if errors.As(err, &fe) {
			// fatal() already forwarded the finding to the sink
			return out, nil
		}
		return out, err
	}
}

func normalizePointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, tok string) string {
	if base == "" {
		return "/" + pointerEscaper.Replace(tok)
	}
	return base + "/" + pointerEscaper.Replace(tok)
}
