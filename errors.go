package jsonlint

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeRequired        = "required"
	CodeInvalidInteger  = "invalid_integer"
	CodeInvalidFloat    = "invalid_float"
	CodeInvalidDateTime = "invalid_datetime"
	CodeInvalidDate     = "invalid_date"
	CodeInvalidTime     = "invalid_time"
	CodeInvalidList     = "invalid_list"
	CodeTooShort        = "too_short"
	CodeTooLong         = "too_long"
	CodeTooSmall        = "too_small"
	CodeTooBig          = "too_big"
	CodePattern         = "pattern"
	CodeInvalidEnum     = "invalid_enum"
	CodeInvalidFormat   = "invalid_format"
	CodeEqualTo         = "equal_to"
	CodeDuplicateKey    = "duplicate_key"
	CodeParseError      = "parse_error"
	CodeTruncated       = "truncated"
	CodeStopped         = "stopped"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"min":1, "max":10})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ByPointer groups issue messages by their JSON Pointer path.
func (iss Issues) ByPointer() map[string][]string {
	if len(iss) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, it := range iss {
		p := it.Path
		if p == "" {
			p = "/"
		}
		out[p] = append(out[p], it.Message)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Fail builds a single-Issue validator error with the given code and message.
// The binding layer rebases the path onto the failing field.
func Fail(code, msg string) error {
	return Issues{Issue{Path: "/", Code: code, Message: msg}}
}

// Failf is Fail with fmt-style message formatting.
func Failf(code, format string, args ...any) error {
	return Fail(code, fmt.Sprintf(format, args...))
}

// StopError halts a field's validator chain. A non-empty Message is recorded
// on the field like any other failure; an empty one stops silently. Clear
// additionally discards errors collected so far on the field, including
// coercion errors (the Optional-validator semantics).
type StopError struct {
	Code    string // issue code for the recorded message; CodeStopped when empty
	Message string
	Clear   bool
}

func (e *StopError) Error() string {
	if e.Message == "" {
		return "validation stopped"
	}
	return e.Message
}

// Stop returns a StopError carrying msg.
func Stop(msg string) error { return &StopError{Message: msg} }

// StopWithCode returns a StopError whose recorded message keeps the given
// issue code.
func StopWithCode(code, msg string) error { return &StopError{Code: code, Message: msg} }

// StopAndClear returns a silent StopError that also wipes errors collected on
// the field so far.
func StopAndClear() error { return &StopError{Clear: true} }

// AsStop extracts a StopError from an error.
func AsStop(err error) (*StopError, bool) {
	if err == nil {
		return nil, false
	}
	var se *StopError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
