package jsonlint

import (
	"errors"
	"io"
	"sync"

	tok "github.com/jsonlint/jsonlint/internal/token"
	jsonsrc "github.com/jsonlint/jsonlint/source/json"
)

// tokenKind enumerates JSON token kinds.
type tokenKind int

const (
	_tokenBeginObject tokenKind = iota
	_tokenEndObject
	_tokenBeginArray
	_tokenEndArray
	_tokenKey
	_tokenString
	_tokenNumber
	_tokenBool
	_tokenNull
)

// TokenKind mirrors the internal token kind so callers can branch on token
// values without reaching into internal packages.
type TokenKind = tokenKind

const (
	TokenBeginObject TokenKind = _tokenBeginObject
	TokenEndObject   TokenKind = _tokenEndObject
	TokenBeginArray  TokenKind = _tokenBeginArray
	TokenEndArray    TokenKind = _tokenEndArray
	TokenKey         TokenKind = _tokenKey
	TokenString      TokenKind = _tokenString
	TokenNumber      TokenKind = _tokenNumber
	TokenBool        TokenKind = _tokenBool
	TokenNull        TokenKind = _tokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise). Numbers are kept as text and surface as
// json.Number after decoding.
type Token struct {
	Kind   tokenKind
	String string // Stored for key/string tokens.
	Number string
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is based on encoding/json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &tokenSourceAdapter{inner: jsonsrc.NewReader(r)}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &tokenSourceAdapter{inner: jsonsrc.NewBytes(b)}
}
func (defaultJSONDriver) Name() string { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// SourceFromTokens wraps an internal token source as a Source. Driver packages
// inside this module use it to avoid reimplementing the adapter.
func SourceFromTokens(inner tok.Source) Source {
	return &tokenSourceAdapter{inner: inner}
}

// EnforceSource wraps a Source with runtime enforcement (duplicate keys,
// depth, bytes) using public options projected to internal options. Findings
// are converted to public Issues and forwarded to sink when non-nil.
func EnforceSource(s Source, opt BindOpt, sink func(Issue)) Source {
	var forward func(tok.Finding)
	if sink != nil {
		forward = func(f tok.Finding) {
			sink(Issue{Path: f.Path, Code: f.Code, Message: f.Message, Offset: f.Offset})
		}
	}
	eo := tok.EnforceOptions{
		OnDuplicate: toInternalDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		Sink:        forward,
		FailFast:    opt.FailFast,
	}
	// Unwrap when the Source is already backed by a token source to avoid an
	// adapter round-trip.
	if ta, ok := s.(*tokenSourceAdapter); ok {
		return &tokenSourceAdapter{inner: tok.WrapWithEnforcement(ta.inner, eo)}
	}
	return &tokenSourceAdapter{inner: tok.WrapWithEnforcement(internalTokenSource(s), eo)}
}

// EnforceSourceIfNeeded returns the original Source when the options are
// effectively disabled, preventing unnecessary overhead for small inputs.
func EnforceSourceIfNeeded(s Source, opt BindOpt, sink func(Issue)) Source {
	if opt.Strictness.OnDuplicateKey == Ignore && opt.MaxDepth == 0 && opt.MaxBytes == 0 {
		return s
	}
	return EnforceSource(s, opt, sink)
}

// DecodeAny fully drains a Source into an any-tree (map[string]any, []any,
// json.Number, string, bool, nil), applying the enforcement described by opt.
// Warn-severity findings reach the sink; Error-severity findings abort the
// decode and are returned as Issues.
func DecodeAny(s Source, opt BindOpt, sink func(Issue)) (any, error) {
	enforced := EnforceSourceIfNeeded(s, opt, sink)
	v, err := tok.DecodeAny(internalTokenSource(enforced))
	if err != nil {
		if fe, ok := asFindingError(err); ok {
			return nil, Issues{Issue{
				Path:    fe.Finding.Path,
				Code:    fe.Finding.Code,
				Message: fe.Finding.Message,
				Offset:  fe.Finding.Offset,
			}}
		}
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err, Offset: s.Location()}}
	}
	return v, nil
}

func asFindingError(err error) (tok.FindingError, bool) {
	var fe tok.FindingError
	ok := errors.As(err, &fe)
	return fe, ok
}

func toInternalDup(s Severity) tok.DuplicateMode {
	switch s {
	case Warn:
		return tok.DupWarn
	case Error:
		return tok.DupError
	default:
		return tok.DupIgnore
	}
}

// internalTokenSource projects a public Source back onto the internal token
// interface, unwrapping the common adapter case.
func internalTokenSource(s Source) tok.Source {
	if ta, ok := s.(*tokenSourceAdapter); ok {
		return ta.inner
	}
	return &publicSourceAdapter{inner: s}
}

type tokenSourceAdapter struct {
	inner tok.Source
}

func (s *tokenSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromInternalKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *tokenSourceAdapter) Location() int64 { return s.inner.Location() }

type publicSourceAdapter struct {
	inner Source
}

func (s *publicSourceAdapter) NextToken() (tok.Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return tok.Token{}, err
	}
	return tok.Token{Kind: toInternalKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *publicSourceAdapter) Location() int64 { return s.inner.Location() }

func fromInternalKind(k tok.Kind) tokenKind {
	switch k {
	case tok.KindBeginObject:
		return _tokenBeginObject
	case tok.KindEndObject:
		return _tokenEndObject
	case tok.KindBeginArray:
		return _tokenBeginArray
	case tok.KindEndArray:
		return _tokenEndArray
	case tok.KindKey:
		return _tokenKey
	case tok.KindString:
		return _tokenString
	case tok.KindNumber:
		return _tokenNumber
	case tok.KindBool:
		return _tokenBool
	default:
		return _tokenNull
	}
}

func toInternalKind(k tokenKind) tok.Kind {
	switch k {
	case _tokenBeginObject:
		return tok.KindBeginObject
	case _tokenEndObject:
		return tok.KindEndObject
	case _tokenBeginArray:
		return tok.KindBeginArray
	case _tokenEndArray:
		return tok.KindEndArray
	case _tokenKey:
		return tok.KindKey
	case _tokenString:
		return tok.KindString
	case _tokenNumber:
		return tok.KindNumber
	case _tokenBool:
		return tok.KindBool
	default:
		return tok.KindNull
	}
}
