// Package json provides the default encoding/json-backed token source.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	tok "github.com/jsonlint/jsonlint/internal/token"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into a token.Source for JSON.
func NewReader(r io.Reader) tok.Source {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into a token.Source for JSON.
func NewBytes(b []byte) tok.Source { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (tok.Token, error) {
	t, err := s.dec.Token()
	if err != nil {
		return tok.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := t.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return s.emit(tok.Token{Kind: tok.KindBeginObject}, false), nil
		case '}':
			s.pop()
			return s.emit(tok.Token{Kind: tok.KindEndObject}, true), nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return s.emit(tok.Token{Kind: tok.KindBeginArray}, false), nil
		case ']':
			s.pop()
			return s.emit(tok.Token{Kind: tok.KindEndArray}, true), nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return s.emit(tok.Token{Kind: tok.KindKey, String: v}, false), nil
			}
		}
		return s.emit(tok.Token{Kind: tok.KindString, String: v}, true), nil
	case bool:
		return s.emit(tok.Token{Kind: tok.KindBool, Bool: v}, true), nil
	case json.Number:
		return s.emit(tok.Token{Kind: tok.KindNumber, Number: string(v)}, true), nil
	case float64:
		return s.emit(tok.Token{Kind: tok.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}, true), nil
	case nil:
		return s.emit(tok.Token{Kind: tok.KindNull}, true), nil
	}
	return s.emit(tok.Token{Kind: tok.KindNull}, true), nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

// emit stamps the current offset and, when the token completes a value,
// flips the enclosing object frame back to expecting a key.
func (s *jsonSource) emit(t tok.Token, valueDone bool) tok.Token {
	t.Offset = s.lastOffset
	if valueDone {
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
			}
		}
	}
	return t
}
