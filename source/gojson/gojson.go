// Package gojson provides a goccy/go-json-backed token source and driver.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	jsonlint "github.com/jsonlint/jsonlint"
	tok "github.com/jsonlint/jsonlint/internal/token"
)

// Driver returns a jsonlint.JSONDriver backed by goccy/go-json. Install it
// with jsonlint.SetJSONDriver(gojson.Driver()).
func Driver() jsonlint.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) jsonlint.Source {
	return jsonlint.SourceFromTokens(NewReader(r))
}
func (driverGoJSON) NewBytes(b []byte) jsonlint.Source {
	return jsonlint.SourceFromTokens(NewBytes(b))
}
func (driverGoJSON) Name() string { return "go-json" }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into a token.Source for JSON using go-json.
func NewReader(r io.Reader) tok.Source {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into a token.Source for JSON using go-json.
func NewBytes(b []byte) tok.Source { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (tok.Token, error) {
	t, err := s.dec.Token()
	if err != nil {
		return tok.Token{}, err
	}
	switch v := t.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return tok.Token{Kind: tok.KindBeginObject, Offset: -1}, nil
		case '}':
			s.pop()
			return s.value(tok.Token{Kind: tok.KindEndObject, Offset: -1}), nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return tok.Token{Kind: tok.KindBeginArray, Offset: -1}, nil
		case ']':
			s.pop()
			return s.value(tok.Token{Kind: tok.KindEndArray, Offset: -1}), nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return tok.Token{Kind: tok.KindKey, String: v, Offset: -1}, nil
			}
		}
		return s.value(tok.Token{Kind: tok.KindString, String: v, Offset: -1}), nil
	case bool:
		return s.value(tok.Token{Kind: tok.KindBool, Bool: v, Offset: -1}), nil
	case j.Number:
		return s.value(tok.Token{Kind: tok.KindNumber, Number: string(v), Offset: -1}), nil
	case float64:
		return s.value(tok.Token{Kind: tok.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}), nil
	case nil:
		return s.value(tok.Token{Kind: tok.KindNull, Offset: -1}), nil
	}
	return s.value(tok.Token{Kind: tok.KindNull, Offset: -1}), nil
}

func (s *source) Location() int64 { return -1 }

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

// value flips the enclosing object frame back to expecting a key once a value
// token completes.
func (s *source) value(t tok.Token) tok.Token {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
	return t
}
