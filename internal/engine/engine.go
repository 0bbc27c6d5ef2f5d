package engine

import (
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "begin-object"
	case KindEndObject:
		return "end-object"
	case KindBeginArray:
		return "begin-array"
	case KindEndArray:
		return "end-array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData is returned when a document is followed by more tokens.
var ErrTrailingData = errors.New("engine: unexpected data after top-level value")

// Builder assembles a value tree while tokens are decoded. Object keys and
// values are handed over in document order.
type Builder[V any] interface {
	String(s string) V
	Number(text string) (V, error)
	Bool(b bool) V
	Null() V
	Array(items []V) V
	Object(keys []string, vals []V) V
}

// Decode builds a single value from src using b. Trailing tokens after the
// first complete value are rejected.
func Decode[V any](src TokenSource, b Builder[V]) (V, error) {
	var zero V
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return zero, io.ErrUnexpectedEOF
		}
		return zero, err
	}
	v, err := decodeValue(src, tok, b)
	if err != nil {
		return zero, err
	}
	if _, err := src.NextToken(); err == nil {
		return zero, ErrTrailingData
	} else if !errors.Is(err, io.EOF) {
		return zero, err
	}
	return v, nil
}

func decodeValue[V any](src TokenSource, tok Token, b Builder[V]) (V, error) {
	var zero V
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, b)
	case KindBeginArray:
		return decodeArray(src, b)
	case KindString:
		return b.String(tok.String), nil
	case KindNumber:
		return b.Number(tok.Number)
	case KindBool:
		return b.Bool(tok.Bool), nil
	case KindNull:
		return b.Null(), nil
	default:
		return zero, io.ErrUnexpectedEOF
	}
}

func decodeObject[V any](src TokenSource, b Builder[V]) (V, error) {
	var zero V
	var keys []string
	var vals []V
	for {
		tok, err := src.NextToken()
		if err != nil {
			return zero, err
		}
		if tok.Kind == KindEndObject {
			return b.Object(keys, vals), nil
		}
		if tok.Kind != KindKey {
			return zero, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return zero, err
		}
		v, err := decodeValue(src, vt, b)
		if err != nil {
			return zero, err
		}
		keys = append(keys, tok.String)
		vals = append(vals, v)
	}
}

func decodeArray[V any](src TokenSource, b Builder[V]) (V, error) {
	var zero V
	items := []V{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return zero, err
		}
		if tok.Kind == KindEndArray {
			return b.Array(items), nil
		}
		v, err := decodeValue(src, tok, b)
		if err != nil {
			return zero, err
		}
		items = append(items, v)
	}
}

// ObjectKeys returns the member names of a top-level object in document
// order, skipping their values. Repeated names are reported once.
func ObjectKeys(src TokenSource) ([]string, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind == KindNull {
		return nil, nil
	}
	if tok.Kind != KindBeginObject {
		return nil, errors.New("engine: expected object, got " + tok.Kind.String())
	}
	var keys []string
	seen := map[string]struct{}{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return keys, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		if _, dup := seen[tok.String]; !dup {
			seen[tok.String] = struct{}{}
			keys = append(keys, tok.String)
		}
		if err := skip(src); err != nil {
			return nil, err
		}
	}
}

// skip consumes exactly one value.
func skip(src TokenSource) error {
	depth := 0
	for {
		tok, err := src.NextToken()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case KindBeginObject, KindBeginArray:
			depth++
		case KindEndObject, KindEndArray:
			depth--
		case KindKey:
			continue
		}
		if depth == 0 {
			return nil
		}
	}
}
