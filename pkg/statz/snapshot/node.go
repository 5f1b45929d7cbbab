// Package snapshot defines the in-memory shape of a system snapshot: a
// closed set of node kinds (null, string, number, bool, sequence, map)
// with an insertion-ordered map type.
//
// Every loader and collector in statz produces this shape, so the diff
// engine and the flattener only ever deal with one data model no matter
// which serialization a snapshot came from.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Node is a value inside a snapshot. The implementations are exactly
// Null, String, Number, Bool, Seq, and Map; traversal code switches
// over these six kinds and nothing else.
type Node interface {
	isNode()
}

// Null is an explicitly absent value. A key holding Null is still
// present; absence is only ever inferred from key non-membership.
type Null struct{}

// String is a textual scalar.
type String string

// Number is a numeric scalar carried as its source literal (e.g. "4",
// "2.5"). Keeping the literal means re-rendering never introduces
// decimal padding the source did not have.
type Number string

// Bool is a boolean scalar.
type Bool bool

// Seq is an ordered sequence of nodes.
type Seq []Node

// Map is a mapping from string keys to nodes that remembers insertion
// order. Iteration order is the order keys were first set.
type Map struct {
	keys []string
	vals map[string]Node
}

func (Null) isNode()   {}
func (String) isNode() {}
func (Number) isNode() {}
func (Bool) isNode()   {}
func (Seq) isNode()    {}
func (*Map) isNode()   {}

// Int returns a Number holding the given integer.
func Int(v int64) Number {
	return Number(strconv.FormatInt(v, 10))
}

// Float returns a Number holding the shortest representation of v.
func Float(v float64) Number {
	return Number(strconv.FormatFloat(v, 'f', -1, 64))
}

// Float64 returns the number's value as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Node)}
}

// Set stores v under key. Setting an existing key replaces the value
// but keeps the key's original position.
func (m *Map) Set(key string, v Node) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Node, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a
// copy and safe to hold.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Equal reports deep structural equality of two nodes. Map key order
// is not significant; sequences compare elementwise by position.
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Seq:
		bv, ok := b.(Seq)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, present := bv.Get(k)
			if !present || !Equal(av.vals[k], other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Text returns the canonical string form of a scalar node and true, or
// ("", false) for maps and sequences. Booleans render as "true"/"false"
// and Null renders as the empty string; this is the normalization rule
// shared by the flattener and the tabular export.
func Text(n Node) (string, bool) {
	switch v := n.(type) {
	case Null:
		return "", true
	case String:
		return string(v), true
	case Number:
		return string(v), true
	case Bool:
		return strconv.FormatBool(bool(v)), true
	default:
		return "", false
	}
}

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON implements json.Marshaler.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// MarshalJSON implements json.Marshaler. The literal is emitted as-is
// when it is a valid JSON number, otherwise quoted as a fallback.
func (n Number) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(n), 64); err != nil {
		return json.Marshal(string(n))
	}
	return []byte(n), nil
}

// MarshalJSON implements json.Marshaler.
func (b Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// MarshalJSON implements json.Marshaler.
func (s Seq) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler, emitting keys in insertion
// order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyData, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		valData, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Unmarshal parses a JSON document into a Node, preserving object key
// order and numeric literals.
func Unmarshal(data []byte) (Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON value from r into a Node. Trailing
// non-whitespace content after the value is an error.
func Decode(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing content after JSON value")
	}
	return n, nil
}

// decodeValue consumes exactly one JSON value from the decoder.
func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

// decodeToken builds a Node from the token just read, consuming the
// rest of the value for objects and arrays.
func decodeToken(dec *json.Decoder, tok json.Token) (Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			// Consume the closing brace.
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			seq := Seq{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
