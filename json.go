package payload

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a JSON source's input is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// JSONSink writes values as one JSON array, for transports and logs that
// want human-readable payloads. Byte slices are base64-encoded strings, the
// encoding/json convention.
//
// Close must be called after the last value to terminate the array; the
// output is not valid JSON before that.
type JSONSink struct {
	w io.Writer
	n int
}

// NewJSONSink creates a sink writing a JSON array to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

func (s *JSONSink) put(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	sep := ","
	if s.n == 0 {
		sep = "["
	}
	s.n++
	if _, err := io.WriteString(s.w, sep); err != nil {
		return err
	}
	_, err = s.w.Write(data)
	return err
}

func (s *JSONSink) WriteBool(v bool) error     { return s.put(v) }
func (s *JSONSink) WriteInt(v int64) error     { return s.put(v) }
func (s *JSONSink) WriteUint(v uint64) error   { return s.put(v) }
func (s *JSONSink) WriteFloat(v float64) error { return s.put(v) }
func (s *JSONSink) WriteString(v string) error { return s.put(v) }
func (s *JSONSink) WriteBytes(v []byte) error  { return s.put(v) }

// Close terminates the array.
func (s *JSONSink) Close() error {
	out := "]"
	if s.n == 0 {
		out = "[]"
	}
	_, err := io.WriteString(s.w, out)
	return err
}

// JSONSource reads values back from a JSON array produced by JSONSink.
// Elements are consumed in order; reading past the end yields
// io.ErrUnexpectedEOF.
type JSONSource struct {
	elems []gjson.Result
	pos   int
}

// NewJSONSource parses data as a JSON array and creates a source over its
// elements.
func NewJSONSource(data []byte) (*JSONSource, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("payload: JSON source wants an array, got %s", root.Type)
	}
	return &JSONSource{elems: root.Array()}, nil
}

func (s *JSONSource) next() (gjson.Result, error) {
	if s.pos >= len(s.elems) {
		return gjson.Result{}, io.ErrUnexpectedEOF
	}
	el := s.elems[s.pos]
	s.pos++
	return el, nil
}

func (s *JSONSource) number() (gjson.Result, error) {
	el, err := s.next()
	if err != nil {
		return el, err
	}
	if el.Type != gjson.Number {
		return el, fmt.Errorf("payload: JSON element %d is %s, want a number", s.pos-1, el.Type)
	}
	return el, nil
}

func (s *JSONSource) ReadBool() (bool, error) {
	el, err := s.next()
	if err != nil {
		return false, err
	}
	if el.Type != gjson.True && el.Type != gjson.False {
		return false, fmt.Errorf("payload: JSON element %d is %s, want a bool", s.pos-1, el.Type)
	}
	return el.Bool(), nil
}

func (s *JSONSource) ReadInt() (int64, error) {
	el, err := s.number()
	if err != nil {
		return 0, err
	}
	return el.Int(), nil
}

func (s *JSONSource) ReadUint() (uint64, error) {
	el, err := s.number()
	if err != nil {
		return 0, err
	}
	return el.Uint(), nil
}

func (s *JSONSource) ReadFloat() (float64, error) {
	el, err := s.number()
	if err != nil {
		return 0, err
	}
	return el.Float(), nil
}

func (s *JSONSource) ReadString() (string, error) {
	el, err := s.next()
	if err != nil {
		return "", err
	}
	if el.Type != gjson.String {
		return "", fmt.Errorf("payload: JSON element %d is %s, want a string", s.pos-1, el.Type)
	}
	return el.String(), nil
}

func (s *JSONSource) ReadBytes() ([]byte, error) {
	el, err := s.next()
	if err != nil {
		return nil, err
	}
	// encoding/json marshals a nil []byte as null.
	if el.Type == gjson.Null {
		return nil, nil
	}
	if el.Type != gjson.String {
		return nil, fmt.Errorf("payload: JSON element %d is %s, want a string", s.pos-1, el.Type)
	}
	return base64.StdEncoding.DecodeString(el.String())
}
