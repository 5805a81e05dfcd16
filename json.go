package pathdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type jsonWriter struct {
	buf bytes.Buffer
	// counts holds the number of entries written so far per open container.
	counts   []int
	afterKey bool
}

func (w *jsonWriter) next() {
	if w.afterKey {
		w.afterKey = false
		return
	}
	if n := len(w.counts); n > 0 {
		if w.counts[n-1] > 0 {
			w.buf.WriteByte(',')
		}
		w.counts[n-1]++
	}
}

func (w *jsonWriter) WriteNull() error {
	w.next()
	w.buf.WriteString("null")
	return nil
}

func (w *jsonWriter) WriteBool(v bool) error {
	w.next()
	if v {
		w.buf.WriteString("true")
	} else {
		w.buf.WriteString("false")
	}
	return nil
}

func (w *jsonWriter) WriteNumber(v Number) error {
	if !v.IsValid() {
		return fmt.Errorf("%w: invalid number %q", ErrUnsupportedValue, string(v))
	}
	w.next()
	w.buf.WriteString(string(v))
	return nil
}

func (w *jsonWriter) WriteString(v string) error {
	w.next()
	return w.quote(v)
}

func (w *jsonWriter) quote(v string) error {
	enc := json.NewEncoder(&w.buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(v)
	if err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	w.buf.Truncate(w.buf.Len() - 1)
	return nil
}

func (w *jsonWriter) BeginArray(n int) error {
	w.next()
	w.buf.WriteByte('[')
	w.counts = append(w.counts, 0)
	return nil
}

func (w *jsonWriter) EndArray() error {
	w.counts = w.counts[:len(w.counts)-1]
	w.buf.WriteByte(']')
	return nil
}

func (w *jsonWriter) BeginObject(n int) error {
	w.next()
	w.buf.WriteByte('{')
	w.counts = append(w.counts, 0)
	return nil
}

func (w *jsonWriter) WriteKey(key string) error {
	w.next()
	err := w.quote(key)
	if err != nil {
		return err
	}
	w.buf.WriteByte(':')
	w.afterKey = true
	return nil
}

func (w *jsonWriter) EndObject() error {
	w.counts = w.counts[:len(w.counts)-1]
	w.buf.WriteByte('}')
	return nil
}

// MarshalValue encodes a value as compact JSON, keeping object key order.
func MarshalValue(value interface{}) ([]byte, error) {
	w := jsonWriter{}
	err := WriteValue(&w, value)
	if err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type jsonReader struct {
	dec *json.Decoder
}

func (r *jsonReader) ReadValue() (interface{}, error) {
	t, err := r.dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := t.(type) {
	case json.Delim:
		switch t {
		case '{':
			return r.readObject()
		case '[':
			return r.readArray()
		}
		return nil, fmt.Errorf("unexpected %v", t)
	case json.Number:
		return Number(t), nil
	case string, bool, nil:
		return t, nil
	}

	return nil, fmt.Errorf("unexpected token %v", t)
}

func (r *jsonReader) readObject() (interface{}, error) {
	obj := NewObject()
	for r.dec.More() {
		t, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := t.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}
		value, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}

	return obj, r.expect('}')
}

func (r *jsonReader) readArray() (interface{}, error) {
	arr := []interface{}{}
	for r.dec.More() {
		value, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	return arr, r.expect(']')
}

func (r *jsonReader) expect(delim json.Delim) error {
	t, err := r.dec.Token()
	if err != nil {
		return err
	}
	if t != delim {
		return fmt.Errorf("expected %v", delim)
	}
	return nil
}

// ParseValue decodes exactly one JSON value. Objects keep their key order
// and numbers keep their literal text.
func ParseValue(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	r := jsonReader{dec: dec}

	value, err := r.ReadValue()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidJSON)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrInvalidJSON)
	}

	return value, nil
}

func (doc *Document) MarshalJSON() ([]byte, error) {
	return MarshalValue(doc.root)
}

func (doc *Document) UnmarshalJSON(data []byte) error {
	return doc.Load(data)
}

// Bytes returns the canonical compact JSON form of the document.
func (doc *Document) Bytes() ([]byte, error) {
	return MarshalValue(doc.root)
}

// Indent returns the document as indented JSON. It decodes to the same
// structure as Bytes.
func (doc *Document) Indent(prefix, indent string) ([]byte, error) {
	compact, err := doc.Bytes()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = json.Indent(&buf, compact, prefix, indent)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
