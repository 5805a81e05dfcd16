package pathdocmsgpack

import (
	"fmt"
	"strconv"

	"github.com/sanity-io/pathdoc"
	"github.com/vmihailenco/msgpack/v4"
	"github.com/vmihailenco/msgpack/v4/codes"
)

// MsgpackDocument is an alias for pathdoc.Document which implements CustomEncoder/CustomDecoder.
// You should only use this if you need to embed a document inside a larger msgpack structure.
// Otherwise it's preferred to use the Marshal and Unmarshal functions.
type MsgpackDocument pathdoc.Document

var _ msgpack.CustomEncoder = (*MsgpackDocument)(nil)
var _ msgpack.CustomDecoder = (*MsgpackDocument)(nil)

// Marshal encodes a document using Msgpack. Object key order is kept.
func Marshal(doc *pathdoc.Document) ([]byte, error) {
	return msgpack.Marshal((*MsgpackDocument)(doc))
}

// MarshalValue encodes a single document value using Msgpack.
func MarshalValue(value interface{}) ([]byte, error) {
	doc, err := pathdoc.New(value)
	if err != nil {
		return nil, err
	}
	return Marshal(doc)
}

// Unmarshal decodes a document using Msgpack.
func Unmarshal(data []byte) (*pathdoc.Document, error) {
	var mpdoc MsgpackDocument
	err := msgpack.Unmarshal(data, &mpdoc)
	if err != nil {
		return nil, err
	}
	return (*pathdoc.Document)(&mpdoc), nil
}

type writer struct {
	*msgpack.Encoder
}

func (w writer) WriteNull() error {
	return w.EncodeNil()
}

func (w writer) WriteBool(v bool) error {
	return w.EncodeBool(v)
}

// WriteNumber keeps integers exact; everything else becomes a float64.
func (w writer) WriteNumber(v pathdoc.Number) error {
	if i, err := v.Int64(); err == nil {
		return w.EncodeInt(i)
	}
	if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
		return w.EncodeUint(u)
	}
	f, err := v.Float64()
	if err != nil {
		return fmt.Errorf("%w: number %s: %v", pathdoc.ErrUnsupportedValue, string(v), err)
	}
	return w.EncodeFloat64(f)
}

func (w writer) WriteString(v string) error {
	return w.EncodeString(v)
}

func (w writer) BeginArray(n int) error {
	return w.EncodeArrayLen(n)
}

func (w writer) EndArray() error {
	return nil
}

func (w writer) BeginObject(n int) error {
	return w.EncodeMapLen(n)
}

func (w writer) WriteKey(key string) error {
	return w.EncodeString(key)
}

func (w writer) EndObject() error {
	return nil
}

func (doc *MsgpackDocument) EncodeMsgpack(enc *msgpack.Encoder) error {
	return pathdoc.WriteValue(writer{enc}, (*pathdoc.Document)(doc).Root())
}

type reader struct {
	*msgpack.Decoder
}

func (r reader) ReadValue() (interface{}, error) {
	c, err := r.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case c == codes.Nil:
		return nil, r.DecodeNil()
	case c == codes.False || c == codes.True:
		return r.DecodeBool()
	case codes.IsFixedString(c) || c == codes.Str8 || c == codes.Str16 || c == codes.Str32:
		return r.DecodeString()
	case codes.IsFixedMap(c) || c == codes.Map16 || c == codes.Map32:
		return r.readObject()
	case codes.IsFixedArray(c) || c == codes.Array16 || c == codes.Array32:
		return r.readArray()
	case c == codes.Float:
		f, err := r.DecodeFloat32()
		if err != nil {
			return nil, err
		}
		return pathdoc.Number(strconv.FormatFloat(float64(f), 'g', -1, 32)), nil
	case c == codes.Double:
		f, err := r.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		return pathdoc.FloatNumber(f)
	case c == codes.Uint64:
		u, err := r.DecodeUint64()
		if err != nil {
			return nil, err
		}
		return pathdoc.UintNumber(u), nil
	case codes.IsFixedNum(c) ||
		c == codes.Uint8 || c == codes.Uint16 || c == codes.Uint32 ||
		c == codes.Int8 || c == codes.Int16 || c == codes.Int32 || c == codes.Int64:
		i, err := r.DecodeInt64()
		if err != nil {
			return nil, err
		}
		return pathdoc.IntNumber(i), nil
	}

	return nil, fmt.Errorf("%w: msgpack code 0x%x", pathdoc.ErrUnsupportedValue, c)
}

func (r reader) readObject() (interface{}, error) {
	n, err := r.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	obj := pathdoc.NewObject()
	for i := 0; i < n; i++ {
		key, err := r.DecodeString()
		if err != nil {
			return nil, err
		}
		value, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	return obj, nil
}

func (r reader) readArray() (interface{}, error) {
	n, err := r.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	arr := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		value, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	return arr, nil
}

func (doc *MsgpackDocument) DecodeMsgpack(dec *msgpack.Decoder) error {
	root, err := reader{dec}.ReadValue()
	if err != nil {
		return err
	}
	return (*pathdoc.Document)(doc).Reset(root)
}
