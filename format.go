package pathdoc

import "fmt"

// Writer is an interface for writing documents. This can be used for supporting a custom serialization format.
//
// Containers announce their length up front so that length-prefixed formats
// can be written in a single pass. Inside an object every value is preceded
// by WriteKey.
type Writer interface {
	WriteNull() error
	WriteBool(v bool) error
	WriteNumber(v Number) error
	WriteString(v string) error

	BeginArray(n int) error
	EndArray() error

	BeginObject(n int) error
	WriteKey(key string) error
	EndObject() error
}

// WriteValue writes a value and everything below it to a writer.
func WriteValue(w Writer, value interface{}) error {
	switch value := value.(type) {
	case nil:
		return w.WriteNull()
	case bool:
		return w.WriteBool(value)
	case Number:
		return w.WriteNumber(value)
	case string:
		return w.WriteString(value)
	case []interface{}:
		err := w.BeginArray(len(value))
		if err != nil {
			return err
		}
		for _, elem := range value {
			err := WriteValue(w, elem)
			if err != nil {
				return err
			}
		}
		return w.EndArray()
	case *Object:
		err := w.BeginObject(value.Len())
		if err != nil {
			return err
		}
		value.Range(func(key string, elem interface{}) bool {
			err = w.WriteKey(key)
			if err == nil {
				err = WriteValue(w, elem)
			}
			return err == nil
		})
		if err != nil {
			return err
		}
		return w.EndObject()
	}

	return fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}
