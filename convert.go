package pathdoc

import (
	"encoding/json"
	"fmt"
	"sort"
)

// normalize turns an accepted Go value into a document value.
func (options *Options) normalize(value interface{}) (interface{}, error) {
	value = options.convert(value)

	switch v := value.(type) {
	case nil, bool, string, *Object:
		return v, nil
	case Number:
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: invalid number %q", ErrUnsupportedValue, string(v))
		}
		return v, nil
	case json.Number:
		return options.normalize(Number(v))
	case float64:
		return FloatNumber(v)
	case float32:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		return Number(b), nil
	case int:
		return IntNumber(int64(v)), nil
	case int8:
		return IntNumber(int64(v)), nil
	case int16:
		return IntNumber(int64(v)), nil
	case int32:
		return IntNumber(int64(v)), nil
	case int64:
		return IntNumber(v), nil
	case uint:
		return UintNumber(uint64(v)), nil
	case uint8:
		return UintNumber(uint64(v)), nil
	case uint16:
		return UintNumber(uint64(v)), nil
	case uint32:
		return UintNumber(uint64(v)), nil
	case uint64:
		return UintNumber(v), nil
	case []interface{}:
		arr := make([]interface{}, len(v))
		for i, elem := range v {
			n, err := options.normalize(elem)
			if err != nil {
				return nil, err
			}
			arr[i] = n
		}
		return arr, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, key := range keys {
			n, err := options.normalize(v[key])
			if err != nil {
				return nil, err
			}
			obj.Set(key, n)
		}
		return obj, nil
	case []float64:
		return floatArray(v)
	case [2]float64:
		return floatArray(v[:])
	case []int64:
		arr := make([]interface{}, len(v))
		for i, elem := range v {
			arr[i] = IntNumber(elem)
		}
		return arr, nil
	case []int:
		arr := make([]interface{}, len(v))
		for i, elem := range v {
			arr[i] = IntNumber(int64(elem))
		}
		return arr, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}

// floatArray converts a fixed numeric array positionally, e.g. a coordinate pair.
func floatArray(values []float64) ([]interface{}, error) {
	arr := make([]interface{}, len(values))
	for i, f := range values {
		n, err := FloatNumber(f)
		if err != nil {
			return nil, err
		}
		arr[i] = n
	}
	return arr, nil
}
