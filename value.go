package pathdoc

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Kind is the tagged-union view of a JSON value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "boolean",
	KindNumber:  "number",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf classifies a value of the document tree. Values are nil, bool,
// Number, string, []interface{} or *Object; anything else is KindInvalid.
func KindOf(value interface{}) Kind {
	switch value.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case Number:
		return KindNumber
	case string:
		return KindString
	case []interface{}:
		return KindArray
	case *Object:
		return KindObject
	}
	return KindInvalid
}

// Number is a JSON number kept as its literal text, so that 64-bit
// identifiers survive parsing and serialization unchanged.
type Number string

var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// IsValid reports whether n is a well-formed JSON number literal.
func (n Number) IsValid() bool {
	return numberPattern.MatchString(string(n))
}

func (n Number) String() string {
	return string(n)
}

func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// numberContext reads literals exactly. Unlike apd.BaseContext it accepts
// any exponent that fits the literal.
var numberContext = apd.Context{
	MaxExponent: math.MaxInt32,
	MinExponent: math.MinInt32,
	Traps:       apd.DefaultTraps,
}

// Decimal returns the exact decimal value of n.
func (n Number) Decimal() (*apd.Decimal, error) {
	d, _, err := numberContext.NewFromString(string(n))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid number %q", ErrUnsupportedValue, string(n))
	}
	return d, nil
}

// FloatNumber formats f the way encoding/json does. NaN and infinities have
// no JSON form and are rejected.
func FloatNumber(f float64) (Number, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return Number(b), nil
}

func IntNumber(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

func UintNumber(u uint64) Number {
	return Number(strconv.FormatUint(u, 10))
}

// Object is a JSON object that remembers the order in which keys were
// first inserted.
type Object struct {
	keys   []string
	values map[string]interface{}
}

func NewObject() *Object {
	return &Object{values: make(map[string]interface{})}
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *Object) Get(key string) (interface{}, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o.values[key]
	return value, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set overwrites an existing key in place or appends a new one.
func (o *Object) Set(key string, value interface{}) {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Delete(key string) bool {
	if _, ok := o.Get(key); !ok {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Range calls fn for every field in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, value interface{}) bool) {
	if o == nil {
		return
	}
	for _, key := range o.keys {
		if !fn(key, o.values[key]) {
			return
		}
	}
}

// Equal reports whether two values are structurally equal. Object key order
// is ignored and numbers compare by value.
func Equal(a, b interface{}) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case bool:
		b, ok := b.(bool)
		return ok && a == b
	case string:
		b, ok := b.(string)
		return ok && a == b
	case Number:
		b, ok := b.(Number)
		if !ok {
			return false
		}
		if a == b {
			return true
		}
		da, errA := a.Decimal()
		db, errB := b.Decimal()
		return errA == nil && errB == nil && da.Cmp(db) == 0
	case []interface{}:
		b, ok := b.([]interface{})
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case *Object:
		b, ok := b.(*Object)
		if !ok || a.Len() != b.Len() {
			return false
		}
		equal := true
		a.Range(func(key string, value interface{}) bool {
			other, found := b.Get(key)
			equal = found && Equal(value, other)
			return equal
		})
		return equal
	}
	return false
}

// Clone returns a deep copy of a value.
func Clone(value interface{}) interface{} {
	switch value := value.(type) {
	case []interface{}:
		arr := make([]interface{}, len(value))
		for i, elem := range value {
			arr[i] = Clone(elem)
		}
		return arr
	case *Object:
		obj := NewObject()
		value.Range(func(key string, elem interface{}) bool {
			obj.Set(key, Clone(elem))
			return true
		})
		return obj
	}
	return value
}
