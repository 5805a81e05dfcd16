// Package digest computes structural fingerprints of document values.
//
// Two values that pathdoc.Equal considers equal have the same digest: object
// fields are hashed in key order and numbers by their reduced decimal value.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"sort"

	"github.com/cockroachdb/apd/v3"

	"github.com/sanity-io/pathdoc"
)

type Hash [sha256.Size]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

type hasher struct {
	hasher hash.Hash
}

const (
	typeString byte = iota
	typeNumber
	typeObject
	typeArray
	typeTrue
	typeFalse
	typeNull
)

func hasherFor(t byte) hasher {
	h := hasher{
		hasher: sha256.New(),
	}
	h.hasher.Write([]byte{t})
	return h
}

func hashFor(t byte) Hash {
	h := hasherFor(t)
	return h.Sum()
}

var (
	hashTrue  = hashFor(typeTrue)
	hashFalse = hashFor(typeFalse)
	hashNull  = hashFor(typeNull)
)

func (h *hasher) Sum() (result Hash) {
	_ = h.hasher.Sum(result[:0])
	return
}

func (h *hasher) WriteField(key string, value Hash) {
	h.hasher.Write([]byte{typeString})
	h.hasher.Write([]byte(key))
	h.hasher.Write(value[:])
}

func (h *hasher) WriteElement(value Hash) {
	h.hasher.Write(value[:])
}

func hashString(s string) Hash {
	h := hasherFor(typeString)
	h.hasher.Write([]byte(s))
	return h.Sum()
}

func hashNumber(n pathdoc.Number) Hash {
	h := hasherFor(typeNumber)
	d, err := n.Decimal()
	switch {
	case err != nil:
		h.hasher.Write([]byte(n))
	case d.IsZero():
		h.hasher.Write([]byte("0"))
	default:
		var reduced apd.Decimal
		reduced.Reduce(d)
		h.hasher.Write([]byte(reduced.Text('e')))
	}
	return h.Sum()
}

// Sum returns the digest of a value.
func Sum(value interface{}) (Hash, error) {
	switch value := value.(type) {
	case nil:
		return hashNull, nil
	case bool:
		if value {
			return hashTrue, nil
		}
		return hashFalse, nil
	case pathdoc.Number:
		return hashNumber(value), nil
	case string:
		return hashString(value), nil
	case []interface{}:
		h := hasherFor(typeArray)
		for _, elem := range value {
			elemHash, err := Sum(elem)
			if err != nil {
				return Hash{}, err
			}
			h.WriteElement(elemHash)
		}
		return h.Sum(), nil
	case *pathdoc.Object:
		keys := value.Keys()
		sort.Strings(keys)
		h := hasherFor(typeObject)
		for _, key := range keys {
			elem, _ := value.Get(key)
			elemHash, err := Sum(elem)
			if err != nil {
				return Hash{}, err
			}
			h.WriteField(key, elemHash)
		}
		return h.Sum(), nil
	}

	return Hash{}, fmt.Errorf("%w: %T", pathdoc.ErrUnsupportedValue, value)
}

// Document returns the digest of a document's root.
func Document(doc *pathdoc.Document) (Hash, error) {
	return Sum(doc.Root())
}
