package types

import (
	"bytes"
	"sort"
)

// AccountBytes maps base58 account identifiers to the raw bytes observed for them.
// It is immutable once constructed and iterates in sorted key order, so two observations
// of the same state compare byte-for-byte.
type AccountBytes struct {
	keys []string
	data map[string][]byte
}

// NewAccountBytes copies accounts into a new AccountBytes. Later changes to the input map or
// its slices are not visible through the result.
func NewAccountBytes(accounts map[string][]byte) AccountBytes {
	ab := AccountBytes{
		keys: make([]string, 0, len(accounts)),
		data: make(map[string][]byte, len(accounts)),
	}
	for k, v := range accounts {
		ab.keys = append(ab.keys, k)
		ab.data[k] = append(make([]byte, 0, len(v)), v...)
	}
	sort.Strings(ab.keys)
	return ab
}

func (a AccountBytes) Len() int {
	return len(a.keys)
}

// Keys returns the identifiers in canonical order.
func (a AccountBytes) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Get returns a copy of the payload stored for id.
func (a AccountBytes) Get(id string) ([]byte, bool) {
	v, ok := a.data[id]
	if !ok {
		return nil, false
	}
	return append(make([]byte, 0, len(v)), v...), true
}

func (a AccountBytes) Has(id string) bool {
	_, ok := a.data[id]
	return ok
}

// Each calls fn for every entry in key order. fn must not retain or modify data.
func (a AccountBytes) Each(fn func(id string, data []byte)) {
	for _, k := range a.keys {
		fn(k, a.data[k])
	}
}

// Map returns a deep copy of the contents as a plain map.
func (a AccountBytes) Map() map[string][]byte {
	out := make(map[string][]byte, len(a.data))
	for k, v := range a.data {
		out[k] = append(make([]byte, 0, len(v)), v...)
	}
	return out
}

func (a AccountBytes) Equal(other AccountBytes) bool {
	if len(a.keys) != len(other.keys) {
		return false
	}
	for i, k := range a.keys {
		if other.keys[i] != k || !bytes.Equal(a.data[k], other.data[k]) {
			return false
		}
	}
	return true
}
