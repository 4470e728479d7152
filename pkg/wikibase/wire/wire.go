// Package wire holds the nested, order preserving value tree that the codecs
// read from and write to. Values are one of nil, bool, string, json.Number,
// Array or *Object.
package wire

import (
	"encoding/json"
	"fmt"
)

// MapFormat selects how a keyed mapping is presented on the wire
type MapFormat int

const (
	// MapsAsArrays presents keyed mappings as associative arrays. An empty
	// mapping is indistinguishable from an empty list and encodes as [].
	MapsAsArrays MapFormat = iota
	// MapsAsObjects presents keyed mappings as generic objects that always encode as {}.
	MapsAsObjects
)

func (f MapFormat) String() string {
	if f == MapsAsObjects {
		return "object"
	}
	return "array"
}

// ParseMapFormat accepts "array" or "object"
func ParseMapFormat(s string) (MapFormat, error) {
	switch s {
	case "", "array":
		return MapsAsArrays, nil
	case "object":
		return MapsAsObjects, nil
	default:
		return MapsAsArrays, fmt.Errorf("unknown map format %q", s)
	}
}

// Array is an ordered list of wire values
type Array []any

// Entry is a single key/value pair of an Object
type Entry struct {
	Key   string
	Value any
}

// Object is a keyed record that remembers the order in which keys were first set
type Object struct {
	entries []Entry
	index   map[string]int
	format  MapFormat
}

// NewObject creates an empty object presented as a generic object
func NewObject(entries ...Entry) *Object {
	return NewMap(MapsAsObjects, entries...)
}

// NewMap creates an empty keyed mapping presented according to format
func NewMap(format MapFormat, entries ...Entry) *Object {
	o := &Object{
		index:  map[string]int{},
		format: format,
	}

	for _, e := range entries {
		o.Set(e.Key, e.Value)
	}

	return o
}

// Set replaces the value of an existing key in place or appends a new key last
func (o *Object) Set(key string, value any) *Object {
	if o.index == nil {
		o.index = map[string]int{}
	}

	if idx, ok := o.index[key]; ok {
		o.entries[idx].Value = value
		return o
	}

	o.index[key] = len(o.entries)
	o.entries = append(o.entries, Entry{Key: key, Value: value})

	return o
}

func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	idx, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.entries[idx].Value, true
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Keys returns the keys in insertion order
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for _, e := range o.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns the entries in insertion order. The slice must not be modified.
func (o *Object) Entries() []Entry {
	if o == nil {
		return nil
	}
	return o.entries
}

func (o *Object) Format() MapFormat {
	return o.format
}

// AsObject returns v as an Object. An empty Array is accepted as an empty
// mapping since associative arrays can not tell the two apart.
func AsObject(v any) (*Object, bool) {
	switch typed := v.(type) {
	case *Object:
		if typed == nil {
			return nil, false
		}
		return typed, true
	case Array:
		if len(typed) == 0 {
			return NewMap(MapsAsArrays), true
		}
	case []any:
		if len(typed) == 0 {
			return NewMap(MapsAsArrays), true
		}
	}
	return nil, false
}

// AsArray returns v as an Array
func AsArray(v any) (Array, bool) {
	switch typed := v.(type) {
	case Array:
		return typed, true
	case []any:
		return Array(typed), true
	}
	return nil, false
}

// IsContainer reports whether v is an Array or an Object
func IsContainer(v any) bool {
	switch typed := v.(type) {
	case Array, []any:
		return true
	case *Object:
		return typed != nil
	}
	return false
}

// Values returns the elements of a container in order. For objects the keys
// are dropped.
func Values(v any) ([]any, bool) {
	if arr, ok := AsArray(v); ok {
		return arr, true
	}
	if obj, ok := AsObject(v); ok {
		values := make([]any, 0, obj.Len())
		for _, e := range obj.Entries() {
			values = append(values, e.Value)
		}
		return values, true
	}
	return nil, false
}

// Equal compares two wire values structurally. Object key order is significant.
func Equal(a, b any) bool {
	switch ta := a.(type) {
	case nil:
		return b == nil
	case *Object:
		tb, ok := b.(*Object)
		if !ok || ta.Len() != tb.Len() {
			return false
		}
		ea, eb := ta.Entries(), tb.Entries()
		for i := range ea {
			if ea[i].Key != eb[i].Key || !Equal(ea[i].Value, eb[i].Value) {
				return false
			}
		}
		return true
	case Array, []any:
		aa, _ := AsArray(ta)
		bb, ok := AsArray(b)
		if !ok || len(aa) != len(bb) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], bb[i]) {
				return false
			}
		}
		return true
	case json.Number:
		switch tb := b.(type) {
		case json.Number:
			return ta == tb
		case float64:
			f, err := ta.Float64()
			return err == nil && f == tb
		}
		return false
	case float64:
		if tb, ok := b.(json.Number); ok {
			return Equal(tb, ta)
		}
		return a == b
	default:
		return a == b
	}
}
