package value

import (
	"fmt"

	"github.com/rionfmt/rion/internal/dupkey"
)

// Entry is one key/value pair of an Object, in insertion order.
type Entry struct {
	Key string
	Val *Value
}

// Object is an unordered mapping from Key to Value with unique keys. Entry
// order is retained for deterministic iteration by the caller, but is not
// part of the wire form or of equality.
type Object struct {
	entries []Entry
	tracker *dupkey.Tracker
}

// NewObject returns an empty Object.
func NewObject() *Value {
	return &Value{kind: KindObject, obj: &Object{tracker: dupkey.New(0)}}
}

// Add inserts key/val. It panics if key was already present, enforcing key
// uniqueness at construction time rather than only at decode time.
func (v *Value) Add(key string, val *Value) *Value {
	if v.kind != KindObject {
		panic("value: Add on non-object Value")
	}
	if err := v.obj.tracker.Track(key); err != nil {
		panic(fmt.Sprintf("value: %v: %q", err, key))
	}
	v.obj.entries = append(v.obj.entries, Entry{Key: key, Val: val})

	return v
}

// Entries returns the object's key/value pairs in insertion order.
func (o *Object) Entries() []Entry { return o.entries }

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.entries) }

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (*Value, bool) {
	for _, e := range o.entries {
		if e.Key == key {
			return e.Val, true
		}
	}

	return nil, false
}
