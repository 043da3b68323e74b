package manager

import (
	"bytes"
	"encoding/json"
)

// Optional is a double option: Set=false leaves a field unchanged,
// Set=true with a nil Value clears it, Set=true with a Value replaces it.
//
// When decoded from JSON, an absent key leaves Set=false and an explicit
// null yields Set=true, Value=nil.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional that replaces the field with v.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

// Clear returns an Optional that clears the field.
func Clear[T any]() Optional[T] { return Optional[T]{Set: true} }

// Apply returns the new field value given the current one.
func (o Optional[T]) Apply(current *T) *T {
	if !o.Set {
		return current
	}
	if o.Value == nil {
		return nil
	}
	v := *o.Value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON encodes the value, or null when cleared or unset.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
