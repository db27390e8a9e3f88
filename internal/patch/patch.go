// Package patch distinguishes absent JSON keys from explicit nulls in
// partial-update bodies.
package patch

import "encoding/json"

// Field is a patch value that records whether the key appeared in the body.
// The zero value means the key was absent. A present key with a JSON null
// leaves Value nil, which clears a nullable column.
type Field[T any] struct {
	Set   bool
	Value *T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Value = nil
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
