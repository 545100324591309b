package domain

import "encoding/json"

// Field carries one attribute of a partial update. The zero value means the
// caller did not provide the attribute at all, which is distinct from
// providing it as null: an unprovided field must not appear in the persisted
// update, while a null one clears the column.
type Field[T any] struct {
	// Provided reports whether the caller supplied this field.
	Provided bool
	// Value is the supplied value; nil means an explicit null.
	Value *T
}

// Set builds a Field holding a concrete value.
func Set[T any](v T) Field[T] {
	return Field[T]{Provided: true, Value: &v}
}

// Null builds a Field that explicitly clears the attribute.
func Null[T any]() Field[T] {
	return Field[T]{Provided: true}
}

// UnmarshalJSON marks the field provided. encoding/json only calls this for
// keys present in the document, so an absent key leaves the zero value and
// a literal null yields an explicit clear.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Provided = true
	if string(b) == "null" {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}
