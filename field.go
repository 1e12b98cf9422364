/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyvaluestore

import (
	"github.com/suparena/keyvaluestore/errors"
)

// Field is a property attached to T with its accessors resolved.
type Field[T KeyValueStore] struct {
	name string
	key  string
	doc  string
	get  func(T) (any, error)
	set  func(T, any) error // nil when read-only
}

// Name returns the field name.
func (f *Field[T]) Name() string {
	return f.name
}

// Key returns the storage key the field was declared with, which may be empty.
func (f *Field[T]) Key() string {
	return f.key
}

// Doc returns the documentation string the field was declared with.
func (f *Field[T]) Doc() string {
	return f.doc
}

// ReadOnly reports whether writes to the field are disabled.
func (f *Field[T]) ReadOnly() bool {
	return f.set == nil
}

// Get reads the field on instance. Errors from the accessor are returned unchanged.
func (f *Field[T]) Get(instance T) (any, error) {
	return f.get(instance)
}

// Set writes the field on instance. Errors from the accessor are returned unchanged.
func (f *Field[T]) Set(instance T, value any) error {
	if f.set == nil {
		return errors.NewReadOnlyFieldError(f.name)
	}
	return f.set(instance, value)
}
