/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyvaluestore

import (
	"fmt"
	"reflect"

	"github.com/suparena/keyvaluestore/errors"
)

// Get reads the field called name on instance.
// T is the static type of instance, so pass the concrete type the fields were attached to.
func Get[T KeyValueStore](instance T, name string) (any, error) {
	return ClassOf[T]().Get(instance, name)
}

// Set writes value to the field called name on instance.
func Set[T KeyValueStore](instance T, name string, value any) error {
	return ClassOf[T]().Set(instance, name, value)
}

// Value reads the field called name on instance as a V.
// A nil value reads as the zero V; a value of another type is a ValidationError.
func Value[V any, T KeyValueStore](instance T, name string) (V, error) {
	var zero V

	v, err := Get(instance, name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}

	typed, ok := v.(V)
	if !ok {
		want := reflect.TypeOf((*V)(nil)).Elem()
		return zero, errors.NewValidationError(name, fmt.Sprintf("holds %T, not %s", v, want))
	}
	return typed, nil
}
