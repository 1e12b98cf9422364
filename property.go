/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyvaluestore

// Property describes one virtual field before it is attached to a type.
// It is plain data: every resolution decision happens at attachment time.
type Property[T KeyValueStore] struct {
	// Name is the field name installed on T. It must be a valid Go identifier.
	Name string
	// Key is the storage key used by default accessors. An empty Key means no key;
	// it is only allowed when neither accessor falls back to the default.
	Key string
	// Getter selects the read logic. The zero value uses the default getter.
	Getter Getter[T]
	// Setter selects the write logic. The zero value uses the default setter.
	Setter Setter[T]
	// Doc is exposed unchanged on the attached field.
	Doc string
}

type accessorKind uint8

const (
	useDefault accessorKind = iota
	useCustom
	disabled
)

// Getter is either the default getter or a custom one.
type Getter[T KeyValueStore] struct {
	kind accessorKind
	fn   func(T) (any, error)
}

// DefaultGetter reads through instance.Get(key, nil). It equals the zero Getter.
func DefaultGetter[T KeyValueStore]() Getter[T] {
	return Getter[T]{}
}

// CustomGetter reads through fn.
func CustomGetter[T KeyValueStore](fn func(instance T) (any, error)) Getter[T] {
	return Getter[T]{kind: useCustom, fn: fn}
}

// IsDefault reports whether the default getter will be synthesized.
func (g Getter[T]) IsDefault() bool {
	return g.kind == useDefault
}

// Setter is the default setter, a custom one, or disabled.
type Setter[T KeyValueStore] struct {
	kind accessorKind
	fn   func(T, any) error
}

// DefaultSetter writes through instance.Set(key, value). It equals the zero Setter.
func DefaultSetter[T KeyValueStore]() Setter[T] {
	return Setter[T]{}
}

// CustomSetter writes through fn.
func CustomSetter[T KeyValueStore](fn func(instance T, value any) error) Setter[T] {
	return Setter[T]{kind: useCustom, fn: fn}
}

// ReadOnly disables writes. Writing to the attached field returns a ReadOnlyFieldError.
func ReadOnly[T KeyValueStore]() Setter[T] {
	return Setter[T]{kind: disabled}
}

// IsDefault reports whether the default setter will be synthesized.
func (s Setter[T]) IsDefault() bool {
	return s.kind == useDefault
}

// IsDisabled reports whether writes are disabled.
func (s Setter[T]) IsDisabled() bool {
	return s.kind == disabled
}
