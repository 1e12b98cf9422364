/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyvaluestore

import (
	"reflect"
	"sync"

	"github.com/suparena/keyvaluestore/errors"
)

// Class holds the fields attached to type T. There is one Class per type per process.
type Class[T KeyValueStore] struct {
	typ    reflect.Type
	mu     sync.RWMutex
	fields map[string]*Field[T]
	order  []string
}

// classes maps each target type to its *Class[T]
var (
	classesMu sync.Mutex
	classes   = make(map[reflect.Type]any)
)

// ClassOf returns the field table for T, creating it if necessary.
func ClassOf[T KeyValueStore]() *Class[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	classesMu.Lock()
	defer classesMu.Unlock()

	if c, exists := classes[typ]; exists {
		return c.(*Class[T])
	}

	c := &Class[T]{
		typ:    typ,
		fields: make(map[string]*Field[T]),
	}
	classes[typ] = c
	return c
}

// Type returns the type the class describes.
func (c *Class[T]) Type() reflect.Type {
	return c.typ
}

// Name returns the bare type name, without pointer or package qualifiers.
func (c *Class[T]) Name() string {
	t := c.typ
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// Field returns the field attached under name.
func (c *Class[T]) Field(name string) (*Field[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.fields[name]
	return f, ok
}

// Fields returns the attached fields in the order they were first attached.
func (c *Class[T]) Fields() []*Field[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fields := make([]*Field[T], 0, len(c.order))
	for _, name := range c.order {
		fields = append(fields, c.fields[name])
	}
	return fields
}

// Names returns the attached field names in the order they were first attached.
func (c *Class[T]) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.order...)
}

// Len returns the number of attached fields.
func (c *Class[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Get reads the named field on instance.
func (c *Class[T]) Get(instance T, name string) (any, error) {
	f, ok := c.Field(name)
	if !ok {
		return nil, errors.NewUnknownFieldError(c.typ.String(), name)
	}
	return f.Get(instance)
}

// Set writes the named field on instance.
func (c *Class[T]) Set(instance T, name string, value any) error {
	f, ok := c.Field(name)
	if !ok {
		return errors.NewUnknownFieldError(c.typ.String(), name)
	}
	return f.Set(instance, value)
}

// Reset detaches every field. It exists for tests that reuse a type.
func (c *Class[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fields = make(map[string]*Field[T])
	c.order = nil
}

// install replaces any field with the same name but keeps its position.
func (c *Class[T]) install(f *Field[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.fields[f.name]; !exists {
		c.order = append(c.order, f.name)
	}
	c.fields[f.name] = f
}
