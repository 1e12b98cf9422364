/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/keyvaluestore/errors"
)

// IndexMapRegistry is a registry for Go types and their DynamoDB index maps.

var (
	indexMapRegistry = make(map[reflect.Type]map[string]string)
	mu               sync.RWMutex
)

// RegisterIndexMap associates type T with a DynamoDB index map (PK, SK, GSI attributes).
// Both PK and SK templates are required and a type can only be registered once.
func RegisterIndexMap[T any](idxMap map[string]string) error {
	t := typeOf[T]()

	for _, required := range []string{"PK", "SK"} {
		if idxMap[required] == "" {
			return errors.NewValidationError(required, fmt.Sprintf("index map for %s has no %s template", t, required))
		}
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := indexMapRegistry[t]; exists {
		return errors.NewAlreadyExistsError("index map", t.String())
	}

	m := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		m[k] = v
	}
	indexMapRegistry[t] = m
	return nil
}

// MustRegisterIndexMap is RegisterIndexMap for init functions; it panics on error.
func MustRegisterIndexMap[T any](idxMap map[string]string) {
	if err := RegisterIndexMap[T](idxMap); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

// GetIndexMap retrieves a copy of the index map for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	t := typeOf[T]()

	mu.RLock()
	defer mu.RUnlock()

	m, ok := indexMapRegistry[t]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, true
}

// UnregisterIndexMap removes the index map for type T.
func UnregisterIndexMap[T any]() {
	mu.Lock()
	defer mu.Unlock()
	delete(indexMapRegistry, typeOf[T]())
}

// RegisteredTypes returns the names of all types with an index map, sorted.
func RegisteredTypes() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(indexMapRegistry))
	for t := range indexMapRegistry {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
