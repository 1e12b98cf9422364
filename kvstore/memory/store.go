/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory implementation of the key-value contract
package memory

import (
	"sort"
	"sync"
)

// Store is an in-memory keyvaluestore.KeyValueStore
type Store struct {
	mu       sync.RWMutex
	data     map[string]any
	getError error
	setError error
}

// New creates a new empty Store
func New() *Store {
	return &Store{
		data: make(map[string]any),
	}
}

// NewWithData creates a Store holding a copy of data
func NewWithData(data map[string]any) *Store {
	s := New()
	s.SetData(data)
	return s
}

// WithGetError makes Get operations return an error
func (s *Store) WithGetError(err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getError = err
	return s
}

// WithSetError makes Set operations return an error
func (s *Store) WithSetError(err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setError = err
	return s
}

// Get returns the value stored under key, or fallback if there is none
func (s *Store) Get(key string, fallback any) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.getError != nil {
		return nil, s.getError
	}
	if v, exists := s.data[key]; exists {
		return v, nil
	}
	return fallback, nil
}

// Set stores value under key
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.setError != nil {
		return s.setError
	}
	s.data[key] = value
	return nil
}

// Delete removes key and reports whether it was present
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.data[key]
	delete(s.data, key)
	return exists
}

// Helper methods

// SetData replaces the contents with a copy of data
func (s *Store) SetData(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]any, len(data))
	for k, v := range data {
		s.data[k] = v
	}
}

// GetData returns a copy of the contents
func (s *Store) GetData() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]any, len(s.data))
	for k, v := range s.data {
		result[k] = v
	}
	return result
}

// Keys returns the stored keys in sorted order
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of stored keys
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Clear removes all data
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]any)
}
