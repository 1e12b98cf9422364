/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kv "github.com/suparena/keyvaluestore"
	"github.com/suparena/keyvaluestore/errors"
	"github.com/suparena/keyvaluestore/kvstore/memory"
)

var _ kv.KeyValueStore = (*memory.Store)(nil)

func TestStore(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		s := memory.New()

		v, err := s.Get("name", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", v)

		require.NoError(t, s.Set("name", "Ada"))

		v, err = s.Get("name", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "Ada", v)

		assert.True(t, s.Delete("name"))
		assert.False(t, s.Delete("name"))

		v, err = s.Get("name", nil)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("StoredNilIsNotFallback", func(t *testing.T) {
		s := memory.New()
		require.NoError(t, s.Set("nickname", nil))

		v, err := s.Get("nickname", "none")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		getErr := errors.NewNotFoundError("record", "1")
		setErr := errors.NewValidationError("name", "required")
		s := memory.New().WithGetError(getErr).WithSetError(setErr)

		_, err := s.Get("name", nil)
		assert.Same(t, getErr, err)
		assert.Same(t, setErr, s.Set("name", "x"))
	})

	t.Run("HelperMethods", func(t *testing.T) {
		data := map[string]any{"b": 2, "a": 1}
		s := memory.NewWithData(data)

		// the store keeps its own copy
		data["c"] = 3
		assert.Equal(t, 2, s.Count())
		assert.Equal(t, []string{"a", "b"}, s.Keys())

		snapshot := s.GetData()
		snapshot["z"] = 26
		assert.Equal(t, 2, s.Count())

		s.Clear()
		assert.Equal(t, 0, s.Count())
	})
}
