/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyvaluestore

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// KeyValueStore is the contract a type must satisfy for properties to be attached to it.
// Attachment never calls these methods; only the synthesized default accessors do, when a
// field is read or written.
type KeyValueStore interface {
	// Get returns the value stored under key, or fallback if there is none.
	Get(key string, fallback any) (any, error)
	// Set stores value under key.
	Set(key string, value any) error
}

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger sets the logger used to report attachments.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}
