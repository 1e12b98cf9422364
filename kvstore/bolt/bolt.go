/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/suparena/keyvaluestore/errors"
)

// DB is a boltdb file holding records grouped in top-level buckets.
type DB struct {
	path   string
	db     *bolt.DB
	logger *zap.Logger
}

// NewDB returns a DB for the file at the provided path. Call Open before use.
func NewDB(path string) *DB {
	return &DB{
		path:   path,
		logger: zap.NewNop(),
	}
}

// Open creates the bolt file if it doesn't exist and opens it otherwise.
func (d *DB) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Ensure the required directory structure exists.
	if err := os.MkdirAll(filepath.Dir(d.path), 0700); err != nil {
		return fmt.Errorf("unable to create directory %s: %w", d.path, err)
	}

	db, err := bolt.Open(d.path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("unable to open boltdb file %s: %w", d.path, err)
	}
	d.db = db

	d.logger.Info("Resources opened", zap.String("path", d.path))
	return nil
}

// Close the bolt database.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// WithLogger sets the logger on the DB.
func (d *DB) WithLogger(l *zap.Logger) {
	d.logger = l
}

// Path returns the location of the bolt file.
func (d *DB) Path() string {
	return d.path
}

// tx runs fn in a read or read-write transaction on the open file.
func (d *DB) tx(writable bool, fn func(*bolt.Tx) error) error {
	if d.db == nil {
		return fmt.Errorf("boltdb %s is not open", d.path)
	}
	if writable {
		return d.db.Update(fn)
	}
	return d.db.View(fn)
}

// Record returns the record id in bucket. The record is created by its first Set.
func (d *DB) Record(bucket, id string) *Record {
	return &Record{db: d, bucket: []byte(bucket), id: []byte(id)}
}

// Records lists the ids of the records stored in bucket.
func (d *DB) Records(bucket string) ([]string, error) {
	var ids []string
	err := d.tx(false, func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			// records are nested buckets; plain values have a non-nil v
			if v == nil {
				ids = append(ids, string(k))
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records in %s: %w", bucket, err)
	}
	return ids, nil
}

// Delete removes the record id from bucket.
func (d *DB) Delete(bucket, id string) error {
	return d.tx(true, func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil || b.Bucket([]byte(id)) == nil {
			return errors.NewNotFoundError(bucket, id)
		}
		if err := b.DeleteBucket([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete record %s/%s: %w", bucket, id, err)
		}
		d.logger.Debug("Record deleted", zap.String("bucket", bucket), zap.String("id", id))
		return nil
	})
}

// Record is one keyvaluestore.KeyValueStore persisted in a nested bucket.
// Values are stored as JSON, so numbers read back as float64.
type Record struct {
	db     *DB
	bucket []byte
	id     []byte
}

// ID returns the record id.
func (r *Record) ID() string {
	return string(r.id)
}

// Get returns the value stored under key, or fallback if the record or key is absent.
func (r *Record) Get(key string, fallback any) (any, error) {
	var raw []byte
	err := r.db.tx(false, func(tx *bolt.Tx) error {
		b := r.recordBucket(tx)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if raw == nil {
		return fallback, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, creating the record if needed.
func (r *Record) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.NewValidationError(key, fmt.Sprintf("value is not encodable: %v", err))
	}

	err = r.db.tx(true, func(tx *bolt.Tx) error {
		parent, err := tx.CreateBucketIfNotExists(r.bucket)
		if err != nil {
			return err
		}
		b, err := parent.CreateBucketIfNotExists(r.id)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Keys returns the keys stored in the record in byte order.
func (r *Record) Keys() ([]string, error) {
	var keys []string
	err := r.db.tx(false, func(tx *bolt.Tx) error {
		b := r.recordBucket(tx)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Exists reports whether the record has been written.
func (r *Record) Exists() (bool, error) {
	var ok bool
	err := r.db.tx(false, func(tx *bolt.Tx) error {
		ok = r.recordBucket(tx) != nil
		return nil
	})
	return ok, err
}

func (r *Record) recordBucket(tx *bolt.Tx) *bolt.Bucket {
	parent := tx.Bucket(r.bucket)
	if parent == nil {
		return nil
	}
	return parent.Bucket(r.id)
}
