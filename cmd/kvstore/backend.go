/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	kv "github.com/suparena/keyvaluestore"
	"github.com/suparena/keyvaluestore/config"
	"github.com/suparena/keyvaluestore/errors"
	"github.com/suparena/keyvaluestore/kvstore/bolt"
	"github.com/suparena/keyvaluestore/kvstore/ddb"
	"github.com/suparena/keyvaluestore/kvstore/memory"
	"github.com/suparena/keyvaluestore/schema"
)

// Each backend gets its own record type so its fields are attached independently.
type (
	memoryRecord struct{ *memory.Store }
	boltRecord   struct{ *bolt.Record }
	ddbRecord    struct{ *ddb.Item }
)

type fieldInfo struct {
	Name     string
	Key      string
	ReadOnly bool
	Doc      string
}

// backend is the untyped view of a session the commands work with.
type backend interface {
	Fields() []fieldInfo
	Show(ctx context.Context, id string) (string, error)
	Get(ctx context.Context, id, field string) (any, error)
	Set(ctx context.Context, id, field string, value any) error
	Close() error
}

type session[T kv.KeyValueStore] struct {
	open  func(ctx context.Context, id string) (T, error)
	save  func(ctx context.Context, record T) error
	close func() error
}

func (s *session[T]) Fields() []fieldInfo {
	var out []fieldInfo
	for _, f := range kv.ClassOf[T]().Fields() {
		out = append(out, fieldInfo{Name: f.Name(), Key: f.Key(), ReadOnly: f.ReadOnly(), Doc: f.Doc()})
	}
	return out
}

func (s *session[T]) Show(ctx context.Context, id string) (string, error) {
	record, err := s.open(ctx, id)
	if err != nil {
		return "", err
	}
	return kv.Render(record)
}

func (s *session[T]) Get(ctx context.Context, id, field string) (any, error) {
	record, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	return kv.Get(record, field)
}

func (s *session[T]) Set(ctx context.Context, id, field string, value any) error {
	record, err := s.open(ctx, id)
	if err != nil {
		return err
	}
	if err := kv.Set(record, field, value); err != nil {
		return err
	}
	if s.save != nil {
		return s.save(ctx, record)
	}
	return nil
}

func (s *session[T]) Close() error {
	if s.close != nil {
		return s.close()
	}
	return nil
}

// openBackend attaches the schema definition to the record type of cfg.Backend and
// connects to the store.
func openBackend(ctx context.Context, cfg *config.Config, def *schema.Definition, logger *zap.Logger) (backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		if err := schema.Attach[*memoryRecord](def); err != nil {
			return nil, err
		}
		store := memory.New()
		return &session[*memoryRecord]{
			open: func(context.Context, string) (*memoryRecord, error) {
				return &memoryRecord{Store: store}, nil
			},
		}, nil

	case config.BackendBolt:
		if err := schema.Attach[*boltRecord](def); err != nil {
			return nil, err
		}
		db := bolt.NewDB(cfg.BoltPath)
		db.WithLogger(logger)
		if err := db.Open(ctx); err != nil {
			return nil, err
		}
		return &session[*boltRecord]{
			open: func(_ context.Context, id string) (*boltRecord, error) {
				return &boltRecord{Record: db.Record(def.Bucket, id)}, nil
			},
			close: db.Close,
		}, nil

	case config.BackendDynamoDB:
		if err := schema.Attach[*ddbRecord](def); err != nil {
			return nil, err
		}
		client, err := ddb.NewClient(ctx, ddb.Credentials{
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
			Region:    cfg.AWS.Region,
		}, logger)
		if err != nil {
			return nil, err
		}
		prefix := strings.ToUpper(def.Type) + "#{ID}"
		indexMap := map[string]string{"PK": prefix, "SK": prefix}
		return &session[*ddbRecord]{
			open: func(ctx context.Context, id string) (*ddbRecord, error) {
				it, err := ddb.NewItem(client, cfg.AWS.Table, def.Type, indexMap, id)
				if err != nil {
					return nil, err
				}
				if err := it.Load(ctx); err != nil && !errors.IsNotFound(err) {
					return nil, err
				}
				return &ddbRecord{Item: it}, nil
			},
			save: func(ctx context.Context, r *ddbRecord) error {
				return r.Save(ctx)
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
}
