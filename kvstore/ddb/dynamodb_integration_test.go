//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zaptest"

	kv "github.com/suparena/keyvaluestore"
	"github.com/suparena/keyvaluestore/registry"
)

type RatingSystem struct {
	*Item
}

func init() {
	registry.MustRegisterIndexMap[*RatingSystem](map[string]string{
		"PK": "RS#{ID}",
		"SK": "RS#{ID}",
	})
}

func newLiveItem(t *testing.T, id string) *Item {
	t.Helper()

	if err := godotenv.Load(); err != nil {
		t.Log("No .env file found, proceeding with environment variables")
	}

	table := os.Getenv("AWS_DDB_TABLE")
	if table == "" {
		t.Skip("AWS_DDB_TABLE not set")
	}

	client, err := NewClient(context.Background(), Credentials{
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Region:    os.Getenv("AWS_REGION"),
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	it, err := ItemFor[*RatingSystem](client, table, id)
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func TestLiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv.ClassOf[*RatingSystem]().Reset()

	err := kv.AttachMany(
		kv.Property[*RatingSystem]{Name: "name", Key: "Name"},
		kv.Property[*RatingSystem]{Name: "createdAt", Key: "CreatedAt"},
	)
	if err != nil {
		t.Fatal(err)
	}

	rs := &RatingSystem{Item: newLiveItem(t, "TTOakville")}
	if err := kv.Set(rs, "name", "Oakville Table Tennis Ranking System (test)"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(rs, "createdAt", strfmt.DateTime(time.Now()).String()); err != nil {
		t.Fatal(err)
	}
	if err := rs.Save(ctx); err != nil {
		t.Fatal(err)
	}

	loaded := &RatingSystem{Item: newLiveItem(t, "TTOakville")}
	if err := loaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	s, err := kv.Render(loaded)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("Rating System: %s", s)

	if err := loaded.Delete(ctx); err != nil {
		t.Error(err)
	}
}
