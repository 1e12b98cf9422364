/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"testing"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kv "github.com/suparena/keyvaluestore"
	"github.com/suparena/keyvaluestore/errors"
	"github.com/suparena/keyvaluestore/registry"
)

// fakeAPI keeps items in memory, keyed by PK|SK.
type fakeAPI struct {
	items  map[string]map[string]types.AttributeValue
	putErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeAPI) GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	item, ok := f.items[itemKey(params.Key)]
	if !ok {
		return &sdk.GetItemOutput{}, nil
	}
	return &sdk.GetItemOutput{Item: item}, nil
}

func (f *fakeAPI) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.items[itemKey(params.Item)] = params.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	delete(f.items, itemKey(params.Key))
	return &sdk.DeleteItemOutput{}, nil
}

type Customer struct {
	*Item
}

var customerIndexMap = map[string]string{
	"PK":     "CUSTOMER#{ID}",
	"SK":     "CUSTOMER#{ID}",
	"GSI1PK": "EMAIL#{email_addr}",
	"GSI1SK": "TIER#{tier}",
}

func init() {
	registry.MustRegisterIndexMap[*Customer](customerIndexMap)
}

func TestExpandStringKey(t *testing.T) {
	expanded := expandStringKey(customerIndexMap, "42")
	assert.Equal(t, map[string]string{"PK": "CUSTOMER#42", "SK": "CUSTOMER#42"}, expanded)

	_, err := buildKeyFromExpanded(expandStringKey(map[string]string{"PK": "X#{ID}"}, "1"))
	assert.True(t, errors.IsValidationError(err))
}

func TestExpandMacros(t *testing.T) {
	av := map[string]types.AttributeValue{
		"email_addr": &types.AttributeValueMemberS{Value: "a@x.com"},
		"tier":       &types.AttributeValueMemberN{Value: "3"},
		"flag":       &types.AttributeValueMemberBOOL{Value: true},
		"blob":       &types.AttributeValueMemberB{Value: []byte("x")},
	}

	expanded := expandMacros(map[string]string{
		"GSI1PK": "EMAIL#{email_addr}",
		"GSI1SK": "TIER#{tier}",
		"GSI2PK": "FLAG#{flag}#{blob}#{missing}",
		"STATIC": "USER",
	}, av)

	assert.Equal(t, "EMAIL#a@x.com", expanded["GSI1PK"])
	assert.Equal(t, "TIER#3", expanded["GSI1SK"])
	assert.Equal(t, "FLAG#true##", expanded["GSI2PK"])
	assert.Equal(t, "USER", expanded["STATIC"])
}

func TestItem(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()

	it, err := ItemFor[*Customer](api, "props", "42")
	require.NoError(t, err)
	assert.Equal(t, "42", it.ID())

	t.Run("GetSet", func(t *testing.T) {
		v, err := it.Get("email_addr", "none")
		require.NoError(t, err)
		assert.Equal(t, "none", v)

		require.NoError(t, it.Set("email_addr", "a@x.com"))
		require.NoError(t, it.Set("tier", 3))

		v, err = it.Get("email_addr", nil)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", v)

		v, err = it.Get("tier", nil)
		require.NoError(t, err)
		assert.Equal(t, float64(3), v)

		assert.Equal(t, []string{"email_addr", "tier"}, it.Keys())
	})

	t.Run("ReservedAttributes", func(t *testing.T) {
		assert.True(t, errors.IsValidationError(it.Set("PK", "x")))
		assert.True(t, errors.IsValidationError(it.Set("GSI1PK", "x")))
		assert.True(t, errors.IsValidationError(it.Set(EntityTypeAttribute, "x")))
	})

	t.Run("SaveLoadDelete", func(t *testing.T) {
		require.NoError(t, it.Save(ctx))

		stored := api.items["CUSTOMER#42|CUSTOMER#42"]
		require.NotNil(t, stored)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "EMAIL#a@x.com"}, stored["GSI1PK"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "TIER#3"}, stored["GSI1SK"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "Customer"}, stored[EntityTypeAttribute])

		fresh, err := ItemFor[*Customer](api, "props", "42")
		require.NoError(t, err)
		require.NoError(t, fresh.Load(ctx))
		assert.Equal(t, []string{"email_addr", "tier"}, fresh.Keys())

		require.NoError(t, fresh.Delete(ctx))
		err = fresh.Load(ctx)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("SaveError", func(t *testing.T) {
		api.putErr = fmt.Errorf("throttled")
		defer func() { api.putErr = nil }()

		err := it.Save(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "throttled")
	})
}

func TestItemForUnregisteredType(t *testing.T) {
	type unregistered struct{}

	_, err := ItemFor[unregistered](newFakeAPI(), "props", "1")
	assert.True(t, errors.IsNotFound(err))

	_, err = ItemFor[*Customer](newFakeAPI(), "props", "")
	assert.True(t, errors.IsValidationError(err))
}

func TestAttachedFieldsOverItem(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	kv.ClassOf[*Customer]().Reset()

	require.NoError(t, kv.AttachMany(
		kv.Property[*Customer]{Name: "email", Key: "email_addr"},
		kv.Property[*Customer]{Name: "tier", Key: "tier"},
	))

	it, err := ItemFor[*Customer](api, "props", "7")
	require.NoError(t, err)
	c := &Customer{Item: it}

	require.NoError(t, kv.Set(c, "email", "b@y.com"))
	require.NoError(t, kv.Set(c, "tier", 2))
	require.NoError(t, c.Save(ctx))

	again, err := ItemFor[*Customer](api, "props", "7")
	require.NoError(t, err)
	require.NoError(t, again.Load(ctx))

	loaded := &Customer{Item: again}
	s, err := kv.Render(loaded)
	require.NoError(t, err)
	assert.Equal(t, `Customer(email="b@y.com", tier=2)`, s)
}
