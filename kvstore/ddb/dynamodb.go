/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/keyvaluestore/errors"
	"github.com/suparena/keyvaluestore/registry"
)

// EntityTypeAttribute is written on every saved item to identify its Go type.
const EntityTypeAttribute = "EntityType"

// API is the subset of the DynamoDB client used by Item.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

var _ API = (*sdk.Client)(nil)

// Credentials are static AWS credentials for NewClient.
type Credentials struct {
	AccessKey string
	SecretKey string
	Region    string
}

// NewClient initializes a DynamoDB client using static AWS credentials.
func NewClient(ctx context.Context, creds Credentials, logger *zap.Logger) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(creds.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg)

	if logger != nil {
		logger.Info("DynamoDB client initialized", zap.String("region", creds.Region))
	}
	return client, nil
}

// Item is a keyvaluestore.KeyValueStore backed by one DynamoDB item.
// Get and Set work on a local copy of the attributes; Load and Save move it to and from
// the table.
type Item struct {
	api        API
	table      string
	entityType string
	id         string
	indexMap   map[string]string
	key        map[string]types.AttributeValue

	mu    sync.RWMutex
	attrs map[string]types.AttributeValue
}

// NewItem returns the item id of entityType. PK and SK templates in indexMap are
// expanded with id.
func NewItem(api API, table, entityType string, indexMap map[string]string, id string) (*Item, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "must not be empty")
	}

	key, err := buildKeyFromExpanded(expandStringKey(indexMap, id))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	return &Item{
		api:        api,
		table:      table,
		entityType: entityType,
		id:         id,
		indexMap:   indexMap,
		key:        key,
		attrs:      make(map[string]types.AttributeValue),
	}, nil
}

// ItemFor returns the item id of type T using the index map registered for T.
func ItemFor[T any](api API, table, id string) (*Item, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	typeName := entityTypeName[T]()
	if !ok {
		return nil, errors.NewNotFoundError("index map", typeName)
	}
	return NewItem(api, table, typeName, indexMap, id)
}

// ID returns the id the item key was built from.
func (it *Item) ID() string {
	return it.id
}

// Get returns the attribute stored under key, or fallback if there is none.
// Numbers decode as float64.
func (it *Item) Get(key string, fallback any) (any, error) {
	it.mu.RLock()
	av, ok := it.attrs[key]
	it.mu.RUnlock()

	if !ok {
		return fallback, nil
	}

	var value any
	if err := attributevalue.Unmarshal(av, &value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key. Key and index attributes cannot be set.
func (it *Item) Set(key string, value any) error {
	if it.reserved(key) {
		return errors.NewValidationError(key, "attribute is reserved for the item key")
	}

	av, err := attributevalue.Marshal(value)
	if err != nil {
		return errors.NewValidationError(key, fmt.Sprintf("value is not marshalable: %v", err))
	}

	it.mu.Lock()
	defer it.mu.Unlock()
	it.attrs[key] = av
	return nil
}

// Keys returns the names of the stored attributes, sorted.
func (it *Item) Keys() []string {
	it.mu.RLock()
	defer it.mu.RUnlock()

	keys := make([]string, 0, len(it.attrs))
	for k := range it.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load replaces the local attributes with the stored item.
func (it *Item) Load(ctx context.Context) error {
	out, err := it.api.GetItem(ctx, &sdk.GetItemInput{
		TableName: &it.table,
		Key:       it.key,
	})
	if err != nil {
		return fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return errors.NewNotFoundError(it.entityType, it.id)
	}

	attrs := make(map[string]types.AttributeValue, len(out.Item))
	for k, v := range out.Item {
		if !it.reserved(k) {
			attrs[k] = v
		}
	}

	it.mu.Lock()
	it.attrs = attrs
	it.mu.Unlock()
	return nil
}

// Save writes the item with its key, index attributes and EntityType.
func (it *Item) Save(ctx context.Context) error {
	it.mu.RLock()
	av := make(map[string]types.AttributeValue, len(it.attrs)+len(it.indexMap)+1)
	for k, v := range it.attrs {
		av[k] = v
	}
	it.mu.RUnlock()

	// Index attributes other than the primary key are expanded from the item itself.
	for name, value := range expandMacros(it.indexMap, av) {
		if name == "PK" || name == "SK" || value == "" {
			continue
		}
		av[name] = &types.AttributeValueMemberS{Value: value}
	}
	for k, v := range it.key {
		av[k] = v
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: it.entityType}

	_, err := it.api.PutItem(ctx, &sdk.PutItemInput{
		TableName: &it.table,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes the item from the table. The local attributes are kept.
func (it *Item) Delete(ctx context.Context) error {
	_, err := it.api.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &it.table,
		Key:       it.key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

func (it *Item) reserved(key string) bool {
	if key == EntityTypeAttribute {
		return true
	}
	_, ok := it.indexMap[key]
	return ok
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros replaces {Attr} macros in each template with the attribute's string form.
// Missing or non-scalar attributes expand to "".
func expandMacros(indexMap map[string]string, av map[string]types.AttributeValue) map[string]string {
	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				// NULL, binary, sets, lists and maps have no key form
				return ""
			}
		})
	}

	return res
}

// expandStringKey replaces every macro in the PK and SK templates with id.
func expandStringKey(indexMap map[string]string, id string) map[string]string {
	expanded := make(map[string]string, 2)
	for _, field := range []string{"PK", "SK"} {
		if template, ok := indexMap[field]; ok {
			expanded[field] = macroPattern.ReplaceAllLiteralString(template, id)
		}
	}
	return expanded
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, errors.NewValidationError("indexMap", "expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

func entityTypeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
