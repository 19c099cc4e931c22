package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Table maps values of T onto one DynamoDB table keyed by a single string
// attribute. T is marshalled with its dynamodbav struct tags.
//
// A Table holds no mutable state and is safe for concurrent use.
type Table[T any] struct {
	api       API
	name      string
	keyAttr   string
	protected map[string]struct{}
}

// NewTable returns a Table over the named DynamoDB table. keyAttr is the
// partition key attribute. protected names attributes that Patch must never
// write; the key attribute is always protected.
func NewTable[T any](api API, name, keyAttr string, protected ...string) *Table[T] {
	t := &Table[T]{
		api:       api,
		name:      name,
		keyAttr:   keyAttr,
		protected: map[string]struct{}{keyAttr: {}},
	}
	for _, p := range protected {
		t.protected[p] = struct{}{}
	}
	return t
}

// Name returns the DynamoDB table name.
func (t *Table[T]) Name() string {
	return t.name
}

// KeyAttr returns the partition key attribute name.
func (t *Table[T]) KeyAttr() string {
	return t.keyAttr
}

// Protected reports whether Patch drops the attribute.
func (t *Table[T]) Protected(attr string) bool {
	_, ok := t.protected[attr]
	return ok
}

func (t *Table[T]) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		t.keyAttr: &types.AttributeValueMemberS{Value: id},
	}
}

// Put writes item, replacing any existing item with the same key.
func (t *Table[T]) Put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("store: marshal %s item: %w", t.name, err)
	}

	_, err = t.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      av,
	})
	if err != nil {
		return t.wrap("put", err)
	}
	return nil
}

// Get reads the item with the given key, returning ErrNotFound if absent.
func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var out T

	result, err := t.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            t.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return out, t.wrap("get", err)
	}
	if len(result.Item) == 0 {
		return out, ErrNotFound
	}

	if err := attributevalue.UnmarshalMap(result.Item, &out); err != nil {
		return out, fmt.Errorf("store: unmarshal %s item: %w", t.name, err)
	}
	return out, nil
}

// ScanAll reads every item in the table.
func (t *Table[T]) ScanAll(ctx context.Context) ([]T, error) {
	return t.scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(t.name),
	})
}

// ScanByFilter reads every item whose attr equals value. The comparison is
// evaluated by DynamoDB after items are read, so the whole table is still
// scanned.
func (t *Table[T]) ScanByFilter(ctx context.Context, attr string, value any) ([]T, error) {
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("store: marshal %s filter value: %w", t.name, err)
	}

	filter, names, values := EqualsFilter(attr, av)
	return t.scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(t.name),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
}

// scan pages through the input and materializes all matching items.
func (t *Table[T]) scan(ctx context.Context, input *dynamodb.ScanInput) ([]T, error) {
	items := []T{}
	paginator := dynamodb.NewScanPaginator(t.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, t.wrap("scan", err)
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("store: unmarshal %s items: %w", t.name, err)
		}
		items = append(items, batch...)
	}
	return items, nil
}

// Patch sets the given attributes on an existing item and returns the item
// as stored afterwards. Protected attributes are dropped. It returns
// ErrNotFound if the key does not exist and ErrEmptyPatch if nothing is
// left to write.
func (t *Table[T]) Patch(ctx context.Context, id string, fields map[string]any) (T, error) {
	var out T

	attrs, err := t.writable(fields)
	if err != nil {
		return out, err
	}
	if len(attrs) == 0 {
		return out, ErrEmptyPatch
	}

	updateExpr, names, values := setExpression(attrs)
	result, err := t.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       t.key(id),
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String(KeyExistsCondition()),
		ExpressionAttributeNames:  mergeExprNames(names, KeyExistsNames(t.keyAttr)),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return out, ErrNotFound
		}
		return out, t.wrap("patch", err)
	}

	if err := attributevalue.UnmarshalMap(result.Attributes, &out); err != nil {
		return out, fmt.Errorf("store: unmarshal %s item: %w", t.name, err)
	}
	return out, nil
}

// Delete removes the item with the given key. Deleting a missing key is
// not an error.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	_, err := t.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       t.key(id),
	})
	if err != nil {
		return t.wrap("delete", err)
	}
	return nil
}

// writable marshals the non-protected fields of a patch.
func (t *Table[T]) writable(fields map[string]any) (map[string]types.AttributeValue, error) {
	attrs := make(map[string]types.AttributeValue, len(fields))
	for k, v := range fields {
		if t.Protected(k) {
			continue
		}
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("store: marshal %s attribute %q: %w", t.name, k, err)
		}
		attrs[k] = av
	}
	return attrs, nil
}

func (t *Table[T]) wrap(op string, err error) error {
	return fmt.Errorf("store: %s %s: %w", op, t.name, err)
}
