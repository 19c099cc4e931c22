// Package dynamotest provides an in-memory stand-in for the DynamoDB calls
// made by package store.
//
// The fake understands the expression shapes the store emits: equality
// filters ("#f = :v"), SET update expressions and attribute_exists /
// attribute_not_exists conditions. It is not a general DynamoDB emulator.
package dynamotest

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Operation names accepted by FailOn and Calls.
const (
	OpGetItem    = "GetItem"
	OpPutItem    = "PutItem"
	OpUpdateItem = "UpdateItem"
	OpDeleteItem = "DeleteItem"
	OpScan       = "Scan"
)

type table struct {
	keyAttr string
	items   map[string]map[string]types.AttributeValue
}

// Fake is an in-memory DynamoDB. It is safe for concurrent use.
type Fake struct {
	// PageSize caps the items examined per Scan call. Zero means unlimited.
	PageSize int

	mu     sync.Mutex
	tables map[string]*table
	fail   map[string]error
	calls  map[string]int
	inputs []any
}

// New returns a Fake with the given tables, each mapped to its key attribute.
func New(tables map[string]string) *Fake {
	f := &Fake{
		tables: make(map[string]*table),
		fail:   make(map[string]error),
		calls:  make(map[string]int),
	}
	for name, keyAttr := range tables {
		f.CreateTable(name, keyAttr)
	}
	return f
}

// CreateTable registers an empty table.
func (f *Fake) CreateTable(name, keyAttr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[name] = &table{
		keyAttr: keyAttr,
		items:   make(map[string]map[string]types.AttributeValue),
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (f *Fake) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

// Calls returns how many times op has been invoked.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Writes returns the number of PutItem, UpdateItem and DeleteItem calls.
func (f *Fake) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[OpPutItem] + f.calls[OpUpdateItem] + f.calls[OpDeleteItem]
}

// Inputs returns every request received, in order.
func (f *Fake) Inputs() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.inputs)
}

// Item returns a copy of the stored item, or nil.
func (f *Fake) Item(tableName, id string) map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[tableName]
	if !ok {
		return nil
	}
	item, ok := t.items[id]
	if !ok {
		return nil
	}
	return maps.Clone(item)
}

// Len returns the number of items in the table.
func (f *Fake) Len(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tables[tableName]; ok {
		return len(t.items)
	}
	return 0
}

// begin records a call and returns the injected failure, if any.
// The caller must hold f.mu.
func (f *Fake) begin(op string, input any) error {
	f.calls[op]++
	f.inputs = append(f.inputs, input)
	return f.fail[op]
}

func (f *Fake) table(name *string) (*table, error) {
	t, ok := f.tables[aws.ToString(name)]
	if !ok {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String("Requested resource not found: " + aws.ToString(name)),
		}
	}
	return t, nil
}

func (t *table) keyOf(key map[string]types.AttributeValue) (string, error) {
	v, ok := key[t.keyAttr].(*types.AttributeValueMemberS)
	if !ok || len(key) != 1 {
		return "", fmt.Errorf("dynamotest: key must be the single string attribute %q", t.keyAttr)
	}
	return v.Value, nil
}

// GetItem implements store.API.
func (f *Fake) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpGetItem, in); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	id, err := t.keyOf(in.Key)
	if err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: maps.Clone(t.items[id])}, nil
}

// PutItem implements store.API.
func (f *Fake) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpPutItem, in); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	id, err := t.keyOf(map[string]types.AttributeValue{t.keyAttr: in.Item[t.keyAttr]})
	if err != nil {
		return nil, err
	}
	if in.ConditionExpression != nil {
		ok, err := evalCondition(aws.ToString(in.ConditionExpression), in.ExpressionAttributeNames, t.items[id])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, conditionFailed()
		}
	}
	t.items[id] = maps.Clone(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// UpdateItem implements store.API. Only SET expressions are supported.
func (f *Fake) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpUpdateItem, in); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	id, err := t.keyOf(in.Key)
	if err != nil {
		return nil, err
	}

	current := t.items[id]
	if in.ConditionExpression != nil {
		ok, err := evalCondition(aws.ToString(in.ConditionExpression), in.ExpressionAttributeNames, current)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, conditionFailed()
		}
	}

	assignments, err := parseSet(aws.ToString(in.UpdateExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	// Like DynamoDB, an unconditioned update of a missing key creates it.
	next := maps.Clone(current)
	if next == nil {
		next = maps.Clone(in.Key)
	}
	maps.Copy(next, assignments)
	t.items[id] = next

	out := &dynamodb.UpdateItemOutput{}
	if in.ReturnValues == types.ReturnValueAllNew {
		out.Attributes = maps.Clone(next)
	}
	return out, nil
}

// DeleteItem implements store.API.
func (f *Fake) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpDeleteItem, in); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	id, err := t.keyOf(in.Key)
	if err != nil {
		return nil, err
	}
	delete(t.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

// Scan implements store.API. Items are returned in key order. When
// PageSize is set, at most PageSize items are examined per call and
// LastEvaluatedKey is returned while more remain.
func (f *Fake) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpScan, in); err != nil {
		return nil, err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	ids := slices.Sorted(maps.Keys(t.items))
	if in.ExclusiveStartKey != nil {
		start, err := t.keyOf(in.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		i, _ := slices.BinarySearch(ids, start)
		for i < len(ids) && ids[i] <= start {
			i++
		}
		ids = ids[i:]
	}

	out := &dynamodb.ScanOutput{}
	if f.PageSize > 0 && len(ids) > f.PageSize {
		ids = ids[:f.PageSize]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			t.keyAttr: &types.AttributeValueMemberS{Value: ids[len(ids)-1]},
		}
	}

	for _, id := range ids {
		item := t.items[id]
		out.ScannedCount++
		if in.FilterExpression != nil {
			ok, err := evalFilter(aws.ToString(in.FilterExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues, item)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out.Items = append(out.Items, maps.Clone(item))
		out.Count++
	}
	return out, nil
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{
		Message: aws.String("The conditional request failed"),
	}
}

// resolveName maps a "#name" placeholder to its attribute name.
func resolveName(token string, names map[string]string) (string, error) {
	if !strings.HasPrefix(token, "#") {
		return token, nil
	}
	name, ok := names[token]
	if !ok {
		return "", fmt.Errorf("dynamotest: undefined attribute name %s", token)
	}
	return name, nil
}

// evalCondition supports attribute_exists(x) and attribute_not_exists(x).
func evalCondition(expr string, names map[string]string, item map[string]types.AttributeValue) (bool, error) {
	expr = strings.TrimSpace(expr)
	for _, fn := range []string{"attribute_exists", "attribute_not_exists"} {
		prefix := fn + "("
		if !strings.HasPrefix(expr, prefix) || !strings.HasSuffix(expr, ")") {
			continue
		}
		attr, err := resolveName(strings.TrimSpace(expr[len(prefix):len(expr)-1]), names)
		if err != nil {
			return false, err
		}
		_, exists := item[attr]
		if fn == "attribute_exists" {
			return exists, nil
		}
		return !exists, nil
	}
	return false, fmt.Errorf("dynamotest: unsupported condition %q", expr)
}

// evalFilter supports a single "<name> = <:value>" comparison.
func evalFilter(expr string, names map[string]string, values map[string]types.AttributeValue, item map[string]types.AttributeValue) (bool, error) {
	left, right, ok := strings.Cut(expr, "=")
	if !ok {
		return false, fmt.Errorf("dynamotest: unsupported filter %q", expr)
	}
	attr, err := resolveName(strings.TrimSpace(left), names)
	if err != nil {
		return false, err
	}
	want, ok := values[strings.TrimSpace(right)]
	if !ok {
		return false, fmt.Errorf("dynamotest: undefined attribute value %s", strings.TrimSpace(right))
	}
	got, ok := item[attr]
	if !ok {
		return false, nil
	}
	return reflect.DeepEqual(got, want), nil
}

// parseSet parses "SET a = :x, #b = :y".
func parseSet(expr string, names map[string]string, values map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(expr), "SET ")
	if !ok {
		return nil, fmt.Errorf("dynamotest: unsupported update expression %q", expr)
	}
	out := make(map[string]types.AttributeValue)
	for _, clause := range strings.Split(body, ",") {
		left, right, ok := strings.Cut(clause, "=")
		if !ok {
			return nil, fmt.Errorf("dynamotest: malformed SET clause %q", clause)
		}
		attr, err := resolveName(strings.TrimSpace(left), names)
		if err != nil {
			return nil, err
		}
		v, ok := values[strings.TrimSpace(right)]
		if !ok {
			return nil, fmt.Errorf("dynamotest: undefined attribute value %s", strings.TrimSpace(right))
		}
		out[attr] = v
	}
	return out, nil
}
