package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- setExpression Tests ---

func TestSetExpression_Single(t *testing.T) {
	expr, names, values := setExpression(map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: "x"},
	})

	if expr != "SET #attr0 = :val0" {
		t.Errorf("expected 'SET #attr0 = :val0', got %q", expr)
	}
	if names["#attr0"] != "name" {
		t.Errorf("expected #attr0 -> name, got %q", names["#attr0"])
	}
	if _, ok := values[":val0"]; !ok {
		t.Error("expected :val0 value")
	}
}

func TestSetExpression_SortedByName(t *testing.T) {
	expr, names, _ := setExpression(map[string]types.AttributeValue{
		"zeta":  &types.AttributeValueMemberS{Value: "z"},
		"alpha": &types.AttributeValueMemberS{Value: "a"},
		"mid":   &types.AttributeValueMemberN{Value: "1"},
	})

	if expr != "SET #attr0 = :val0, #attr1 = :val1, #attr2 = :val2" {
		t.Errorf("unexpected expression %q", expr)
	}
	expected := map[string]string{"#attr0": "alpha", "#attr1": "mid", "#attr2": "zeta"}
	for k, v := range expected {
		if names[k] != v {
			t.Errorf("expected %s -> %s, got %q", k, v, names[k])
		}
	}
}

// --- Filter / condition helpers ---

func TestEqualsFilter(t *testing.T) {
	value := &types.AttributeValueMemberS{Value: "ABCD250101XY1"}
	expr, names, values := EqualsFilter("taxId", value)

	if expr != "#f = :v" {
		t.Errorf("expected '#f = :v', got %q", expr)
	}
	if names["#f"] != "taxId" {
		t.Errorf("expected #f -> taxId, got %q", names["#f"])
	}
	if values[":v"] != value {
		t.Error("expected :v bound to the filter value")
	}
}

func TestKeyExistsCondition(t *testing.T) {
	if KeyExistsCondition() != "attribute_exists(#pk)" {
		t.Errorf("unexpected condition %q", KeyExistsCondition())
	}
	if KeyExistsNames("clientId")["#pk"] != "clientId" {
		t.Error("expected #pk -> clientId")
	}
}

func TestMergeExprNames(t *testing.T) {
	merged := mergeExprNames(
		map[string]string{"#a": "a"},
		map[string]string{"#b": "b"},
		nil,
	)
	if len(merged) != 2 || merged["#a"] != "a" || merged["#b"] != "b" {
		t.Errorf("unexpected merge result %v", merged)
	}
}

// --- writable Tests ---

func TestWritable_SkipsProtected(t *testing.T) {
	tbl := NewTable[struct{}](nil, "t", "id", "parentId")
	attrs, err := tbl.writable(map[string]any{
		"id":       "x",
		"parentId": "p",
		"name":     "n",
	})
	if err != nil {
		t.Fatalf("writable: %v", err)
	}
	if len(attrs) != 1 {
		t.Fatalf("expected 1 writable attribute, got %d", len(attrs))
	}
	if v, ok := attrs["name"].(*types.AttributeValueMemberS); !ok || v.Value != "n" {
		t.Errorf("expected name 'n', got %#v", attrs["name"])
	}
}

func TestWritable_NumbersMarshalAsN(t *testing.T) {
	tbl := NewTable[struct{}](nil, "t", "id")
	attrs, err := tbl.writable(map[string]any{"basePrice": 12.5})
	if err != nil {
		t.Fatalf("writable: %v", err)
	}
	if v, ok := attrs["basePrice"].(*types.AttributeValueMemberN); !ok || v.Value != "12.5" {
		t.Errorf("expected N 12.5, got %#v", attrs["basePrice"])
	}
}
