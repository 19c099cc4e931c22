package store

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KeyExistsCondition returns the condition expression that holds only when
// the item addressed by the request key already exists. The key attribute
// name is bound to #pk by KeyExistsNames.
func KeyExistsCondition() string {
	return "attribute_exists(#pk)"
}

// KeyExistsNames returns the expression attribute names for KeyExistsCondition.
func KeyExistsNames(keyAttr string) map[string]string {
	return map[string]string{"#pk": keyAttr}
}

// EqualsFilter returns a single-attribute equality filter with its
// expression attribute names and values.
func EqualsFilter(attr string, value types.AttributeValue) (string, map[string]string, map[string]types.AttributeValue) {
	return "#f = :v",
		map[string]string{"#f": attr},
		map[string]types.AttributeValue{":v": value}
}

// setExpression builds "SET #attr0 = :val0, ..." over the attributes in
// name order, so the same patch always yields the same expression.
func setExpression(attrs map[string]types.AttributeValue) (string, map[string]string, map[string]types.AttributeValue) {
	names := make(map[string]string, len(attrs))
	values := make(map[string]types.AttributeValue, len(attrs))
	clauses := make([]string, 0, len(attrs))

	for i, k := range slices.Sorted(maps.Keys(attrs)) {
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		names[nameKey] = k
		values[valueKey] = attrs[k]
		clauses = append(clauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}

	return "SET " + strings.Join(clauses, ", "), names, values
}

// mergeExprNames merges multiple expression attribute name maps.
func mergeExprNames(ms ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, m := range ms {
		maps.Copy(result, m)
	}
	return result
}
