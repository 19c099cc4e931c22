// Package validate holds the field checks applied to catalog entities.
//
// Every function is pure and total: it never panics and reports the outcome
// as a boolean. Callers decide which error to surface.
package validate

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

// TaxIDLength is the fixed length of a tax identifier.
const TaxIDLength = 13

// Address types accepted for Address.addressType.
const (
	AddressTypeBilling  = "BILLING"
	AddressTypeShipping = "SHIPPING"
)

var (
	taxIDPrefix    = regexp.MustCompile(`^[A-Z]{4}$`)
	taxIDDate      = regexp.MustCompile(`^[0-9]{6}$`)
	taxIDHomoclave = regexp.MustCompile(`^[A-Z0-9]{3}$`)

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// TaxID reports whether s is a well-formed tax identifier: four uppercase
// letters, six digits and three uppercase alphanumerics. The check is
// case-sensitive; normalize with NormalizeTaxID first.
func TaxID(s string) bool {
	if len(s) != TaxIDLength {
		return false
	}
	return taxIDPrefix.MatchString(s[0:4]) &&
		taxIDDate.MatchString(s[4:10]) &&
		taxIDHomoclave.MatchString(s[10:13])
}

// NormalizeTaxID trims surrounding whitespace and uppercases s.
func NormalizeTaxID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Email reports whether s has the local@domain.tld shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// AddressType reports whether s is one of the accepted address types.
func AddressType(s string) bool {
	return s == AddressTypeBilling || s == AddressTypeShipping
}

// AddressTypes returns the accepted address types.
func AddressTypes() []string {
	return []string{AddressTypeBilling, AddressTypeShipping}
}

// Number coerces a decoded JSON number to float64. Strings, booleans, nil
// and non-finite values are not numbers.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Price reports whether v is a number greater than or equal to zero.
func Price(v any) bool {
	f, ok := Number(v)
	return ok && f >= 0
}

// Required reports whether v is a string with non-whitespace content.
func Required(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}
