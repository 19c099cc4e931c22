package catalog

import (
	"maps"
	"slices"
	"strings"

	"github.com/jacentio/catalog/internal/validate"
)

// Fields is a decoded JSON object used as create or update input.
type Fields map[string]any

// Has reports whether the attribute is present, even if null.
func (f Fields) Has(attr string) bool {
	_, ok := f[attr]
	return ok
}

// String returns the attribute if it is a string, or "".
func (f Fields) String(attr string) string {
	s, _ := f[attr].(string)
	return s
}

// missing returns the attributes that are not non-blank strings, in order.
func (f Fields) missing(attrs ...string) []string {
	var out []string
	for _, a := range attrs {
		if !validate.Required(f[a]) {
			out = append(out, a)
		}
	}
	return out
}

// unknown returns the first attribute, in name order, outside allowed.
func (f Fields) unknown(allowed ...string) (string, bool) {
	for _, k := range slices.Sorted(maps.Keys(f)) {
		if !slices.Contains(allowed, k) {
			return k, true
		}
	}
	return "", false
}

// text reads a string attribute for an update, rejecting blanks and
// non-strings.
func (f Fields) text(attr string) (string, error) {
	v := f[attr]
	if !validate.Required(v) {
		return "", invalidString(attr)
	}
	return strings.TrimSpace(v.(string)), nil
}
