package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jacentio/catalog/catalog"
)

const maxBodyBytes = 1 << 20

var errBadBody = &catalog.Error{
	Code:    catalog.CodeInvalidFormat,
	Message: "invalid request body",
	Detail:  "the body must be a JSON object",
}

// decodeFields reads a JSON object body. An empty body decodes to no fields.
// Numbers stay json.Number so integer prices survive intact.
func decodeFields(w http.ResponseWriter, r *http.Request) (catalog.Fields, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &catalog.Error{
				Code:    catalog.CodeInvalidFormat,
				Message: "request body too large",
				Detail:  "the body must not exceed 1 MiB",
			}
		}
		return nil, errBadBody
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return catalog.Fields{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errBadBody
	}
	if dec.More() {
		return nil, errBadBody
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errBadBody
	}
	return catalog.Fields(obj), nil
}
