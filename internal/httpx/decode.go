package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bookreview/internal/apperr"
)

// DecodeJSON reads exactly one JSON object from the request body into dst.
// Unknown fields, wrong types, trailing data and empty bodies are
// validation errors.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.Validation("Request body is required")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.Validation("Request body must contain a single JSON object")
	}
	return nil
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return apperr.Validation("Request body is required")
	case errors.As(err, &maxBytesErr):
		return apperr.Validation(fmt.Sprintf("Request body must not exceed %d bytes", maxBytesErr.Limit))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.Validation("Invalid request body")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		return apperr.Validation("Invalid input", apperr.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be a %s", field, typeErr.Type.Kind()),
		})
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperr.Validation("Invalid input", apperr.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s is not allowed", field),
		})
	default:
		return apperr.Validation("Invalid request body")
	}
}
