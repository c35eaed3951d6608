package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	// MaxRequestBodySize is the maximum allowed request body size (1MB).
	MaxRequestBodySize = 1 << 20
)

// DecodeJSON decodes a single JSON object from the request body into a T.
// Unknown fields, trailing data and bodies over MaxRequestBodySize are rejected.
// The returned error message is safe to echo back to the client.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var zero T

	if r.Body == nil || r.Body == http.NoBody {
		return zero, errors.New("request body is empty")
	}

	body := http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)
	defer func() {
		_ = body.Close()
	}()

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	var v T
	if err := decoder.Decode(&v); err != nil {
		var syntaxErr *json.SyntaxError
		var unmarshalErr *json.UnmarshalTypeError
		var maxBytesErr *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxErr):
			return zero, fmt.Errorf("malformed JSON at position %d", syntaxErr.Offset)
		case errors.As(err, &unmarshalErr):
			return zero, fmt.Errorf("invalid value for field %q", unmarshalErr.Field)
		case errors.As(err, &maxBytesErr):
			return zero, fmt.Errorf("request body too large (max %d bytes)", MaxRequestBodySize)
		case errors.Is(err, io.EOF):
			return zero, errors.New("request body is empty")
		case errors.Is(err, io.ErrUnexpectedEOF):
			return zero, errors.New("malformed JSON: unexpected end of input")
		default:
			return zero, fmt.Errorf("failed to decode JSON: %w", err)
		}
	}

	if decoder.More() {
		return zero, errors.New("request body contains multiple JSON objects")
	}

	return v, nil
}
