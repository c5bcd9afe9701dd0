package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies; the largest legal body is one version's content
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned when a body exceeds MaxBodyBytes
var ErrBodyTooLarge = errors.New("request body too large")

// ParseJSON decodes exactly one JSON value from the request body into dest.
// Unknown fields are ignored; anything after the value is an error.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid JSON: unexpected data after body")
	}

	return nil
}
