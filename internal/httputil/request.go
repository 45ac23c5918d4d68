package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; project payloads are a few KB at most
const maxBodyBytes = 1 << 20

// ErrEmptyBody is returned by ParseJSON when the request has no body
var ErrEmptyBody = errors.New("request body is required")

// ParseJSON decodes JSON from the request body into dest.
// Unknown fields are ignored so older clients keep working.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// ParseOptionalJSON is ParseJSON for bodies that may be omitted entirely
// (DELETE with the caller taken from the bearer token).
func ParseOptionalJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	err := ParseJSON(w, r, dest)
	if errors.Is(err, ErrEmptyBody) {
		return nil
	}
	return err
}
