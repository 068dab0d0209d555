package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// marshalFailureBody is written when a response value cannot be encoded.
const marshalFailureBody = `{"detail":"Internal Server Error"}`

// WriteJSON encodes data and writes it with statusCode and a JSON content
// type. If data cannot be encoded the client gets a 500 with a generic
// detail instead, and the encoding error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(marshalFailureBody))
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// WriteToken is WriteJSON for credential-bearing responses: caches and
// proxies are told not to keep them.
func WriteToken(w http.ResponseWriter, data any) (int, error) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	return WriteJSON(w, data, http.StatusOK)
}
