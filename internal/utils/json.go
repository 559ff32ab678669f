package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON encodes v to the response.
func WriteJSON(w http.ResponseWriter, v any) {
	json.NewEncoder(w).Encode(v)
}

// JSONError writes an error payload with the given status code.
func JSONError(w http.ResponseWriter, message string, code int) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
