package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes the shared {error, message} body with the correct
// Content-Type.
func writeJSONError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": msg})
}
