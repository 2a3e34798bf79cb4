// Package web holds the small HTTP helpers shared by every handler package:
// JSON responses and gateway-forwarded identity extraction.
package web

import (
	"encoding/json"
	"net/http"
)

// JSONOK writes v as a 200 JSON response.
func JSONOK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// JSONError writes a JSON error envelope with the given status code.
func JSONError(w http.ResponseWriter, msg string, code int) {
	JSON(w, code, map[string]string{"error": msg})
}

// UserID returns the authenticated user id forwarded by the Gateway via the
// x-user-id header, writing a 401 and returning "" when absent.
func UserID(w http.ResponseWriter, r *http.Request) string {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		JSONError(w, "missing x-user-id header", http.StatusUnauthorized)
	}
	return userID
}
