package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// errorEnvelope is the API error shape. Code is the HTTP status text in
// snake case so clients can branch without parsing the message.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the API error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	var env errorEnvelope
	env.Error.Code = statusCode(status)
	env.Error.Message = message
	writeJSON(w, status, env)
}

func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "unknown"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
