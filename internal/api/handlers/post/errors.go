package post

import (
	"encoding/json"
	"log"
	"net/http"

	"Nest/internal/core/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// successResponse is returned by the mutating endpoints that have no other output
type successResponse struct {
	Success bool `json:"success"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// writeJSON writes a 200 response with body encoded as JSON
func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Log encoding errors but don't return error response (headers already sent)
		log.Printf("Failed to encode post response: %v", err)
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case posts.IsNotFound(err):
		writeError(w, http.StatusNotFound, "PostNotFound", err.Error())

	case posts.IsUnauthorized(err):
		writeError(w, http.StatusForbidden, "NotAuthorized",
			"Only the post author can modify this post")

	case posts.IsAlreadyCompleted(err):
		writeError(w, http.StatusConflict, "PostAlreadyCompleted", err.Error())

	case posts.IsAlreadyExists(err):
		writeError(w, http.StatusConflict, "PostAlreadyExists", "Post already exists")

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in post handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}

// decodeBody parses a size-limited JSON request body into dst.
// Returns false after writing a 400/413 response when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// Check if error is due to body size limit
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}
