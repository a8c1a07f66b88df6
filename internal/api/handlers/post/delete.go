package post

import (
	"net/http"

	"Nest/internal/api/middleware"
	"Nest/internal/core/posts"
	"Nest/internal/core/state"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	gateway state.Gateway
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(gateway state.Gateway) *DeleteHandler {
	return &DeleteHandler{gateway: gateway}
}

// HandleDelete handles post deletion requests
// POST /xrpc/nest.post.delete
//
// Request body: { "id": 10001 }
// Response: { "success": true }
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if middleware.GetCaller(r) == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	// 100KB should be plenty for delete requests
	var cmd posts.PostIDCommand
	if !decodeBody(w, r, 100*1024, &cmd) {
		return
	}

	if err := h.gateway.DeletePost(r.Context(), cmd); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, successResponse{Success: true})
}
