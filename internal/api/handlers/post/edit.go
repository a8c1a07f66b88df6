package post

import (
	"net/http"

	"Nest/internal/api/middleware"
	"Nest/internal/core/posts"
	"Nest/internal/core/state"
)

// EditHandler handles post edit requests
type EditHandler struct {
	gateway state.Gateway
}

// NewEditHandler creates a new edit handler
func NewEditHandler(gateway state.Gateway) *EditHandler {
	return &EditHandler{gateway: gateway}
}

// HandleEdit handles POST /xrpc/nest.post.edit
// Replaces title, content, category, photos (and status while Enabled).
func (h *EditHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if middleware.GetCaller(r) == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var cmd posts.EditPostCommand
	if !decodeBody(w, r, maxPostBodyBytes, &cmd) {
		return
	}

	if err := h.gateway.EditPost(r.Context(), cmd); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, successResponse{Success: true})
}
