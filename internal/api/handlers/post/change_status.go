package post

import (
	"net/http"

	"Nest/internal/api/middleware"
	"Nest/internal/core/posts"
	"Nest/internal/core/state"
)

// ChangeStatusHandler handles post status transitions
type ChangeStatusHandler struct {
	gateway state.Gateway
}

// NewChangeStatusHandler creates a new change status handler
func NewChangeStatusHandler(gateway state.Gateway) *ChangeStatusHandler {
	return &ChangeStatusHandler{gateway: gateway}
}

// HandleChangeStatus handles POST /xrpc/nest.post.changeStatus
//
// Request body: { "id": 10001, "status": "closed", "description": "..." }
// Response: { "success": true }
func (h *ChangeStatusHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if middleware.GetCaller(r) == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var cmd posts.ChangeStatusCommand
	if !decodeBody(w, r, 100*1024, &cmd) {
		return
	}

	if err := h.gateway.ChangePostStatus(r.Context(), cmd); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, successResponse{Success: true})
}
