package post

import (
	"net/http"
	"strconv"

	"Nest/internal/core/posts"
	"Nest/internal/core/state"
)

// GetHandler handles single post lookups
type GetHandler struct {
	gateway state.Gateway
}

// NewGetHandler creates a new get handler
func NewGetHandler(gateway state.Gateway) *GetHandler {
	return &GetHandler{gateway: gateway}
}

// HandleGet handles GET /xrpc/nest.post.get?id=10001
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "id must be a non-negative integer")
		return
	}

	post, err := h.gateway.GetPost(r.Context(), posts.PostIDCommand{ID: id})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, post)
}
