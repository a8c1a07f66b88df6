package post

import (
	"net/http"

	"Nest/internal/api/middleware"
	"Nest/internal/core/posts"
	"Nest/internal/core/state"
)

// maxPostBodyBytes allows for long content while preventing abuse
const maxPostBodyBytes = 1 * 1024 * 1024

// CreateHandler handles post creation requests
type CreateHandler struct {
	gateway state.Gateway
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(gateway state.Gateway) *CreateHandler {
	return &CreateHandler{gateway: gateway}
}

// CreatePostOutput is the response for nest.post.create
type CreatePostOutput struct {
	ID uint64 `json:"id"`
}

// HandleCreate handles POST /xrpc/nest.post.create
// The author is always the caller; it cannot be supplied in the body.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if middleware.GetCaller(r) == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var cmd posts.CreatePostCommand
	if !decodeBody(w, r, maxPostBodyBytes, &cmd) {
		return
	}

	id, err := h.gateway.CreatePost(r.Context(), cmd)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, CreatePostOutput{ID: id})
}
