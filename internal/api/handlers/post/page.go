package post

import (
	"net/http"
	"strconv"

	"Nest/internal/core/posts"
	"Nest/internal/core/state"
)

const (
	// DefaultPageSize applies when the request omits pageSize
	DefaultPageSize = 10
	// MaxPageSize bounds pageSize on requests
	MaxPageSize = 100
)

// PageHandler handles paginated post listing
type PageHandler struct {
	gateway state.Gateway
}

// NewPageHandler creates a new page handler
func NewPageHandler(gateway state.Gateway) *PageHandler {
	return &PageHandler{gateway: gateway}
}

// HandlePage handles GET /xrpc/nest.post.page?pageSize=10&pageNum=0&q=text
// q is matched literally and case-sensitively against title and content.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()

	pageSize, ok := parseNonNegative(params.Get("pageSize"), DefaultPageSize)
	if !ok {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "pageSize must be a non-negative integer")
		return
	}
	if pageSize > MaxPageSize {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "pageSize cannot exceed 100")
		return
	}
	pageNum, ok := parseNonNegative(params.Get("pageNum"), 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "pageNum must be a non-negative integer")
		return
	}

	page := h.gateway.PagePosts(r.Context(), posts.PageQuery{
		PageSize:    pageSize,
		PageNum:     pageNum,
		QueryString: params.Get("q"),
	})

	writeJSON(w, page)
}

// parseNonNegative returns def for an empty value
func parseNonNegative(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
