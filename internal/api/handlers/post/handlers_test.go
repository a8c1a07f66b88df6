package post

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Nest/internal/core/env"
	"Nest/internal/core/posts"
)

// mockGateway implements state.Gateway for testing
type mockGateway struct {
	createFunc       func(ctx context.Context, cmd posts.CreatePostCommand) (uint64, error)
	editFunc         func(ctx context.Context, cmd posts.EditPostCommand) error
	changeStatusFunc func(ctx context.Context, cmd posts.ChangeStatusCommand) error
	deleteFunc       func(ctx context.Context, cmd posts.PostIDCommand) error
	getFunc          func(ctx context.Context, cmd posts.PostIDCommand) (*posts.Post, error)
	pageFunc         func(ctx context.Context, query posts.PageQuery) *posts.Page
}

func (m *mockGateway) CreatePost(ctx context.Context, cmd posts.CreatePostCommand) (uint64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, cmd)
	}
	return 10001, nil
}

func (m *mockGateway) EditPost(ctx context.Context, cmd posts.EditPostCommand) error {
	if m.editFunc != nil {
		return m.editFunc(ctx, cmd)
	}
	return nil
}

func (m *mockGateway) ChangePostStatus(ctx context.Context, cmd posts.ChangeStatusCommand) error {
	if m.changeStatusFunc != nil {
		return m.changeStatusFunc(ctx, cmd)
	}
	return nil
}

func (m *mockGateway) DeletePost(ctx context.Context, cmd posts.PostIDCommand) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, cmd)
	}
	return nil
}

func (m *mockGateway) GetPost(ctx context.Context, cmd posts.PostIDCommand) (*posts.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, cmd)
	}
	return &posts.Post{ID: cmd.ID}, nil
}

func (m *mockGateway) PagePosts(ctx context.Context, query posts.PageQuery) *posts.Page {
	if m.pageFunc != nil {
		return m.pageFunc(ctx, query)
	}
	return &posts.Page{Data: []*posts.Post{}, PageSize: query.PageSize, PageNum: query.PageNum}
}

// authedRequest builds a request with the caller already injected into the context
func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(env.WithCaller(req.Context(), "alice"))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCreateHandler_Success(t *testing.T) {
	var got posts.CreatePostCommand
	gateway := &mockGateway{
		createFunc: func(ctx context.Context, cmd posts.CreatePostCommand) (uint64, error) {
			got = cmd
			caller, ok := env.CallerFrom(ctx)
			assert.True(t, ok)
			assert.EqualValues(t, "alice", caller)
			return 10001, nil
		},
	}
	handler := NewCreateHandler(gateway)

	body := `{"title":"james title","content":{"content":"james content","format":"md"},"category":"Tech","photos":[30,20]}`
	w := httptest.NewRecorder()
	handler.HandleCreate(w, authedRequest(http.MethodPost, "/xrpc/nest.post.create", body))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp CreatePostOutput
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, uint64(10001), resp.ID)
	assert.Equal(t, "james title", got.Title)
	assert.Equal(t, "md", got.Content.Format)
	assert.Equal(t, []uint64{30, 20}, got.Photos)
}

func TestCreateHandler_RequiresCaller(t *testing.T) {
	handler := NewCreateHandler(&mockGateway{})

	req := httptest.NewRequest(http.MethodPost, "/xrpc/nest.post.create", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AuthRequired", decodeError(t, w).Error)
}

func TestCreateHandler_InvalidBody(t *testing.T) {
	handler := NewCreateHandler(&mockGateway{})

	w := httptest.NewRecorder()
	handler.HandleCreate(w, authedRequest(http.MethodPost, "/xrpc/nest.post.create", `{"title":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decodeError(t, w).Error)
}

func TestCreateHandler_BodyTooLarge(t *testing.T) {
	handler := NewCreateHandler(&mockGateway{})

	big := `{"title":"` + strings.Repeat("a", maxPostBodyBytes+1) + `"}`
	w := httptest.NewRecorder()
	handler.HandleCreate(w, authedRequest(http.MethodPost, "/xrpc/nest.post.create", big))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCreateHandler_MethodNotAllowed(t *testing.T) {
	handler := NewCreateHandler(&mockGateway{})

	w := httptest.NewRecorder()
	handler.HandleCreate(w, authedRequest(http.MethodGet, "/xrpc/nest.post.create", ""))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestMutationHandlers_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "not found", err: posts.NewNotFoundError(7), wantStatus: http.StatusNotFound, wantError: "PostNotFound"},
		{name: "unauthorized", err: posts.ErrUnauthorizedOperation, wantStatus: http.StatusForbidden, wantError: "NotAuthorized"},
		{name: "already completed", err: &posts.StatusError{ID: 7, Status: posts.StatusCompleted, Operation: posts.OpEdit}, wantStatus: http.StatusConflict, wantError: "PostAlreadyCompleted"},
		{name: "already exists", err: posts.ErrAlreadyExists, wantStatus: http.StatusConflict, wantError: "PostAlreadyExists"},
		{name: "internal", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantError: "InternalServerError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &mockGateway{
				createFunc:       func(context.Context, posts.CreatePostCommand) (uint64, error) { return 0, tt.err },
				editFunc:         func(context.Context, posts.EditPostCommand) error { return tt.err },
				changeStatusFunc: func(context.Context, posts.ChangeStatusCommand) error { return tt.err },
				deleteFunc:       func(context.Context, posts.PostIDCommand) error { return tt.err },
			}

			calls := []struct {
				path   string
				handle http.HandlerFunc
			}{
				{"/xrpc/nest.post.create", NewCreateHandler(gateway).HandleCreate},
				{"/xrpc/nest.post.edit", NewEditHandler(gateway).HandleEdit},
				{"/xrpc/nest.post.changeStatus", NewChangeStatusHandler(gateway).HandleChangeStatus},
				{"/xrpc/nest.post.delete", NewDeleteHandler(gateway).HandleDelete},
			}

			for _, call := range calls {
				w := httptest.NewRecorder()
				call.handle(w, authedRequest(http.MethodPost, call.path, `{"id":7}`))

				assert.Equal(t, tt.wantStatus, w.Code, call.path)
				resp := decodeError(t, w)
				assert.Equal(t, tt.wantError, resp.Error, call.path)
				assert.NotContains(t, resp.Message, "pq:", call.path)
			}
		})
	}
}

func TestChangeStatusHandler_PassesCommand(t *testing.T) {
	var got posts.ChangeStatusCommand
	gateway := &mockGateway{
		changeStatusFunc: func(_ context.Context, cmd posts.ChangeStatusCommand) error {
			got = cmd
			return nil
		},
	}

	w := httptest.NewRecorder()
	NewChangeStatusHandler(gateway).HandleChangeStatus(w, authedRequest(http.MethodPost,
		"/xrpc/nest.post.changeStatus", `{"id":10001,"status":"closed","description":"done"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, posts.ChangeStatusCommand{ID: 10001, Status: "closed", Description: "done"}, got)
}

func TestGetHandler(t *testing.T) {
	gateway := &mockGateway{
		getFunc: func(_ context.Context, cmd posts.PostIDCommand) (*posts.Post, error) {
			if cmd.ID != 10001 {
				return nil, posts.NewNotFoundError(cmd.ID)
			}
			return &posts.Post{ID: 10001, Title: "james title", Status: posts.StatusEnabled}, nil
		},
	}
	handler := NewGetHandler(gateway)

	w := httptest.NewRecorder()
	handler.HandleGet(w, httptest.NewRequest(http.MethodGet, "/xrpc/nest.post.get?id=10001", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var post posts.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&post))
	assert.Equal(t, "james title", post.Title)

	w = httptest.NewRecorder()
	handler.HandleGet(w, httptest.NewRequest(http.MethodGet, "/xrpc/nest.post.get?id=5", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, bad := range []string{"", "abc", "-1"} {
		w = httptest.NewRecorder()
		handler.HandleGet(w, httptest.NewRequest(http.MethodGet, "/xrpc/nest.post.get?id="+bad, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "id=%q", bad)
	}
}

func TestPageHandler_Params(t *testing.T) {
	var got posts.PageQuery
	gateway := &mockGateway{
		pageFunc: func(_ context.Context, query posts.PageQuery) *posts.Page {
			got = query
			return &posts.Page{Data: []*posts.Post{}, PageSize: query.PageSize, PageNum: query.PageNum, TotalCount: 3}
		},
	}
	handler := NewPageHandler(gateway)

	w := httptest.NewRecorder()
	handler.HandlePage(w, httptest.NewRequest(http.MethodGet, "/xrpc/nest.post.page?pageSize=5&pageNum=2&q=james", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, posts.PageQuery{PageSize: 5, PageNum: 2, QueryString: "james"}, got)
	assert.JSONEq(t, `{"data":[],"pageSize":5,"pageNum":2,"totalCount":3}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.HandlePage(w, httptest.NewRequest(http.MethodGet, "/xrpc/nest.post.page", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, posts.PageQuery{PageSize: DefaultPageSize}, got)

	w = httptest.NewRecorder()
	handler.HandlePage(w, httptest.NewRequest(http.MethodGet, "/xrpc/nest.post.page?pageSize=100", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MaxPageSize, got.PageSize)

	got = posts.PageQuery{}
	for _, bad := range []string{"pageSize=-1", "pageNum=x", "pageSize=101", "pageSize=9223372036854775807"} {
		w = httptest.NewRecorder()
		handler.HandlePage(w, httptest.NewRequest(http.MethodGet, "/xrpc/nest.post.page?"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Zero(t, got.PageSize, bad)
	}
}
