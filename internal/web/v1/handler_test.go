package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/post-service/internal/core/domain"
	"github.com/duynhne/post-service/internal/core/domain/domaintest"
	logicv1 "github.com/duynhne/post-service/internal/logic/v1"
)

const (
	aliceID = "65a1f0c2e4b0a1b2c3d4e5f6"
	postID  = "65a1f0c2e4b0a1b2c3d4e5f7"
)

var testNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	tokens *domaintest.TokenRepository
	users  *domaintest.UserRepository
	posts  *domaintest.PostRepository
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		tokens: new(domaintest.TokenRepository),
		users:  new(domaintest.UserRepository),
		posts:  new(domaintest.PostRepository),
	}

	gate := logicv1.NewSessionGate(f.tokens).WithClock(func() time.Time { return testNow })
	h := NewHandler(gate, logicv1.NewProfileService(f.users, f.posts), logicv1.NewPostService(f.posts))

	f.router = gin.New()
	h.RegisterRoutes(&f.router.RouterGroup)
	return f
}

func (f *fixture) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload), w.Body.String())
	return w, payload
}

func TestGetPost_InvalidID(t *testing.T) {
	f := newFixture(t)

	w, body := f.do(t, http.MethodGet, "/post/not-a-valid-id", "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid post ID format", body["message"])
	assert.NotZero(t, body["timestamp"])
	f.posts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetPost_NotFound(t *testing.T) {
	f := newFixture(t)
	f.posts.On("GetByID", mock.Anything, postID).Return(nil, nil)

	w, body := f.do(t, http.MethodGet, "/post/"+postID, "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Post not found", body["message"])
	assert.NotZero(t, body["timestamp"])
}

func TestGetPost_Found(t *testing.T) {
	f := newFixture(t)
	f.posts.On("GetByID", mock.Anything, postID).Return(&domain.Post{
		ID:        postID,
		UserID:    aliceID,
		Title:     "Hello",
		Tags:      []string{"go"},
		CreatedAt: testNow,
	}, nil)

	w, body := f.do(t, http.MethodGet, "/post/"+postID, "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Post fetched successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, postID, data["_id"])
	assert.Equal(t, aliceID, data["user_id"])
	assert.NotZero(t, body["timestamp"])
}

func TestGetPost_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.posts.On("GetByID", mock.Anything, postID).Return(nil, errors.New("socket closed"))

	w, body := f.do(t, http.MethodGet, "/post/"+postID, "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Error fetching post", body["message"])
	assert.Contains(t, body["error"], "socket closed")
}

func TestGetProfile(t *testing.T) {
	f := newFixture(t)
	t1 := testNow.Add(-2 * time.Hour)
	t2 := testNow.Add(-time.Hour)
	f.users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           aliceID,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "must-not-leak",
	}, nil)
	f.posts.On("ListSummariesByUser", mock.Anything, aliceID).Return([]domain.PostSummary{
		{ID: "65a1f0c2e4b0a1b2c3d4e601", CreatedAt: t1},
		{ID: "65a1f0c2e4b0a1b2c3d4e602", CreatedAt: t2},
	}, nil)

	w, body := f.do(t, http.MethodGet, "/api/user/alice", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, w.Body.String(), "must-not-leak")
	data := body["data"].(map[string]any)
	assert.Equal(t, "alice", data["username"])
	posts := data["posts"].([]any)
	require.Len(t, posts, 2)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e602", posts[0].(map[string]any)["_id"])
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e601", posts[1].(map[string]any)["_id"])
}

func TestGetProfile_NoPosts(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{ID: aliceID, Username: "alice"}, nil)
	f.posts.On("ListSummariesByUser", mock.Anything, aliceID).Return([]domain.PostSummary{}, nil)

	w, body := f.do(t, http.MethodGet, "/api/user/alice", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, body["data"].(map[string]any)["posts"])
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	w, body := f.do(t, http.MethodGet, "/api/user/ghost", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User not found", body["message"])
	f.posts.AssertNotCalled(t, "ListSummariesByUser", mock.Anything, mock.Anything)
}

func TestGetProfile_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByUsername", mock.Anything, "alice").Return(nil, errors.New("no reachable servers"))

	w, body := f.do(t, http.MethodGet, "/api/user/alice", "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error while fetching user profile", body["message"])
	assert.Contains(t, body["error"], "no reachable servers")
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		record     *domain.TokenRecord
		lookupErr  error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantMsg: logicv1.MessageTokenInvalid},
		{name: "unknown token", token: "nope", wantStatus: http.StatusUnauthorized, wantMsg: logicv1.MessageTokenInvalid},
		{name: "store down", token: "abc123", lookupErr: errors.New("timeout"), wantStatus: http.StatusUnauthorized, wantMsg: logicv1.MessageTokenInvalid},
		{
			name:       "expired",
			token:      "abc123",
			record:     &domain.TokenRecord{Token: "abc123", ExpiresAt: testNow.Add(-time.Second)},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    logicv1.MessageTokenExpired,
		},
		{
			name:       "fresh",
			token:      "abc123",
			record:     &domain.TokenRecord{Token: "abc123", ExpiresAt: testNow.Add(time.Second)},
			wantStatus: http.StatusOK,
			wantMsg:    logicv1.MessageTokenValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.token != "" {
				f.tokens.On("GetByToken", mock.Anything, tt.token).Return(tt.record, tt.lookupErr)
			}

			w, body := f.do(t, http.MethodGet, "/api/auth/verify", tt.token, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, body["success"])
			assert.Equal(t, tt.wantStatus == http.StatusOK, body["is_logined"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	f.tokens.On("GetByToken", mock.Anything, "abc123").Return(&domain.TokenRecord{
		Token: "abc123", UserID: aliceID, ExpiresAt: testNow.Add(time.Hour),
	}, nil)
	f.posts.On("Create", mock.Anything, domain.NewPost{
		UserID: aliceID, Title: "Hello", Content: "World", Tags: []string{"go"},
	}).Return(&domain.Post{ID: postID, UserID: aliceID, Title: "Hello"}, nil)

	w, body := f.do(t, http.MethodPost, "/post/upload", "abc123",
		`{"title":"Hello","content":"World","tags":["#go"],"user_id":"someone-else"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, postID, body["data"].(map[string]any)["_id"])
	f.posts.AssertExpectations(t)
}

func TestCreatePost_Rejections(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		f := newFixture(t)

		w, _ := f.do(t, http.MethodPost, "/post/upload", "", `{"title":"a","content":"b"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		f.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing title", func(t *testing.T) {
		f := newFixture(t)
		f.tokens.On("GetByToken", mock.Anything, "abc123").Return(&domain.TokenRecord{
			Token: "abc123", UserID: aliceID, ExpiresAt: testNow.Add(time.Hour),
		}, nil)

		w, body := f.do(t, http.MethodPost, "/post/upload", "abc123", `{"content":"b"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid post data", body["message"])
	})

	t.Run("token without owner", func(t *testing.T) {
		f := newFixture(t)
		f.tokens.On("GetByToken", mock.Anything, "abc123").Return(&domain.TokenRecord{
			Token: "abc123", ExpiresAt: testNow.Add(time.Hour),
		}, nil)

		w, body := f.do(t, http.MethodPost, "/post/upload", "abc123", `{"title":"a","content":"b"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, false, body["is_logined"])
	})
}

func TestLikeAndUnlike(t *testing.T) {
	f := newFixture(t)
	f.tokens.On("GetByToken", mock.Anything, "abc123").Return(&domain.TokenRecord{
		Token: "abc123", UserID: aliceID, ExpiresAt: testNow.Add(time.Hour),
	}, nil)
	f.posts.On("AdjustLikes", mock.Anything, postID, 1).Return(&domain.Post{ID: postID, LikesCount: 4}, nil)
	f.posts.On("AdjustLikes", mock.Anything, postID, -1).Return(nil, nil)

	w, body := f.do(t, http.MethodPatch, "/post/"+postID+"/like", "abc123", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, body["data"].(map[string]any)["likes_count"])

	w, body = f.do(t, http.MethodPatch, "/post/"+postID+"/unlike", "abc123", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", body["message"])

	w, _ = f.do(t, http.MethodPatch, "/post/xyz/like", "abc123", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
