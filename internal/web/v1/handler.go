package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/post-service/internal/core/domain"
	logicv1 "github.com/duynhne/post-service/internal/logic/v1"
	"github.com/duynhne/post-service/middleware"
	pkgzerolog "github.com/duynhne/post-service/pkg/logger/zerolog"
)

// Handler groups HTTP handlers for API v1.
// Dependencies are injected via the constructor.
type Handler struct {
	gate     *logicv1.SessionGate
	profiles *logicv1.ProfileService
	posts    *logicv1.PostService
}

// NewHandler creates a new Handler with the given services.
func NewHandler(gate *logicv1.SessionGate, profiles *logicv1.ProfileService, posts *logicv1.PostService) *Handler {
	return &Handler{gate: gate, profiles: profiles, posts: posts}
}

// RegisterRoutes registers all v1 routes on the given router group.
// Reads are public; writes and the session check sit behind RequireSession.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/api/user/:username", h.GetProfile)
	rg.GET("/post/:postid", h.GetPost)

	gated := rg.Group("", RequireSession(h.gate))
	{
		gated.GET("/api/auth/verify", h.VerifySession)
		gated.POST("/post/upload", h.CreatePost)
		gated.PATCH("/post/:postid/like", h.LikePost)
		gated.PATCH("/post/:postid/unlike", h.UnlikePost)
	}
}

func startRequestSpan(c *gin.Context) trace.Span {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("route", c.FullPath()),
	))
	c.Request = c.Request.WithContext(ctx)
	return span
}

// GetProfile handles GET /api/user/:username.
func (h *Handler) GetProfile(c *gin.Context) {
	span := startRequestSpan(c)
	defer span.End()

	ctx := c.Request.Context()
	logger := pkgzerolog.FromContext(ctx)
	username := c.Param("username")

	view, err := h.profiles.GetProfile(ctx, username)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, logicv1.ErrUserNotFound) {
			respond(c, http.StatusNotFound, Envelope{Success: false, Message: "User not found"})
			return
		}
		logger.Error().Err(err).Str("username", username).Msg("Error fetching user profile by username")
		respond(c, http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "Server error while fetching user profile",
			Error:   err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, Envelope{Success: true, Data: view})
}

// GetPost handles GET /post/:postid.
func (h *Handler) GetPost(c *gin.Context) {
	span := startRequestSpan(c)
	defer span.End()

	post, err := h.posts.GetPost(c.Request.Context(), c.Param("postid"))
	if err != nil {
		span.RecordError(err)
		h.writePostError(c, err, "Error fetching post")
		return
	}

	respond(c, http.StatusOK, stamped(Envelope{
		Success: true,
		Message: "Post fetched successfully",
		Data:    post,
	}))
}

// createPostRequest is the body of POST /post/upload.
// Ownership comes from the admitted token, never from the body.
type createPostRequest struct {
	Title   string   `json:"title" binding:"required,max=200"`
	Content string   `json:"content" binding:"required"`
	Image   string   `json:"image" binding:"omitempty,url"`
	Tags    []string `json:"tags" binding:"max=20"`
}

// CreatePost handles POST /post/upload.
func (h *Handler) CreatePost(c *gin.Context) {
	span := startRequestSpan(c)
	defer span.End()

	ctx := c.Request.Context()
	logger := pkgzerolog.FromContext(ctx)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn().Err(err).Msg("Invalid request")
		respond(c, http.StatusBadRequest, stamped(Envelope{
			Success: false,
			Message: "Invalid post data",
			Error:   err.Error(),
		}))
		return
	}

	post, err := h.posts.CreatePost(ctx, SessionRecord(c), domain.NewPost{
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
		Tags:    req.Tags,
	})
	if err != nil {
		span.RecordError(err)
		h.writePostError(c, err, "Error creating post")
		return
	}

	logger.Info().Str("post_id", post.ID).Str("user_id", post.UserID).Msg("Post created")
	respond(c, http.StatusCreated, stamped(Envelope{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	}))
}

// LikePost handles PATCH /post/:postid/like.
func (h *Handler) LikePost(c *gin.Context) {
	span := startRequestSpan(c)
	defer span.End()

	post, err := h.posts.LikePost(c.Request.Context(), c.Param("postid"))
	if err != nil {
		span.RecordError(err)
		h.writePostError(c, err, "Error liking post")
		return
	}

	respond(c, http.StatusOK, stamped(Envelope{Success: true, Message: "Post liked", Data: post}))
}

// UnlikePost handles PATCH /post/:postid/unlike.
func (h *Handler) UnlikePost(c *gin.Context) {
	span := startRequestSpan(c)
	defer span.End()

	post, err := h.posts.UnlikePost(c.Request.Context(), c.Param("postid"))
	if err != nil {
		span.RecordError(err)
		h.writePostError(c, err, "Error unliking post")
		return
	}

	respond(c, http.StatusOK, stamped(Envelope{Success: true, Message: "Post unliked", Data: post}))
}

// VerifySession handles GET /api/auth/verify. Reaching it means the gate admitted the token.
func (h *Handler) VerifySession(c *gin.Context) {
	loggedIn := true
	respond(c, http.StatusOK, stamped(Envelope{
		Success:   true,
		IsLogined: &loggedIn,
		Message:   logicv1.MessageTokenValid,
	}))
}

// writePostError maps post errors to the documented status codes.
// Unexpected errors are 500 with the error text as diagnostics.
func (h *Handler) writePostError(c *gin.Context, err error, serverMessage string) {
	switch {
	case errors.Is(err, logicv1.ErrInvalidPostID):
		respond(c, http.StatusBadRequest, stamped(Envelope{Success: false, Message: "Invalid post ID format"}))
	case errors.Is(err, logicv1.ErrInvalidInput):
		respond(c, http.StatusBadRequest, stamped(Envelope{Success: false, Message: "Invalid post data", Error: err.Error()}))
	case errors.Is(err, logicv1.ErrPostNotFound):
		respond(c, http.StatusNotFound, stamped(Envelope{Success: false, Message: "Post not found"}))
	case errors.Is(err, logicv1.ErrTokenUnbound):
		loggedIn := false
		respond(c, http.StatusUnauthorized, stamped(Envelope{Success: false, IsLogined: &loggedIn, Message: logicv1.MessageTokenInvalid}))
	default:
		pkgzerolog.FromContext(c.Request.Context()).Error().Err(err).Msg(serverMessage)
		respond(c, http.StatusInternalServerError, stamped(Envelope{
			Success: false,
			Message: serverMessage,
			Error:   err.Error(),
		}))
	}
}
