package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hanamizu/collab-api/internal/dto"
	apierrors "github.com/hanamizu/collab-api/internal/errors"
	"github.com/hanamizu/collab-api/internal/middleware"
	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/services"
	"github.com/hanamizu/collab-api/internal/utils"
)

// PostHandler coordinates post HTTP handlers.
type PostHandler struct {
	postService *services.PostService
	authService *services.AuthService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService, authService *services.AuthService) *PostHandler {
	return &PostHandler{
		postService: postService,
		authService: authService,
	}
}

// ListPosts returns posts, optionally filtered by ?author=username.
func (h *PostHandler) ListPosts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var (
		posts []models.Post
		total int64
		err   error
	)

	if author := c.Query("author"); author != "" {
		user, lookupErr := h.authService.GetUserByUsername(author)
		if lookupErr != nil {
			respondAuthError(c, lookupErr)
			return
		}
		posts, total, err = h.postService.ListByAuthor(user.ID, params)
	} else {
		posts, total, err = h.postService.List(params)
	}
	if err != nil {
		respondPostError(c, err)
		return
	}

	usernames, err := h.authorUsernames(posts)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": dto.ToPostDTOs(posts, usernames),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreatePost creates a post authored by the caller.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePostRequest struct {
		Content string              `json:"content" binding:"required"`
		Options *models.PostOptions `json:"options"`
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.postService.Create(services.CreatePostInput{
		AuthorID: userID,
		Content:  req.Content,
		Options:  req.Options,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    dto.ToPostDTO(*post, user.Username),
	})
}

// UpdatePost applies a partial update; only the author may modify a post.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid post ID")
		return
	}

	type UpdatePostRequest struct {
		Content *string             `json:"content"`
		Options *models.PostOptions `json:"options"`
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.postService.AssertAuthor(postID, userID); err != nil {
		respondPostError(c, err)
		return
	}

	post, err := h.postService.Update(postID, services.UpdatePostInput{
		Content: req.Content,
		Options: req.Options,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}

	usernames, err := h.authService.UsernamesByIDs([]uint64{post.AuthorID})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"post":    dto.ToPostDTO(*post, usernames[post.AuthorID]),
	})
}

// DeletePost removes a post; only the author may delete it.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid post ID")
		return
	}

	if _, err := h.postService.AssertAuthor(postID, userID); err != nil {
		respondPostError(c, err)
		return
	}

	if err := h.postService.Delete(postID); err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post deleted successfully",
	})
}

func (h *PostHandler) authorUsernames(posts []models.Post) (map[uint64]string, error) {
	ids := make([]uint64, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.AuthorID)
	}
	return h.authService.UsernamesByIDs(ids)
}

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPostNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotPostAuthor):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
