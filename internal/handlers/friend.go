package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hanamizu/collab-api/internal/dto"
	apierrors "github.com/hanamizu/collab-api/internal/errors"
	"github.com/hanamizu/collab-api/internal/middleware"
	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/services"
)

// FriendHandler coordinates friending HTTP handlers. Counterparties are
// addressed by username in the URL and resolved at the edge.
type FriendHandler struct {
	friendService *services.FriendService
	authService   *services.AuthService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friendService *services.FriendService, authService *services.AuthService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		authService:   authService,
	}
}

// GetFriends returns the caller's friends as usernames.
func (h *FriendHandler) GetFriends(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	friendIDs, err := h.friendService.Friends(userID)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	usernames, err := h.authService.UsernamesByIDs(friendIDs)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	friends := make([]string, len(friendIDs))
	for i, id := range friendIDs {
		friends[i] = usernames[id]
	}

	c.JSON(http.StatusOK, gin.H{
		"friends": friends,
	})
}

// RemoveFriend deletes the friendship with the named user.
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	friend, err := h.authService.GetUserByUsername(c.Param("friend"))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.friendService.RemoveFriend(userID, friend.ID); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend removed successfully",
	})
}

// GetRequests returns every friend request involving the caller.
func (h *FriendHandler) GetRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	requests, err := h.friendService.Requests(userID)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	usernames, err := h.requestUsernames(requests)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": dto.ToFriendRequestDTOs(requests, usernames),
	})
}

// SendRequest sends a friend request to the named user.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	to, err := h.authService.GetUserByUsername(c.Param("to"))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if _, err := h.friendService.SendRequest(userID, to.ID); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Friend request sent",
	})
}

// RemoveRequest withdraws a pending request the caller sent.
func (h *FriendHandler) RemoveRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	to, err := h.authService.GetUserByUsername(c.Param("to"))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.friendService.RemoveRequest(userID, to.ID); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend request withdrawn",
	})
}

// AcceptRequest accepts a pending request addressed to the caller.
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	h.respondToRequest(c, true)
}

// RejectRequest rejects a pending request addressed to the caller.
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	h.respondToRequest(c, false)
}

func (h *FriendHandler) respondToRequest(c *gin.Context, accept bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	from, err := h.authService.GetUserByUsername(c.Param("from"))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if accept {
		err = h.friendService.AcceptRequest(from.ID, userID)
	} else {
		err = h.friendService.RejectRequest(from.ID, userID)
	}
	if err != nil {
		respondFriendError(c, err)
		return
	}

	message := "Friend request rejected"
	if accept {
		message = "Friend request accepted"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func (h *FriendHandler) requestUsernames(requests []models.FriendRequest) (map[uint64]string, error) {
	ids := make([]uint64, 0, len(requests)*2)
	for _, req := range requests {
		ids = append(ids, req.FromID, req.ToID)
	}
	return h.authService.UsernamesByIDs(ids)
}

func respondFriendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSelfFriend),
		errors.Is(err, services.ErrAlreadyFriends),
		errors.Is(err, services.ErrRequestPending):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrFriendshipNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
