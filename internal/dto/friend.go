package dto

import (
	"time"

	"github.com/hanamizu/collab-api/internal/models"
)

// FriendRequestDTO represents a friend request with both sides resolved to
// usernames.
type FriendRequestDTO struct {
	From      string                     `json:"from"`
	To        string                     `json:"to"`
	Status    models.FriendRequestStatus `json:"status"`
	CreatedAt time.Time                  `json:"created_at"`
}

// ToFriendRequestDTOs converts requests using the id-to-username map
func ToFriendRequestDTOs(requests []models.FriendRequest, usernames map[uint64]string) []FriendRequestDTO {
	dtos := make([]FriendRequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = FriendRequestDTO{
			From:      usernames[req.FromID],
			To:        usernames[req.ToID],
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
		}
	}
	return dtos
}
