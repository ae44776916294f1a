package dto

import (
	"time"

	"github.com/hanamizu/collab-api/internal/models"
)

// PostDTO represents a post in API responses, with the author resolved to a
// username.
type PostDTO struct {
	ID        uint64              `json:"id"`
	Author    string              `json:"author"`
	Content   string              `json:"content"`
	Options   *models.PostOptions `json:"options,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToPostDTO converts a Post model to PostDTO
func ToPostDTO(post models.Post, author string) PostDTO {
	return PostDTO{
		ID:        post.ID,
		Author:    author,
		Content:   post.Content,
		Options:   post.Options,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// ToPostDTOs converts posts using the id-to-username map
func ToPostDTOs(posts []models.Post, usernames map[uint64]string) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i, post := range posts {
		dtos[i] = ToPostDTO(post, usernames[post.AuthorID])
	}
	return dtos
}
