package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/repository"
	"github.com/hanamizu/collab-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostAuthor   = errors.New("only the author can modify this post")
	ErrContentRequired = errors.New("content is required")
)

// PostService handles authored content business logic.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
	}
}

// CreatePostInput represents input for creating a post.
type CreatePostInput struct {
	AuthorID uint64
	Content  string
	Options  *models.PostOptions
}

// Create creates a new post. The author is fixed at creation.
func (s *PostService) Create(input CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	post := &models.Post{
		AuthorID: input.AuthorID,
		Content:  input.Content,
		Options:  input.Options,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// UpdatePostInput represents a partial update; nil fields are left untouched.
type UpdatePostInput struct {
	Content *string
	Options *models.PostOptions
}

// Update applies a partial update to a post.
func (s *PostService) Update(id uint64, input UpdatePostInput) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, ErrContentRequired
		}
		post.Content = *input.Content
	}
	if input.Options != nil {
		post.Options = input.Options
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// Delete removes a post.
func (s *PostService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.postRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// Get retrieves a post by ID.
func (s *PostService) Get(id uint64) (*models.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// List returns posts, newest first.
func (s *PostService) List(params utils.PaginationParams) ([]models.Post, int64, error) {
	posts, total, err := s.postRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// ListByAuthor returns one author's posts, newest first.
func (s *PostService) ListByAuthor(authorID uint64, params utils.PaginationParams) ([]models.Post, int64, error) {
	posts, total, err := s.postRepo.ListByAuthor(authorID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// AssertAuthor verifies the post exists and the user authored it.
func (s *PostService) AssertAuthor(id, userID uint64) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}

	return post, nil
}
