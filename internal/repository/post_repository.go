package repository

import (
	"github.com/hanamizu/collab-api/internal/database"
	"github.com/hanamizu/collab-api/internal/models"
	"github.com/hanamizu/collab-api/internal/utils"
	"gorm.io/gorm"
)

// GormPostRepository is a GORM implementation of PostRepository
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// FindByID finds a post by ID
func (r *GormPostRepository) FindByID(id uint64) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts, newest first
func (r *GormPostRepository) List(params utils.PaginationParams) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}), params)
}

// ListByAuthor returns one author's posts, newest first
func (r *GormPostRepository) ListByAuthor(authorID uint64, params utils.PaginationParams) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{}).Where("author_id = ?", authorID)
	return r.list(query, params)
}

func (r *GormPostRepository) list(query *gorm.DB, params utils.PaginationParams) ([]models.Post, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Update persists changes to a post
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete soft deletes a post
func (r *GormPostRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Post{}, id).Error
}
