package repository

import (
	"github.com/hanamizu/collab-api/internal/models"
	"gorm.io/gorm"
)

// GormFriendRepository is a GORM implementation of FriendRepository
type GormFriendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new FriendRepository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &GormFriendRepository{db: db}
}

// CreateRequest creates a new friend request
func (r *GormFriendRepository) CreateRequest(req *models.FriendRequest) error {
	return r.db.Create(req).Error
}

// FindPendingBetween finds a pending request between two users in either direction
func (r *GormFriendRepository) FindPendingBetween(userA, userB uint64) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.
		Where("status = ?", models.RequestPending).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)", userA, userB, userB, userA).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindPendingFromTo finds a pending request in the given direction only
func (r *GormFriendRepository) FindPendingFromTo(from, to uint64) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.
		Where("from_id = ? AND to_id = ? AND status = ?", from, to, models.RequestPending).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequest persists a status change
func (r *GormFriendRepository) UpdateRequest(req *models.FriendRequest) error {
	return r.db.Save(req).Error
}

// DeleteRequest removes a friend request
func (r *GormFriendRepository) DeleteRequest(id uint64) error {
	return r.db.Delete(&models.FriendRequest{}, id).Error
}

// ListRequestsForUser returns all requests the user sent or received
func (r *GormFriendRepository) ListRequestsForUser(userID uint64) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.
		Where("from_id = ? OR to_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateFriendship creates the symmetric pair row
func (r *GormFriendRepository) CreateFriendship(f *models.Friendship) error {
	return r.db.Create(f).Error
}

// FindFriendship finds the pair row regardless of orientation
func (r *GormFriendRepository) FindFriendship(userA, userB uint64) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", userA, userB, userB, userA).
		First(&friendship).Error
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

// DeleteFriendship removes the pair row
func (r *GormFriendRepository) DeleteFriendship(id uint64) error {
	return r.db.Delete(&models.Friendship{}, id).Error
}

// ListFriendships returns every pair row involving the user
func (r *GormFriendRepository) ListFriendships(userID uint64) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}
