package models

import (
	"time"

	"gorm.io/gorm"
)

type FriendRequestStatus string

const (
	RequestPending  FriendRequestStatus = "pending"
	RequestAccepted FriendRequestStatus = "accepted"
	RequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest records one directed request. At most one pending request may
// exist between two users, in either direction.
type FriendRequest struct {
	ID        uint64              `gorm:"primarykey" json:"id"`
	FromID    uint64              `gorm:"not null;index" json:"from_id"`
	ToID      uint64              `gorm:"not null;index" json:"to_id"`
	Status    FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relations
	From User `gorm:"foreignKey:FromID" json:"from,omitempty"`
	To   User `gorm:"foreignKey:ToID" json:"to,omitempty"`
}

// Friendship is symmetric: one row covers both directions and either side may
// remove it.
type Friendship struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	User1ID   uint64    `gorm:"not null;index" json:"user1_id"`
	User2ID   uint64    `gorm:"not null;index" json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}
