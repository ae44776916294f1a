package models

import (
	"time"

	"gorm.io/gorm"
)

// Username uniqueness is checked before insert; the column is indexed but not
// uniquely, so a soft-deleted user does not block username reuse.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(255);index;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Posts    []Post    `gorm:"foreignKey:AuthorID" json:"-"`
	Projects []Project `gorm:"foreignKey:CreatorID" json:"-"`
}
