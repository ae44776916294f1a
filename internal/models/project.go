package models

import (
	"time"

	"gorm.io/gorm"
)

// Project name uniqueness is enforced by a check before insert; the column is
// indexed but not uniquely, so soft-deleted projects do not block name reuse.
type Project struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);index;not null" json:"name"`
	CreatorID uint64         `gorm:"not null;index" json:"creator_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator User   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Tasks   []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
