package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Description string `gorm:"type:text;not null" json:"description"`
	ProjectID   uint64 `gorm:"not null;index" json:"project_id"`
	// AssigneeID nil means unassigned; clearing an assignment sets it back to
	// NULL rather than to any sentinel value.
	AssigneeID *uint64        `gorm:"index" json:"assignee_id"`
	Completed  bool           `gorm:"not null;default:false" json:"completed"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
