package models

import (
	"time"

	"gorm.io/gorm"
)

// PostOptions is an opaque display configuration chosen by the author.
type PostOptions struct {
	BackgroundColor string `json:"background_color,omitempty"`
}

type Post struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	AuthorID  uint64         `gorm:"not null;index" json:"author_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Options   *PostOptions   `gorm:"serializer:json" json:"options,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
