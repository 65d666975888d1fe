package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlogPost is an article on the site's blog.
type BlogPost struct {
	Base
	Title           string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug            string                      `json:"slug" db:"slug" gorm:"type:text;not null;index"`
	Excerpt         *string                     `json:"excerpt,omitempty" db:"excerpt" gorm:"type:text"`
	Body            string                      `json:"body" db:"body" gorm:"type:text;not null"`
	FeaturedImage   *string                     `json:"featured_image,omitempty" db:"featured_image" gorm:"type:text"`
	CategoryID      *uuid.UUID                  `json:"category_id,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Tags            datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	AuthorID        uuid.UUID                   `json:"author_id" db:"author_id" gorm:"type:uuid;not null;index"`
	Status          ContentStatus               `json:"status" db:"status" gorm:"type:text;not null;default:draft;index"`
	PublishedAt     *time.Time                  `json:"published_at,omitempty" db:"published_at"`
	ReadTimeMinutes int                         `json:"read_time_minutes" db:"read_time_minutes" gorm:"not null;default:1"`
}
