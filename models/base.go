package models

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the fields every stored document carries.
type Base struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null;index"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}

// Document is implemented by pointers to every model embedding Base.
type Document interface {
	Stamp(now time.Time)
}

// Stamp assigns a fresh id and both timestamps. It is only called once, on insert.
func (b *Base) Stamp(now time.Time) {
	b.ID = uuid.New()
	b.CreatedAt = now
	b.UpdatedAt = now
}

// All returns every model managed by the API, in migration order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Tag{},
		&BlogPost{},
		&Prompt{},
		&NewsletterSubscriber{},
		&ContactSubmission{},
		&StatusCheck{},
	}
}
