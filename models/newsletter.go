package models

import "gorm.io/datatypes"

// NewsletterSubscriber is one email on the mailing list.
type NewsletterSubscriber struct {
	Base
	Email    string                      `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	IsActive bool                        `json:"is_active" db:"is_active" gorm:"not null"`
	Tags     datatypes.JSONSlice[string] `json:"tags" db:"tags"`
}
