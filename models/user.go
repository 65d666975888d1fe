package models

// User is a CMS account. Username and email are each unique.
type User struct {
	Base
	Username     string  `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	Email        string  `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	FullName     *string `json:"full_name,omitempty" db:"full_name" gorm:"type:text"`
	PasswordHash string  `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Role         Role    `json:"role" db:"role" gorm:"type:text;not null;default:author"`
	IsActive     bool    `json:"is_active" db:"is_active" gorm:"not null"`
}
