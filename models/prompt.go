package models

import "gorm.io/datatypes"

// Prompt is a published generative-AI prompt.
type Prompt struct {
	Base
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description string                      `json:"description" db:"description" gorm:"type:text;not null"`
	PromptText  string                      `json:"prompt_text" db:"prompt_text" gorm:"type:text;not null"`
	Category    string                      `json:"category" db:"category" gorm:"type:text;not null;index"`
	Tags        datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	Likes       int                         `json:"likes" db:"likes" gorm:"not null;default:0"`
	Views       int                         `json:"views" db:"views" gorm:"not null;default:0"`
}
