package models

// ContactSubmission is a message sent through the site's contact form.
type ContactSubmission struct {
	Base
	Name    string           `json:"name" db:"name" gorm:"type:text;not null"`
	Email   string           `json:"email" db:"email" gorm:"type:text;not null"`
	Subject *string          `json:"subject,omitempty" db:"subject" gorm:"type:text"`
	Message string           `json:"message" db:"message" gorm:"type:text;not null"`
	Status  SubmissionStatus `json:"status" db:"status" gorm:"type:text;not null;default:new;index"`
}
