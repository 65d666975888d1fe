package models

import "time"

// StatusCheck is a legacy liveness ping recorded by clients.
type StatusCheck struct {
	Base
	ClientName string    `json:"client_name" db:"client_name" gorm:"type:text;not null"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp" gorm:"not null"`
}
