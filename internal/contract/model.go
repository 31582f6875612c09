package contract

import (
	"time"

	"gorm.io/gorm"
)

// Contract statuses.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
	StatusPending = "pending"
)

// Contract is a service agreement owned by one client.
type Contract struct {
	gorm.Model
	ClientID  uint      `json:"clientId" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Value     float64   `json:"value" gorm:"not null;default:0"`
	Status    string    `json:"status" gorm:"size:20;not null;default:pending"`
	FileURL   string    `json:"fileUrl,omitempty"`
}

// ValidStatus reports whether s is a known contract status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusExpired || s == StatusPending
}
