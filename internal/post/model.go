package post

import (
	"time"

	"gorm.io/gorm"
)

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// BlogPost is a blog entry owned by one client.
type BlogPost struct {
	gorm.Model
	ClientID uint      `json:"clientId" gorm:"not null;index"`
	Title    string    `json:"title" gorm:"not null"`
	Status   string    `json:"status" gorm:"size:20;not null;default:draft"`
	Date     time.Time `json:"date"`
	Content  string    `json:"content,omitempty"`
}

// ValidStatus reports whether s is one of the known post statuses.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusScheduled
}
