// Package vault stores per-client credential entries shown in the
// portal's password vault.
package vault

import "gorm.io/gorm"

// Item is one stored credential. Secrets here are client-owned data the
// portal must display back, unlike the login password which is hashed.
type Item struct {
	gorm.Model
	ClientID uint   `json:"clientId" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
	URL      string `json:"url,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
