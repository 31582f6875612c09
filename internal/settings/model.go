// Package settings holds the agency-wide configuration record. It is an
// explicit singleton behind a repository, never ambient key-value state.
package settings

import "gorm.io/gorm"

// AgencySettings is the single agency configuration row.
type AgencySettings struct {
	gorm.Model
	AgencyName     string `json:"agencyName" gorm:"not null;default:NexusHub"`
	LogoURL        string `json:"logoUrl"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone"`
	SendWelcome    bool   `json:"sendWelcome" gorm:"not null;default:true"`
	DefaultSiteURL string `json:"defaultSiteUrl"`
}
