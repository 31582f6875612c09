package integration

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Integration statuses.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusPending      = "pending"
)

// Integration kinds. The kind is resolved once when the row is created,
// from the display name; behavior never branches on the name after that.
const (
	KindAnalytics = "analytics"
	KindCMS       = "cms"
	KindCRM       = "crm"
	KindChat      = "chat"
	KindOther     = "other"
)

// Integration is a third-party connection owned by one client.
type Integration struct {
	gorm.Model
	ClientID uint       `json:"clientId" gorm:"not null;index"`
	Name     string     `json:"name" gorm:"not null"`
	Kind     string     `json:"kind" gorm:"size:20;not null;default:other"`
	Icon     string     `json:"icon"`
	Status   string     `json:"status" gorm:"size:20;not null;default:disconnected"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}

// ResolveKind maps a display name to its tagged kind.
func ResolveKind(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "analytics"):
		return KindAnalytics
	case strings.Contains(n, "wordpress"), strings.Contains(n, "cms"):
		return KindCMS
	case strings.Contains(n, "hubspot"), strings.Contains(n, "crm"), strings.Contains(n, "rd station"):
		return KindCRM
	case strings.Contains(n, "whatsapp"), strings.Contains(n, "chat"):
		return KindChat
	default:
		return KindOther
	}
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	return s == StatusConnected || s == StatusDisconnected || s == StatusPending
}

// Defaults returns the integrations every new client starts with: an
// analytics provider and a CMS, both disconnected.
func Defaults(clientID uint) []Integration {
	return []Integration{
		{
			ClientID: clientID,
			Name:     "Google Analytics",
			Kind:     KindAnalytics,
			Icon:     "https://www.gstatic.com/analytics-suite/header/suite/v2/ic_analytics.svg",
			Status:   StatusDisconnected,
		},
		{
			ClientID: clientID,
			Name:     "WordPress",
			Kind:     KindCMS,
			Icon:     "https://s.w.org/style/images/about/WordPress-logotype-wmark.png",
			Status:   StatusDisconnected,
		},
	}
}
