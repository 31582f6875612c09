// Package client owns the client aggregate: the denormalized composite
// of a client row and every collection it owns. All reads and writes of
// the roster go through this package's repository.
package client

import (
	"time"

	"github.com/nexushub/agency-api/internal/analytics"
	"github.com/nexushub/agency-api/internal/contract"
	"github.com/nexushub/agency-api/internal/integration"
	"github.com/nexushub/agency-api/internal/post"
	"github.com/nexushub/agency-api/internal/product"
	"github.com/nexushub/agency-api/internal/vault"

	"gorm.io/gorm"
)

// Site types.
const (
	SiteInstitutional = "institutional"
	SiteLandingPage   = "landing_page"
	SiteEcommerce     = "ecommerce"
)

// Address is the structured client address, embedded in the client row.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

// Client is the aggregate the dashboard and portal operate on. Email is
// unique and doubles as the portal login key, so two clients can never
// share one. Collections are owned: they never outlive the aggregate.
type Client struct {
	gorm.Model
	Name              string `json:"name" gorm:"not null"`
	Email             string `json:"email" gorm:"uniqueIndex;not null"`
	Company           string `json:"company"`
	Document          string `json:"document,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Avatar            string `json:"avatar,omitempty"`
	ResponsiblePerson string `json:"responsiblePerson,omitempty"`
	Notes             string `json:"notes,omitempty"`

	Address Address `json:"address" gorm:"embedded;embeddedPrefix:address_"`

	SiteURL         string    `json:"siteUrl"`
	SiteType        string    `json:"siteType" gorm:"size:20;not null;default:institutional"`
	HostingExpiry   time.Time `json:"hostingExpiry"`
	MaintenanceMode bool      `json:"maintenanceMode" gorm:"not null;default:false"`

	Posts        []post.BlogPost           `json:"posts" gorm:"foreignKey:ClientID"`
	Integrations []integration.Integration `json:"integrations" gorm:"foreignKey:ClientID"`
	Products     []product.Product         `json:"products" gorm:"foreignKey:ClientID"`
	Contracts    []contract.Contract       `json:"contracts" gorm:"foreignKey:ClientID"`
	VaultItems   []vault.Item              `json:"passwordVaultItems" gorm:"foreignKey:ClientID"`

	// Stats is the analytics side row; Visits is the 7-slot series the
	// UI consumes, hydrated from Stats on every read.
	Stats  *analytics.VisitStats `json:"-" gorm:"foreignKey:ClientID"`
	Visits []int                 `json:"visits" gorm:"-"`
}

// ValidSiteType reports whether s is a known site type.
func ValidSiteType(s string) bool {
	return s == SiteInstitutional || s == SiteLandingPage || s == SiteEcommerce
}

// hydrate enforces the aggregate invariants after a load: collections
// are never nil and visits always has exactly seven entries, even when
// the analytics row is missing.
func (c *Client) hydrate() {
	if c.Posts == nil {
		c.Posts = []post.BlogPost{}
	}
	if c.Integrations == nil {
		c.Integrations = []integration.Integration{}
	}
	if c.Products == nil {
		c.Products = []product.Product{}
	}
	if c.Contracts == nil {
		c.Contracts = []contract.Contract{}
	}
	if c.VaultItems == nil {
		c.VaultItems = []vault.Item{}
	}
	if c.Stats != nil {
		c.Visits = analytics.NormalizeWeek(c.Stats.Visits)
	} else {
		c.Visits = make([]int, analytics.WeekLength)
	}
}
