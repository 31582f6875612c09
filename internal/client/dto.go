package client

import (
	"time"

	"github.com/nexushub/agency-api/internal/contract"
	"github.com/nexushub/agency-api/internal/product"
)

// CreateClientRequest carries the admin "new client" form. Password is
// optional; a temporary one is generated when absent. InitialProducts
// become owned product rows in the same transaction.
type CreateClientRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Company           string  `json:"company"`
	Document          string  `json:"document"`
	Phone             string  `json:"phone"`
	Avatar            string  `json:"avatar"`
	ResponsiblePerson string  `json:"responsiblePerson"`
	Notes             string  `json:"notes"`
	Address           Address `json:"address"`

	SiteURL         string    `json:"siteUrl"`
	SiteType        string    `json:"siteType"`
	HostingExpiry   time.Time `json:"hostingExpiry"`
	MaintenanceMode bool      `json:"maintenanceMode"`

	Password        string            `json:"password"`
	InitialProducts []product.Product `json:"initialProducts"`
	Visits          []int             `json:"visits"`
}

// UpdateClientRequest is a sparse patch: nil means "leave untouched".
// Collections are deliberately absent here; they have their own replace
// operations so an omitted field can never wipe a collection.
type UpdateClientRequest struct {
	Name              *string  `json:"name"`
	Email             *string  `json:"email"`
	Company           *string  `json:"company"`
	Document          *string  `json:"document"`
	Phone             *string  `json:"phone"`
	Avatar            *string  `json:"avatar"`
	ResponsiblePerson *string  `json:"responsiblePerson"`
	Notes             *string  `json:"notes"`
	Address           *Address `json:"address"`

	SiteURL         *string    `json:"siteUrl"`
	SiteType        *string    `json:"siteType"`
	HostingExpiry   *time.Time `json:"hostingExpiry"`
	MaintenanceMode *bool      `json:"maintenanceMode"`
}

// ReplaceProductsRequest replaces a client's product rows wholesale.
// An empty list deletes them all.
type ReplaceProductsRequest struct {
	Products []product.Product `json:"products"`
}

// ReplaceContractsRequest replaces a client's contract rows wholesale.
type ReplaceContractsRequest struct {
	Contracts []contract.Contract `json:"contracts"`
}
