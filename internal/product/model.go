package product

import "gorm.io/gorm"

// Renewal cycles for catalog products.
const (
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleAnnual    = "annual"
)

// Product is a service/product owned by one client.
type Product struct {
	gorm.Model
	ClientID    uint    `json:"clientId" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null;default:0"`
	Active      bool    `json:"active" gorm:"not null;default:true"`
}

// GlobalProduct is a catalog entry not tied to any client. Admins attach
// copies of it to clients as owned products.
type GlobalProduct struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null;default:0"`
	Cycle       string  `json:"cycle" gorm:"size:20;not null;default:monthly"`
	Active      bool    `json:"active" gorm:"not null;default:true"`
}

// ValidCycle reports whether c is a known renewal cycle.
func ValidCycle(c string) bool {
	return c == CycleMonthly || c == CycleQuarterly || c == CycleAnnual
}
