package client

import (
	"errors"
	"fmt"

	"github.com/nexushub/agency-api/internal/analytics"
	"github.com/nexushub/agency-api/internal/auth"
	"github.com/nexushub/agency-api/internal/contract"
	"github.com/nexushub/agency-api/internal/integration"
	"github.com/nexushub/agency-api/internal/models"
	"github.com/nexushub/agency-api/internal/post"
	"github.com/nexushub/agency-api/internal/product"
	"github.com/nexushub/agency-api/internal/vault"

	"gorm.io/gorm"
)

// Repository maps between the relational tables and the client
// aggregate. Every read runs through the same preload chain, so the
// schema→aggregate mapping has exactly one code path.
type Repository interface {
	ListAll(db *gorm.DB) ([]Client, error)
	Exists(db *gorm.DB, id uint) (bool, error)
	FindByID(db *gorm.DB, id uint) (*Client, error)
	FindByEmail(db *gorm.DB, email string) (*Client, error)
	Create(db *gorm.DB, c *Client, passwordHash string, initialProducts []product.Product, visits []int) (uint, error)
	UpdateFields(db *gorm.DB, id uint, req *UpdateClientRequest) (*Client, error)
	ReplaceProducts(db *gorm.DB, id uint, rows []product.Product) error
	ReplaceContracts(db *gorm.DB, id uint, rows []contract.Contract) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct {
	products  product.Repository
	contracts contract.Repository
}

func NewRepository() Repository {
	return &repositoryImpl{
		products:  product.NewRepository(),
		contracts: contract.NewRepository(),
	}
}

func withCollections(db *gorm.DB) *gorm.DB {
	return db.Preload("Posts").
		Preload("Integrations").
		Preload("Products").
		Preload("Contracts").
		Preload("VaultItems").
		Preload("Stats")
}

// ListAll returns the full roster. An empty roster is a valid result;
// only a failing query is an error.
func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Client, error) {
	var clients []Client
	if err := withCollections(db).Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	for i := range clients {
		clients[i].hydrate()
	}
	return clients, nil
}

// Exists is the lightweight lookup for callers that only need to know
// whether the id resolves, like the public visit beacon.
func (r *repositoryImpl) Exists(db *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := db.Model(&Client{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return n > 0, nil
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Client, error) {
	var c Client
	err := withCollections(db).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	c.hydrate()
	return &c, nil
}

// FindByEmail is the client-login lookup. "No such client" is an
// expected outcome (ErrNotFound), distinct from a backend failure.
func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Client, error) {
	var c Client
	err := withCollections(db).Where("email = ?", email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	c.hydrate()
	return &c, nil
}

// Create inserts the aggregate in one transaction: client row, login
// profile, analytics row, default integrations, initial products. The
// FK dependency fixes the order; the transaction rules out the partial
// aggregates the old flow could leave behind.
func (r *repositoryImpl) Create(db *gorm.DB, c *Client, passwordHash string, initialProducts []product.Product, visits []int) (uint, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}

		clientID := c.ID
		profile := auth.Profile{
			Email:        c.Email,
			PasswordHash: passwordHash,
			Role:         auth.RoleClient,
			ClientID:     &clientID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		if err := analytics.NewRepository().Create(tx, clientID, visits); err != nil {
			return err
		}

		defaults := integration.Defaults(clientID)
		if err := integration.NewRepository().CreateMany(tx, defaults); err != nil {
			return err
		}

		if len(initialProducts) > 0 {
			for i := range initialProducts {
				initialProducts[i].ID = 0
				initialProducts[i].ClientID = clientID
			}
			if err := r.products.CreateMany(tx, initialProducts); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, models.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return c.ID, nil
}

// UpdateFields patches only the scalar fields present in req. Untouched
// fields and all collections stay byte-identical. An email change also
// moves the linked login profile, which keys on the same address.
func (r *repositoryImpl) UpdateFields(db *gorm.DB, id uint, req *UpdateClientRequest) (*Client, error) {
	var existing Client
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	emailChanged := req.Email != nil && *req.Email != existing.Email

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Company != nil {
		existing.Company = *req.Company
	}
	if req.Document != nil {
		existing.Document = *req.Document
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Avatar != nil {
		existing.Avatar = *req.Avatar
	}
	if req.ResponsiblePerson != nil {
		existing.ResponsiblePerson = *req.ResponsiblePerson
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.SiteURL != nil {
		existing.SiteURL = *req.SiteURL
	}
	if req.SiteType != nil {
		existing.SiteType = *req.SiteType
	}
	if req.HostingExpiry != nil {
		existing.HostingExpiry = *req.HostingExpiry
	}
	if req.MaintenanceMode != nil {
		existing.MaintenanceMode = *req.MaintenanceMode
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		if emailChanged {
			return tx.Model(&auth.Profile{}).
				Where("client_id = ?", id).
				Update("email", existing.Email).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return r.FindByID(db, id)
}

// ReplaceProducts swaps a client's product rows wholesale. Collections
// other than products are untouched.
func (r *repositoryImpl) ReplaceProducts(db *gorm.DB, id uint, rows []product.Product) error {
	if _, err := r.FindByID(db, id); err != nil {
		return err
	}
	if err := r.products.ReplaceForClient(db, id, rows); err != nil {
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return nil
}

// ReplaceContracts swaps a client's contract rows wholesale.
func (r *repositoryImpl) ReplaceContracts(db *gorm.DB, id uint, rows []contract.Contract) error {
	if _, err := r.FindByID(db, id); err != nil {
		return err
	}
	if err := r.contracts.ReplaceForClient(db, id, rows); err != nil {
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return nil
}

// Delete removes every owned row — posts, integrations, products,
// contracts, vault items, the analytics row, the login profile and its
// refresh tokens — then the client row, in one transaction. Retention
// policy: nothing owned outlives the aggregate. Deletes are hard
// (Unscoped): a soft-deleted row would keep the email in the unique
// index and block re-registering the same address.
func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	var existing Client
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := post.NewRepository().DeleteByClient(tx.Unscoped(), id); err != nil {
			return err
		}
		if err := integration.NewRepository().DeleteByClient(tx.Unscoped(), id); err != nil {
			return err
		}
		if err := r.products.DeleteByClient(tx.Unscoped(), id); err != nil {
			return err
		}
		if err := r.contracts.DeleteByClient(tx.Unscoped(), id); err != nil {
			return err
		}
		if err := vault.NewRepository().DeleteByClient(tx.Unscoped(), id); err != nil {
			return err
		}
		if err := analytics.NewRepository().DeleteByClient(tx.Unscoped(), id); err != nil {
			return err
		}

		var profile auth.Profile
		err := tx.Where("client_id = ?", id).First(&profile).Error
		if err == nil {
			if err := auth.RevokeAllForProfile(tx, profile.ID); err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Unscoped().Delete(&Client{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return nil
}
