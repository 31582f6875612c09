package integration

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, i *Integration) error
	CreateMany(db *gorm.DB, rows []Integration) error
	FindByID(db *gorm.DB, id uint) (*Integration, error)
	ListByClient(db *gorm.DB, clientID uint) ([]Integration, error)
	UpdateStatus(db *gorm.DB, id uint, status string, lastSync *time.Time) (*Integration, error)
	Delete(db *gorm.DB, id uint) error
	DeleteByClient(db *gorm.DB, clientID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, i *Integration) error {
	return db.Create(i).Error
}

func (r *repositoryImpl) CreateMany(db *gorm.DB, rows []Integration) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Integration, error) {
	var i Integration
	if err := db.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repositoryImpl) ListByClient(db *gorm.DB, clientID uint) ([]Integration, error) {
	var rows []Integration
	err := db.Where("client_id = ?", clientID).Find(&rows).Error
	return rows, err
}

// UpdateStatus is a single-row update; lastSync defaults to now when the
// integration connects and no timestamp is supplied.
func (r *repositoryImpl) UpdateStatus(db *gorm.DB, id uint, status string, lastSync *time.Time) (*Integration, error) {
	var i Integration
	if err := db.First(&i, id).Error; err != nil {
		return nil, err
	}
	i.Status = status
	if lastSync != nil {
		i.LastSync = lastSync
	} else if status == StatusConnected {
		now := time.Now()
		i.LastSync = &now
	}
	if err := db.Save(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Integration{}, id).Error
}

func (r *repositoryImpl) DeleteByClient(db *gorm.DB, clientID uint) error {
	return db.Where("client_id = ?", clientID).Delete(&Integration{}).Error
}
