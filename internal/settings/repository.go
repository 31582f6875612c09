package settings

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	// Get returns the settings row, creating the default one on first use.
	Get(db *gorm.DB) (*AgencySettings, error)
	Update(db *gorm.DB, s *AgencySettings) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Get(db *gorm.DB) (*AgencySettings, error) {
	var s AgencySettings
	err := db.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = AgencySettings{AgencyName: "NexusHub", SendWelcome: true}
		if err := db.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repositoryImpl) Update(db *gorm.DB, s *AgencySettings) error {
	return db.Save(s).Error
}
