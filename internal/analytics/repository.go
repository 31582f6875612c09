package analytics

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, clientID uint, visits []int) error
	FindByClient(db *gorm.DB, clientID uint) (*VisitStats, error)
	Record(db *gorm.DB, clientID uint, dayIndex int) error
	DeleteByClient(db *gorm.DB, clientID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, clientID uint, visits []int) error {
	row := VisitStats{
		ClientID: clientID,
		Visits:   datatypes.NewJSONSlice(NormalizeWeek(visits)),
	}
	return db.Create(&row).Error
}

func (r *repositoryImpl) FindByClient(db *gorm.DB, clientID uint) (*VisitStats, error) {
	var row VisitStats
	err := db.Where("client_id = ?", clientID).First(&row).Error
	if err != nil {
		return nil, err
	}
	row.Visits = datatypes.NewJSONSlice(NormalizeWeek(row.Visits))
	return &row, nil
}

// Record increments one day slot, creating the row if absent.
func (r *repositoryImpl) Record(db *gorm.DB, clientID uint, dayIndex int) error {
	if dayIndex < 0 || dayIndex >= WeekLength {
		return gorm.ErrInvalidData
	}
	var row VisitStats
	err := db.Where("client_id = ?", clientID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		visits := make([]int, WeekLength)
		visits[dayIndex] = 1
		return r.Create(db, clientID, visits)
	}
	if err != nil {
		return err
	}
	visits := NormalizeWeek(row.Visits)
	visits[dayIndex]++
	return db.Model(&row).Update("visits", datatypes.NewJSONSlice(visits)).Error
}

func (r *repositoryImpl) DeleteByClient(db *gorm.DB, clientID uint) error {
	return db.Where("client_id = ?", clientID).Delete(&VisitStats{}).Error
}
