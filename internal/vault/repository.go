package vault

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, item *Item) error
	FindByID(db *gorm.DB, id uint) (*Item, error)
	ListByClient(db *gorm.DB, clientID uint) ([]Item, error)
	Update(db *gorm.DB, item *Item) error
	Delete(db *gorm.DB, id uint) error
	DeleteByClient(db *gorm.DB, clientID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, item *Item) error {
	return db.Create(item).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Item, error) {
	var item Item
	if err := db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) ListByClient(db *gorm.DB, clientID uint) ([]Item, error) {
	var items []Item
	err := db.Where("client_id = ?", clientID).Find(&items).Error
	return items, err
}

func (r *repositoryImpl) Update(db *gorm.DB, item *Item) error {
	return db.Save(item).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Item{}, id).Error
}

func (r *repositoryImpl) DeleteByClient(db *gorm.DB, clientID uint) error {
	return db.Where("client_id = ?", clientID).Delete(&Item{}).Error
}
