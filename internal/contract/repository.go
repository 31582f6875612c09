package contract

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, c *Contract) error
	CreateMany(db *gorm.DB, rows []Contract) error
	FindByID(db *gorm.DB, id uint) (*Contract, error)
	ListByClient(db *gorm.DB, clientID uint) ([]Contract, error)
	// ReplaceForClient deletes every contract row of the client and inserts
	// the supplied set wholesale. An empty slice means delete-all.
	ReplaceForClient(db *gorm.DB, clientID uint, rows []Contract) error
	Update(db *gorm.DB, c *Contract) error
	Delete(db *gorm.DB, id uint) error
	DeleteByClient(db *gorm.DB, clientID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *Contract) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) CreateMany(db *gorm.DB, rows []Contract) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Contract, error) {
	var c Contract
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListByClient(db *gorm.DB, clientID uint) ([]Contract, error) {
	var rows []Contract
	err := db.Where("client_id = ?", clientID).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ReplaceForClient(db *gorm.DB, clientID uint, rows []Contract) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("client_id = ?", clientID).Delete(&Contract{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].ClientID = clientID
		}
		return tx.Create(&rows).Error
	})
}

func (r *repositoryImpl) Update(db *gorm.DB, c *Contract) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Contract{}, id).Error
}

func (r *repositoryImpl) DeleteByClient(db *gorm.DB, clientID uint) error {
	return db.Where("client_id = ?", clientID).Delete(&Contract{}).Error
}
