package product

import "gorm.io/gorm"

type Repository interface {
	CreateMany(db *gorm.DB, rows []Product) error
	ListByClient(db *gorm.DB, clientID uint) ([]Product, error)
	// ReplaceForClient deletes every product row of the client and inserts
	// the supplied set wholesale. An empty slice means delete-all.
	ReplaceForClient(db *gorm.DB, clientID uint, rows []Product) error
	DeleteByClient(db *gorm.DB, clientID uint) error

	CreateGlobal(db *gorm.DB, g *GlobalProduct) error
	ListGlobal(db *gorm.DB) ([]GlobalProduct, error)
	FindGlobalByID(db *gorm.DB, id uint) (*GlobalProduct, error)
	UpdateGlobal(db *gorm.DB, g *GlobalProduct) error
	DeleteGlobal(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) CreateMany(db *gorm.DB, rows []Product) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

func (r *repositoryImpl) ListByClient(db *gorm.DB, clientID uint) ([]Product, error) {
	var rows []Product
	err := db.Where("client_id = ?", clientID).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ReplaceForClient(db *gorm.DB, clientID uint, rows []Product) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("client_id = ?", clientID).Delete(&Product{}).Error; err != nil {
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

func (r *repositoryImpl) DeleteByClient(db *gorm.DB, clientID uint) error {
	return db.Where("client_id = ?", clientID).Delete(&Product{}).Error
}

func (r *repositoryImpl) CreateGlobal(db *gorm.DB, g *GlobalProduct) error {
	return db.Create(g).Error
}

func (r *repositoryImpl) ListGlobal(db *gorm.DB) ([]GlobalProduct, error) {
	var rows []GlobalProduct
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) FindGlobalByID(db *gorm.DB, id uint) (*GlobalProduct, error) {
	var g GlobalProduct
	if err := db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repositoryImpl) UpdateGlobal(db *gorm.DB, g *GlobalProduct) error {
	return db.Save(g).Error
}

func (r *repositoryImpl) DeleteGlobal(db *gorm.DB, id uint) error {
	return db.Delete(&GlobalProduct{}, id).Error
}
