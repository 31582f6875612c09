package post

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, p *BlogPost) error
	FindByID(db *gorm.DB, id uint) (*BlogPost, error)
	ListByClient(db *gorm.DB, clientID uint) ([]BlogPost, error)
	Update(db *gorm.DB, p *BlogPost) error
	Delete(db *gorm.DB, id uint) error
	DeleteByClient(db *gorm.DB, clientID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, p *BlogPost) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*BlogPost, error) {
	var p BlogPost
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ListByClient(db *gorm.DB, clientID uint) ([]BlogPost, error) {
	var posts []BlogPost
	err := db.Where("client_id = ?", clientID).Order("date DESC").Find(&posts).Error
	return posts, err
}

func (r *repositoryImpl) Update(db *gorm.DB, p *BlogPost) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&BlogPost{}, id).Error
}

func (r *repositoryImpl) DeleteByClient(db *gorm.DB, clientID uint) error {
	return db.Where("client_id = ?", clientID).Delete(&BlogPost{}).Error
}
