package auth

import "gorm.io/gorm"

// Supported roles. Anything else is an error, never a privilege default.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Profile is the login record. Client profiles point at their aggregate
// via ClientID; admin profiles stand alone. Passwords are stored as
// bcrypt hashes only.
type Profile struct {
	gorm.Model
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"size:20;not null"`
	ClientID     *uint  `json:"clientId,omitempty" gorm:"index"`
}

// FindProfileByEmail looks up a login record by its unique email.
func FindProfileByEmail(db *gorm.DB, email string) (*Profile, error) {
	var p Profile
	if err := db.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProfileByID looks up a login record by primary key.
func FindProfileByID(db *gorm.DB, id uint) (*Profile, error) {
	var p Profile
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
