package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"gorm.io/gorm"
)

// RefreshToken rows implement the sliding session window: every refresh
// rotates the token and pushes ExpiresAt forward, so a session with no
// activity inside the window can no longer be renewed (forced logout).
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	ProfileID uint      `gorm:"index"`
	FamilyID  string    `gorm:"index"`
	Hash      string    `gorm:"uniqueIndex"`
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

var ErrRefreshInvalid = errors.New("refresh token invalid or expired")

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// IssueRefreshToken starts a new token family for a fresh login.
func IssueRefreshToken(db *gorm.DB, profileID uint, ttl time.Duration) (string, error) {
	raw, err := genRaw()
	if err != nil {
		return "", err
	}
	family, err := genRaw()
	if err != nil {
		return "", err
	}
	rt := RefreshToken{
		ProfileID: profileID,
		FamilyID:  family,
		Hash:      hashRaw(raw),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// RotateRefreshToken validates raw, revokes it and issues a successor in
// the same family with a renewed sliding window.
func RotateRefreshToken(db *gorm.DB, raw string, ttl time.Duration) (string, *RefreshToken, error) {
	var current RefreshToken
	err := db.Where("hash = ?", hashRaw(raw)).First(&current).Error
	if err != nil {
		return "", nil, ErrRefreshInvalid
	}
	if current.RevokedAt != nil || time.Now().After(current.ExpiresAt) {
		return "", nil, ErrRefreshInvalid
	}

	now := time.Now()
	nextRaw, err := genRaw()
	if err != nil {
		return "", nil, err
	}
	next := RefreshToken{
		ProfileID: current.ProfileID,
		FamilyID:  current.FamilyID,
		Hash:      hashRaw(nextRaw),
		ExpiresAt: now.Add(ttl),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&current).Update("revoked_at", &now).Error; err != nil {
			return err
		}
		return tx.Create(&next).Error
	})
	if err != nil {
		return "", nil, err
	}
	return nextRaw, &next, nil
}

// RevokeFamily invalidates every token descended from raw's family.
// Used on logout and when a client aggregate is deleted.
func RevokeFamily(db *gorm.DB, raw string) error {
	var current RefreshToken
	if err := db.Where("hash = ?", hashRaw(raw)).First(&current).Error; err != nil {
		return ErrRefreshInvalid
	}
	now := time.Now()
	return db.Model(&RefreshToken{}).
		Where("family_id = ?", current.FamilyID).
		Update("revoked_at", &now).Error
}

// RevokeAllForProfile invalidates every live token of a profile.
func RevokeAllForProfile(db *gorm.DB, profileID uint) error {
	now := time.Now()
	return db.Model(&RefreshToken{}).
		Where("profile_id = ? AND revoked_at IS NULL", profileID).
		Update("revoked_at", &now).Error
}
