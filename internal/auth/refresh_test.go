package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Profile{}, &RefreshToken{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestRefreshRotation(t *testing.T) {
	db := openTestDB(t)

	raw, err := IssueRefreshToken(db, 1, 30*time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	next, rt, err := RotateRefreshToken(db, raw, 30*time.Minute)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if next == raw {
		t.Fatal("rotation must produce a new token")
	}
	if rt.ProfileID != 1 {
		t.Fatalf("rotated token lost its profile: %+v", rt)
	}

	// The consumed token is dead.
	if _, _, err := RotateRefreshToken(db, raw, 30*time.Minute); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("reusing a rotated token must fail, got %v", err)
	}
	// The successor still works.
	if _, _, err := RotateRefreshToken(db, next, 30*time.Minute); err != nil {
		t.Fatalf("successor must rotate: %v", err)
	}
}

func TestRefreshSlidingWindowExpiry(t *testing.T) {
	db := openTestDB(t)

	raw, err := IssueRefreshToken(db, 1, -time.Minute) // already outside the window
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := RotateRefreshToken(db, raw, 30*time.Minute); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("idle session must not renew, got %v", err)
	}
}

func TestRevokeFamilyKillsDescendants(t *testing.T) {
	db := openTestDB(t)

	raw, _ := IssueRefreshToken(db, 1, 30*time.Minute)
	next, _, err := RotateRefreshToken(db, raw, 30*time.Minute)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}

	if err := RevokeFamily(db, next); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, _, err := RotateRefreshToken(db, next, 30*time.Minute); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("revoked family must not rotate, got %v", err)
	}
}

func TestRevokeAllForProfile(t *testing.T) {
	db := openTestDB(t)

	a, _ := IssueRefreshToken(db, 5, 30*time.Minute)
	b, _ := IssueRefreshToken(db, 5, 30*time.Minute)
	other, _ := IssueRefreshToken(db, 6, 30*time.Minute)

	if err := RevokeAllForProfile(db, 5); err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	if _, _, err := RotateRefreshToken(db, a, time.Minute); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatal("token a should be revoked")
	}
	if _, _, err := RotateRefreshToken(db, b, time.Minute); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatal("token b should be revoked")
	}
	if _, _, err := RotateRefreshToken(db, other, time.Minute); err != nil {
		t.Fatalf("other profile's token must survive: %v", err)
	}
}
