package post

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nexushub/agency-api/internal/auth"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
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
	if err := db.AutoMigrate(&BlogPost{}, &auth.Profile{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func asAdmin(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), auth.RoleKey, auth.RoleAdmin)
	return r.WithContext(ctx)
}

func TestUpdateIsSparseAndCanClearContent(t *testing.T) {
	db := openTestDB(t)
	h := NewHandler(db)

	p := BlogPost{ClientID: 1, Title: "Orquídeas", Status: StatusDraft, Date: time.Now(), Content: "rascunho antigo"}
	if err := h.Repository.Create(db, &p); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Only content is present, set to empty: it must clear while title
	// and status stay untouched.
	req := httptest.NewRequest(http.MethodPut, "/posts/1", strings.NewReader(`{"content":""}`))
	req = mux.SetURLVars(asAdmin(req), map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	got, err := h.Repository.FindByID(db, p.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Content != "" {
		t.Errorf("empty content in the patch must clear it, got %q", got.Content)
	}
	if got.Title != "Orquídeas" || got.Status != StatusDraft {
		t.Errorf("omitted fields must stay untouched: %+v", got)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	db := openTestDB(t)
	h := NewHandler(db)

	p := BlogPost{ClientID: 1, Title: "Orquídeas", Status: StatusDraft, Date: time.Now()}
	if err := h.Repository.Create(db, &p); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/posts/1", strings.NewReader(`{"status":"archived"}`))
	req = mux.SetURLVars(asAdmin(req), map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}
