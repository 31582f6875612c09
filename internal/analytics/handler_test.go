package analytics

import (
	"net/http"
	"net/http/httptest"
	"testing"

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
	if err := db.AutoMigrate(&VisitStats{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestHandler(db *gorm.DB, knownIDs ...uint) *Handler {
	return NewHandler(db, func(_ *gorm.DB, id uint) (bool, error) {
		for _, k := range knownIDs {
			if k == id {
				return true, nil
			}
		}
		return false, nil
	})
}

func track(h *Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/track/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	h.Track(rec, req)
	return rec
}

func TestTrackRecordsVisitForKnownClient(t *testing.T) {
	db := openTestDB(t)
	h := newTestHandler(db, 7)

	if rec := track(h, "7"); rec.Code != http.StatusNoContent {
		t.Fatalf("track failed: %d %s", rec.Code, rec.Body.String())
	}

	row, err := h.Repository.FindByClient(db, 7)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	total := 0
	for _, v := range row.Visits {
		total += v
	}
	if total != 1 {
		t.Fatalf("expected exactly one recorded visit, got series %v", row.Visits)
	}
}

// The beacon is public; an unknown id must not create a row.
func TestTrackRejectsUnknownClient(t *testing.T) {
	db := openTestDB(t)
	h := newTestHandler(db, 7)

	if rec := track(h, "99"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown client, got %d", rec.Code)
	}
	var n int64
	db.Model(&VisitStats{}).Where("client_id = ?", 99).Count(&n)
	if n != 0 {
		t.Fatalf("unknown client must leave no rows, found %d", n)
	}
}

func TestTrackRejectsBadID(t *testing.T) {
	db := openTestDB(t)
	h := newTestHandler(db)
	if rec := track(h, "abc"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}
