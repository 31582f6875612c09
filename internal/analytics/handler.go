package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves the visit beacon the client sites ping. It is public:
// the tracked site has no session, so the handler verifies the client
// id itself through KnownClient before writing anything.
type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	KnownClient func(db *gorm.DB, id uint) (bool, error)
}

func NewHandler(db *gorm.DB, knownClient func(db *gorm.DB, id uint) (bool, error)) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), KnownClient: knownClient}
}

// Track increments today's slot in the client's weekly series.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	known, err := h.KnownClient(h.DB, uint(clientID))
	if err != nil {
		http.Error(w, "failed to record visit", http.StatusInternalServerError)
		return
	}
	if !known {
		http.Error(w, "unknown client", http.StatusNotFound)
		return
	}
	day := int(time.Now().Weekday())
	if err := h.Repository.Record(h.DB, uint(clientID), day); err != nil {
		http.Error(w, "failed to record visit", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
