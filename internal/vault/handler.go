package vault

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nexushub/agency-api/internal/auth"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

func (h *Handler) canAccess(r *http.Request, clientID uint) bool {
	if auth.RoleFrom(r.Context()) == auth.RoleAdmin {
		return true
	}
	profileID, ok := auth.ProfileIDFrom(r.Context())
	if !ok {
		return false
	}
	profile, err := auth.FindProfileByID(h.DB, profileID)
	if err != nil || profile.ClientID == nil {
		return false
	}
	return *profile.ClientID == clientID
}

type itemRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

// Create stores a vault entry for a client.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	if !h.canAccess(r, uint(clientID)) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	item := Item{
		ClientID: uint(clientID),
		Name:     req.Name,
		Username: req.Username,
		Secret:   req.Secret,
		URL:      req.URL,
		Notes:    req.Notes,
	}
	if err := h.Repository.Create(h.DB, &item); err != nil {
		http.Error(w, "failed to save item", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// ListByClient returns a client's vault entries.
func (h *Handler) ListByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	if !h.canAccess(r, uint(clientID)) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	items, err := h.Repository.ListByClient(h.DB, uint(clientID))
	if err != nil {
		http.Error(w, "failed to list items", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// Delete removes one vault entry.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	item, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if !h.canAccess(r, item.ClientID) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		http.Error(w, "failed to delete item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("item deleted"))
}
