package integration

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

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

type createRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Create registers a new integration for a client. The kind is resolved
// from the name here, at ingestion, and stored.
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
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	row := Integration{
		ClientID: uint(clientID),
		Name:     req.Name,
		Kind:     ResolveKind(req.Name),
		Icon:     req.Icon,
		Status:   StatusPending,
	}
	if err := h.Repository.Create(h.DB, &row); err != nil {
		http.Error(w, "failed to save integration", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(row)
}

// ListByClient returns a client's integrations.
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
	rows, err := h.Repository.ListByClient(h.DB, uint(clientID))
	if err != nil {
		http.Error(w, "failed to list integrations", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

type statusRequest struct {
	Status   string     `json:"status"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}

// UpdateStatus connects/disconnects an integration.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	row, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "integration not found", http.StatusNotFound)
		return
	}
	if !h.canAccess(r, row.ClientID) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !ValidStatus(req.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	updated, err := h.Repository.UpdateStatus(h.DB, uint(id), req.Status, req.LastSync)
	if err != nil {
		http.Error(w, "failed to update integration", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete removes one integration.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	row, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "integration not found", http.StatusNotFound)
		return
	}
	if !h.canAccess(r, row.ClientID) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		http.Error(w, "failed to delete integration", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("integration deleted"))
}
