package contract

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves admin contract routes. Wholesale replacement lives on
// the client handler because it returns the refreshed roster.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type contractRequest struct {
	Title     string    `json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Value     float64   `json:"value"`
	Status    string    `json:"status"`
	FileURL   string    `json:"fileUrl"`
}

// Create adds one contract to a client.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = StatusPending
	}
	if !ValidStatus(req.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	c := Contract{
		ClientID:  uint(clientID),
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Value:     req.Value,
		Status:    req.Status,
		FileURL:   req.FileURL,
	}
	if err := h.Repository.Create(h.DB, &c); err != nil {
		http.Error(w, "failed to save contract", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// ListByClient returns a client's contracts.
func (h *Handler) ListByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	rows, err := h.Repository.ListByClient(h.DB, uint(clientID))
	if err != nil {
		http.Error(w, "failed to list contracts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// Update edits one contract.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "contract not found", http.StatusNotFound)
		return
	}
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	if req.Title != "" {
		c.Title = req.Title
	}
	if !req.StartDate.IsZero() {
		c.StartDate = req.StartDate
	}
	if !req.EndDate.IsZero() {
		c.EndDate = req.EndDate
	}
	if req.Value != 0 {
		c.Value = req.Value
	}
	if req.Status != "" {
		c.Status = req.Status
	}
	if req.FileURL != "" {
		c.FileURL = req.FileURL
	}
	if err := h.Repository.Update(h.DB, c); err != nil {
		http.Error(w, "failed to update contract", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Delete removes one contract.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		http.Error(w, "failed to delete contract", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("contract deleted"))
}
