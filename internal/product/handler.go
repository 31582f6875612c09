package product

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves the global product catalog. Client-owned product routes
// live on the client handler because they return the refreshed roster.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type globalProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Cycle       string  `json:"cycle"`
	Active      *bool   `json:"active"`
}

// CreateGlobal adds a catalog product.
func (h *Handler) CreateGlobal(w http.ResponseWriter, r *http.Request) {
	var req globalProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Cycle == "" {
		req.Cycle = CycleMonthly
	}
	if !ValidCycle(req.Cycle) {
		http.Error(w, "invalid cycle", http.StatusBadRequest)
		return
	}
	g := GlobalProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cycle:       req.Cycle,
		Active:      true,
	}
	if req.Active != nil {
		g.Active = *req.Active
	}
	if err := h.Repository.CreateGlobal(h.DB, &g); err != nil {
		http.Error(w, "failed to save product", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(g)
}

// ListGlobal returns the catalog.
func (h *Handler) ListGlobal(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repository.ListGlobal(h.DB)
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// UpdateGlobal edits a catalog product.
func (h *Handler) UpdateGlobal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	g, err := h.Repository.FindGlobalByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	var req globalProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Cycle != "" && !ValidCycle(req.Cycle) {
		http.Error(w, "invalid cycle", http.StatusBadRequest)
		return
	}
	if req.Name != "" {
		g.Name = req.Name
	}
	if req.Description != "" {
		g.Description = req.Description
	}
	if req.Price != 0 {
		g.Price = req.Price
	}
	if req.Cycle != "" {
		g.Cycle = req.Cycle
	}
	if req.Active != nil {
		g.Active = *req.Active
	}
	if err := h.Repository.UpdateGlobal(h.DB, g); err != nil {
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g)
}

// DeleteGlobal removes a catalog product.
func (h *Handler) DeleteGlobal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.DeleteGlobal(h.DB, uint(id)); err != nil {
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("product deleted"))
}
