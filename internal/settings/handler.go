package settings

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Get returns the agency settings.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repository.Get(h.DB)
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

type updateRequest struct {
	AgencyName     *string `json:"agencyName"`
	LogoURL        *string `json:"logoUrl"`
	ContactEmail   *string `json:"contactEmail"`
	ContactPhone   *string `json:"contactPhone"`
	SendWelcome    *bool   `json:"sendWelcome"`
	DefaultSiteURL *string `json:"defaultSiteUrl"`
}

// Update patches the agency settings. Absent fields stay untouched.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repository.Get(h.DB)
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.AgencyName != nil {
		s.AgencyName = *req.AgencyName
	}
	if req.LogoURL != nil {
		s.LogoURL = *req.LogoURL
	}
	if req.ContactEmail != nil {
		s.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		s.ContactPhone = *req.ContactPhone
	}
	if req.SendWelcome != nil {
		s.SendWelcome = *req.SendWelcome
	}
	if req.DefaultSiteURL != nil {
		s.DefaultSiteURL = *req.DefaultSiteURL
	}
	if err := h.Repository.Update(h.DB, s); err != nil {
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}
