package post

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

// canAccess checks that the caller is the admin or the owner client.
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

type postRequest struct {
	Title   string    `json:"title"`
	Status  string    `json:"status"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
}

// Create adds a post to a client's blog.
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

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = StatusDraft
	}
	if !ValidStatus(req.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	p := BlogPost{
		ClientID: uint(clientID),
		Title:    req.Title,
		Status:   req.Status,
		Date:     req.Date,
		Content:  req.Content,
	}
	if err := h.Repository.Create(h.DB, &p); err != nil {
		http.Error(w, "failed to save post", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// ListByClient returns a client's posts, newest first.
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
	posts, err := h.Repository.ListByClient(h.DB, uint(clientID))
	if err != nil {
		http.Error(w, "failed to list posts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// updatePostRequest is a sparse patch: nil means "leave untouched", so
// an empty string can clear the content.
type updatePostRequest struct {
	Title   *string    `json:"title"`
	Status  *string    `json:"status"`
	Date    *time.Time `json:"date"`
	Content *string    `json:"content"`
}

// Update patches title/status/date/content of one post.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	if !h.canAccess(r, p.ClientID) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if err := h.Repository.Update(h.DB, p); err != nil {
		http.Error(w, "failed to update post", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Publish flips a post to published with the current date. This is the
// portal's one-click flow.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	if !h.canAccess(r, p.ClientID) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	p.Status = StatusPublished
	p.Date = time.Now()
	if err := h.Repository.Update(h.DB, p); err != nil {
		http.Error(w, "failed to publish post", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Delete removes one post.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	if !h.canAccess(r, p.ClientID) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		http.Error(w, "failed to delete post", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("post deleted"))
}
