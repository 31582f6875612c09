package auth

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"
)

const RefreshCookie = "rt"

// On plain http://localhost the cookie must not be Secure; set
// COOKIE_SECURE=true behind HTTPS.
func cookieSecure() bool {
	return os.Getenv("COOKIE_SECURE") == "true"
}

// SetRefreshCookie stores the raw refresh token in an HttpOnly cookie
// scoped to the auth routes.
func SetRefreshCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// ClearRefreshCookie expires the refresh cookie.
func ClearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Handler serves the refresh and logout routes.
type Handler struct {
	DB         *gorm.DB
	RefreshTTL time.Duration
}

func NewHandler(db *gorm.DB, refreshTTL time.Duration) *Handler {
	return &Handler{DB: db, RefreshTTL: refreshTTL}
}

// Refresh rotates the refresh token and issues a new access token. A
// token outside its sliding window cannot be renewed; the client must
// log in again.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookie)
	if err != nil || cookie.Value == "" {
		http.Error(w, "missing refresh token", http.StatusUnauthorized)
		return
	}

	nextRaw, next, err := RotateRefreshToken(h.DB, cookie.Value, h.RefreshTTL)
	if err != nil {
		ClearRefreshCookie(w)
		http.Error(w, "session expired", http.StatusUnauthorized)
		return
	}

	profile, err := FindProfileByID(h.DB, next.ProfileID)
	if err != nil {
		ClearRefreshCookie(w)
		http.Error(w, "session expired", http.StatusUnauthorized)
		return
	}

	access, err := GenerateAccessToken(profile.ID, profile.Role)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	SetRefreshCookie(w, nextRaw, next.ExpiresAt)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": access})
}

// Logout revokes the whole refresh token family and clears the cookie,
// so a stale timer on another tab cannot resurrect the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(RefreshCookie); err == nil && cookie.Value != "" {
		_ = RevokeFamily(h.DB, cookie.Value)
	}
	ClearRefreshCookie(w)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("logged out"))
}
