package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nexushub/agency-api/internal/auth"
	"github.com/nexushub/agency-api/internal/models"
	"github.com/nexushub/agency-api/internal/notification"
	"github.com/nexushub/agency-api/internal/settings"
	"github.com/nexushub/agency-api/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Notifier   *notification.Gateway
	Settings   settings.Repository
	Logger     *zap.Logger
	RefreshTTL time.Duration
}

func NewHandler(db *gorm.DB, notifier *notification.Gateway, logger *zap.Logger, refreshTTL time.Duration) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Notifier:   notifier,
		Settings:   settings.NewRepository(),
		Logger:     logger,
		RefreshTTL: refreshTTL,
	}
}

// errUnknownRole means the profile row carries a role the app does not
// recognize. It is an auth failure, not a backend outage: retrying
// cannot fix it.
var errUnknownRole = errors.New("unknown profile role")

// storageError maps the repository taxonomy onto HTTP statuses.
func storageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, models.ErrDuplicateEmail):
		http.Error(w, models.ErrDuplicateEmail.Error(), http.StatusConflict)
	case errors.Is(err, errUnknownRole):
		http.Error(w, "profile role not recognized", http.StatusForbidden)
	default:
		http.Error(w, "backend unavailable, try again", http.StatusServiceUnavailable)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Role    string   `json:"role"`
	Token   string   `json:"token,omitempty"`
	Clients []Client `json:"clients,omitempty"`
	Client  *Client  `json:"client,omitempty"`
}

// hydrateForRole loads what the role needs: the full roster for an
// admin, exactly one aggregate for a client. An unknown role is an
// error, never a privilege default.
func (h *Handler) hydrateForRole(profile *auth.Profile, resp *sessionResponse) error {
	switch profile.Role {
	case auth.RoleAdmin:
		roster, err := h.Repository.ListAll(h.DB)
		if err != nil {
			return err
		}
		resp.Role = auth.RoleAdmin
		resp.Clients = roster
		return nil
	case auth.RoleClient:
		agg, err := h.Repository.FindByEmail(h.DB, profile.Email)
		if err != nil {
			return err
		}
		resp.Role = auth.RoleClient
		resp.Client = agg
		return nil
	default:
		return fmt.Errorf("%w: %q", errUnknownRole, profile.Role)
	}
}

// Login authenticates an admin or a client by email and password. Both
// paths converge to the same post-login state.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	profile, err := auth.FindProfileByEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(profile.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAccessToken(profile.ID, profile.Role)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}
	rawRefresh, err := auth.IssueRefreshToken(h.DB, profile.ID, h.RefreshTTL)
	if err != nil {
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	resp := sessionResponse{Token: token}
	if err := h.hydrateForRole(profile, &resp); err != nil {
		storageError(w, err)
		return
	}

	auth.SetRefreshCookie(w, rawRefresh, time.Now().Add(h.RefreshTTL))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Session resolves an existing token into role plus hydrated state, the
// app-start path. The role comes from the profiles table, not from the
// token.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	profileID, ok := auth.ProfileIDFrom(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}
	profile, err := auth.FindProfileByID(h.DB, profileID)
	if err != nil {
		http.Error(w, "unknown session user", http.StatusUnauthorized)
		return
	}

	var resp sessionResponse
	if err := h.hydrateForRole(profile, &resp); err != nil {
		storageError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// respondRoster re-reads the full roster after a mutation so callers
// never patch state incrementally.
func (h *Handler) respondRoster(w http.ResponseWriter, status int) {
	roster, err := h.Repository.ListAll(h.DB)
	if err != nil {
		storageError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(roster)
}

// Create registers a new client with its portal login, analytics row,
// default integrations and optional initial products, then fires the
// welcome notification (non-fatal) and returns the fresh roster.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" {
		http.Error(w, "name and email are required", http.StatusBadRequest)
		return
	}
	if req.SiteType == "" {
		req.SiteType = SiteInstitutional
	}
	if !ValidSiteType(req.SiteType) {
		http.Error(w, "invalid site type", http.StatusBadRequest)
		return
	}
	if req.Document != "" && !utils.ValidateCPF(req.Document) && !utils.ValidateCNPJ(req.Document) {
		http.Error(w, "invalid CPF/CNPJ", http.StatusBadRequest)
		return
	}

	password := req.Password
	if password == "" {
		var err error
		password, err = utils.GenerateTempPassword()
		if err != nil {
			http.Error(w, "failed to generate password", http.StatusInternalServerError)
			return
		}
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		http.Error(w, "failed to process password", http.StatusInternalServerError)
		return
	}

	c := Client{
		Name:              req.Name,
		Email:             req.Email,
		Company:           req.Company,
		Document:          req.Document,
		Phone:             req.Phone,
		Avatar:            req.Avatar,
		ResponsiblePerson: req.ResponsiblePerson,
		Notes:             req.Notes,
		Address:           req.Address,
		SiteURL:           req.SiteURL,
		SiteType:          req.SiteType,
		HostingExpiry:     req.HostingExpiry,
		MaintenanceMode:   req.MaintenanceMode,
	}

	if _, err := h.Repository.Create(h.DB, &c, hash, req.InitialProducts, req.Visits); err != nil {
		storageError(w, err)
		return
	}

	// Welcome notification is logged-but-non-fatal: the client exists
	// whatever the channels say.
	if cfg, err := h.Settings.Get(h.DB); err == nil && cfg.SendWelcome {
		result := h.Notifier.SendWelcome(c.Name, c.Email, c.Phone)
		h.Logger.Info("welcome notification",
			zap.String("email", c.Email),
			zap.Bool("email_ok", result.Email.Success),
			zap.Bool("message_ok", result.Message.Success),
		)
	}

	h.respondRoster(w, http.StatusCreated)
}

// List returns the full roster.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	roster, err := h.Repository.ListAll(h.DB)
	if err != nil {
		storageError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(roster)
}

// Get returns one aggregate. This is also the impersonation read: the
// admin renders the portal view of any chosen client with it.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		storageError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Me returns the caller's own aggregate (client role).
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	profileID, ok := auth.ProfileIDFrom(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}
	profile, err := auth.FindProfileByID(h.DB, profileID)
	if err != nil {
		http.Error(w, "unknown session user", http.StatusUnauthorized)
		return
	}
	c, err := h.Repository.FindByEmail(h.DB, profile.Email)
	if err != nil {
		storageError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Update patches scalar fields only and returns the fresh roster.
// Collections have their own replace routes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.SiteType != nil && !ValidSiteType(*req.SiteType) {
		http.Error(w, "invalid site type", http.StatusBadRequest)
		return
	}
	if req.Document != nil && *req.Document != "" &&
		!utils.ValidateCPF(*req.Document) && !utils.ValidateCNPJ(*req.Document) {
		http.Error(w, "invalid CPF/CNPJ", http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.UpdateFields(h.DB, uint(id), &req); err != nil {
		storageError(w, err)
		return
	}
	h.respondRoster(w, http.StatusOK)
}

// ReplaceProducts swaps the client's product rows wholesale. An empty
// list deletes them all; "leave unchanged" means not calling this route.
func (h *Handler) ReplaceProducts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req ReplaceProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.Repository.ReplaceProducts(h.DB, uint(id), req.Products); err != nil {
		storageError(w, err)
		return
	}
	h.respondRoster(w, http.StatusOK)
}

// ReplaceContracts swaps the client's contract rows wholesale.
func (h *Handler) ReplaceContracts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req ReplaceContractsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.Repository.ReplaceContracts(h.DB, uint(id), req.Contracts); err != nil {
		storageError(w, err)
		return
	}
	h.respondRoster(w, http.StatusOK)
}

// Delete removes the aggregate and everything it owns, then returns the
// fresh roster.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		storageError(w, err)
		return
	}
	h.respondRoster(w, http.StatusOK)
}
