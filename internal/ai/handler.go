package ai

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Handler serves the drafting wizard. Provider failures come back as a
// clearly labeled display string with HTTP 200, because the wizard
// shows whatever text it receives.
type Handler struct {
	Client *Client
	Logger *zap.Logger
}

func NewHandler(client *Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Logger: logger}
}

type draftRequest struct {
	Topic    string   `json:"topic"`
	Tone     string   `json:"tone"`
	Keywords []string `json:"keywords"`
	Outline  string   `json:"outline"`
}

type draftResponse struct {
	Text string `json:"text"`
}

// displayable turns a provider error into the string the wizard shows.
func (h *Handler) displayable(err error) string {
	if errors.Is(err, ErrUnconfigured) {
		return "[IA indisponível] O provedor de IA não está configurado. Peça ao administrador para definir a chave de API."
	}
	h.Logger.Warn("ai provider error", zap.Error(err))
	return "[IA indisponível] Não foi possível gerar o texto agora. Tente novamente em instantes."
}

// Outline generates the section outline (wizard step one).
func (h *Handler) Outline(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Tone == "" {
		req.Tone = "profissional"
	}

	text, err := h.Client.GenerateOutline(r.Context(), req.Topic, req.Tone, req.Keywords)
	if err != nil {
		text = h.displayable(err)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(draftResponse{Text: text})
}

// Draft expands the outline into the full article (wizard step two).
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" || req.Outline == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Tone == "" {
		req.Tone = "profissional"
	}

	text, err := h.Client.GenerateFullDraft(r.Context(), req.Outline, req.Topic, req.Tone, req.Keywords)
	if err != nil {
		text = h.displayable(err)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(draftResponse{Text: text})
}
