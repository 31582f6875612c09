package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestGenerateOutline(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer ai-key" {
			t.Errorf("missing bearer credential")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(completionResponse{Text: "1. Introdução\n2. Dicas"})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "ai-key", Model: "gemini-2.0-flash"})
	text, err := c.GenerateOutline(context.Background(), "orquídeas", "informal", []string{"flores", "inverno"})
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	if text == "" {
		t.Fatal("expected outline text")
	}
	if got.Model != "gemini-2.0-flash" {
		t.Errorf("model lost: %q", got.Model)
	}
	if !strings.Contains(got.Prompt, "orquídeas") || !strings.Contains(got.Prompt, "flores") {
		t.Errorf("prompt missing topic/keywords: %q", got.Prompt)
	}
}

func TestGenerateFullDraftCarriesOutline(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(completionResponse{Text: "texto completo"})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "k", Model: "m"})
	_, err := c.GenerateFullDraft(context.Background(), "1. Abertura", "orquídeas", "formal", nil)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if !strings.Contains(got.Prompt, "1. Abertura") {
		t.Errorf("prompt must embed the approved outline: %q", got.Prompt)
	}
}

func TestUnconfiguredClient(t *testing.T) {
	c := NewClient(Config{})
	_, err := c.GenerateOutline(context.Background(), "x", "y", nil)
	if !errors.Is(err, ErrUnconfigured) {
		t.Fatalf("expected ErrUnconfigured, got %v", err)
	}
}

// The drafting routes must answer 200 with a labeled message when the
// provider is down, because the wizard displays whatever it receives.
func TestHandlerDegradesToDisplayableText(t *testing.T) {
	h := NewHandler(NewClient(Config{}), zap.NewNop())

	body, _ := json.Marshal(draftRequest{Topic: "orquídeas"})
	req := httptest.NewRequest(http.MethodPost, "/ai/outline", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Outline(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("degraded outline must still answer 200, got %d", rec.Code)
	}
	var resp draftResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.Text, "[IA indisponível]") {
		t.Fatalf("degraded text must be clearly labeled: %q", resp.Text)
	}
}

func TestHandlerRejectsEmptyTopic(t *testing.T) {
	h := NewHandler(NewClient(Config{}), zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/ai/outline", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Outline(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty topic, got %d", rec.Code)
	}
}
