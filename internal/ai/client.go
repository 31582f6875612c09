// Package ai wraps the generative-text provider behind the two-stage
// blog drafting contract: outline first, then the full draft.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnconfigured means no provider credentials were supplied.
var ErrUnconfigured = errors.New("ai provider not configured")

// Config holds the text-completion provider settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Client issues single-shot, non-streaming completion calls.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// IsConfigured reports whether the provider can be called.
func (c *Client) IsConfigured() bool {
	return c.cfg.BaseURL != "" && c.cfg.APIKey != ""
}

type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// complete posts one prompt and returns the provider's text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrUnconfigured
	}

	body, err := json.Marshal(completionRequest{Model: c.cfg.Model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ai provider returned %d: %s", resp.StatusCode, raw)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	return out.Text, nil
}

// GenerateOutline drafts a section outline for a blog post, in pt-BR.
func (c *Client) GenerateOutline(ctx context.Context, topic, tone string, keywords []string) (string, error) {
	prompt := fmt.Sprintf(
		"Escreva em português um esboço de post de blog sobre %q, em tom %s. "+
			"Liste de 4 a 6 seções com uma frase cada. Palavras-chave: %s.",
		topic, tone, strings.Join(keywords, ", "),
	)
	return c.complete(ctx, prompt)
}

// GenerateFullDraft expands an approved outline into the full article.
func (c *Client) GenerateFullDraft(ctx context.Context, outline, topic, tone string, keywords []string) (string, error) {
	prompt := fmt.Sprintf(
		"Escreva em português o texto completo de um post de blog sobre %q, em tom %s, "+
			"seguindo exatamente este esboço:\n\n%s\n\nUse as palavras-chave: %s. "+
			"Formate com subtítulos.",
		topic, tone, outline, strings.Join(keywords, ", "),
	)
	return c.complete(ctx, prompt)
}
