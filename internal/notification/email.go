// Package notification wraps the two outbound channels (transactional
// email and WhatsApp) behind one contract. Channel failures are always
// reported in the result, never raised to the caller.
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Result is the per-channel outcome of a send.
type Result struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

// EmailConfig holds the transactional email provider credentials.
type EmailConfig struct {
	APIURL string
	APIKey string
	From   string
}

// EmailChannel posts to an HTTP transactional email API with a bearer
// credential.
type EmailChannel struct {
	cfg        EmailConfig
	httpClient *http.Client
}

func NewEmailChannel(cfg EmailConfig) *EmailChannel {
	return &EmailChannel{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured reports whether the channel has credentials.
func (c *EmailChannel) IsConfigured() bool {
	return c.cfg.APIURL != "" && c.cfg.APIKey != ""
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email. The error surface is the Result; the
// method itself never panics on provider failure.
func (c *EmailChannel) Send(to, subject, htmlBody string) Result {
	if !c.IsConfigured() {
		return Result{Success: false, Detail: "email channel not configured"}
	}

	body, err := json.Marshal(emailPayload{
		From:    c.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("marshal email: %v", err)}
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("email request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{Success: false, Detail: fmt.Sprintf("email provider returned %d: %s", resp.StatusCode, raw)}
	}
	return Result{Success: true, Detail: "email sent"}
}
