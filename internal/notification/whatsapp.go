package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nexushub/agency-api/internal/utils"
)

// WhatsAppConfig holds the messaging provider credentials. Instance is
// the named send-instance registered with the provider.
type WhatsAppConfig struct {
	APIURL   string
	APIKey   string
	Instance string
}

// WhatsAppChannel posts to an HTTP messaging API authenticated by an
// API-key header.
type WhatsAppChannel struct {
	cfg        WhatsAppConfig
	httpClient *http.Client
}

func NewWhatsAppChannel(cfg WhatsAppConfig) *WhatsAppChannel {
	return &WhatsAppChannel{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured reports whether the channel has credentials.
func (c *WhatsAppChannel) IsConfigured() bool {
	return c.cfg.APIURL != "" && c.cfg.APIKey != ""
}

type messagePayload struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Send delivers one message to a phone number.
func (c *WhatsAppChannel) Send(toPhone, body string) Result {
	if !c.IsConfigured() {
		return Result{Success: false, Detail: "whatsapp channel not configured"}
	}

	payload, err := json.Marshal(messagePayload{
		Number: utils.FormatPhone(toPhone),
		Text:   body,
	})
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("marshal message: %v", err)}
	}

	url := fmt.Sprintf("%s/message/sendText/%s", c.cfg.APIURL, c.cfg.Instance)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("apikey", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Detail: fmt.Sprintf("whatsapp request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{Success: false, Detail: fmt.Sprintf("whatsapp provider returned %d: %s", resp.StatusCode, raw)}
	}
	return Result{Success: true, Detail: "message sent"}
}
