package notification

import (
	"fmt"

	"go.uber.org/zap"
)

// WelcomeResult carries both channel outcomes of a welcome send.
type WelcomeResult struct {
	Email   Result `json:"email"`
	Message Result `json:"message"`
}

// Gateway fans a notification out to both channels. It never returns an
// error: callers treat delivery failure as logged-but-non-fatal.
type Gateway struct {
	email    *EmailChannel
	whatsapp *WhatsAppChannel
	logger   *zap.Logger
}

func NewGateway(email *EmailChannel, whatsapp *WhatsAppChannel, logger *zap.Logger) *Gateway {
	return &Gateway{email: email, whatsapp: whatsapp, logger: logger}
}

// SendEmail delivers one email and logs the outcome.
func (g *Gateway) SendEmail(to, subject, htmlBody string) Result {
	res := g.email.Send(to, subject, htmlBody)
	if !res.Success {
		g.logger.Warn("email delivery failed",
			zap.String("to", to),
			zap.String("detail", res.Detail),
		)
	}
	return res
}

// SendMessage delivers one WhatsApp message and logs the outcome.
func (g *Gateway) SendMessage(toPhone, body string) Result {
	res := g.whatsapp.Send(toPhone, body)
	if !res.Success {
		g.logger.Warn("whatsapp delivery failed",
			zap.String("to", toPhone),
			zap.String("detail", res.Detail),
		)
	}
	return res
}

// SendWelcome greets a new client on both channels, independently. One
// channel failing never blocks the other, and the caller's own flow
// (client creation) succeeds either way.
func (g *Gateway) SendWelcome(name, email, phone string) WelcomeResult {
	subject := "Bem-vindo à NexusHub!"
	htmlBody := fmt.Sprintf(
		"<h1>Olá, %s!</h1><p>Seu portal NexusHub está pronto. Acesse com este email para acompanhar seu site, blog e relatórios.</p>",
		name,
	)

	result := WelcomeResult{
		Email: g.SendEmail(email, subject, htmlBody),
	}
	if phone != "" {
		result.Message = g.SendMessage(phone,
			fmt.Sprintf("Olá, %s! Seu portal NexusHub está pronto. Bem-vindo!", name))
	} else {
		result.Message = Result{Success: false, Detail: "no phone on record"}
	}
	return result
}
