// Package mailer sends transactional email through the Resend API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"
)

type Mailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewMailer() (*Mailer, error) {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "no-reply@nexondigital.co.za"
	}

	return &Mailer{
		apiKey:  key,
		from:    from,
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	}

	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return errors.New("failed to send email: " + string(msg))
	}
	return nil
}

func (m *Mailer) SendVerificationEmail(ctx context.Context, to, verifyURL string) error {
	return m.Send(ctx, to, "Verify Your Email Address",
		`<p>Click the link below to verify your email address:</p>
		<p><a href="`+verifyURL+`">Verify Email</a></p>`)
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, resetURL string) error {
	return m.Send(ctx, to, "Password Reset Request",
		`<p>Hello,</p>
		<p>You requested to reset your password. Click the link below:</p>
		<p><a href="`+resetURL+`">Reset Password</a></p>
		<p><em>This link expires in 30 minutes.</em></p>
		<p>If you did not request this, please ignore this email.</p>`)
}

func (m *Mailer) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return m.Send(ctx, to, "Welcome to Our Platform!",
		`<p>Hi `+name+`,</p>
		<p>Thank you for registering with our platform!</p>
		<p>Best regards,<br>Nexon Digital</p>`)
}
