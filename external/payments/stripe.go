// Package payments holds the hand-rolled Stripe REST client used for hosted
// checkout sessions and webhook signature verification.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// DefaultTolerance is the maximum accepted age of a signed webhook payload.
const DefaultTolerance = 5 * time.Minute

type CheckoutLine struct {
	Name       string
	Image      string
	UnitAmount int64 // minor currency units
	Quantity   int
}

type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

type Client struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

// NewClient reads STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET from the
// environment. The secret key is required; the webhook secret only when the
// webhook route is served.
func NewClient() (*Client, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil, errors.New("STRIPE_SECRET_KEY not set")
	}
	return &Client{
		secretKey:     key,
		webhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// CreateCheckoutSession creates a hosted payment session tagged with the
// order id as client_reference_id and returns the session id and redirect
// URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, referenceID, successURL, cancelURL string, lines []CheckoutLine) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("client_reference_id", referenceID)
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	for i, line := range lines {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", line.Name)
		if line.Image != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", line.Image)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(line.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(line.Quantity))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Error != nil {
		return nil, errors.New("stripe: " + body.Error.Message)
	}
	if resp.StatusCode >= 300 || body.ID == "" {
		return nil, fmt.Errorf("stripe: unexpected response status %d", resp.StatusCode)
	}

	return &CheckoutSession{ID: body.ID, URL: body.URL}, nil
}

// Event is the slice of the webhook envelope this system consumes.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID                string            `json:"id"`
			ClientReferenceID string            `json:"client_reference_id"`
			Metadata          map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ConstructEvent verifies the Stripe-Signature header against the raw body
// and parses the event. The header carries a unix timestamp and one or more
// v1 HMAC-SHA256 signatures over "<timestamp>.<body>".
func (c *Client) ConstructEvent(payload []byte, header string) (*Event, error) {
	if c.webhookSecret == "" {
		return nil, errors.New("STRIPE_WEBHOOK_SECRET not set")
	}
	if err := VerifySignature(payload, header, c.webhookSecret, DefaultTolerance); err != nil {
		return nil, err
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.New("invalid event payload")
	}
	return &event, nil
}

// VerifySignature checks a Stripe-Signature header. A zero tolerance skips
// the timestamp freshness check.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	if header == "" {
		return errors.New("missing signature header")
	}

	var timestamp string
	var signatures [][]byte
	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "t":
			timestamp = parts[1]
		case "v1":
			sig, err := hex.DecodeString(parts[1])
			if err == nil {
				signatures = append(signatures, sig)
			}
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errors.New("malformed signature header")
	}

	if tolerance > 0 {
		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			return errors.New("malformed signature timestamp")
		}
		age := time.Since(time.Unix(ts, 0))
		if age > tolerance || age < -tolerance {
			return errors.New("signature timestamp outside tolerance")
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return errors.New("signature verification failed")
}

// Sign produces a Stripe-Signature header value for the payload. Used by the
// webhook tests and local tooling.
func Sign(payload []byte, secret string, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return "t=" + timestamp + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}
