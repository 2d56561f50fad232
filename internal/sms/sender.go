package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"church_backend/internal/config"
	"church_backend/pkg/utils"
)

// Sender delivers a single text message.
type Sender interface {
	Send(ctx context.Context, phoneNumber, text string) error
}

var ErrGatewayRejected = errors.New("sms gateway rejected the message")

// NewSender returns the HTTP gateway sender, or a console sender when no gateway is configured.
func NewSender(cfg config.SMSConfig) Sender {
	if cfg.APIURL == "" {
		utils.LogWarn(nil, "MESSAGE_API is not set, text messages will only be logged")
		return NewConsoleSender()
	}
	return NewHTTPSender(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NormalizePhoneNumber rewrites local numbers (leading 0) to the 233 country prefix.
func NormalizePhoneNumber(phoneNumber string) string {
	n := strings.TrimSpace(phoneNumber)
	if strings.HasPrefix(n, "0") {
		return "233" + n[1:]
	}
	return n
}

// HTTPSender sends messages through the gateway's send-sms GET endpoint.
type HTTPSender struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
}

// NewHTTPSender creates an HTTPSender using client for transport.
func NewHTTPSender(cfg config.SMSConfig, client *http.Client) *HTTPSender {
	return &HTTPSender{endpoint: cfg.APIURL, apiKey: cfg.APIKey, from: cfg.Sender, client: client}
}

func (s *HTTPSender) Send(ctx context.Context, phoneNumber, text string) error {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return fmt.Errorf("parsing sms endpoint: %w", err)
	}
	q := u.Query()
	q.Set("action", "send-sms")
	q.Set("api_key", s.apiKey)
	q.Set("to", NormalizePhoneNumber(phoneNumber))
	q.Set("from", s.from)
	q.Set("sms", strings.TrimSpace(text))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building sms request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}
	return nil
}

// SentMessage is a message captured by the console sender.
type SentMessage struct {
	To   string
	Text string
	At   time.Time
}

// ConsoleSender logs messages instead of delivering them and keeps a copy of each.
type ConsoleSender struct {
	mu   sync.Mutex
	sent []SentMessage
}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (s *ConsoleSender) Send(_ context.Context, phoneNumber, text string) error {
	msg := SentMessage{To: NormalizePhoneNumber(phoneNumber), Text: strings.TrimSpace(text), At: time.Now()}
	utils.LogInfo("sms (console)", map[string]interface{}{"to": msg.To, "sms": msg.Text})

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of every message sent so far.
func (s *ConsoleSender) Sent() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentMessage, len(s.sent))
	copy(out, s.sent)
	return out
}
