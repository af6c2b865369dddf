package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/models"
)

const DefaultExpoURL = "https://exp.host/--/api/v2/push/send"

// TokenLister is the slice of the catalog the push sender needs.
type TokenLister interface {
	ListDeviceTokens(ctx context.Context, businessID uuid.UUID) ([]models.DeviceToken, error)
}

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound,omitempty"`
}

type expoTicket struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type expoResponse struct {
	Data []expoTicket `json:"data"`
}

// ExpoSender posts to the Expo push API, one message per registered token.
type ExpoSender struct {
	url    string
	token  string
	tokens TokenLister
	http   *http.Client
}

func NewExpoSender(url, accessToken string, tokens TokenLister) *ExpoSender {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultExpoURL
	}
	return &ExpoSender{
		url:    url,
		token:  strings.TrimSpace(accessToken),
		tokens: tokens,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (s *ExpoSender) Send(
	ctx context.Context,
	businessID uuid.UUID,
	title, body string,
	data map[string]string,
) (int, []error) {

	devices, err := s.tokens.ListDeviceTokens(ctx, businessID)
	if err != nil {
		return 0, []error{err}
	}
	if len(devices) == 0 {
		return 0, nil
	}

	msgs := make([]expoMessage, 0, len(devices))
	for _, d := range devices {
		msgs = append(msgs, expoMessage{
			To:    d.Token,
			Title: title,
			Body:  body,
			Data:  data,
			Sound: "default",
		})
	}

	raw, err := json.Marshal(msgs)
	if err != nil {
		return 0, []error{err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return 0, []error{err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, []error{err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, []error{fmt.Errorf("expo push returned %d", resp.StatusCode)}
	}

	var out expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, []error{fmt.Errorf("decode expo response: %w", err)}
	}

	sent := 0
	var errs []error
	for i, ticket := range out.Data {
		if ticket.Status == "ok" {
			sent++
			continue
		}
		to := ""
		if i < len(msgs) {
			to = msgs[i].To
		}
		errs = append(errs, fmt.Errorf("push to %s: %s", to, ticket.Message))
	}
	return sent, errs
}
