// Package assistant is the HTTP client of the conversational AI service that
// turns free-text queries into intents and entities.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/intransparency/talentsearch/internal/domain"
	"github.com/intransparency/talentsearch/internal/domain/search/audience"
	"github.com/intransparency/talentsearch/internal/domain/search/entity"
	"github.com/intransparency/talentsearch/internal/domain/search/result"
	"github.com/intransparency/talentsearch/internal/metrics"
)

const (
	providerName     = "service"
	defaultTimeout   = 8 * time.Second
	maxResponseBytes = 1 << 20
)

// Compile-time check: Client implements domain.Classifier.
var _ domain.Classifier = (*Client)(nil)

// Config holds the assistant service settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client calls POST {BaseURL}/chat once per query. It never retries.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates an assistant client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	UserRole  string `json:"user_role"`
	Stream    bool   `json:"stream"`
}

type chatEntities struct {
	Skills       []string `json:"skills"`
	Locations    []string `json:"locations"`
	JobTypes     []string `json:"job_types"`
	Universities []string `json:"universities"`
}

type chatAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

type chatResponse struct {
	Message          string        `json:"message"`
	Intent           string        `json:"intent"`
	Entities         *chatEntities `json:"entities"`
	SuggestedActions []chatAction  `json:"suggested_actions"`
	SessionID        string        `json:"session_id"`
}

// Classify implements domain.Classifier. Every failure (transport error,
// non-2xx status, undecodable body, timeout) wraps domain.ErrAssistantUnavailable.
func (c *Client) Classify(
	ctx context.Context, query string, aud audience.Audience, sessionID string,
) (*domain.Understanding, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.chat(ctx, chatRequest{
		SessionID: sessionID,
		Message:   query,
		UserRole:  aud.Role(),
		Stream:    false,
	})
	duration := time.Since(start)

	metrics.AssistantRequestDuration.WithLabelValues(providerName).Observe(duration.Seconds())
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(providerName, statusLabel(err)).Inc()
		return nil, fmt.Errorf("assistant chat: %w: %w", domain.ErrAssistantUnavailable, err)
	}
	metrics.AssistantRequestsTotal.WithLabelValues(providerName, "ok").Inc()

	c.logger.Debug("Assistant request completed",
		zap.String("intent", resp.Intent),
		zap.Duration("duration", duration),
	)

	return toUnderstanding(resp), nil
}

func (c *Client) chat(ctx context.Context, body chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}

// HealthCheck calls GET {BaseURL}/health.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health: status %d", resp.StatusCode)
	}
	return nil
}

func toUnderstanding(resp *chatResponse) *domain.Understanding {
	u := &domain.Understanding{
		Message:   resp.Message,
		Intent:    resp.Intent,
		SessionID: resp.SessionID,
	}
	if e := resp.Entities; e != nil {
		u.Entities = entity.New(e.Skills, e.Locations, e.JobTypes, e.Universities)
	}
	for _, a := range resp.SuggestedActions {
		if a.Label == "" {
			continue
		}
		u.SuggestedActions = append(u.SuggestedActions, result.SuggestedAction{Label: a.Label, Action: a.Action})
	}
	return u
}

// statusLabel classifies a failed request for metrics.
func statusLabel(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "error"
}
