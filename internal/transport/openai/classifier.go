package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/intransparency/talentsearch/internal/domain"
	"github.com/intransparency/talentsearch/internal/domain/search/audience"
	"github.com/intransparency/talentsearch/internal/domain/search/entity"
	"github.com/intransparency/talentsearch/internal/domain/search/result"
	"github.com/intransparency/talentsearch/internal/metrics"
)

const providerName = "openai"

// Compile-time check: Classifier implements domain.Classifier.
var _ domain.Classifier = (*Classifier)(nil)

const systemPrompt = `You classify search queries for a platform that connects university students,
companies and universities in Italy. The user role is %q.
Answer with a single JSON object and nothing else:
{
  "intent": one of "job_search", "candidate_search", "student_search", "student_analytics",
            "at_risk_students", "company_info", "general",
  "entities": {
    "skills": [lower-case skills or disciplines],
    "locations": [city names in English, e.g. "Milan"],
    "job_types": [any of "FULL_TIME", "PART_TIME", "INTERNSHIP", "CONTRACT"],
    "universities": [lower-case institution names]
  },
  "message": a short helpful reply in the language of the query,
  "suggested_actions": [{"label": short text, "action": snake_case id}]
}
Use empty arrays when nothing applies. Never invent entities that are not in the query.`

// Classifier is a language-understanding provider using an OpenAI-compatible chat API.
type Classifier struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	User     string
	Provider string
	Logger   *zap.Logger
}

// NewClassifier creates an OpenAI-compatible classifier.
func NewClassifier(cfg *Config) *Classifier {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	provider := cfg.Provider
	if provider == "" {
		provider = providerName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: provider,
		logger:   logger,
	}
}

type answer struct {
	Intent   string `json:"intent"`
	Message  string `json:"message"`
	Entities *struct {
		Skills       []string `json:"skills"`
		Locations    []string `json:"locations"`
		JobTypes     []string `json:"job_types"`
		Universities []string `json:"universities"`
	} `json:"entities"`
	SuggestedActions []result.SuggestedAction `json:"suggested_actions"`
}

// Classify implements domain.Classifier. The model has no conversation state,
// so the caller's session id is echoed back unchanged.
func (c *Classifier) Classify(
	ctx context.Context, query string, aud audience.Audience, sessionID string,
) (*domain.Understanding, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPrompt, aud.Role())},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		User: c.user,
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)
	metrics.AssistantRequestDuration.WithLabelValues(c.provider).Observe(duration.Seconds())

	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(c.provider, "error").Inc()
		return nil, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.AssistantRequestsTotal.WithLabelValues(c.provider, "error").Inc()
		return nil, fmt.Errorf("empty chat response: %w", domain.ErrAssistantUnavailable)
	}

	var a answer
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &a); err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(c.provider, "error").Inc()
		return nil, fmt.Errorf("decode chat answer: %w: %w", domain.ErrAssistantUnavailable, err)
	}
	metrics.AssistantRequestsTotal.WithLabelValues(c.provider, "ok").Inc()

	c.logger.Debug("Chat classification completed",
		zap.String("provider", c.provider),
		zap.String("model", c.model),
		zap.String("intent", a.Intent),
		zap.Duration("duration", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	u := &domain.Understanding{
		Message:          a.Message,
		Intent:           a.Intent,
		SuggestedActions: a.SuggestedActions,
		SessionID:        sessionID,
	}
	if e := a.Entities; e != nil {
		u.Entities = entity.New(e.Skills, e.Locations, e.JobTypes, e.Universities)
	}
	return u, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Classifier) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors wrap domain.ErrAssistantUnavailable so the caller falls back.
func parseAPIError(err error) error {
	wrap := domain.ErrAssistantUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("chat API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("chat API error %d: %w", reqErr.HTTPStatusCode, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("chat request failed: %w: %w", wrap, err)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
