package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/intransparency/talentsearch/internal/domain"
	"github.com/intransparency/talentsearch/internal/domain/search/audience"
	"github.com/intransparency/talentsearch/internal/domain/search/entity"
	"github.com/intransparency/talentsearch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

// chatCompletionResponse mirrors the OpenAI-compatible chat completion response.
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func chatServer(t *testing.T, content string, inspect func(r *http.Request, body map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if inspect != nil {
			inspect(r, body)
		}

		resp := chatCompletionResponse{ID: "chatcmpl-1", Object: "chat.completion", Model: "test-model"}
		resp.Choices = make([]struct {
			Index   int `json:"index"`
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		}, 1)
		resp.Choices[0].Message.Role = "assistant"
		resp.Choices[0].Message.Content = content
		resp.Choices[0].FinishReason = "stop"
		resp.Usage.TotalTokens = 120

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestClassifier_Classify(t *testing.T) {
	content := `{
		"intent": "job_search",
		"message": "Ecco alcuni stage a Milano",
		"entities": {"skills": ["React"], "locations": ["Milan"], "job_types": ["INTERNSHIP"], "universities": []},
		"suggested_actions": [{"label": "Only remote", "action": "filter_remote"}]
	}`
	server := chatServer(t, content, func(r *http.Request, body map[string]any) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if body["model"] != "test-model" {
			t.Errorf("model = %v", body["model"])
		}
		rf, _ := body["response_format"].(map[string]any)
		if rf["type"] != "json_object" {
			t.Errorf("response_format = %v", body["response_format"])
		}
		msgs, _ := body["messages"].([]any)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		system, _ := msgs[0].(map[string]any)
		if !strings.Contains(system["content"].(string), `"student"`) {
			t.Error("system prompt must carry the user role")
		}
	})
	defer server.Close()

	c := NewClassifier(&Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	u, err := c.Classify(context.Background(), "stage a Milano in React", audience.Student, "s-9")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if u.Intent != "job_search" || u.Message != "Ecco alcuni stage a Milano" {
		t.Errorf("intent/message = %q/%q", u.Intent, u.Message)
	}
	if u.SessionID != "s-9" {
		t.Errorf("session id = %q, want echo of s-9", u.SessionID)
	}
	if got := u.Entities.Skills(); len(got) != 1 || got[0] != "react" {
		t.Errorf("skills = %v", got)
	}
	if got := u.Entities.JobTypes(); len(got) != 1 || got[0] != entity.Internship {
		t.Errorf("job types = %v", got)
	}
	if len(u.SuggestedActions) != 1 || u.SuggestedActions[0].Action != "filter_remote" {
		t.Errorf("actions = %+v", u.SuggestedActions)
	}
}

func TestClassifier_InvalidJSONAnswer(t *testing.T) {
	server := chatServer(t, "Sure! Here are some jobs.", nil)
	defer server.Close()

	c := NewClassifier(&Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
	_, err := c.Classify(context.Background(), "q", audience.Company, "")
	if !errors.Is(err, domain.ErrAssistantUnavailable) {
		t.Fatalf("expected ErrAssistantUnavailable, got %v", err)
	}
}

func TestClassifier_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
	}))
	defer server.Close()

	c := NewClassifier(&Config{APIKey: "bad", BaseURL: server.URL, Model: "m"})
	_, err := c.Classify(context.Background(), "q", audience.Student, "")
	if !errors.Is(err, domain.ErrAssistantUnavailable) {
		t.Fatalf("expected ErrAssistantUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestClassifier_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer server.Close()

	c := NewClassifier(&Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
	if err := c.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractDetail(t *testing.T) {
	if got := extractDetail([]byte(`{"detail":"model not found"}`)); got != "model not found" {
		t.Errorf("got %q", got)
	}
	if got := extractDetail([]byte(`not json`)); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
