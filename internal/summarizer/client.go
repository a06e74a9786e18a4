package summarizer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// The engine treats the summarization collaborator as opaque: it accepts a
// structured, annotated timeline rendered as text and returns free-form
// diagnostic text. Nothing in the scan pipeline depends on it.

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	defaultTimeout = 120 * time.Second
)

// Config selects and addresses the collaborator endpoint.
type Config struct {
	Provider string // ollama or openai
	BaseURL  string
	Model    string
	APIKey   string // openai-compatible endpoints only
	Timeout  time.Duration
}

// Message is one turn of the chat payload.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client produces diagnostic text from prepared analysis input.
type Client interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// HTTPClient talks to an ollama or OpenAI-compatible chat endpoint.
type HTTPClient struct {
	config     Config
	httpClient *http.Client
}

func NewHTTPClient(config Config) (*HTTPClient, error) {
	switch config.Provider {
	case ProviderOllama, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown summarizer provider: %q", config.Provider)
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("summarizer base URL is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("summarizer model is required")
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Summarize sends the rendered analysis input and returns the collaborator's
// free-form text.
func (c *HTTPClient) Summarize(ctx context.Context, content string) (string, error) {
	messages := []Message{
		{Role: "system", Content: "You are a distributed-systems diagnostician. Analyze the provided log timeline and explain the failure path, root cause and remediation."},
		{Role: "user", Content: content},
	}
	if c.config.Provider == ProviderOllama {
		return c.chatOllama(ctx, messages)
	}
	return c.chatOpenAI(ctx, messages)
}

type ollamaRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaResponse struct {
	Message Message `json:"message"`
}

func (c *HTTPClient) chatOllama(ctx context.Context, messages []Message) (string, error) {
	body, err := sonic.Marshal(ollamaRequest{
		Model:    c.config.Model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/api/chat"
	data, err := c.post(ctx, url, body, nil)
	if err != nil {
		return "", err
	}

	var resp ollamaResponse
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (c *HTTPClient) chatOpenAI(ctx context.Context, messages []Message) (string, error) {
	body, err := sonic.Marshal(openAIRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	headers := map[string]string{}
	if c.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.config.APIKey
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/v1/chat/completions"
	data, err := c.post(ctx, url, body, headers)
	if err != nil {
		return "", err
	}

	var resp openAIResponse
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from summarizer")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *HTTPClient) post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summarizer request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summarizer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
