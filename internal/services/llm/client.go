package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 2 * time.Minute

// Config captures the runtime settings required to talk to the
// normalization endpoint.
type Config struct {
	APIURL         string
	APIKey         string
	Model          string
	Temperature    float64
	TopP           float64
	TimeoutSeconds int
}

// Client wraps a chat-completion API for transcript normalization.
type Client struct {
	cfg          Config
	systemPrompt string
	httpClient   *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a normalization client. An empty systemPrompt selects
// the default preset.
func NewClient(cfg Config, systemPrompt string, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	client := &Client{
		cfg: Config{
			APIURL:         strings.TrimSpace(cfg.APIURL),
			APIKey:         strings.TrimSpace(cfg.APIKey),
			Model:          strings.TrimSpace(cfg.Model),
			Temperature:    cfg.Temperature,
			TopP:           cfg.TopP,
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		systemPrompt: systemPrompt,
		httpClient:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
		// Some providers return the streaming schema (delta) even when
		// stream=false, so tolerate it as a fallback.
		Delta chatCompletionMessage `json:"delta"`
		// Legacy "text" field (completion-style responses).
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type chatCompletionMessage struct {
	Content string `json:"content"`
}

// Normalize sends the raw transcript with the configured system prompt and
// returns the model's rewritten text. A single attempt is made; the caller
// treats any failure as recoverable.
func (c *Client) Normalize(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("normalize: raw text required")
	}
	if c.cfg.APIURL == "" {
		return "", errors.New("normalize: api url required")
	}
	if c.cfg.APIKey == "" {
		return "", errors.New("normalize: api key required")
	}

	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.systemPrompt},
			{Role: "user", Content: raw},
		},
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
	}

	endpoint, err := url.JoinPath(c.cfg.APIURL, "chat", "completions")
	if err != nil {
		return "", fmt.Errorf("normalize: build url: %w", err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("normalize: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("normalize: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("normalize: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("normalize: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("normalize: http %d: %s", resp.StatusCode, summarizeBody(body))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("normalize: decode response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("normalize: api error: %s", strings.TrimSpace(completion.Error.Message))
	}

	content := extractContent(completion)
	if content == "" {
		return "", errors.New("normalize: empty completion content")
	}
	return content, nil
}

// Health probes the chat-completion gateway's model listing. A failure means
// normalization should be skipped for the run, not that the pipeline is
// broken.
func (c *Client) Health(ctx context.Context) error {
	if c.cfg.APIURL == "" {
		return errors.New("llm health: api url required")
	}
	endpoint, err := url.JoinPath(c.cfg.APIURL, "models")
	if err != nil {
		return fmt.Errorf("llm health: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("llm health: new request: %w", err)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llm health: http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("llm health: http %d: %s", resp.StatusCode, summarizeBody(body))
	}
	return nil
}

func extractContent(completion chatCompletionResponse) string {
	for _, choice := range completion.Choices {
		if content := firstNonEmpty(choice.Message.Content, choice.Delta.Content, choice.Text); content != "" {
			return content
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func summarizeBody(body []byte) string {
	clean := strings.Join(strings.Fields(string(body)), " ")
	const limit = 200
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	if clean == "" {
		return "<empty>"
	}
	return clean
}
