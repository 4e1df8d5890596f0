package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/crisisdesk/disaster-response-api/internal/config"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GroqClient talks to an OpenAI-compatible chat completions endpoint.
// Retries are bounded and only triggered by HTTP 429; every other failure
// surfaces immediately.
type GroqClient struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
}

func NewGroqClient(cfg config.AgentConfig) *GroqClient {
	return &GroqClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *GroqClient) Run(ctx context.Context, system, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("agent API key not configured")
	}

	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("error marshaling chat request: %w", err)
	}

	url := c.baseURL + "/chat/completions"

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("error creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("error doing request: %w", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("error reading response: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt >= c.maxRetries {
				return "", fmt.Errorf("giving up after %d attempts: %w", attempt+1, ErrRateLimited)
			}
			slog.Warn("agent backend throttled, retrying", "attempt", attempt+1, "delay", c.retryDelay)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.retryDelay):
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("unexpected status code: %d - %s", resp.StatusCode, string(respBody))
		}

		var chat chatResponse
		if err := json.Unmarshal(respBody, &chat); err != nil {
			return "", fmt.Errorf("error decoding chat response: %w", err)
		}
		if chat.Error != nil {
			return "", fmt.Errorf("agent backend error: %s", chat.Error.Message)
		}
		if len(chat.Choices) == 0 {
			return "", fmt.Errorf("no completion returned")
		}

		return chat.Choices[0].Message.Content, nil
	}
}
