package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const messagesURL = "https://api.anthropic.com/v1/messages"

// GenerationError wraps any failure of the upstream generation call so the
// endpoint layer can map it to a 502 without inspecting transport details.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generation failed: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

type Config struct {
	APIKey            string
	Model             string
	MaxTokens         int
	Timeout           time.Duration
	RequestsPerMinute float64
	BaseURL           string // defaults to the public API endpoint
}

// Client talks to the Anthropic Messages API.
type Client struct {
	cfg Config
	hc  *http.Client
	lim *rate.Limiter
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = messagesURL
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		lim: rate.NewLimiter(rate.Limit(rpm/60.0), 1),
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one prompt and returns the model's prose. One attempt, no
// retry; the caller records the outcome either way.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return "", &GenerationError{Err: err}
	}

	body, err := json.Marshal(messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	res, err := c.hc.Do(req)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	var out messagesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &GenerationError{Err: fmt.Errorf("decode response (status %d): %w", res.StatusCode, err)}
	}
	if res.StatusCode >= 400 {
		msg := "status " + res.Status
		if out.Error != nil {
			msg = fmt.Sprintf("%s: %s", out.Error.Type, out.Error.Message)
		}
		return "", &GenerationError{Err: fmt.Errorf("api error: %s", msg)}
	}

	var text string
	for _, part := range out.Content {
		if part.Type == "text" {
			text += part.Text
		}
	}
	if text == "" {
		return "", &GenerationError{Err: fmt.Errorf("empty response content")}
	}
	return text, nil
}
