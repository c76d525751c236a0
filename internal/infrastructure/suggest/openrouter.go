package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

// Client asks a chat-completions endpoint for short message suggestions.
type Client interface {
	Complete(ctx context.Context, prompt string) ([]string, error)
}

// OpenRouterClient talks to the OpenRouter chat-completions API.
type OpenRouterClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewOpenRouterClient creates an OpenRouter-backed suggestion client
func NewOpenRouterClient(apiKey, baseURL, model string) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// models sometimes wrap the array in prose; grab the first [...] block
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// Complete sends the prompt and parses the reply as a JSON array of strings
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) ([]string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt + " Format the output as a JSON array of strings."},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion api returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("suggestion api returned no choices")
	}

	raw := jsonArrayPattern.FindString(parsed.Choices[0].Message.Content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array in suggestion reply")
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("malformed suggestion array: %w", err)
	}
	return suggestions, nil
}
