package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/iliketocde/Finance-Tracker/logger"
	"go.uber.org/zap"
)

const defaultURL = "https://openrouter.ai/api/v1/chat/completions"
const defaultModel = "meta-llama/llama-3-8b-instruct"

// Fallback texts shown to the user when the completion call cannot produce a
// usable answer. The chat flow never surfaces a raw error.
const (
	FallbackUnreachable = "Sorry, I couldn't reach the AI."
	FallbackInvalid     = "Sorry, I couldn't get a valid response."
)

type CompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Choice struct {
	Message ChatMessage `json:"message"`
}

type CompletionResponse struct {
	Choices []Choice `json:"choices"`
}

func endpoint() string {
	if url := os.Getenv("AI_API_URL"); url != "" {
		return url
	}
	return defaultURL
}

func model() string {
	if m := os.Getenv("AI_MODEL"); m != "" {
		return m
	}
	return defaultModel
}

// Complete posts a single-message prompt to the completion endpoint and
// returns the first choice's text. On any failure it returns a user-facing
// fallback string instead of an error: the conversation must keep flowing
// even when the AI is down. No streaming, no retry.
func Complete(ctx context.Context, prompt string) string {
	text, err := complete(ctx, prompt)
	if err != nil {
		logger.Get().Error("completion request failed", zap.Error(err))
		return FallbackUnreachable
	}
	if text == "" {
		logger.Get().Warn("completion returned no choices")
		return FallbackInvalid
	}
	return text
}

func complete(ctx context.Context, prompt string) (string, error) {
	reqBody := CompletionRequest{
		Model: model(),
		Messages: []ChatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("AI_API_KEY"))

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned %d", resp.StatusCode)
	}

	var completion CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
