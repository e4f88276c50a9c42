package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"time"
)

// GenerateChatTitle asks the model for a short header title for the floating
// assistant, based on the user's opening message.
func GenerateChatTitle(ctx context.Context, userMessage string) (string, error) {
	reqBody := CompletionRequest{
		Model:       model(),
		MaxTokens:   20,
		Temperature: 0.3,
		Messages: []ChatMessage{
			{Role: "system", Content: "You are a helpful assistant that generates short, descriptive titles for personal finance chat conversations. Keep it under 5 words using only alphanumeric characters."},
			{Role: "user", Content: fmt.Sprintf("Create a short title for this chat: %q", userMessage)},
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

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var completion CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}

	if len(completion.Choices) > 0 {
		return cleanTitle(completion.Choices[0].Message.Content), nil
	}
	return "New Chat", nil
}

var titleCharset = regexp.MustCompile(`[^a-zA-Z0-9 ':,;-]+`)

func cleanTitle(input string) string {
	return titleCharset.ReplaceAllString(input, "")
}
