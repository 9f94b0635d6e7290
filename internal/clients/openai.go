package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"evervoice_backend/pkg/apperrors"
)

const openAIBaseURL = "https://api.openai.com/v1"

// ChatCompleter produces a reply from a system prompt and a user message.
type ChatCompleter interface {
	Chat(ctx context.Context, systemPrompt, userText string) (string, error)
}

type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewOpenAIClient(apiKey, model string, httpClient *http.Client) *OpenAIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAIClient{
		baseURL: openAIBaseURL,
		apiKey:  apiKey,
		model:   model,
		http:    httpClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat calls the chat-completions endpoint and returns the assistant text.
func (c *OpenAIClient) Chat(ctx context.Context, systemPrompt, userText string) (string, error) {
	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
	})
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.ErrProvider(err, "openai", "chat completion failed", 0, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", providerHTTPError("openai", "chat completion", resp)
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperrors.ErrProviderContract("openai", "chat completion response was not valid JSON")
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}
