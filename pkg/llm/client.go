package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	// GroqAPIEndpoint is the Groq chat completions endpoint.
	GroqAPIEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	// GroqModel is the default judge model.
	GroqModel = "llama-3.1-8b-instant"
	// JudgeTemperature keeps the judge fairly consistent between runs.
	JudgeTemperature = 0.3
	// JudgeMaxTokens bounds the judge reply.
	JudgeMaxTokens = 2000
)

// ErrEmptyResponse is returned when the API answers without any choices.
var ErrEmptyResponse = errors.New("no content in chat completion response")

// Client represents a Groq chat completion client.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new Groq API client.
func NewClient(apiKey, model string) (client *Client) {
	if model == "" {
		model = GroqModel
	}
	client = &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: GroqAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	return client
}

// Complete sends a system prompt and a user prompt and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, system, prompt string) (responseText string, err error) {
	chatReq := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: system,
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature:    JudgeTemperature,
		MaxTokens:      JudgeMaxTokens,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(chatReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return responseText, err
	}

	var chatResp ChatResponse
	err = json.Unmarshal(respBody, &chatResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse chat completion response: %s", string(respBody))
		return responseText, err
	}

	if len(chatResp.Choices) == 0 {
		err = ErrEmptyResponse
		return responseText, err
	}

	responseText = chatResp.Choices[0].Message.Content

	return responseText, err
}
