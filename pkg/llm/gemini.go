package llm

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// GeminiModel is the default Gemini judge model.
const GeminiModel = "gemini-2.0-flash"

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// NewGeminiClient creates a Gemini-backed Completer.
func NewGeminiClient(ctx context.Context, apiKey, model string) (client *GeminiClient, err error) {
	if model == "" {
		model = GeminiModel
	}

	var cli *genai.Client
	cli, err = genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		err = errors.Wrap(err, "failed to create Gemini client")
		return client, err
	}

	client = &GeminiClient{
		cli:   cli,
		model: model,
	}
	return client, err
}

// Complete requests an application/json reply for the prompt.
func (g *GeminiClient) Complete(ctx context.Context, system, prompt string) (responseText string, err error) {
	var resp *genai.GenerateContentResponse
	resp, err = g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
			Temperature:       genai.Ptr[float32](JudgeTemperature),
			MaxOutputTokens:   JudgeMaxTokens,
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		err = errors.Wrap(err, "Gemini request failed")
		return responseText, err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		err = ErrEmptyResponse
		return responseText, err
	}

	responseText = resp.Candidates[0].Content.Parts[0].Text
	return responseText, err
}
