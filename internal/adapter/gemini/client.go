package gemini

import (
	"context"
	"fmt"
	"time"

	"go-talentscout-backend/pkg/logger"

	"google.golang.org/genai"
)

// Client wraps the Gemini API for the four conversation adapters. All
// calls go through generate, which applies a bounded retry with growing
// waits so the state machine only ever sees success or total failure.
type Client struct {
	client      *genai.Client
	modelName   string
	temperature float32
	maxAttempts int
}

func NewClient(apiKey, modelName string, temperature float64, maxAttempts int) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Client{
		client:      client,
		modelName:   modelName,
		temperature: float32(temperature),
		maxAttempts: maxAttempts,
	}, nil
}

func (c *Client) generateOnce(ctx context.Context, prompt string, temperature float32, jsonMode bool) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 1500,
	}
	if jsonMode {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}

// generate retries up to maxAttempts with waits of 1s, 2s, 4s, ...
func (c *Client) generate(ctx context.Context, prompt string, temperature float32, jsonMode bool) (string, error) {
	var lastErr error
	wait := time.Second

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		result, err := c.generateOnce(ctx, prompt, temperature, jsonMode)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < c.maxAttempts {
			logger.Log.Warn("Retrying LLM call due to failure", "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(wait):
			}
			wait *= 2
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", c.maxAttempts, lastErr)
}
