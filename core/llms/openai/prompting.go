// Package openai is a one-shot chat completions client used for planning and
// crowd analysis.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/crimeacs/kaufmannGPT/core/llms"
)

const url = "https://api.openai.com/v1/chat/completions"

const defaultModel = "gpt-4o-mini"

type Client struct {
	apiKey string
	model  string

	httpClient *http.Client
}

type ClientOption func(*Client)

func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateText runs one chat completion and returns the assistant's text.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts ...llms.GenerateOption) (string, error) {
	ctx, span := tracer.Start(ctx, "prompt llm")
	defer span.End()

	options := llms.GenerateOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	reqBody := requestBody{
		Model:       c.model,
		Messages:    toMessages(options.Instructions, prompt),
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	span.SetAttributes(attribute.String("request.model", c.model))

	content, err := c.complete(ctx, reqBody)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error", err.Error()))
		return "", err
	}
	return content, nil
}

func (c *Client) complete(ctx context.Context, reqBody requestBody) (string, error) {
	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", fmt.Errorf("error creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-OK HTTP status: %s", resp.Status)
	}

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	var response responseBody
	if err := json.Unmarshal(respBodyBytes, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return response.Choices[0].Message.Content, nil
}
