package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/config"
)

// Generation is one chat completion with the first output token's
// alternatives attached.
type Generation struct {
	Text             string
	TopLogprobs      map[string]float64
	PromptTokens     int
	CompletionTokens int
	UsageKnown       bool
}

// Generator produces completions with token-level log probabilities.
// Implemented by the OpenAI-compatible client below; tests swap in a
// stub.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, maxTokens, topLogprobs int, temperature float64) (*Generation, error)
}

// OpenAIClient talks to an OpenAI-compatible chat completions
// endpoint.
type OpenAIClient struct {
	config *config.AIConfig
	client *http.Client
}

// NewOpenAIClient creates a client from AI configuration.
func NewOpenAIClient(cfg *config.AIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, model, prompt string, maxTokens, topLogprobs int, temperature float64) (*Generation, error) {
	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":   maxTokens,
		"logprobs":     true,
		"top_logprobs": topLogprobs,
		"temperature":  temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := c.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completions: status %d: %s", resp.StatusCode, string(body))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Logprobs struct {
				Content []struct {
					Token       string  `json:"token"`
					Logprob     float64 `json:"logprob"`
					TopLogprobs []struct {
						Token   string  `json:"token"`
						Logprob float64 `json:"logprob"`
					} `json:"top_logprobs"`
				} `json:"content"`
			} `json:"logprobs"`
		} `json:"choices"`
		Usage *struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}

	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from model %s", model)
	}

	choice := completion.Choices[0]
	gen := &Generation{
		Text:        choice.Message.Content,
		TopLogprobs: make(map[string]float64),
	}

	// Only the first output token matters for collapsing: the model
	// is instructed to answer with a single name.
	if len(choice.Logprobs.Content) > 0 {
		for _, alt := range choice.Logprobs.Content[0].TopLogprobs {
			gen.TopLogprobs[alt.Token] = alt.Logprob
		}
	}

	if completion.Usage != nil {
		gen.PromptTokens = completion.Usage.PromptTokens
		gen.CompletionTokens = completion.Usage.CompletionTokens
		gen.UsageKnown = true
	}

	return gen, nil
}
