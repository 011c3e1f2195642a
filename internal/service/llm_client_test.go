package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClientGenerate(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{
				"message": {"content": "trump"},
				"logprobs": {"content": [{
					"token": " trump",
					"logprob": -0.1,
					"top_logprobs": [
						{"token": " trump", "logprob": -0.1},
						{"token": " clinton", "logprob": -2.5}
					]
				}]}
			}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 1}
		}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(&config.AIConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		TimeoutMS: 5000,
	})

	gen, err := client.Generate(context.Background(), "gpt-4o-mini", "Who?", 3, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, "trump", gen.Text)
	assert.InDelta(t, -0.1, gen.TopLogprobs[" trump"], 1e-12)
	assert.InDelta(t, -2.5, gen.TopLogprobs[" clinton"], 1e-12)
	assert.True(t, gen.UsageKnown)
	assert.Equal(t, 120, gen.PromptTokens)
	assert.Equal(t, 1, gen.CompletionTokens)

	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.Equal(t, true, gotBody["logprobs"])
	assert.Equal(t, float64(20), gotBody["top_logprobs"])
	assert.Equal(t, float64(3), gotBody["max_tokens"])
}

func TestOpenAIClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenAIClient(&config.AIConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		TimeoutMS: 5000,
	})

	_, err := client.Generate(context.Background(), "gpt-4o-mini", "Who?", 3, 20, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(&config.AIConfig{
		APIKey:    "k",
		BaseURL:   srv.URL,
		TimeoutMS: 5000,
	})

	_, err := client.Generate(context.Background(), "m", "p", 3, 20, 0)
	assert.Error(t, err)
}
