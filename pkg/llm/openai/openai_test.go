package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/entrhq/pagesage/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gemini-2.5-flash",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "A greeting."}}
  ]
}`

func TestNewProvider_Defaults(t *testing.T) {
	p, err := NewProvider("key")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.GetModel())
	assert.Equal(t, DefaultBaseURL, p.GetBaseURL())
	assert.True(t, p.HasAPIKey())
}

func TestNewProvider_InvalidBaseURL(t *testing.T) {
	_, err := NewProvider("key", WithBaseURL("localhost:8080"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base URL")
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	p, err := NewProvider("", WithBaseURL(server.URL+"/"))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "", "prompt")
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.False(t, called, "no request should be sent without a key")
}

func TestGenerate_Success(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer server.Close()

	p, err := NewProvider("secret", WithBaseURL(server.URL+"/"), WithModel("gemini-2.5-flash"))
	require.NoError(t, err)

	text, err := p.Generate(context.Background(), "custom-model", "Summarize\n\nHello world.")
	require.NoError(t, err)
	assert.Equal(t, "A greeting.", text)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "custom-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Summarize\n\nHello world.", got.Messages[0].Content)
}

func TestGenerate_EmptyModelUsesDefault(t *testing.T) {
	var model string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		model = body.Model
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer server.Close()

	p, err := NewProvider("secret", WithBaseURL(server.URL+"/"), WithModel("fallback-model"))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "fallback-model", model)
}

func TestGenerate_ServiceErrorIsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit_error","code":"429"}}`))
	}))
	defer server.Close()

	p, err := NewProvider("secret", WithBaseURL(server.URL+"/"))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, 1, calls)
}

func TestGenerate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	p, err := NewProvider("secret", WithBaseURL(server.URL+"/"))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "m", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
