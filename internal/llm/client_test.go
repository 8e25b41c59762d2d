package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", "gpt-4o-mini")
	client.apiURL = server.URL
	return client
}

func TestComplete(t *testing.T) {
	var gotReq chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  xin chào  "}},
			},
		})
	})

	got, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "bạn là trợ lý"},
		{Role: "user", Content: "chào"},
	}, Options{Temperature: 0.7, MaxTokens: 200})

	require.NoError(t, err)
	assert.Equal(t, "xin chào", got, "content must be trimmed")
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 0.7, gotReq.Temperature)
	assert.Equal(t, 200, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestComplete_DefaultMaxTokens(t *testing.T) {
	var gotReq chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, defaultMaxTokens, gotReq.MaxTokens)
}

func TestComplete_NoMessages(t *testing.T) {
	client := NewClient("test-key", "")
	_, err := client.Complete(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestComplete_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limit"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestComplete_APIErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"type": "invalid_request_error", "message": "bad model"},
		})
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_request_error")
}

func TestComplete_EmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "")
	assert.Equal(t, defaultModel, client.model)
	assert.False(t, client.IsConfigured())

	configured := NewClient("key", "gpt-3.5-turbo")
	assert.True(t, configured.IsConfigured())
	assert.Equal(t, "gpt-3.5-turbo", configured.model)
}
