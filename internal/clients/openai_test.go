package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Equal(t, "잘 지냈어?", body.Messages[1].Content)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"응, 잘 지냈지."}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", "gpt-4o-mini", srv.Client())
	c.baseURL = srv.URL

	reply, err := c.Chat(context.Background(), "persona prompt", "잘 지냈어?")
	require.NoError(t, err)
	assert.Equal(t, "응, 잘 지냈지.", reply)
}

func TestOpenAIClient_Chat_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", "gpt-4o-mini", srv.Client())
	c.baseURL = srv.URL

	reply, err := c.Chat(context.Background(), "persona", "hello")
	require.NoError(t, err)
	assert.Empty(t, reply)
}
