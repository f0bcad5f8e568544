package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestServer(t *testing.T, finishReason, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if captured != nil {
			require.NoError(t, json.Unmarshal(body, captured))
		}

		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": finishReason,
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(DefaultOpenAIConfig(), "")
	assert.Error(t, err)
}

func TestOpenAIClient_GenerateJSON(t *testing.T) {
	var captured map[string]any
	server := newOpenAITestServer(t, "stop", `{"ok": true}`, &captured)
	defer server.Close()

	client, err := NewOpenAIClient(DefaultOpenAIConfig(), "test-key",
		option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	text, err := client.GenerateJSON(context.Background(), Request{
		SystemPrompt: "You are a career advisor.",
		UserPrompt:   "Analyze this profile.",
		Tier:         TierStandard,
		MaxTokens:    1500,
		Temperature:  0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, text)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.EqualValues(t, 1500, captured["max_tokens"])
	responseFormat, ok := captured["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", responseFormat["type"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestOpenAIClient_TruncatedAndEmpty(t *testing.T) {
	tests := []struct {
		name         string
		finishReason string
		content      string
		want         error
	}{
		{name: "truncated", finishReason: "length", content: `{"ok": tr`, want: ErrTruncatedResponse},
		{name: "empty", finishReason: "stop", content: "", want: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newOpenAITestServer(t, tt.finishReason, tt.content, nil)
			defer server.Close()

			client, err := NewOpenAIClient(DefaultOpenAIConfig(), "test-key",
				option.WithBaseURL(server.URL), option.WithMaxRetries(0))
			require.NoError(t, err)

			_, err = client.GenerateJSON(context.Background(), Request{UserPrompt: "u", Tier: TierStandard})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
