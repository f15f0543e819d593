package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffmatch/internal/config"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.AIConfig
		want    Settings
		wantErr string
	}{
		{
			name: "groq by default",
			cfg:  config.AIConfig{GroqAPIKey: " gk "},
			want: Settings{Provider: ProviderGroq, Model: DefaultGroqModel, APIKey: "gk", BaseURL: GroqBaseURL, Temperature: 0.7, MaxTokens: 2000},
		},
		{
			name: "openai with explicit model",
			cfg:  config.AIConfig{Provider: "OpenAI", OpenAIAPIKey: "ok", OpenAIModel: "gpt-4o-mini", Temperature: 0.5, MaxTokens: 100},
			want: Settings{Provider: ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "ok", Temperature: 0.5, MaxTokens: 100},
		},
		{
			name: "base url override",
			cfg:  config.AIConfig{Provider: "groq", GroqAPIKey: "gk", BaseURL: "http://proxy.local/v1"},
			want: Settings{Provider: ProviderGroq, Model: DefaultGroqModel, APIKey: "gk", BaseURL: "http://proxy.local/v1", Temperature: 0.7, MaxTokens: 2000},
		},
		{
			name:    "missing groq key",
			cfg:     config.AIConfig{Provider: "groq", OpenAIAPIKey: "ok"},
			wantErr: "GROQ_API_KEY",
		},
		{
			name:    "missing openai key",
			cfg:     config.AIConfig{Provider: "openai", GroqAPIKey: "gk"},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "unsupported provider",
			cfg:     config.AIConfig{Provider: "anthropic", GroqAPIKey: "gk"},
			wantErr: "unsupported provider",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.cfg)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				var ce *ConfigError
				require.True(t, errors.As(err, &ce))
				assert.Equal(t, KindConfig, Classify(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSharedReusesClientUntilConfigChangesOrReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg := config.AIConfig{Provider: "groq", GroqAPIKey: "k1"}
	first, err := Shared(cfg)
	require.NoError(t, err)
	again, err := Shared(cfg)
	require.NoError(t, err)
	assert.Same(t, first, again)

	rotated, err := Shared(config.AIConfig{Provider: "groq", GroqAPIKey: "k2"})
	require.NoError(t, err)
	assert.NotSame(t, first, rotated)
	assert.Equal(t, "k2", rotated.Settings().APIKey)

	_, err = Shared(config.AIConfig{Provider: "groq"})
	require.Error(t, err)
	kept, err := Shared(config.AIConfig{Provider: "groq", GroqAPIKey: "k2"})
	require.NoError(t, err)
	assert.Same(t, rotated, kept, "a config error leaves the cached client alone")

	Reset()
	fresh, err := Shared(config.AIConfig{Provider: "groq", GroqAPIKey: "k2"})
	require.NoError(t, err)
	assert.NotSame(t, rotated, fresh)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{&openai.Error{StatusCode: 429}, KindRateLimited},
		{&openai.Error{StatusCode: 401}, KindUnauthorized},
		{&openai.Error{StatusCode: 503}, KindServerError},
		{&openai.Error{StatusCode: 400, Message: "The model has been decommissioned"}, KindModelDeprecated},
		{errors.New("model is no longer supported"), KindModelDeprecated},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), KindTimeout},
		{&ProviderError{Kind: KindServerError, Status: 502, Err: errors.New("bad gateway")}, KindServerError},
		{&ConfigError{Reason: "x"}, KindConfig},
		{errors.New("boom"), KindUnknown},
		{nil, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.err))
	}
}

func completionServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientGenerateReturnsFirstChoice(t *testing.T) {
	var seen map[string]any
	srv := completionServer(t, http.StatusOK, `{
		"id": "c1", "object": "chat.completion", "created": 1, "model": "m",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "[{\"employeeId\":1}]"}}]
	}`, &seen)

	c := NewClient(Settings{Provider: ProviderOpenAI, Model: "m", APIKey: "k", BaseURL: srv.URL, Temperature: 0.7, MaxTokens: 2000}, 0, zap.NewNop())
	out, err := c.Generate(context.Background(), Request{System: "sys", Prompt: "hello", Temperature: 0.8})
	require.NoError(t, err)
	assert.Equal(t, `[{"employeeId":1}]`, out)

	assert.Equal(t, "m", seen["model"])
	assert.InDelta(t, 0.8, seen["temperature"], 1e-9)
	assert.EqualValues(t, 2000, seen["max_tokens"])
	msgs, ok := seen["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestClientGenerateClassifiesProviderErrors(t *testing.T) {
	cases := []struct {
		status int
		msg    string
		want   Kind
	}{
		{http.StatusTooManyRequests, "rate limit reached", KindRateLimited},
		{http.StatusUnauthorized, "invalid api key", KindUnauthorized},
		{http.StatusBadRequest, "The model `x` has been decommissioned", KindModelDeprecated},
		{http.StatusInternalServerError, "oops", KindServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.want), func(t *testing.T) {
			body := fmt.Sprintf(`{"error":{"message":%q,"type":"invalid_request_error","param":"","code":"x"}}`, tc.msg)
			srv := completionServer(t, tc.status, body, nil)
			c := NewClient(Settings{Provider: ProviderGroq, Model: "m", APIKey: "k", BaseURL: srv.URL}, 0, nil)

			_, err := c.Generate(context.Background(), Request{Prompt: "p"})
			require.Error(t, err)
			var pe *ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.status, pe.Status)
			assert.Equal(t, tc.want, Classify(err))
		})
	}
}

func TestClientGenerateEmptyChoices(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{"id":"c","object":"chat.completion","created":1,"model":"m","choices":[]}`, nil)
	c := NewClient(Settings{Provider: ProviderGroq, Model: "m", APIKey: "k", BaseURL: srv.URL}, 0, nil)
	_, err := c.Generate(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Equal(t, KindUnknown, Classify(err))
}
