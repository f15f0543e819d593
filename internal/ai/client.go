package ai

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"staffmatch/internal/logger"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

const defaultMaxLogLength = 300

// Request is one chat completion: a fixed system instruction plus the prompt.
// A zero Temperature uses the client's configured temperature.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
}

// Generator returns the raw text the model produced for req.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Client talks to an OpenAI-compatible chat completions endpoint. Groq is reached
// through its OpenAI-compatible base URL.
type Client struct {
	settings Settings
	api      openai.Client
	timeout  time.Duration
	logger   *zap.Logger
}

// NewClient builds a client for s. Automatic SDK retries are disabled.
func NewClient(s Settings, timeout time.Duration, log *zap.Logger, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		base = append(base, option.WithBaseURL(s.BaseURL))
	}
	base = append(base, opts...)

	return &Client{
		settings: s,
		api:      openai.NewClient(base...),
		timeout:  timeout,
		logger:   logger.WithCommonFields(log, s.Provider, s.Model),
	}
}

func (c *Client) Settings() Settings { return c.settings }

func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c == nil {
		return "", errors.New("nil ai client")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	temperature := req.Temperature
	if temperature <= 0 {
		temperature = c.settings.Temperature
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if s := strings.TrimSpace(req.System); s != "" {
		messages = append(messages, openai.SystemMessage(s))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	c.logger.Debug("chat completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(req.Prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(req.Prompt, defaultMaxLogLength)),
		zap.Float64("temperature", temperature),
	)

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       c.settings.Model,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(c.settings.MaxTokens),
	})
	if err != nil {
		return "", wrapProviderError(err)
	}
	if len(completion.Choices) == 0 {
		return "", &ProviderError{Kind: KindUnknown, Err: errors.New("no choices in completion")}
	}

	raw := completion.Choices[0].Message.Content
	c.logger.Debug("chat completion response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, defaultMaxLogLength)),
	)
	return raw, nil
}
