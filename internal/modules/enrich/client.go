// Package enrich calls the text-generation backend that rewrites an article
// into beginner-level English with a Chinese summary and a vocabulary list.
// The backend is an untrusted, best-effort collaborator: its reply is decoded
// strictly and any mismatch fails closed as a per-item enrichment failure.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/easynews/core/internal/config"
	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"go.uber.org/zap"
)

// ErrDecode marks a backend reply that was not the expected JSON object.
var ErrDecode = errors.New("invalid JSON response from enrichment backend")

// Enricher produces a structured Result for one article.
type Enricher interface {
	Enrich(ctx context.Context, title, text string) (*Result, error)
}

// Client is the production Enricher. Without an API key it returns a fixed
// placeholder so the pipeline stays runnable in environments with no backend.
type Client struct {
	cfg    config.LLMConfig
	api    openai.Client
	logger *zap.Logger
}

// New creates an enrichment client from config.
func New(cfg config.LLMConfig, logger *zap.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(base, "/")))
	}
	return &Client{
		cfg:    cfg,
		api:    openai.NewClient(opts...),
		logger: logger,
	}
}

// Configured reports whether a backend credential is present.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// Enrich performs one enrichment call. All failure modes (transport, non-2xx,
// unparseable or schema-violating reply) come back as an error; the caller
// tallies them and moves on. No retry is attempted.
func (c *Client) Enrich(ctx context.Context, title, text string) (*Result, error) {
	if !c.Configured() {
		c.logger.Warn("no LLM API key configured, returning simulated result")
		return placeholderResult(text), nil
	}

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(title, text, c.cfg.VocabularyCount, c.cfg.ExampleSentences)),
		},
		Temperature: openai.Float(c.cfg.Temperature),
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
	})
	if err != nil {
		return nil, fmt.Errorf("enrichment call failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrDecode)
	}

	return parseResult(completion.Choices[0].Message.Content)
}

// parseResult decodes the backend's raw reply after stripping optional code
// fences. A successful decode missing a required field is still a failure:
// a record must never be persisted with an empty simplifiedText or chineseSummary.
func parseResult(raw string) (*Result, error) {
	cleaned := stripCodeFences(raw)

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		// Some backends pad the object with prose; retry on the outermost braces.
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &result); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	if strings.TrimSpace(result.SimplifiedText) == "" {
		return nil, fmt.Errorf("%w: simplifiedText is empty", ErrDecode)
	}
	if strings.TrimSpace(result.ChineseSummary) == "" {
		return nil, fmt.Errorf("%w: chineseSummary is empty", ErrDecode)
	}
	return &result, nil
}

func placeholderResult(text string) *Result {
	return &Result{
		SimplifiedText: "This is a simulated simplified text because no LLM Key was provided. " + truncateText(text, 50) + "...",
		CoreVocabulary: []string{"Simulation", "NoKey", "Test"},
		ChineseSummary: "这是模拟数据,因为没有提供 LLM API Key。",
	}
}
