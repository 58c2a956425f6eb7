// Package nim talks to OpenAI-compatible model-serving endpoints (NVIDIA NIM
// style): one for query embeddings, one for chat completions.
package nim

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okorolev/manual-assistant/internal/core/domain"
	"github.com/okorolev/manual-assistant/internal/infrastructure/resilience"
)

const (
	generationTemperature = 0.2
	generationMaxTokens   = 512

	systemPrompt = "You are a helpful assistant for appliance manuals."
)

type Config struct {
	EmbeddingBaseURL  string
	EmbeddingModel    string
	GenerationBaseURL string
	GenerationModel   string

	EmbedTimeout    time.Duration
	GenerateTimeout time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(cfg Config, executor *resilience.Executor) *Client {
	if cfg.EmbedTimeout <= 0 {
		cfg.EmbedTimeout = 30 * time.Second
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}
	cfg.EmbeddingBaseURL = strings.TrimRight(cfg.EmbeddingBaseURL, "/")
	cfg.GenerationBaseURL = strings.TrimRight(cfg.GenerationBaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		executor:   executor,
	}
}

func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.EmbedTimeout)
	defer cancel()

	payload := map[string]any{
		"model":      c.cfg.EmbeddingModel,
		"input":      []string{text},
		"input_type": "query",
	}

	var response struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	err := c.execute(reqCtx, "embeddings", func(callCtx context.Context) error {
		response.Data = nil
		return c.postJSON(callCtx, c.cfg.EmbeddingBaseURL+"/v1/embeddings", payload, &response, "embeddings")
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrEmbeddingService, "embed query", err)
	}
	if len(response.Data) == 0 || len(response.Data[0].Embedding) == 0 {
		return nil, domain.WrapError(domain.ErrEmbeddingService, "embed query",
			fmt.Errorf("response carries no embedding"))
	}
	return response.Data[0].Embedding, nil
}

func (c *Client) GenerateAnswer(ctx context.Context, prompt string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.GenerateTimeout)
	defer cancel()

	payload := map[string]any{
		"model": c.cfg.GenerationModel,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": generationTemperature,
		"max_tokens":  generationMaxTokens,
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	err := c.execute(reqCtx, "chat_completions", func(callCtx context.Context) error {
		response.Choices = nil
		return c.postJSON(callCtx, c.cfg.GenerationBaseURL+"/v1/chat/completions", payload, &response, "chat completions")
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrGenerationService, "generate answer", err)
	}
	if len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Message.Content) == "" {
		return "", domain.WrapError(domain.ErrGenerationService, "generate answer",
			fmt.Errorf("response carries no answer content"))
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// execute routes the call through the resilience executor when one is
// configured. Retries live here in the transport layer, never in the
// pipeline.
func (c *Client) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if c.executor == nil {
		return fn(ctx)
	}
	return c.executor.Execute(ctx, operation, fn, classifyServiceError)
}
