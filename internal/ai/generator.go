package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/config"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/httpretry"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/logger"
)

// Provider names a chat completion backend.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
)

const (
	openAIBaseURL     = "https://api.openai.com/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// ErrMissingAPIKey means the selected provider has no usable key configured.
var ErrMissingAPIKey = errors.New("ai: api key not configured")

// Template is the structured content the model produces for one campaign.
type Template struct {
	Subject string `json:"subject"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	CTAText string `json:"cta_text"`
}

const systemPrompt = `You are a professional marketing copywriter.
You must output a valid JSON object with the following keys:
- subject: The email subject line.
- title: A catchy headline for the email body (2-5 words).
- body: The main persuasive email content (2-3 paragraphs). HTML tags like <br> and <b> are allowed.
- cta_text: A short, punchy call-to-action button text (2-4 words).

Do not include markdown formatting (like ` + "```json" + `). Just return the raw JSON string.`

// Generator calls a chat completion API and shapes the reply into a Template.
type Generator struct {
	cfg    config.AIConfig
	client httpretry.HTTPDoer

	// baseURL, when set, overrides the provider endpoint. Used by tests.
	baseURL string
}

// NewGenerator creates a generator for the configured providers. Rate limits
// and transient provider errors are retried with backoff.
func NewGenerator(cfg config.AIConfig) *Generator {
	return &Generator{
		cfg:    cfg,
		client: httpretry.NewRetryClient(&http.Client{Timeout: 60 * time.Second}, 2),
	}
}

// Request selects the provider and model for one generation. Empty fields
// fall back to the configured defaults.
type Request struct {
	Prompt   string `json:"prompt"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateTemplate produces structured campaign content for the prompt. A
// reply that is not valid JSON degrades to a canned template carrying the raw
// reply as body, so a chatty model never fails the request.
func (g *Generator) GenerateTemplate(ctx context.Context, req Request) (*Template, error) {
	provider := req.Provider
	if provider == "" {
		provider = g.cfg.DefaultProvider
	}
	model := req.Model
	if model == "" {
		model = g.cfg.DefaultModel
	}

	baseURL, apiKey, err := g.endpoint(provider)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ai: calling %s: %w", provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var chat chatResponse
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, fmt.Errorf("ai: decoding %s response: %w", provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if chat.Error != nil {
			msg = chat.Error.Message
		}
		return nil, fmt.Errorf("ai: %s returned %d: %s", provider, resp.StatusCode, msg)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("ai: %s returned no choices", provider)
	}

	return parseTemplate(chat.Choices[0].Message.Content), nil
}

// endpoint resolves the base URL and key for a provider. Placeholder keys
// copied from .env.example are rejected the same as missing ones.
func (g *Generator) endpoint(provider string) (string, string, error) {
	var key, base string
	switch strings.ToLower(provider) {
	case ProviderOpenRouter:
		key, base = g.cfg.OpenRouterAPIKey, openRouterBaseURL
	case ProviderOpenAI, "":
		key, base = g.cfg.OpenAIAPIKey, openAIBaseURL
	default:
		return "", "", fmt.Errorf("ai: unknown provider %q", provider)
	}
	if key == "" || strings.Contains(strings.ToLower(key), "your-") || strings.Contains(key, "...") {
		return "", "", fmt.Errorf("%w for provider %s", ErrMissingAPIKey, provider)
	}
	if g.baseURL != "" {
		base = g.baseURL
	}
	return base, key, nil
}

// parseTemplate decodes the model reply, stripping markdown code fences some
// models wrap JSON in despite instructions.
func parseTemplate(content string) *Template {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var tpl Template
	if err := json.Unmarshal([]byte(content), &tpl); err != nil {
		logger.Warn("ai reply was not valid json, using fallback template", "error", err)
		return &Template{
			Subject: "Exclusive Offer",
			Title:   "Special Update",
			Body:    content,
			CTAText: "Learn More",
		}
	}
	return &tpl
}
