package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/config"
)

func testGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGenerator(config.AIConfig{
		OpenAIAPIKey:    "sk-test",
		DefaultProvider: ProviderOpenAI,
		DefaultModel:    "gpt-4o-mini",
		MaxTokens:       500,
	})
	g.baseURL = srv.URL
	return g
}

func chatReply(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

func TestGenerateTemplate(t *testing.T) {
	g := testGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(chatReply(`{"subject":"Big Sale","title":"Save Now","body":"<b>Deals</b> inside.","cta_text":"Shop Now"}`)))
	})

	tpl, err := g.GenerateTemplate(context.Background(), Request{Prompt: "promote our sale"})
	require.NoError(t, err)
	assert.Equal(t, "Big Sale", tpl.Subject)
	assert.Equal(t, "Save Now", tpl.Title)
	assert.Equal(t, "Shop Now", tpl.CTAText)
}

func TestGenerateTemplateStripsCodeFences(t *testing.T) {
	g := testGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("```json\n{\"subject\":\"S\",\"title\":\"T\",\"body\":\"B\",\"cta_text\":\"C\"}\n```")))
	})

	tpl, err := g.GenerateTemplate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "S", tpl.Subject)
}

func TestGenerateTemplateFallbackOnBadJSON(t *testing.T) {
	g := testGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("Sorry, here is your email: Hello and welcome!")))
	})

	tpl, err := g.GenerateTemplate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Exclusive Offer", tpl.Subject)
	assert.Equal(t, "Special Update", tpl.Title)
	assert.Contains(t, tpl.Body, "Hello and welcome!")
	assert.Equal(t, "Learn More", tpl.CTAText)
}

func TestGenerateTemplateAPIError(t *testing.T) {
	g := testGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})

	_, err := g.GenerateTemplate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGenerateTemplateMissingKey(t *testing.T) {
	g := NewGenerator(config.AIConfig{DefaultProvider: ProviderOpenAI})
	_, err := g.GenerateTemplate(context.Background(), Request{Prompt: "x"})
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestGenerateTemplatePlaceholderKeyRejected(t *testing.T) {
	g := NewGenerator(config.AIConfig{OpenAIAPIKey: "your-api-key-here"})
	_, err := g.GenerateTemplate(context.Background(), Request{Provider: ProviderOpenAI, Prompt: "x"})
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestGenerateTemplateUnknownProvider(t *testing.T) {
	g := NewGenerator(config.AIConfig{OpenAIAPIKey: "sk-test"})
	_, err := g.GenerateTemplate(context.Background(), Request{Provider: "gemini", Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestMeetingPrompt(t *testing.T) {
	start := time.Date(2026, time.March, 9, 14, 30, 0, 0, time.UTC)
	p := MeetingPrompt("Roadmap Sync", start, start.Add(45*time.Minute), "Bring questions")

	assert.Contains(t, p, "Roadmap Sync")
	assert.Contains(t, p, "Monday, March 9, 2026")
	assert.Contains(t, p, "2:30 PM")
	assert.Contains(t, p, "45 minutes")
	assert.Contains(t, p, "Bring questions")
}

func TestBuildHTML(t *testing.T) {
	html := BuildHTML(&Template{
		Title:   "Save Now",
		Body:    `<b>Deals</b><script>alert(1)</script>`,
		CTAText: "Shop",
	}, "https://example.com/sale", "Acme Inc")

	assert.Contains(t, html, "Save Now")
	assert.Contains(t, html, "<b>Deals</b>")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, `href="https://example.com/sale"`)
	assert.Contains(t, html, "Acme Inc")
}
