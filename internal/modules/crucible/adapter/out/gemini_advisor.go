package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crucibleout "selfforge/internal/modules/crucible/port/out"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 10 * time.Second

	// FallbackMissingKey is returned when no credential is configured.
	FallbackMissingKey = "The flame burns quietly. (API key missing)"
	// FallbackOnError is returned when the oracle could not be reached.
	FallbackOnError = "The flame whispers of your victory."
)

const promptTemplate = `You are the Oracle of the Self-Forge. A user prone to anxiety and perfectionism
has just completed 10 minutes of a task they were dreading: %q.

Write one short, cryptic but encouraging sentence (max 20 words). Use metaphors
of fire, metal, forging, light, shadows or gold. Stoic and grand, never cheerful.`

// GeminiAdvisor asks Gemini for the oracle line. Failures are absorbed into
// the fixed fallback strings so callers always receive non-empty text; the
// session completion path is never failed by this collaborator.
type GeminiAdvisor struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGeminiAdvisor(apiKey string) crucibleout.AdvisoryProvider {
	return &GeminiAdvisor{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// NewGeminiAdvisorWithBaseURL exists for tests against a stub server.
func NewGeminiAdvisorWithBaseURL(apiKey, baseURL string) crucibleout.AdvisoryProvider {
	advisor := NewGeminiAdvisor(apiKey).(*GeminiAdvisor)
	advisor.baseURL = baseURL
	return advisor
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiAdvisor) Generate(ctx context.Context, taskName string) (string, error) {
	if g.apiKey == "" {
		return FallbackMissingKey, nil
	}

	prompt := fmt.Sprintf(promptTemplate, taskName)
	payload, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return FallbackOnError, nil
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return FallbackOnError, nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return FallbackOnError, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return FallbackOnError, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FallbackOnError, nil
	}

	decoded := generateResponse{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return FallbackOnError, nil
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return FallbackOnError, nil
	}
	text := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return FallbackOnError, nil
	}
	return text, nil
}
